package merge_names

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Usecase объединение написаний имени клиента в одно каноническое
// Переименование затрагивает бронирования, клиентские счета и штрафы
type Usecase struct {
	bookings  BookingRenamer
	invoices  InvoiceRenamer
	fines     FineRenamer
	txManager TxManager
	log       Logger
}

// New создает новый экземпляр usecase объединения имён
func New(bookings BookingRenamer, invoices InvoiceRenamer, fines FineRenamer, txManager TxManager, logger Logger) *Usecase {
	return &Usecase{
		bookings:  bookings,
		invoices:  invoices,
		fines:     fines,
		txManager: txManager,
		log:       logger,
	}
}

// Run переименовывает все варианты в каноническое имя в одной транзакции
func (u *Usecase) Run(ctx context.Context, req *MergeRequest) (*MergeResponse, error) {
	canonical, variants, err := validate(req)
	if err != nil {
		u.log.Warn("[MergeNames] Run - invalid input: %v", err)
		return nil, err
	}

	result := &domain.MergeResult{CanonicalName: canonical}

	txErr := u.txManager.Do(ctx, func(ctx context.Context) error {
		updated, err := u.bookings.RenameClient(ctx, variants, canonical)
		if err != nil {
			return fmt.Errorf("rename bookings: %w", err)
		}
		result.BookingsUpdated = updated

		updated, err = u.invoices.RenameCounterparty(ctx, variants, canonical)
		if err != nil {
			return fmt.Errorf("rename invoices: %w", err)
		}
		result.InvoicesUpdated = updated

		updated, err = u.fines.RenameDriver(ctx, variants, canonical)
		if err != nil {
			return fmt.Errorf("rename fines: %w", err)
		}
		result.FinesUpdated = updated

		return nil
	})
	if txErr != nil {
		u.log.Error("[MergeNames] Run - merge failed for %q: %v", canonical, txErr)
		return nil, fmt.Errorf("%w: %v", ErrMergeFailed, txErr)
	}

	u.log.Info("[MergeNames] Run - merged %d variants into %q: bookings=%d, invoices=%d, fines=%d",
		len(variants), canonical, result.BookingsUpdated, result.InvoicesUpdated, result.FinesUpdated)

	return FromDomainResult(result), nil
}
