package detect_duplicates

import (
	"context"
	"fmt"
)

// Usecase поиск разных написаний одного клиента в бронированиях и счетах
type Usecase struct {
	bookings BookingNameRepository
	invoices InvoiceNameRepository
	log      Logger
}

// New создает новый экземпляр usecase поиска дубликатов
func New(bookings BookingNameRepository, invoices InvoiceNameRepository, logger Logger) *Usecase {
	return &Usecase{
		bookings: bookings,
		invoices: invoices,
		log:      logger,
	}
}

// Run собирает имена из обоих источников и строит группы кандидатов
func (u *Usecase) Run(ctx context.Context) (*DuplicatesResponse, error) {
	bookingRecords, err := u.bookings.ListNameRecords(ctx)
	if err != nil {
		u.log.Error("[DetectDuplicates] Run - failed to list booking names: %v", err)
		return nil, fmt.Errorf("%w: bookings: %v", ErrListRecords, err)
	}

	invoiceRecords, err := u.invoices.ListNameRecords(ctx)
	if err != nil {
		u.log.Error("[DetectDuplicates] Run - failed to list invoice names: %v", err)
		return nil, fmt.Errorf("%w: invoices: %v", ErrListRecords, err)
	}

	records := append(bookingRecords, invoiceRecords...)
	groups := BuildGroups(records)

	u.log.Info("[DetectDuplicates] Run - records=%d, groups=%d", len(records), len(groups))

	return FromDomainGroups(groups), nil
}
