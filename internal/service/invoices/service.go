package invoices

import (
	"context"
	"errors"
	"fmt"

	storage "github.com/m04kA/SMC-RentalService/internal/infra/storage/invoice"
	"github.com/m04kA/SMC-RentalService/internal/service/invoices/models"
)

// Service сервис управления счетами
type Service struct {
	repo InvoiceRepository
	log  Logger
}

// NewService создает новый экземпляр сервиса счетов
func NewService(repo InvoiceRepository, logger Logger) *Service {
	return &Service{
		repo: repo,
		log:  logger,
	}
}

// Create создает новый счёт
func (s *Service) Create(ctx context.Context, req *models.CreateInvoiceRequest) (*models.InvoiceResponse, error) {
	invoice, err := req.ToDomainInvoice()
	if err != nil {
		s.log.Warn("[Invoices] Create - invalid input: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.repo.Create(ctx, invoice)
	if err != nil {
		s.log.Error("[Invoices] Create - failed to create invoice: %v", err)
		return nil, fmt.Errorf("%w: Create - failed to create invoice: %v", ErrInternal, err)
	}

	s.log.Info("[Invoices] Create - invoice created: id=%d, kind=%s, number=%s",
		created.ID, created.Kind, created.Number)

	return models.FromDomainInvoice(created), nil
}

// GetByID возвращает счёт по идентификатору
func (s *Service) GetByID(ctx context.Context, id int64) (*models.InvoiceResponse, error) {
	invoice, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrInvoiceNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrInvoiceNotFound, id)
		}
		s.log.Error("[Invoices] GetByID - failed to get invoice %d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to get invoice: %v", ErrInternal, err)
	}

	return models.FromDomainInvoice(invoice), nil
}

// List возвращает список счетов по фильтру
func (s *Service) List(ctx context.Context, req *models.ListInvoicesRequest) (*models.InvoiceListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.log.Warn("[Invoices] List - invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	invoices, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log.Error("[Invoices] List - failed to list invoices: %v", err)
		return nil, fmt.Errorf("%w: List - failed to list invoices: %v", ErrInternal, err)
	}

	return models.FromDomainInvoiceList(invoices), nil
}

// Update обновляет счёт
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateInvoiceRequest) (*models.InvoiceResponse, error) {
	invoice, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrInvoiceNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrInvoiceNotFound, id)
		}
		s.log.Error("[Invoices] Update - failed to get invoice %d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - failed to get invoice: %v", ErrInternal, err)
	}

	if err := req.ApplyToDomainInvoice(invoice); err != nil {
		s.log.Warn("[Invoices] Update - invalid input for invoice %d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Update(ctx, invoice); err != nil {
		if errors.Is(err, storage.ErrInvoiceNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrInvoiceNotFound, id)
		}
		s.log.Error("[Invoices] Update - failed to update invoice %d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - failed to update invoice: %v", ErrInternal, err)
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error("[Invoices] Update - failed to reload invoice %d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - failed to reload invoice: %v", ErrInternal, err)
	}

	s.log.Info("[Invoices] Update - invoice updated: id=%d, status=%s", id, updated.Status)

	return models.FromDomainInvoice(updated), nil
}

// Delete удаляет счёт. Разрешено только для черновиков и отменённых счетов
func (s *Service) Delete(ctx context.Context, id int64) error {
	invoice, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrInvoiceNotFound) {
			return fmt.Errorf("%w: id=%d", ErrInvoiceNotFound, id)
		}
		s.log.Error("[Invoices] Delete - failed to get invoice %d: %v", id, err)
		return fmt.Errorf("%w: Delete - failed to get invoice: %v", ErrInternal, err)
	}

	if !invoice.CanBeDeleted() {
		s.log.Warn("[Invoices] Delete - invoice %d in status %s cannot be deleted", id, invoice.Status)
		return fmt.Errorf("%w: id=%d, status=%s", ErrCannotDelete, id, invoice.Status)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrInvoiceNotFound) {
			return fmt.Errorf("%w: id=%d", ErrInvoiceNotFound, id)
		}
		s.log.Error("[Invoices] Delete - failed to delete invoice %d: %v", id, err)
		return fmt.Errorf("%w: Delete - failed to delete invoice: %v", ErrInternal, err)
	}

	s.log.Info("[Invoices] Delete - invoice deleted: id=%d", id)

	return nil
}
