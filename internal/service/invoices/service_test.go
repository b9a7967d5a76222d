package invoices

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	storage "github.com/m04kA/SMC-RentalService/internal/infra/storage/invoice"
	"github.com/m04kA/SMC-RentalService/internal/service/invoices/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type stubInvoiceRepo struct {
	invoice   *domain.Invoice
	getErr    error
	updateErr error
	deleteErr error
	updated   []*domain.Invoice
	deleted   []int64
}

func (s *stubInvoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	created := *invoice
	created.ID = 10
	return &created, nil
}

func (s *stubInvoiceRepo) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.invoice, nil
}

func (s *stubInvoiceRepo) List(ctx context.Context, filter domain.InvoicesFilter) ([]*domain.Invoice, error) {
	return nil, nil
}

func (s *stubInvoiceRepo) Update(ctx context.Context, invoice *domain.Invoice) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	copied := *invoice
	s.updated = append(s.updated, &copied)
	s.invoice = &copied
	return nil
}

func (s *stubInvoiceRepo) Delete(ctx context.Context, id int64) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func invoiceInStatus(status domain.InvoiceStatus) *domain.Invoice {
	invoice, err := (&models.CreateInvoiceRequest{
		Kind:              "client",
		CounterpartyName:  "Иван Иванов",
		CounterpartyEmail: "ivan@example.com",
		Number:            "INV-001",
		IssueDate:         "2025-06-01",
		Amount:            "1000.00",
		VATAmount:         "200.00",
	}).ToDomainInvoice()
	if err != nil {
		panic(err)
	}
	invoice.ID = 10
	invoice.Status = status
	return invoice
}

func TestCreate_ClientInvoice(t *testing.T) {
	repo := &stubInvoiceRepo{}
	service := NewService(repo, nopLogger{})

	resp, err := service.Create(context.Background(), &models.CreateInvoiceRequest{
		Kind:              "client",
		CounterpartyName:  "Иван Иванов",
		CounterpartyEmail: "ivan@example.com",
		Number:            "INV-001",
		IssueDate:         "2025-06-01",
		Amount:            "1000.00",
		VATAmount:         "200.00",
	})

	require.NoError(t, err)
	assert.Equal(t, "draft", resp.Status)
	assert.Equal(t, "1200.00", resp.Total)
}

func TestCreate_InvalidKind(t *testing.T) {
	service := NewService(&stubInvoiceRepo{}, nopLogger{})

	_, err := service.Create(context.Background(), &models.CreateInvoiceRequest{
		Kind:      "vendor",
		Number:    "INV-001",
		IssueDate: "2025-06-01",
		Amount:    "1000.00",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_InvalidAmount(t *testing.T) {
	service := NewService(&stubInvoiceRepo{}, nopLogger{})

	_, err := service.Create(context.Background(), &models.CreateInvoiceRequest{
		Kind:      "supplier",
		Number:    "INV-001",
		IssueDate: "2025-06-01",
		Amount:    "тысяча",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &stubInvoiceRepo{getErr: storage.ErrInvoiceNotFound}
	service := NewService(repo, nopLogger{})

	_, err := service.GetByID(context.Background(), 404)

	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestUpdate_StatusTransition(t *testing.T) {
	repo := &stubInvoiceRepo{invoice: invoiceInStatus(domain.InvoiceStatusDraft)}
	service := NewService(repo, nopLogger{})

	resp, err := service.Update(context.Background(), 10, &models.UpdateInvoiceRequest{
		CounterpartyName:  "Иван Иванов",
		CounterpartyEmail: "ivan@example.com",
		Number:            "INV-001",
		IssueDate:         "2025-06-01",
		Amount:            "1000.00",
		VATAmount:         "200.00",
		Status:            "issued",
	})

	require.NoError(t, err)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, "issued", resp.Status)
}

func TestUpdate_InvalidStatus(t *testing.T) {
	repo := &stubInvoiceRepo{invoice: invoiceInStatus(domain.InvoiceStatusDraft)}
	service := NewService(repo, nopLogger{})

	_, err := service.Update(context.Background(), 10, &models.UpdateInvoiceRequest{
		CounterpartyName: "Иван Иванов",
		Number:           "INV-001",
		IssueDate:        "2025-06-01",
		Amount:           "1000.00",
		Status:           "archived",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.updated)
}

func TestDelete_Draft(t *testing.T) {
	repo := &stubInvoiceRepo{invoice: invoiceInStatus(domain.InvoiceStatusDraft)}
	service := NewService(repo, nopLogger{})

	err := service.Delete(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, []int64{10}, repo.deleted)
}

func TestDelete_Cancelled(t *testing.T) {
	repo := &stubInvoiceRepo{invoice: invoiceInStatus(domain.InvoiceStatusCancelled)}
	service := NewService(repo, nopLogger{})

	err := service.Delete(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, []int64{10}, repo.deleted)
}

func TestDelete_IssuedRejected(t *testing.T) {
	repo := &stubInvoiceRepo{invoice: invoiceInStatus(domain.InvoiceStatusIssued)}
	service := NewService(repo, nopLogger{})

	err := service.Delete(context.Background(), 10)

	assert.ErrorIs(t, err, ErrCannotDelete)
	assert.Empty(t, repo.deleted)
}

func TestDelete_PaidRejected(t *testing.T) {
	repo := &stubInvoiceRepo{invoice: invoiceInStatus(domain.InvoiceStatusPaid)}
	service := NewService(repo, nopLogger{})

	err := service.Delete(context.Background(), 10)

	assert.ErrorIs(t, err, ErrCannotDelete)
	assert.Empty(t, repo.deleted)
}

func TestDelete_NotFound(t *testing.T) {
	repo := &stubInvoiceRepo{getErr: storage.ErrInvoiceNotFound}
	service := NewService(repo, nopLogger{})

	err := service.Delete(context.Background(), 404)

	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}
