package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

var (
	// ErrInvalidKind возвращается при некорректном типе счёта
	ErrInvalidKind = errors.New("invalid invoice kind")

	// ErrInvalidStatus возвращается при некорректном статусе счёта
	ErrInvalidStatus = errors.New("invalid invoice status")

	// ErrInvalidAmount возвращается при некорректной денежной сумме
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid date, YYYY-MM-DD expected")
)

// CreateInvoiceRequest запрос на создание счёта
type CreateInvoiceRequest struct {
	Kind      string `json:"kind"` // supplier | client
	BookingID *int64 `json:"bookingId,omitempty"`

	CounterpartyName  string `json:"counterpartyName"`
	CounterpartyEmail string `json:"counterpartyEmail"`

	Number    string  `json:"number"`
	IssueDate string  `json:"issueDate"`         // YYYY-MM-DD
	DueDate   *string `json:"dueDate,omitempty"` // YYYY-MM-DD

	Amount    string `json:"amount"`
	VATAmount string `json:"vatAmount"`

	Notes *string `json:"notes,omitempty"`
}

// UpdateInvoiceRequest запрос на обновление счёта
type UpdateInvoiceRequest struct {
	BookingID *int64 `json:"bookingId,omitempty"`

	CounterpartyName  string `json:"counterpartyName"`
	CounterpartyEmail string `json:"counterpartyEmail"`

	Number    string  `json:"number"`
	IssueDate string  `json:"issueDate"`
	DueDate   *string `json:"dueDate,omitempty"`

	Amount    string `json:"amount"`
	VATAmount string `json:"vatAmount"`

	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

// ListInvoicesRequest параметры списка счетов
type ListInvoicesRequest struct {
	Kind      *string
	BookingID *int64
	Status    *string
	StartDate *time.Time
	EndDate   *time.Time
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListInvoicesRequest) ToDomainFilter() (domain.InvoicesFilter, error) {
	filter := domain.InvoicesFilter{
		BookingID: r.BookingID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}

	if r.Kind != nil {
		kind, err := ToDomainInvoiceKind(*r.Kind)
		if err != nil {
			return filter, err
		}
		filter.Kind = &kind
	}

	if r.Status != nil {
		status, err := ToDomainInvoiceStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// InvoiceResponse ответ с данными счёта
type InvoiceResponse struct {
	ID        int64  `json:"id"`
	Kind      string `json:"kind"`
	BookingID *int64 `json:"bookingId,omitempty"`

	CounterpartyName  string `json:"counterpartyName"`
	CounterpartyEmail string `json:"counterpartyEmail"`

	Number    string  `json:"number"`
	IssueDate string  `json:"issueDate"`
	DueDate   *string `json:"dueDate,omitempty"`

	Amount    string `json:"amount"`
	VATAmount string `json:"vatAmount"`
	Total     string `json:"total"`

	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InvoiceListResponse ответ со списком счетов
type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// ToDomainInvoice конвертирует запрос создания в domain модель
func (r *CreateInvoiceRequest) ToDomainInvoice() (*domain.Invoice, error) {
	kind, err := ToDomainInvoiceKind(r.Kind)
	if err != nil {
		return nil, err
	}

	issueDate, err := time.Parse(domain.DateFormat, r.IssueDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	var dueDate *time.Time
	if r.DueDate != nil {
		parsed, err := time.Parse(domain.DateFormat, *r.DueDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		dueDate = &parsed
	}

	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return nil, ErrInvalidAmount
	}

	vat := decimal.Zero
	if strings.TrimSpace(r.VATAmount) != "" {
		vat, err = decimal.NewFromString(r.VATAmount)
		if err != nil {
			return nil, ErrInvalidAmount
		}
	}

	return &domain.Invoice{
		Kind:              kind,
		BookingID:         r.BookingID,
		CounterpartyName:  strings.TrimSpace(r.CounterpartyName),
		CounterpartyEmail: strings.TrimSpace(r.CounterpartyEmail),
		Number:            strings.TrimSpace(r.Number),
		IssueDate:         issueDate,
		DueDate:           dueDate,
		Amount:            amount,
		VATAmount:         vat,
		Status:            domain.InvoiceStatusDraft,
		Notes:             r.Notes,
	}, nil
}

// ApplyToDomainInvoice применяет запрос обновления к существующей domain модели
// Тип счёта (kind) после создания не меняется
func (r *UpdateInvoiceRequest) ApplyToDomainInvoice(invoice *domain.Invoice) error {
	issueDate, err := time.Parse(domain.DateFormat, r.IssueDate)
	if err != nil {
		return ErrInvalidDate
	}

	var dueDate *time.Time
	if r.DueDate != nil {
		parsed, err := time.Parse(domain.DateFormat, *r.DueDate)
		if err != nil {
			return ErrInvalidDate
		}
		dueDate = &parsed
	}

	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return ErrInvalidAmount
	}

	vat := decimal.Zero
	if strings.TrimSpace(r.VATAmount) != "" {
		vat, err = decimal.NewFromString(r.VATAmount)
		if err != nil {
			return ErrInvalidAmount
		}
	}

	status, err := ToDomainInvoiceStatus(r.Status)
	if err != nil {
		return err
	}

	invoice.BookingID = r.BookingID
	invoice.CounterpartyName = strings.TrimSpace(r.CounterpartyName)
	invoice.CounterpartyEmail = strings.TrimSpace(r.CounterpartyEmail)
	invoice.Number = strings.TrimSpace(r.Number)
	invoice.IssueDate = issueDate
	invoice.DueDate = dueDate
	invoice.Amount = amount
	invoice.VATAmount = vat
	invoice.Status = status
	invoice.Notes = r.Notes

	return nil
}

// FromDomainInvoice конвертирует domain модель в DTO
func FromDomainInvoice(i *domain.Invoice) *InvoiceResponse {
	if i == nil {
		return nil
	}

	resp := &InvoiceResponse{
		ID:                i.ID,
		Kind:              string(i.Kind),
		BookingID:         i.BookingID,
		CounterpartyName:  i.CounterpartyName,
		CounterpartyEmail: i.CounterpartyEmail,
		Number:            i.Number,
		IssueDate:         i.IssueDate.Format(domain.DateFormat),
		Amount:            i.Amount.StringFixed(2),
		VATAmount:         i.VATAmount.StringFixed(2),
		Total:             i.Total().StringFixed(2),
		Status:            string(i.Status),
		Notes:             i.Notes,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}

	if i.DueDate != nil {
		formatted := i.DueDate.Format(domain.DateFormat)
		resp.DueDate = &formatted
	}

	return resp
}

// FromDomainInvoiceList конвертирует список domain моделей в DTO
func FromDomainInvoiceList(invoices []*domain.Invoice) *InvoiceListResponse {
	resp := &InvoiceListResponse{
		Invoices: make([]InvoiceResponse, 0, len(invoices)),
	}

	for _, invoice := range invoices {
		if invoiceResp := FromDomainInvoice(invoice); invoiceResp != nil {
			resp.Invoices = append(resp.Invoices, *invoiceResp)
		}
	}

	return resp
}

// ToDomainInvoiceKind конвертирует строку в domain.InvoiceKind с валидацией
func ToDomainInvoiceKind(kind string) (domain.InvoiceKind, error) {
	k := domain.InvoiceKind(kind)
	if k == domain.InvoiceKindSupplier || k == domain.InvoiceKindClient {
		return k, nil
	}
	return "", ErrInvalidKind
}

// ToDomainInvoiceStatus конвертирует строку в domain.InvoiceStatus с валидацией
func ToDomainInvoiceStatus(status string) (domain.InvoiceStatus, error) {
	s := domain.InvoiceStatus(status)

	validStatuses := []domain.InvoiceStatus{
		domain.InvoiceStatusDraft,
		domain.InvoiceStatusIssued,
		domain.InvoiceStatusPaid,
		domain.InvoiceStatusOverdue,
		domain.InvoiceStatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
