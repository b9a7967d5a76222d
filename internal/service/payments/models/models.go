package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

var (
	// ErrInvalidDirection возвращается при некорректном направлении платежа
	ErrInvalidDirection = errors.New("invalid payment direction")

	// ErrInvalidMethod возвращается при некорректном способе оплаты
	ErrInvalidMethod = errors.New("invalid payment method")

	// ErrInvalidAmount возвращается при некорректной или неположительной сумме
	ErrInvalidAmount = errors.New("invalid amount, positive value expected")

	// ErrInvalidDatetime возвращается при некорректной дате/времени
	ErrInvalidDatetime = errors.New("invalid datetime, RFC3339 expected")
)

// CreatePaymentRequest запрос на регистрацию платежа
type CreatePaymentRequest struct {
	BookingID *int64 `json:"bookingId,omitempty"`
	InvoiceID *int64 `json:"invoiceId,omitempty"`

	Direction string `json:"direction"` // in | out
	Method    string `json:"method"`    // card | cash | transfer
	Amount    string `json:"amount"`
	PaidAt    string `json:"paidAt"` // RFC3339

	Reference *string `json:"reference,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// ListPaymentsRequest параметры списка платежей
type ListPaymentsRequest struct {
	BookingID *int64
	InvoiceID *int64
	Direction *string
	StartDate *time.Time
	EndDate   *time.Time
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListPaymentsRequest) ToDomainFilter() (domain.PaymentsFilter, error) {
	filter := domain.PaymentsFilter{
		BookingID: r.BookingID,
		InvoiceID: r.InvoiceID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}

	if r.Direction != nil {
		direction, err := ToDomainPaymentDirection(*r.Direction)
		if err != nil {
			return filter, err
		}
		filter.Direction = &direction
	}

	return filter, nil
}

// PaymentResponse ответ с данными платежа
type PaymentResponse struct {
	ID        int64  `json:"id"`
	BookingID *int64 `json:"bookingId,omitempty"`
	InvoiceID *int64 `json:"invoiceId,omitempty"`

	Direction string `json:"direction"`
	Method    string `json:"method"`
	Amount    string `json:"amount"`
	PaidAt    string `json:"paidAt"`

	Reference *string `json:"reference,omitempty"`
	Notes     *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// PaymentListResponse ответ со списком платежей
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// ToDomainPayment конвертирует запрос создания в domain модель
func (r *CreatePaymentRequest) ToDomainPayment() (*domain.Payment, error) {
	direction, err := ToDomainPaymentDirection(r.Direction)
	if err != nil {
		return nil, err
	}

	method, err := ToDomainPaymentMethod(r.Method)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(r.Amount))
	if err != nil || !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	paidAt, err := time.Parse(time.RFC3339, r.PaidAt)
	if err != nil {
		return nil, ErrInvalidDatetime
	}

	return &domain.Payment{
		BookingID: r.BookingID,
		InvoiceID: r.InvoiceID,
		Direction: direction,
		Method:    method,
		Amount:    amount,
		PaidAt:    paidAt,
		Reference: r.Reference,
		Notes:     r.Notes,
	}, nil
}

// FromDomainPayment конвертирует domain модель в DTO
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}

	return &PaymentResponse{
		ID:        p.ID,
		BookingID: p.BookingID,
		InvoiceID: p.InvoiceID,
		Direction: string(p.Direction),
		Method:    string(p.Method),
		Amount:    p.Amount.StringFixed(2),
		PaidAt:    p.PaidAt.Format(time.RFC3339),
		Reference: p.Reference,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}

// FromDomainPaymentList конвертирует список domain моделей в DTO
func FromDomainPaymentList(payments []*domain.Payment) *PaymentListResponse {
	resp := &PaymentListResponse{
		Payments: make([]PaymentResponse, 0, len(payments)),
	}

	for _, payment := range payments {
		if paymentResp := FromDomainPayment(payment); paymentResp != nil {
			resp.Payments = append(resp.Payments, *paymentResp)
		}
	}

	return resp
}

// ToDomainPaymentDirection конвертирует строку в domain.PaymentDirection с валидацией
func ToDomainPaymentDirection(direction string) (domain.PaymentDirection, error) {
	d := domain.PaymentDirection(direction)
	if d == domain.PaymentIn || d == domain.PaymentOut {
		return d, nil
	}
	return "", ErrInvalidDirection
}

// ToDomainPaymentMethod конвертирует строку в domain.PaymentMethod с валидацией
func ToDomainPaymentMethod(method string) (domain.PaymentMethod, error) {
	m := domain.PaymentMethod(method)
	if m == domain.PaymentMethodCard || m == domain.PaymentMethodCash || m == domain.PaymentMethodTransfer {
		return m, nil
	}
	return "", ErrInvalidMethod
}
