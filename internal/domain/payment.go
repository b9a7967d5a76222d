package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentDirection направление платежа: входящий или исходящий
type PaymentDirection string

const (
	PaymentIn  PaymentDirection = "in"
	PaymentOut PaymentDirection = "out"
)

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

// Payment represents a registered payment, optionally tied to a booking or invoice
type Payment struct {
	ID        int64
	BookingID *int64
	InvoiceID *int64

	Direction PaymentDirection
	Method    PaymentMethod
	Amount    decimal.Decimal
	PaidAt    time.Time
	Reference *string // номер транзакции/перевода
	Notes     *string

	CreatedAt time.Time
}

// AffectsBookingBalance returns true if the payment changes a booking's paid amount
// Остаток бронирования меняют только входящие платежи, привязанные к бронированию
func (p *Payment) AffectsBookingBalance() bool {
	return p.BookingID != nil && p.Direction == PaymentIn
}

// PaymentsFilter фильтр для получения списка платежей
type PaymentsFilter struct {
	BookingID *int64            // Фильтр по бронированию (опционально)
	InvoiceID *int64            // Фильтр по счёту (опционально)
	Direction *PaymentDirection // in или out (опционально)
	StartDate *time.Time        // Начало периода по дате оплаты (опционально)
	EndDate   *time.Time        // Конец периода (опционально)
}
