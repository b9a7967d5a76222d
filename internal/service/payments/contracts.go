package payments

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	List(ctx context.Context, filter domain.PaymentsFilter) ([]*domain.Payment, error)
	Delete(ctx context.Context, id int64) error
}

// BookingBalanceRepository интерфейс для изменения оплаченной суммы бронирования
type BookingBalanceRepository interface {
	ApplyPaymentDelta(ctx context.Context, id int64, delta decimal.Decimal) error
}

// TxManager интерфейс менеджера транзакций
// Платёж и изменение остатка бронирования записываются атомарно
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
