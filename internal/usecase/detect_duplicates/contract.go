package detect_duplicates

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// BookingNameRepository интерфейс выборки имён клиентов из бронирований
type BookingNameRepository interface {
	ListNameRecords(ctx context.Context) ([]domain.NameRecord, error)
}

// InvoiceNameRepository интерфейс выборки имён контрагентов из клиентских счетов
type InvoiceNameRepository interface {
	ListNameRecords(ctx context.Context) ([]domain.NameRecord, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
