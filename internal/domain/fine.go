package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FineStatus represents the processing state of a traffic fine
type FineStatus string

const (
	FineStatusReceived  FineStatus = "received"
	FineStatusNotified  FineStatus = "notified"  // клиент уведомлён
	FineStatusRecharged FineStatus = "recharged" // перевыставлен клиенту
	FineStatusPaid      FineStatus = "paid"
	FineStatusDisputed  FineStatus = "disputed"
)

// Fine represents a traffic fine received for a rental vehicle
type Fine struct {
	ID        int64
	BookingID *int64 // Привязка к бронированию (опционально)

	DriverName string
	Plate      string
	IssuedAt   time.Time
	Amount     decimal.Decimal
	Authority  string // орган, выписавший штраф

	Status FineStatus
	Notes  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsSettled returns true if the fine requires no further processing
func (f *Fine) IsSettled() bool {
	return f.Status == FineStatusPaid
}

// FinesFilter фильтр для получения списка штрафов
type FinesFilter struct {
	BookingID *int64      // Фильтр по бронированию (опционально)
	Status    *FineStatus // Фильтр по статусу (опционально)
	Plate     *string     // Фильтр по госномеру (опционально)
}
