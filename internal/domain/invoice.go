package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceKind тип счёта: входящий от поставщика или исходящий клиенту
type InvoiceKind string

const (
	InvoiceKindSupplier InvoiceKind = "supplier"
	InvoiceKindClient   InvoiceKind = "client"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusIssued    InvoiceStatus = "issued"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// Invoice represents a supplier or client invoice
type Invoice struct {
	ID        int64
	Kind      InvoiceKind
	BookingID *int64 // Привязка к бронированию (опционально)

	CounterpartyName  string
	CounterpartyEmail string

	Number    string
	IssueDate time.Time
	DueDate   *time.Time

	Amount    decimal.Decimal
	VATAmount decimal.Decimal

	Status InvoiceStatus
	Notes  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Total возвращает сумму счёта с НДС
func (i *Invoice) Total() decimal.Decimal {
	return i.Amount.Add(i.VATAmount)
}

// IsPaid returns true if the invoice has been paid
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// CanBeDeleted returns true if the invoice can be removed
// Оплаченные счета удалять нельзя - только черновики и отменённые
func (i *Invoice) CanBeDeleted() bool {
	return i.Status == InvoiceStatusDraft || i.Status == InvoiceStatusCancelled
}

// IsOverdue returns true if the invoice is unpaid past its due date
func (i *Invoice) IsOverdue(now time.Time) bool {
	if i.DueDate == nil || i.IsPaid() || i.Status == InvoiceStatusCancelled {
		return false
	}
	return now.After(*i.DueDate)
}

// InvoicesFilter фильтр для получения списка счетов
type InvoicesFilter struct {
	Kind      *InvoiceKind   // supplier или client (опционально)
	BookingID *int64         // Фильтр по бронированию (опционально)
	Status    *InvoiceStatus // Фильтр по статусу (опционально)
	StartDate *time.Time     // Начало периода по дате выставления (опционально)
	EndDate   *time.Time     // Конец периода (опционально)
}
