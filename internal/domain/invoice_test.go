package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceTotal(t *testing.T) {
	i := &Invoice{
		Amount:    decimal.NewFromInt(1000),
		VATAmount: decimal.NewFromInt(210),
	}
	assert.True(t, i.Total().Equal(decimal.NewFromInt(1210)))
}

func TestInvoiceCanBeDeleted(t *testing.T) {
	assert.True(t, (&Invoice{Status: InvoiceStatusDraft}).CanBeDeleted())
	assert.True(t, (&Invoice{Status: InvoiceStatusCancelled}).CanBeDeleted())
	assert.False(t, (&Invoice{Status: InvoiceStatusIssued}).CanBeDeleted())
	assert.False(t, (&Invoice{Status: InvoiceStatusPaid}).CanBeDeleted())
}

func TestInvoiceIsOverdue(t *testing.T) {
	dueDate := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)

	i := &Invoice{Status: InvoiceStatusIssued, DueDate: &dueDate}
	assert.True(t, i.IsOverdue(now))

	i = &Invoice{Status: InvoiceStatusPaid, DueDate: &dueDate}
	assert.False(t, i.IsOverdue(now))

	i = &Invoice{Status: InvoiceStatusIssued}
	assert.False(t, i.IsOverdue(now))

	futureDue := now.Add(24 * time.Hour)
	i = &Invoice{Status: InvoiceStatusIssued, DueDate: &futureDue}
	assert.False(t, i.IsOverdue(now))
}

func TestPaymentAffectsBookingBalance(t *testing.T) {
	bookingID := int64(7)

	p := &Payment{BookingID: &bookingID, Direction: PaymentIn}
	assert.True(t, p.AffectsBookingBalance())

	p = &Payment{BookingID: &bookingID, Direction: PaymentOut}
	assert.False(t, p.AffectsBookingBalance())

	p = &Payment{Direction: PaymentIn}
	assert.False(t, p.AffectsBookingBalance())
}
