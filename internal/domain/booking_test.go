package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestDaysUntilDelivery_RoundsUp(t *testing.T) {
	// Подача завтра утром это 1 день, не 0
	b := &Booking{DeliveryDatetime: now.Add(20 * time.Hour)}
	assert.Equal(t, 1, b.DaysUntilDelivery(now))

	b = &Booking{DeliveryDatetime: now.Add(24 * time.Hour)}
	assert.Equal(t, 1, b.DaysUntilDelivery(now))

	b = &Booking{DeliveryDatetime: now.Add(25 * time.Hour)}
	assert.Equal(t, 2, b.DaysUntilDelivery(now))
}

func TestDaysUntilDelivery_Past(t *testing.T) {
	b := &Booking{DeliveryDatetime: now.Add(-30 * time.Hour)}
	assert.Equal(t, -1, b.DaysUntilDelivery(now))
}

func TestBalanceDue(t *testing.T) {
	b := &Booking{
		AmountTotal: decimal.NewFromInt(1000),
		AmountPaid:  decimal.NewFromInt(400),
	}
	assert.True(t, b.BalanceDue().Equal(decimal.NewFromInt(600)))
}

func TestBalanceDue_OverpaidClampsToZero(t *testing.T) {
	b := &Booking{
		AmountTotal: decimal.NewFromInt(1000),
		AmountPaid:  decimal.NewFromInt(1200),
	}
	assert.True(t, b.BalanceDue().IsZero())
}

func TestDepositPending(t *testing.T) {
	b := &Booking{SecurityDepositAmount: decimal.NewFromInt(500)}
	assert.True(t, b.DepositPending())

	authorizedAt := now
	b.SecurityDepositAuthorizedAt = &authorizedAt
	assert.False(t, b.DepositPending())

	b = &Booking{SecurityDepositAmount: decimal.Zero}
	assert.False(t, b.DepositPending())
}

func TestCanBeCancelled(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusActive}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCancelled}).CanBeCancelled())
}

func TestCanBeUpdated(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusActive}).CanBeUpdated())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeUpdated())
	assert.False(t, (&Booking{Status: StatusCancelled}).CanBeUpdated())
}
