package send_reminders

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func bookingDueInDays(days int) *domain.Booking {
	return &domain.Booking{
		ID:               1,
		ClientName:       "Иван Иванов",
		ClientEmail:      "ivan@example.com",
		DeliveryDatetime: testNow.Add(time.Duration(days) * 24 * time.Hour),
		AmountTotal:      decimal.NewFromInt(1000),
		AmountPaid:       decimal.NewFromInt(400),
		Status:           domain.StatusConfirmed,
	}
}


func TestDecide_BalanceFirstReminder(t *testing.T) {
	b := bookingDueInDays(7)

	due := Decide(b, testNow)

	assert.Equal(t, []domain.ReminderType{domain.ReminderBalance}, due)
}

func TestDecide_BalanceOutsideFirstWindow(t *testing.T) {
	b := bookingDueInDays(10)

	due := Decide(b, testNow)

	assert.Empty(t, due)
}

func TestDecide_BalanceFirstTier_AlreadySent(t *testing.T) {
	b := bookingDueInDays(6)
	b.BalanceReminderSentAt = ptr.Ptr(testNow.Add(-24 * time.Hour))

	due := Decide(b, testNow)

	assert.Empty(t, due)
}

func TestDecide_BalanceSecondTier_GapPassed(t *testing.T) {
	b := bookingDueInDays(3)
	// Первое напоминание ушло 5 дней назад, порог повтора 4 дня
	b.BalanceReminderSentAt = ptr.Ptr(testNow.Add(-5 * 24 * time.Hour))

	due := Decide(b, testNow)

	assert.Equal(t, []domain.ReminderType{domain.ReminderBalance}, due)
}

func TestDecide_BalanceSecondTier_GapNotPassed(t *testing.T) {
	b := bookingDueInDays(3)
	b.BalanceReminderSentAt = ptr.Ptr(testNow.Add(-3 * 24 * time.Hour))

	due := Decide(b, testNow)

	assert.Empty(t, due)
}

func TestDecide_BalanceFinalTier_GapPassed(t *testing.T) {
	b := bookingDueInDays(1)
	b.BalanceReminderSentAt = ptr.Ptr(testNow.Add(-3 * 24 * time.Hour))

	due := Decide(b, testNow)

	assert.Equal(t, []domain.ReminderType{domain.ReminderBalance}, due)
}

func TestDecide_BalanceFinalTier_GapNotPassed(t *testing.T) {
	b := bookingDueInDays(1)
	b.BalanceReminderSentAt = ptr.Ptr(testNow.Add(-24 * time.Hour))

	due := Decide(b, testNow)

	assert.Empty(t, due)
}

func TestDecide_FullyPaid_NoBalanceReminder(t *testing.T) {
	b := bookingDueInDays(5)
	b.AmountPaid = b.AmountTotal

	due := Decide(b, testNow)

	assert.Empty(t, due)
}

func TestDecide_DeliveryInThePast(t *testing.T) {
	b := bookingDueInDays(-2)

	due := Decide(b, testNow)

	assert.Empty(t, due)
}

func TestDecide_ImmediateReminder_FirstSend(t *testing.T) {
	b := bookingDueInDays(1)
	b.ImmediateReminder = true

	due := Decide(b, testNow)

	assert.Equal(t, []domain.ReminderType{domain.ReminderBalance}, due)
}

func TestDecide_ImmediateReminder_CooldownActive(t *testing.T) {
	b := bookingDueInDays(1)
	b.ImmediateReminder = true
	b.BalanceReminderSentAt = ptr.Ptr(testNow.Add(-1 * time.Hour))

	due := Decide(b, testNow)

	assert.Empty(t, due)
}

func TestDecide_ImmediateReminder_CooldownPassed(t *testing.T) {
	b := bookingDueInDays(1)
	b.ImmediateReminder = true
	b.BalanceReminderSentAt = ptr.Ptr(testNow.Add(-2 * time.Hour))

	due := Decide(b, testNow)

	assert.Equal(t, []domain.ReminderType{domain.ReminderBalance}, due)
}

func TestDecide_DepositFirstReminder(t *testing.T) {
	b := bookingDueInDays(3)
	b.AmountPaid = b.AmountTotal
	b.SecurityDepositAmount = decimal.NewFromInt(500)

	due := Decide(b, testNow)

	assert.Equal(t, []domain.ReminderType{domain.ReminderDeposit}, due)
}

func TestDecide_DepositOutsideWindow(t *testing.T) {
	b := bookingDueInDays(5)
	b.AmountPaid = b.AmountTotal
	b.SecurityDepositAmount = decimal.NewFromInt(500)

	due := Decide(b, testNow)

	assert.Empty(t, due)
}

func TestDecide_DepositAuthorized_NoReminder(t *testing.T) {
	b := bookingDueInDays(2)
	b.AmountPaid = b.AmountTotal
	b.SecurityDepositAmount = decimal.NewFromInt(500)
	b.SecurityDepositAuthorizedAt = ptr.Ptr(testNow.Add(-24 * time.Hour))

	due := Decide(b, testNow)

	assert.Empty(t, due)
}

func TestDecide_DepositFinalTier_GapPassed(t *testing.T) {
	b := bookingDueInDays(1)
	b.AmountPaid = b.AmountTotal
	b.SecurityDepositAmount = decimal.NewFromInt(500)
	b.DepositReminderSentAt = ptr.Ptr(testNow.Add(-3 * 24 * time.Hour))

	due := Decide(b, testNow)

	assert.Equal(t, []domain.ReminderType{domain.ReminderDeposit}, due)
}

func TestDecide_BothRemindersDue(t *testing.T) {
	b := bookingDueInDays(3)
	b.SecurityDepositAmount = decimal.NewFromInt(500)

	due := Decide(b, testNow)

	assert.Equal(t, []domain.ReminderType{domain.ReminderBalance, domain.ReminderDeposit}, due)
}
