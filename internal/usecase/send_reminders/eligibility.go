package send_reminders

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Decide возвращает типы напоминаний, которые нужно отправить для бронирования
// Чистая функция расписания: все данные берутся из бронирования и текущего времени
func Decide(b *domain.Booking, now time.Time) []domain.ReminderType {
	var due []domain.ReminderType

	if shouldSendBalance(b, now) {
		due = append(due, domain.ReminderBalance)
	}
	if shouldSendDeposit(b, now) {
		due = append(due, domain.ReminderDeposit)
	}

	return due
}

// shouldSendBalance решает, нужно ли напоминание об остатке оплаты
func shouldSendBalance(b *domain.Booking, now time.Time) bool {
	if !b.HasOutstandingBalance() {
		return false
	}

	days := b.DaysUntilDelivery(now)
	if days < 0 {
		return false
	}

	if b.ImmediateReminder {
		return cooldownPassed(b.BalanceReminderSentAt, now)
	}

	switch {
	case days <= domain.BalanceFinalReminderDays:
		return neverSentOrOlderThan(b.BalanceReminderSentAt, now, domain.FinalReminderGapDays)
	case days <= domain.BalanceSecondReminderDays:
		return neverSentOrOlderThan(b.BalanceReminderSentAt, now, domain.SecondReminderGapDays)
	case days <= domain.BalanceFirstReminderDays:
		return b.BalanceReminderSentAt == nil
	}

	return false
}

// shouldSendDeposit решает, нужно ли напоминание об авторизации депозита
func shouldSendDeposit(b *domain.Booking, now time.Time) bool {
	if !b.DepositPending() {
		return false
	}

	days := b.DaysUntilDelivery(now)
	if days < 0 {
		return false
	}

	if b.ImmediateReminder {
		return cooldownPassed(b.DepositReminderSentAt, now)
	}

	switch {
	case days <= domain.DepositFinalReminderDays:
		return neverSentOrOlderThan(b.DepositReminderSentAt, now, domain.FinalReminderGapDays)
	case days <= domain.DepositFirstReminderDays:
		return b.DepositReminderSentAt == nil
	}

	return false
}

// neverSentOrOlderThan проверяет, что напоминание ещё не отправлялось
// либо с последней отправки прошло больше gapDays дней
func neverSentOrOlderThan(sentAt *time.Time, now time.Time, gapDays int) bool {
	if sentAt == nil {
		return true
	}
	return now.Sub(*sentAt) > time.Duration(gapDays)*24*time.Hour
}

// cooldownPassed проверяет интервал ускоренного пути для срочных бронирований
func cooldownPassed(sentAt *time.Time, now time.Time) bool {
	if sentAt == nil {
		return true
	}
	return now.Sub(*sentAt) >= time.Duration(domain.ImmediateCooldownHours)*time.Hour
}
