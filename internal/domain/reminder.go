package domain

// ReminderType тип напоминания об оплате
type ReminderType string

const (
	ReminderBalance ReminderType = "balance"
	ReminderDeposit ReminderType = "deposit"
)

// ReminderDecision решение о необходимости отправки напоминания для бронирования
type ReminderDecision struct {
	ShouldSend bool
	Type       ReminderType
}
