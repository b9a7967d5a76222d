package domain

// EntityType тип сущности для полиморфных привязок (чат, документы)
type EntityType string

const (
	EntityBooking EntityType = "booking"
	EntityInvoice EntityType = "invoice"
	EntityFine    EntityType = "fine"
	EntityPayment EntityType = "payment"
)

// ValidEntityTypes список допустимых типов сущностей
var ValidEntityTypes = []EntityType{
	EntityBooking,
	EntityInvoice,
	EntityFine,
	EntityPayment,
}

// IsValidEntityType проверяет, что тип сущности допустим
func IsValidEntityType(t EntityType) bool {
	for _, valid := range ValidEntityTypes {
		if t == valid {
			return true
		}
	}
	return false
}

// Пороги расписания напоминаний об оплате (в днях до подачи)
const (
	BalanceFirstReminderDays  = 7 // первое напоминание об остатке
	BalanceSecondReminderDays = 3 // повторное напоминание
	BalanceFinalReminderDays  = 1 // финальное напоминание

	DepositFirstReminderDays = 3 // первое напоминание о депозите
	DepositFinalReminderDays = 1 // финальное напоминание о депозите

	// Минимальный интервал между повторными отправками (в днях)
	SecondReminderGapDays = 4 // для порога <=3 дней
	FinalReminderGapDays  = 2 // для порога <=1 дня
)

// Ускоренный путь напоминаний для бронирований, созданных с коротким уведомлением
const (
	ImmediateNoticeHours   = 48 // бронирование срочное, если до подачи менее 48 часов
	ImmediateCooldownHours = 2  // не чаще одной отправки раз в 2 часа
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxChatMessageLength        = 2000
	MaxFileNameLength           = 255
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveBookingStatuses статусы бронирований, исключаемые из списков по умолчанию
var InactiveBookingStatuses = []BookingStatus{
	StatusCancelled,
}

// ReminderEligibleStatuses статусы бронирований, для которых шлются напоминания
var ReminderEligibleStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
