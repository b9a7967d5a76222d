package send_reminders

// Report итог одного пакетного прогона напоминаний
type Report struct {
	Processed int `json:"processed"` // всего бронирований-кандидатов
	Sent      int `json:"sent"`      // отправлено писем
	Skipped   int `json:"skipped"`   // кандидаты без напоминания по расписанию
	Failed    int `json:"failed"`    // сбои отправки
}
