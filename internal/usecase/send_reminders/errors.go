package send_reminders

import "errors"

var (
	// ErrListCandidates возвращается, когда не удалось получить бронирования-кандидаты
	ErrListCandidates = errors.New("send_reminders: failed to list candidates")
)
