package domain

import "time"

// ChatMessage сообщение во внутреннем чате, привязанное к сущности (бронирование, счёт, штраф)
type ChatMessage struct {
	ID         int64
	EntityType EntityType
	EntityID   int64
	AuthorID   int64
	Body       string
	Mentions   []int64 // ID упомянутых пользователей
	CreatedAt  time.Time
}

// NotificationKind тип уведомления
type NotificationKind string

const (
	NotificationMention        NotificationKind = "mention"
	NotificationMessage        NotificationKind = "message"
	NotificationReminderFailed NotificationKind = "reminder_failed"
)

// Notification уведомление пользователя бэк-офиса
type Notification struct {
	ID         int64
	UserID     int64
	Kind       NotificationKind
	EntityType EntityType
	EntityID   int64
	MessageID  *int64 // Ссылка на сообщение чата (для mention/message)
	Body       string
	ReadAt     *time.Time
	CreatedAt  time.Time
}

// IsRead returns true if the notification has been read
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
