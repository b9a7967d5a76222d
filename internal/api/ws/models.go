package ws

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Типы событий, рассылаемых подключённым клиентам
const (
	EventChatMessage  = "chat_message"
	EventNotification = "notification"
)

// Event обёртка события для клиента
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// MessagePayload событие нового сообщения чата
type MessagePayload struct {
	ID         int64     `json:"id"`
	EntityType string    `json:"entityType"`
	EntityID   int64     `json:"entityId"`
	AuthorID   int64     `json:"authorId"`
	Body       string    `json:"body"`
	Mentions   []int64   `json:"mentions,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NotificationPayload событие нового уведомления
type NotificationPayload struct {
	ID         int64     `json:"id"`
	Kind       string    `json:"kind"`
	EntityType string    `json:"entityType"`
	EntityID   int64     `json:"entityId"`
	MessageID  *int64    `json:"messageId,omitempty"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
}

func messageEvent(m *domain.ChatMessage) Event {
	return Event{
		Type: EventChatMessage,
		Payload: MessagePayload{
			ID:         m.ID,
			EntityType: string(m.EntityType),
			EntityID:   m.EntityID,
			AuthorID:   m.AuthorID,
			Body:       m.Body,
			Mentions:   m.Mentions,
			CreatedAt:  m.CreatedAt,
		},
	}
}

func notificationEvent(n *domain.Notification) Event {
	return Event{
		Type: EventNotification,
		Payload: NotificationPayload{
			ID:         n.ID,
			Kind:       string(n.Kind),
			EntityType: string(n.EntityType),
			EntityID:   n.EntityID,
			MessageID:  n.MessageID,
			Body:       n.Body,
			CreatedAt:  n.CreatedAt,
		},
	}
}
