package models

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

var (
	// ErrInvalidEntityType возвращается при некорректном типе сущности
	ErrInvalidEntityType = errors.New("invalid entity type")

	// ErrEmptyBody возвращается при пустом тексте сообщения
	ErrEmptyBody = errors.New("message body is empty")

	// ErrBodyTooLong возвращается при превышении лимита длины сообщения
	ErrBodyTooLong = errors.New("message body is too long")
)

// SendMessageRequest запрос на отправку сообщения в чат сущности
type SendMessageRequest struct {
	EntityType string  `json:"entityType"` // booking | invoice | fine | payment
	EntityID   int64   `json:"entityId"`
	Body       string  `json:"body"`
	Mentions   []int64 `json:"mentions,omitempty"`
}

// MessageResponse ответ с данными сообщения
type MessageResponse struct {
	ID         int64     `json:"id"`
	EntityType string    `json:"entityType"`
	EntityID   int64     `json:"entityId"`
	AuthorID   int64     `json:"authorId"`
	Body       string    `json:"body"`
	Mentions   []int64   `json:"mentions,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// MessageListResponse ответ со списком сообщений
type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
}

// NotificationResponse ответ с данными уведомления
type NotificationResponse struct {
	ID         int64     `json:"id"`
	Kind       string    `json:"kind"`
	EntityType string    `json:"entityType"`
	EntityID   int64     `json:"entityId"`
	MessageID  *int64    `json:"messageId,omitempty"`
	Body       string    `json:"body"`
	ReadAt     *string   `json:"readAt,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NotificationListResponse ответ со списком уведомлений
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

// ToDomainMessage конвертирует запрос в domain модель с валидацией
func (r *SendMessageRequest) ToDomainMessage(authorID int64) (*domain.ChatMessage, error) {
	entityType := domain.EntityType(r.EntityType)
	if !domain.IsValidEntityType(entityType) {
		return nil, ErrInvalidEntityType
	}

	body := strings.TrimSpace(r.Body)
	if body == "" {
		return nil, ErrEmptyBody
	}
	if len([]rune(body)) > domain.MaxChatMessageLength {
		return nil, ErrBodyTooLong
	}

	// Дубликаты в mentions схлопываются, автор себя не упоминает
	seen := make(map[int64]struct{}, len(r.Mentions))
	mentions := make([]int64, 0, len(r.Mentions))
	for _, userID := range r.Mentions {
		if userID == authorID {
			continue
		}
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}
		mentions = append(mentions, userID)
	}

	return &domain.ChatMessage{
		EntityType: entityType,
		EntityID:   r.EntityID,
		AuthorID:   authorID,
		Body:       body,
		Mentions:   mentions,
	}, nil
}

// FromDomainMessage конвертирует domain модель в DTO
func FromDomainMessage(m *domain.ChatMessage) *MessageResponse {
	if m == nil {
		return nil
	}

	return &MessageResponse{
		ID:         m.ID,
		EntityType: string(m.EntityType),
		EntityID:   m.EntityID,
		AuthorID:   m.AuthorID,
		Body:       m.Body,
		Mentions:   m.Mentions,
		CreatedAt:  m.CreatedAt,
	}
}

// FromDomainMessageList конвертирует список domain моделей в DTO
func FromDomainMessageList(messages []*domain.ChatMessage) *MessageListResponse {
	resp := &MessageListResponse{
		Messages: make([]MessageResponse, 0, len(messages)),
	}

	for _, message := range messages {
		if messageResp := FromDomainMessage(message); messageResp != nil {
			resp.Messages = append(resp.Messages, *messageResp)
		}
	}

	return resp
}

// FromDomainNotification конвертирует domain модель в DTO
func FromDomainNotification(n *domain.Notification) *NotificationResponse {
	if n == nil {
		return nil
	}

	resp := &NotificationResponse{
		ID:         n.ID,
		Kind:       string(n.Kind),
		EntityType: string(n.EntityType),
		EntityID:   n.EntityID,
		MessageID:  n.MessageID,
		Body:       n.Body,
		CreatedAt:  n.CreatedAt,
	}

	if n.ReadAt != nil {
		formatted := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &formatted
	}

	return resp
}

// FromDomainNotificationList конвертирует список domain моделей в DTO
func FromDomainNotificationList(notifications []*domain.Notification) *NotificationListResponse {
	resp := &NotificationListResponse{
		Notifications: make([]NotificationResponse, 0, len(notifications)),
	}

	for _, notification := range notifications {
		if notificationResp := FromDomainNotification(notification); notificationResp != nil {
			resp.Notifications = append(resp.Notifications, *notificationResp)
		}
	}

	return resp
}
