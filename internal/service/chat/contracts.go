package chat

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// ChatRepository интерфейс репозитория чата и уведомлений
type ChatRepository interface {
	CreateMessage(ctx context.Context, message *domain.ChatMessage) (*domain.ChatMessage, error)
	ListMessages(ctx context.Context, entityType domain.EntityType, entityID int64) ([]*domain.ChatMessage, error)
	CreateNotification(ctx context.Context, notification *domain.Notification) (*domain.Notification, error)
	ListNotifications(ctx context.Context, userID int64, unreadOnly bool) ([]*domain.Notification, error)
	MarkNotificationRead(ctx context.Context, id int64, userID int64) error
}

// Broadcaster рассылает события новых сообщений и уведомлений подключённым клиентам
type Broadcaster interface {
	BroadcastMessage(message *domain.ChatMessage)
	NotifyUser(userID int64, notification *domain.Notification)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
