package list_messages

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/chat/models"
)

type ChatService interface {
	ListMessages(ctx context.Context, entityType string, entityID int64) (*models.MessageListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
