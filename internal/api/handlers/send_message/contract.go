package send_message

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/chat/models"
)

type ChatService interface {
	SendMessage(ctx context.Context, authorID int64, req *models.SendMessageRequest) (*models.MessageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
