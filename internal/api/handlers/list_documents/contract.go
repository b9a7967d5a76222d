package list_documents

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/documents/models"
)

type DocumentService interface {
	List(ctx context.Context, entityType string, entityID int64) (*models.DocumentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
