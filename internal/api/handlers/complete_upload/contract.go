package complete_upload

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/documents/models"
)

type DocumentService interface {
	CompleteUpload(ctx context.Context, userID int64, req *models.CompleteUploadRequest) (*models.DocumentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
