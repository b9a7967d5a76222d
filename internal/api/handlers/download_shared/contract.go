package download_shared

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/documents/models"
)

type DocumentService interface {
	ResolveShareToken(ctx context.Context, tokenValue string) (*models.DownloadURLResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
