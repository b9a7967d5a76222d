package download_document

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/documents/models"
)

type DocumentService interface {
	DownloadURL(ctx context.Context, id int64) (*models.DownloadURLResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
