package share_document

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/documents/models"
)

type DocumentService interface {
	CreateShareLink(ctx context.Context, documentID int64, userID int64) (*models.ShareLinkResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
