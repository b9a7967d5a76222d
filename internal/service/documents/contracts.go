package documents

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/filestore"
)

// DocumentRepository интерфейс репозитория документов
type DocumentRepository interface {
	Create(ctx context.Context, document *domain.Document) (*domain.Document, error)
	GetByID(ctx context.Context, id int64) (*domain.Document, error)
	List(ctx context.Context, entityType domain.EntityType, entityID int64) ([]*domain.Document, error)
	Delete(ctx context.Context, id int64) error
	CreateAccessToken(ctx context.Context, token *domain.AccessToken) (*domain.AccessToken, error)
	GetAccessToken(ctx context.Context, tokenValue string) (*domain.AccessToken, error)
}

// FileStore интерфейс файлового хранилища
type FileStore interface {
	SignUpload(objectKey, contentType string) (*filestore.SignedUpload, error)
	SignDownload(objectKey string) (string, time.Time, error)
	Delete(ctx context.Context, objectKey string) error
}

// TimeProvider интерфейс для получения текущего времени (подменяется в тестах)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
