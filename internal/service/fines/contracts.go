package fines

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// FineRepository интерфейс репозитория штрафов
type FineRepository interface {
	Create(ctx context.Context, fine *domain.Fine) (*domain.Fine, error)
	GetByID(ctx context.Context, id int64) (*domain.Fine, error)
	List(ctx context.Context, filter domain.FinesFilter) ([]*domain.Fine, error)
	Update(ctx context.Context, fine *domain.Fine) error
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
