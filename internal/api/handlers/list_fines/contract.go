package list_fines

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/fines/models"
)

type FineService interface {
	List(ctx context.Context, req *models.ListFinesRequest) (*models.FineListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
