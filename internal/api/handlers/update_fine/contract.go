package update_fine

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/fines/models"
)

type FineService interface {
	Update(ctx context.Context, id int64, req *models.UpdateFineRequest) (*models.FineResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
