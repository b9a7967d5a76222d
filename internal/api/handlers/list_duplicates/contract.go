package list_duplicates

import (
	"context"

	detectDuplicates "github.com/m04kA/SMC-RentalService/internal/usecase/detect_duplicates"
)

type DetectDuplicatesUseCase interface {
	Run(ctx context.Context) (*detectDuplicates.DuplicatesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
