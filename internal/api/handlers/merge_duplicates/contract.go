package merge_duplicates

import (
	"context"

	mergeNames "github.com/m04kA/SMC-RentalService/internal/usecase/merge_names"
)

type MergeNamesUseCase interface {
	Run(ctx context.Context, req *mergeNames.MergeRequest) (*mergeNames.MergeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
