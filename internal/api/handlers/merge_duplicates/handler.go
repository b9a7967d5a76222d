package merge_duplicates

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	mergeNames "github.com/m04kA/SMC-RentalService/internal/usecase/merge_names"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "укажите каноническое имя и хотя бы один вариант"
)

type Handler struct {
	useCase MergeNamesUseCase
	logger  Logger
}

func NewHandler(useCase MergeNamesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/clients/merge
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req mergeNames.MergeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /clients/merge - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Run(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, mergeNames.ErrInvalidInput):
			h.logger.Warn("POST /clients/merge - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /clients/merge - Failed to merge names: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /clients/merge - Names merged: canonical=%q, total_updated=%d",
		result.CanonicalName, result.TotalUpdated)
	handlers.RespondJSON(w, http.StatusOK, result)
}
