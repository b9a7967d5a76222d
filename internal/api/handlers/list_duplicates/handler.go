package list_duplicates

import (
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
)

type Handler struct {
	useCase DetectDuplicatesUseCase
	logger  Logger
}

func NewHandler(useCase DetectDuplicatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/duplicates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Run(r.Context())
	if err != nil {
		h.logger.Error("GET /clients/duplicates - Failed to detect duplicates: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /clients/duplicates - Duplicates detected: groups=%d", len(result.Groups))
	handlers.RespondJSON(w, http.StatusOK, result)
}
