package create_fine

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/fines"
	"github.com/m04kA/SMC-RentalService/internal/service/fines/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные штрафа"
)

type Handler struct {
	service FineService
	logger  Logger
}

func NewHandler(service FineService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/fines
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFineRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /fines - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	fine, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, fines.ErrInvalidInput):
			h.logger.Warn("POST /fines - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /fines - Failed to create fine: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /fines - Fine created successfully: fine_id=%d", fine.ID)
	handlers.RespondJSON(w, http.StatusCreated, fine)
}
