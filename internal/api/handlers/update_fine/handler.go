package update_fine

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/fines"
	"github.com/m04kA/SMC-RentalService/internal/service/fines/models"
)

const (
	msgInvalidFineID      = "некорректный ID штрафа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные штрафа"
	msgNotFound           = "штраф не найден"
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

// Handle PUT /api/v1/fines/{fineId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	fineID, err := strconv.ParseInt(vars["fineId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /fines/{id} - Invalid fine ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFineID)
		return
	}

	var req models.UpdateFineRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /fines/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	fine, err := h.service.Update(r.Context(), fineID, &req)
	if err != nil {
		switch {
		case errors.Is(err, fines.ErrFineNotFound):
			h.logger.Warn("PUT /fines/{id} - Fine not found: fine_id=%d", fineID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, fines.ErrInvalidInput):
			h.logger.Warn("PUT /fines/{id} - Invalid input: fine_id=%d, error=%v", fineID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /fines/{id} - Failed to update fine: fine_id=%d, error=%v", fineID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /fines/{id} - Fine updated successfully: fine_id=%d", fineID)
	handlers.RespondJSON(w, http.StatusOK, fine)
}
