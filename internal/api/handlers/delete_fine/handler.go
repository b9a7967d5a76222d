package delete_fine

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/fines"
)

const (
	msgInvalidFineID = "некорректный ID штрафа"
	msgNotFound      = "штраф не найден"
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

// Handle DELETE /api/v1/fines/{fineId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	fineID, err := strconv.ParseInt(vars["fineId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /fines/{id} - Invalid fine ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFineID)
		return
	}

	if err := h.service.Delete(r.Context(), fineID); err != nil {
		switch {
		case errors.Is(err, fines.ErrFineNotFound):
			h.logger.Warn("DELETE /fines/{id} - Fine not found: fine_id=%d", fineID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /fines/{id} - Failed to delete fine: fine_id=%d, error=%v", fineID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /fines/{id} - Fine deleted successfully: fine_id=%d", fineID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
