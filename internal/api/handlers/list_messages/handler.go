package list_messages

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/chat"
)

const (
	msgInvalidEntityID = "некорректный ID сущности"
	msgInvalidInput    = "некорректный тип сущности"
)

type Handler struct {
	service ChatService
	logger  Logger
}

func NewHandler(service ChatService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/chat/{entityType}/{entityId}/messages
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	entityID, err := strconv.ParseInt(vars["entityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /chat/{type}/{id}/messages - Invalid entity ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntityID)
		return
	}

	result, err := h.service.ListMessages(r.Context(), vars["entityType"], entityID)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrInvalidInput):
			h.logger.Warn("GET /chat/{type}/{id}/messages - Invalid entity type: %s", vars["entityType"])
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /chat/{type}/{id}/messages - Failed to list messages: entity=%s/%d, error=%v",
				vars["entityType"], entityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
