package list_documents

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/documents"
)

const (
	msgInvalidEntityID = "некорректный ID сущности"
	msgInvalidInput    = "некорректный тип сущности"
)

type Handler struct {
	service DocumentService
	logger  Logger
}

func NewHandler(service DocumentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/documents/{entityType}/{entityId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	entityID, err := strconv.ParseInt(vars["entityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /documents/{type}/{id} - Invalid entity ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntityID)
		return
	}

	result, err := h.service.List(r.Context(), vars["entityType"], entityID)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrInvalidInput):
			h.logger.Warn("GET /documents/{type}/{id} - Invalid entity type: %s", vars["entityType"])
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /documents/{type}/{id} - Failed to list documents: entity=%s/%d, error=%v",
				vars["entityType"], entityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
