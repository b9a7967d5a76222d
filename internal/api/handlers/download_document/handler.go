package download_document

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/documents"
)

const (
	msgInvalidDocumentID = "некорректный ID документа"
	msgNotFound          = "документ не найден"
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

// Handle GET /api/v1/documents/{documentId}/download-url
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	documentID, err := strconv.ParseInt(vars["documentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /documents/{id}/download-url - Invalid document ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDocumentID)
		return
	}

	result, err := h.service.DownloadURL(r.Context(), documentID)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrDocumentNotFound):
			h.logger.Warn("GET /documents/{id}/download-url - Document not found: document_id=%d", documentID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /documents/{id}/download-url - Failed to sign download: document_id=%d, error=%v",
				documentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
