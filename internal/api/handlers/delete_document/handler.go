package delete_document

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

// Handle DELETE /api/v1/documents/{documentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	documentID, err := strconv.ParseInt(vars["documentId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /documents/{id} - Invalid document ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDocumentID)
		return
	}

	if err := h.service.Delete(r.Context(), documentID); err != nil {
		switch {
		case errors.Is(err, documents.ErrDocumentNotFound):
			h.logger.Warn("DELETE /documents/{id} - Document not found: document_id=%d", documentID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /documents/{id} - Failed to delete document: document_id=%d, error=%v",
				documentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /documents/{id} - Document deleted successfully: document_id=%d", documentID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
