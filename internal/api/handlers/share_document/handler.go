package share_document

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/documents"
)

const (
	msgInvalidDocumentID = "некорректный ID документа"
	msgMissingUserID     = "отсутствует ID пользователя"
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

// Handle POST /api/v1/documents/{documentId}/share
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /documents/{id}/share - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	vars := mux.Vars(r)

	documentID, err := strconv.ParseInt(vars["documentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /documents/{id}/share - Invalid document ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDocumentID)
		return
	}

	result, err := h.service.CreateShareLink(r.Context(), documentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrDocumentNotFound):
			h.logger.Warn("POST /documents/{id}/share - Document not found: document_id=%d", documentID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("POST /documents/{id}/share - Failed to create share link: document_id=%d, error=%v",
				documentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /documents/{id}/share - Share link created: document_id=%d, user_id=%d", documentID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
