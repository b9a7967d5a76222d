package complete_upload

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/documents"
	"github.com/m04kA/SMC-RentalService/internal/service/documents/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные файла"
	msgMissingUserID      = "отсутствует ID пользователя"
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

// Handle POST /api/v1/documents
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /documents - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CompleteUploadRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /documents - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	document, err := h.service.CompleteUpload(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrInvalidInput),
			errors.Is(err, documents.ErrFileTooLarge),
			errors.Is(err, documents.ErrUnsupportedMimeType):
			h.logger.Warn("POST /documents - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /documents - Failed to complete upload: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /documents - Document registered: document_id=%d, user_id=%d", document.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, document)
}
