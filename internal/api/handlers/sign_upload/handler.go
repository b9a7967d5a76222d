package sign_upload

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/documents"
	"github.com/m04kA/SMC-RentalService/internal/service/documents/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные файла"
	msgFileTooLarge       = "файл слишком большой"
	msgUnsupportedMime    = "неподдерживаемый тип файла"
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

// Handle POST /api/v1/documents/sign-upload
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SignUploadRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /documents/sign-upload - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SignUpload(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrFileTooLarge):
			h.logger.Warn("POST /documents/sign-upload - File too large: %d bytes", req.SizeBytes)
			handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgFileTooLarge)

		case errors.Is(err, documents.ErrUnsupportedMimeType):
			h.logger.Warn("POST /documents/sign-upload - Unsupported mime type: %s", req.MimeType)
			handlers.RespondError(w, http.StatusUnsupportedMediaType, msgUnsupportedMime)

		case errors.Is(err, documents.ErrInvalidInput):
			h.logger.Warn("POST /documents/sign-upload - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /documents/sign-upload - Failed to sign upload: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /documents/sign-upload - Upload URL signed: entity=%s/%d, key=%s",
		req.EntityType, req.EntityID, result.ObjectKey)
	handlers.RespondJSON(w, http.StatusOK, result)
}
