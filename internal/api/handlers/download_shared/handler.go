package download_shared

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/documents"
)

const (
	msgNotFound = "ссылка не найдена"
	msgExpired  = "срок действия ссылки истёк"
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

// Handle GET /public/documents/{token}
// Публичный endpoint: аутентификация не требуется, доступ по токену
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	token := vars["token"]

	result, err := h.service.ResolveShareToken(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrTokenNotFound), errors.Is(err, documents.ErrDocumentNotFound):
			h.logger.Warn("GET /public/documents/{token} - Token not found")
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, documents.ErrTokenExpired):
			h.logger.Warn("GET /public/documents/{token} - Token expired")
			handlers.RespondError(w, http.StatusGone, msgExpired)

		default:
			h.logger.Error("GET /public/documents/{token} - Failed to resolve token: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Редиректим на подписанную ссылку бакета
	http.Redirect(w, r, result.DownloadURL, http.StatusFound)
}
