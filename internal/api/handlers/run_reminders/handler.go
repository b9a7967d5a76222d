package run_reminders

import (
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
)

type Handler struct {
	useCase SendRemindersUseCase
	logger  Logger
}

func NewHandler(useCase SendRemindersUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/internal/reminders/run
// Ручной запуск прогона напоминаний вне расписания
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	report, err := h.useCase.Run(r.Context())
	if err != nil {
		h.logger.Error("POST /internal/reminders/run - Batch failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /internal/reminders/run - Batch finished: processed=%d, sent=%d, skipped=%d, failed=%d",
		report.Processed, report.Sent, report.Skipped, report.Failed)
	handlers.RespondJSON(w, http.StatusOK, report)
}
