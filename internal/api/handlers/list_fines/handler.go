package list_fines

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/fines"
	"github.com/m04kA/SMC-RentalService/internal/service/fines/models"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgInvalidFilter    = "некорректные параметры фильтра"
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

// Handle GET /api/v1/fines
// Параметры: booking_id, status, plate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListFinesRequest{}

	if raw := query.Get("booking_id"); raw != "" {
		bookingID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /fines - Invalid booking_id: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)
			return
		}
		req.BookingID = &bookingID
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := query.Get("plate"); raw != "" {
		req.Plate = &raw
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, fines.ErrInvalidInput):
			h.logger.Warn("GET /fines - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /fines - Failed to list fines: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
