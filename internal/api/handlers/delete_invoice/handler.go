package delete_invoice

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/invoices"
)

const (
	msgInvalidInvoiceID = "некорректный ID счёта"
	msgNotFound         = "счёт не найден"
	msgCannotDelete     = "счёт нельзя удалить в текущем статусе"
)

type Handler struct {
	service InvoiceService
	logger  Logger
}

func NewHandler(service InvoiceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/invoices/{invoiceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	invoiceID, err := strconv.ParseInt(vars["invoiceId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /invoices/{id} - Invalid invoice ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInvoiceID)
		return
	}

	if err := h.service.Delete(r.Context(), invoiceID); err != nil {
		switch {
		case errors.Is(err, invoices.ErrInvoiceNotFound):
			h.logger.Warn("DELETE /invoices/{id} - Invoice not found: invoice_id=%d", invoiceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, invoices.ErrCannotDelete):
			h.logger.Warn("DELETE /invoices/{id} - Cannot delete: invoice_id=%d", invoiceID)
			handlers.RespondError(w, http.StatusConflict, msgCannotDelete)

		default:
			h.logger.Error("DELETE /invoices/{id} - Failed to delete invoice: invoice_id=%d, error=%v", invoiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /invoices/{id} - Invoice deleted successfully: invoice_id=%d", invoiceID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
