package update_invoice

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/invoices/models"
)

type InvoiceService interface {
	Update(ctx context.Context, id int64, req *models.UpdateInvoiceRequest) (*models.InvoiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
