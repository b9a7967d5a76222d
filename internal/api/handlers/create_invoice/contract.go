package create_invoice

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/invoices/models"
)

type InvoiceService interface {
	Create(ctx context.Context, req *models.CreateInvoiceRequest) (*models.InvoiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
