package run_reminders

import (
	"context"

	sendReminders "github.com/m04kA/SMC-RentalService/internal/usecase/send_reminders"
)

type SendRemindersUseCase interface {
	Run(ctx context.Context) (*sendReminders.Report, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
