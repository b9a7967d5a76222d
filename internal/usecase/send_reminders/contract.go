package send_reminders

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/integrations/mailer"
)

// BookingRepository интерфейс репозитория бронирований для напоминаний
type BookingRepository interface {
	ListReminderCandidates(ctx context.Context, now time.Time) ([]*domain.Booking, error)
	MarkReminderSent(ctx context.Context, id int64, reminderType domain.ReminderType, sentAt time.Time) error
}

// Mailer интерфейс почтовой автоматизации
type Mailer interface {
	SendReminder(ctx context.Context, email *mailer.ReminderEmail) error
}

// Notifier создаёт уведомления бэк-офиса о сбоях отправки
type Notifier interface {
	CreateNotification(ctx context.Context, notification *domain.Notification) error
}

// TimeProvider интерфейс для получения текущего времени (подменяется в тестах)
type TimeProvider interface {
	Now() time.Time
}

// MetricsCollector интерфейс метрик пакетных прогонов
type MetricsCollector interface {
	ObserveReminderBatch(status string)
	ObserveReminderSent(reminderType, status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
