package send_reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/integrations/mailer"
)

// Usecase пакетная отправка напоминаний об оплате и депозите
// Сбой по одному бронированию не прерывает прогон: письмо логируется
// как пропущенное, операторы получают уведомление reminder_failed
type Usecase struct {
	repo       BookingRepository
	mailer     Mailer
	notifier   Notifier
	time       TimeProvider
	metrics    MetricsCollector
	opsUserIDs []int64
	log        Logger
}

// New создает новый экземпляр usecase напоминаний
func New(repo BookingRepository, mailerClient Mailer, notifier Notifier, timeProvider TimeProvider, metrics MetricsCollector, opsUserIDs []int64, logger Logger) *Usecase {
	return &Usecase{
		repo:       repo,
		mailer:     mailerClient,
		notifier:   notifier,
		time:       timeProvider,
		metrics:    metrics,
		opsUserIDs: opsUserIDs,
		log:        logger,
	}
}

// Run выполняет один прогон: отбирает кандидатов, решает по расписанию
// и отправляет письма. Отметка об отправке ставится только после успеха
func (u *Usecase) Run(ctx context.Context) (*Report, error) {
	now := u.time.Now()

	candidates, err := u.repo.ListReminderCandidates(ctx, now)
	if err != nil {
		u.log.Error("[SendReminders] Run - failed to list candidates: %v", err)
		u.metrics.ObserveReminderBatch("error")
		return nil, fmt.Errorf("%w: %v", ErrListCandidates, err)
	}

	report := &Report{Processed: len(candidates)}

	for _, booking := range candidates {
		due := Decide(booking, now)
		if len(due) == 0 {
			report.Skipped++
			continue
		}

		for _, reminderType := range due {
			if err := u.sendOne(ctx, booking, reminderType); err != nil {
				report.Failed++
				u.metrics.ObserveReminderSent(string(reminderType), "error")
				u.notifyFailure(ctx, booking, reminderType, err)
				continue
			}

			if err := u.repo.MarkReminderSent(ctx, booking.ID, reminderType, now); err != nil {
				// Письмо ушло, но отметка не сохранилась: следующий прогон может
				// отправить повторно. Это осознанный выбор в пользу лишнего письма
				u.log.Error("[SendReminders] Run - failed to mark %s reminder for booking %d: %v",
					reminderType, booking.ID, err)
			}

			report.Sent++
			u.metrics.ObserveReminderSent(string(reminderType), "success")
		}
	}

	u.metrics.ObserveReminderBatch("success")
	u.log.Info("[SendReminders] Run - batch done: processed=%d, sent=%d, skipped=%d, failed=%d",
		report.Processed, report.Sent, report.Skipped, report.Failed)

	return report, nil
}

func (u *Usecase) sendOne(ctx context.Context, booking *domain.Booking, reminderType domain.ReminderType) error {
	email := &mailer.ReminderEmail{
		BookingID:        booking.ID,
		ReminderType:     string(reminderType),
		ClientName:       booking.ClientName,
		ClientEmail:      booking.ClientEmail,
		VehicleModel:     booking.VehicleModel,
		VehiclePlate:     booking.VehiclePlate,
		DeliveryDatetime: booking.DeliveryDatetime.Format(time.RFC3339),
	}

	switch reminderType {
	case domain.ReminderBalance:
		email.BalanceDue = booking.BalanceDue().StringFixed(2)
	case domain.ReminderDeposit:
		email.DepositAmount = booking.SecurityDepositAmount.StringFixed(2)
	}

	if err := u.mailer.SendReminder(ctx, email); err != nil {
		u.log.Error("[SendReminders] sendOne - failed to send %s reminder for booking %d: %v",
			reminderType, booking.ID, err)
		return err
	}

	u.log.Info("[SendReminders] sendOne - %s reminder sent: booking=%d, client=%s",
		reminderType, booking.ID, booking.ClientEmail)

	return nil
}

// notifyFailure создаёт уведомление операторам о сбое отправки
func (u *Usecase) notifyFailure(ctx context.Context, booking *domain.Booking, reminderType domain.ReminderType, sendErr error) {
	body := fmt.Sprintf("Не удалось отправить напоминание (%s) по бронированию %d: %v",
		reminderType, booking.ID, sendErr)

	for _, userID := range u.opsUserIDs {
		notification := &domain.Notification{
			UserID:     userID,
			Kind:       domain.NotificationReminderFailed,
			EntityType: domain.EntityBooking,
			EntityID:   booking.ID,
			Body:       body,
		}

		if err := u.notifier.CreateNotification(ctx, notification); err != nil {
			u.log.Error("[SendReminders] notifyFailure - failed to notify user %d: %v", userID, err)
		}
	}
}
