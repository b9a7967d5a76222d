package scheduler

import (
	"context"
	"time"

	sendReminders "github.com/m04kA/SMC-RentalService/internal/usecase/send_reminders"
)

// ReminderRunner интерфейс пакетного прогона напоминаний
type ReminderRunner interface {
	Run(ctx context.Context) (*sendReminders.Report, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler периодически запускает прогон напоминаний
type Scheduler struct {
	runner   ReminderRunner
	interval time.Duration
	log      Logger

	stopCh chan struct{}
	doneCh chan struct{}
}

// New создает новый планировщик напоминаний
func New(runner ReminderRunner, interval time.Duration, logger Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		log:      logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start запускает цикл планировщика в отдельной горутине
// Первый прогон выполняется сразу, далее по интервалу
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		defer close(s.doneCh)

		s.log.Info("[Scheduler] started, interval=%s", s.interval)

		s.runOnce(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runOnce(ctx)
			case <-s.stopCh:
				s.log.Info("[Scheduler] stopped")
				return
			case <-ctx.Done():
				s.log.Info("[Scheduler] context cancelled")
				return
			}
		}
	}()
}

// Stop останавливает планировщик и дожидается завершения цикла
func (s *Scheduler) Stop() {
	close(s.stopCh)
	<-s.doneCh
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if _, err := s.runner.Run(ctx); err != nil {
		s.log.Error("[Scheduler] reminder batch failed: %v", err)
	}
}
