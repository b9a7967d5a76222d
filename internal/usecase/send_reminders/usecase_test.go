package send_reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/integrations/mailer"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type stubBookingRepo struct {
	candidates []*domain.Booking
	listErr    error

	marked  []domain.ReminderType
	markErr error
}

func (s *stubBookingRepo) ListReminderCandidates(ctx context.Context, now time.Time) ([]*domain.Booking, error) {
	return s.candidates, s.listErr
}

func (s *stubBookingRepo) MarkReminderSent(ctx context.Context, id int64, reminderType domain.ReminderType, sentAt time.Time) error {
	s.marked = append(s.marked, reminderType)
	return s.markErr
}

type stubMailer struct {
	sent    []*mailer.ReminderEmail
	sendErr error
}

func (s *stubMailer) SendReminder(ctx context.Context, email *mailer.ReminderEmail) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, email)
	return nil
}

type stubNotifier struct {
	notifications []*domain.Notification
}

func (s *stubNotifier) CreateNotification(ctx context.Context, notification *domain.Notification) error {
	s.notifications = append(s.notifications, notification)
	return nil
}

type stubMetrics struct {
	batches []string
	sends   []string
}

func (s *stubMetrics) ObserveReminderBatch(status string) {
	s.batches = append(s.batches, status)
}

func (s *stubMetrics) ObserveReminderSent(reminderType, status string) {
	s.sends = append(s.sends, reminderType+":"+status)
}

func newUsecase(repo *stubBookingRepo, mail *stubMailer, notif *stubNotifier, m *stubMetrics, now time.Time) *Usecase {
	return New(repo, mail, notif, fixedTime{now: now}, m, []int64{42}, nopLogger{})
}

func TestRun_SendsDueReminders(t *testing.T) {
	booking := bookingDueInDays(7)
	repo := &stubBookingRepo{candidates: []*domain.Booking{booking}}
	mail := &stubMailer{}
	notif := &stubNotifier{}
	m := &stubMetrics{}

	uc := newUsecase(repo, mail, notif, m, testNow)

	report, err := uc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 0, report.Failed)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "balance", mail.sent[0].ReminderType)
	assert.Equal(t, "600.00", mail.sent[0].BalanceDue)
	assert.Equal(t, booking.ClientEmail, mail.sent[0].ClientEmail)

	assert.Equal(t, []domain.ReminderType{domain.ReminderBalance}, repo.marked)
	assert.Equal(t, []string{"success"}, m.batches)
	assert.Equal(t, []string{"balance:success"}, m.sends)
}

func TestRun_SkipsBookingsOutsideSchedule(t *testing.T) {
	repo := &stubBookingRepo{candidates: []*domain.Booking{bookingDueInDays(20)}}
	mail := &stubMailer{}

	uc := newUsecase(repo, mail, &stubNotifier{}, &stubMetrics{}, testNow)

	report, err := uc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, mail.sent)
	assert.Empty(t, repo.marked)
}

func TestRun_MailerFailure_NotifiesOps(t *testing.T) {
	booking := bookingDueInDays(5)
	repo := &stubBookingRepo{candidates: []*domain.Booking{booking}}
	mail := &stubMailer{sendErr: errors.New("webhook timeout")}
	notif := &stubNotifier{}
	m := &stubMetrics{}

	uc := newUsecase(repo, mail, notif, m, testNow)

	report, err := uc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 0, report.Sent)

	// Отметка не ставится, письмо уйдёт при следующем прогоне
	assert.Empty(t, repo.marked)

	require.Len(t, notif.notifications, 1)
	assert.Equal(t, int64(42), notif.notifications[0].UserID)
	assert.Equal(t, domain.NotificationReminderFailed, notif.notifications[0].Kind)
	assert.Equal(t, booking.ID, notif.notifications[0].EntityID)

	assert.Equal(t, []string{"balance:error"}, m.sends)
}

func TestRun_ListCandidatesError(t *testing.T) {
	repo := &stubBookingRepo{listErr: errors.New("db down")}
	m := &stubMetrics{}

	uc := newUsecase(repo, &stubMailer{}, &stubNotifier{}, m, testNow)

	_, err := uc.Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrListCandidates)
	assert.Equal(t, []string{"error"}, m.batches)
}

func TestRun_DepositReminderPayload(t *testing.T) {
	booking := bookingDueInDays(2)
	booking.AmountPaid = booking.AmountTotal
	booking.SecurityDepositAmount = decimal.NewFromInt(500)

	repo := &stubBookingRepo{candidates: []*domain.Booking{booking}}
	mail := &stubMailer{}

	uc := newUsecase(repo, mail, &stubNotifier{}, &stubMetrics{}, testNow)

	report, err := uc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Sent)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "deposit", mail.sent[0].ReminderType)
	assert.Equal(t, "500.00", mail.sent[0].DepositAmount)
	assert.Empty(t, mail.sent[0].BalanceDue)
}
