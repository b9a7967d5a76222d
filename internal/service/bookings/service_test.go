package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	storage "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{}

func (fixedTime) Now() time.Time {
	return testNow
}

type stubBookingRepo struct {
	booking   *domain.Booking
	created   *domain.Booking
	updated   *domain.Booking
	cancelled []int64
}

func (s *stubBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	created := *booking
	created.ID = 1
	created.CreatedAt = testNow
	created.UpdatedAt = testNow
	s.created = &created
	return &created, nil
}

func (s *stubBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if s.booking == nil {
		return nil, storage.ErrBookingNotFound
	}
	copied := *s.booking
	return &copied, nil
}

func (s *stubBookingRepo) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	return nil, nil
}

func (s *stubBookingRepo) Update(ctx context.Context, booking *domain.Booking) error {
	s.updated = booking
	s.booking = booking
	return nil
}

func (s *stubBookingRepo) Cancel(ctx context.Context, id int64, reason string) error {
	s.cancelled = append(s.cancelled, id)
	return nil
}

func newService(repo *stubBookingRepo) *Service {
	return NewService(repo, fixedTime{}, nopLogger{})
}

func createRequest(deliveryIn time.Duration) *models.CreateBookingRequest {
	return &models.CreateBookingRequest{
		ClientName:            "Иван Иванов",
		ClientEmail:           "ivan@example.com",
		VehiclePlate:          "А123ВС77",
		VehicleModel:          "Mercedes G63",
		DeliveryDatetime:      testNow.Add(deliveryIn).Format(time.RFC3339),
		ReturnDatetime:        testNow.Add(deliveryIn + 72*time.Hour).Format(time.RFC3339),
		AmountTotal:           "1500.00",
		SecurityDepositAmount: "500.00",
	}
}

func TestCreate_ShortNotice_SetsImmediateReminder(t *testing.T) {
	repo := &stubBookingRepo{}
	svc := newService(repo)

	resp, err := svc.Create(context.Background(), createRequest(24*time.Hour))

	require.NoError(t, err)
	assert.True(t, repo.created.ImmediateReminder)
	assert.Equal(t, "1500.00", resp.AmountTotal)
	assert.Equal(t, "1500.00", resp.BalanceDue)
}

func TestCreate_RegularNotice_NoImmediateReminder(t *testing.T) {
	repo := &stubBookingRepo{}
	svc := newService(repo)

	_, err := svc.Create(context.Background(), createRequest(96*time.Hour))

	require.NoError(t, err)
	assert.False(t, repo.created.ImmediateReminder)
}

func TestCreate_InvalidAmount(t *testing.T) {
	svc := newService(&stubBookingRepo{})

	req := createRequest(96 * time.Hour)
	req.AmountTotal = "not-a-number"

	_, err := svc.Create(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newService(&stubBookingRepo{})

	_, err := svc.GetByID(context.Background(), 404)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdate_CompletedBooking_Rejected(t *testing.T) {
	repo := &stubBookingRepo{
		booking: &domain.Booking{
			ID:          1,
			Status:      domain.StatusCompleted,
			AmountTotal: decimal.NewFromInt(1000),
		},
	}
	svc := newService(repo)

	_, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCannotUpdate)
}

func TestUpdate_RescheduleToShortNotice_RecomputesImmediateFlag(t *testing.T) {
	repo := &stubBookingRepo{
		booking: &domain.Booking{
			ID:                    1,
			Status:                domain.StatusConfirmed,
			DeliveryDatetime:      testNow.Add(96 * time.Hour),
			ReturnDatetime:        testNow.Add(120 * time.Hour),
			AmountTotal:           decimal.NewFromInt(1000),
			SecurityDepositAmount: decimal.NewFromInt(300),
		},
	}
	svc := newService(repo)

	req := &models.UpdateBookingRequest{
		ClientName:            "Иван Иванов",
		ClientEmail:           "ivan@example.com",
		VehiclePlate:          "А123ВС77",
		VehicleModel:          "Mercedes G63",
		DeliveryDatetime:      testNow.Add(12 * time.Hour).Format(time.RFC3339),
		ReturnDatetime:        testNow.Add(84 * time.Hour).Format(time.RFC3339),
		AmountTotal:           "1000.00",
		SecurityDepositAmount: "300.00",
		Status:                "confirmed",
	}

	_, err := svc.Update(context.Background(), 1, req)

	require.NoError(t, err)
	require.NotNil(t, repo.updated)
	assert.True(t, repo.updated.ImmediateReminder)
}

func TestCancel_PendingBooking(t *testing.T) {
	repo := &stubBookingRepo{
		booking: &domain.Booking{ID: 1, Status: domain.StatusPending},
	}
	svc := newService(repo)

	err := svc.Cancel(context.Background(), 1, "клиент отказался")

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.cancelled)
}

func TestCancel_ActiveBooking_Rejected(t *testing.T) {
	repo := &stubBookingRepo{
		booking: &domain.Booking{ID: 1, Status: domain.StatusActive},
	}
	svc := newService(repo)

	err := svc.Cancel(context.Background(), 1, "поздно")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Empty(t, repo.cancelled)
}

func TestCancel_NotFound(t *testing.T) {
	svc := newService(&stubBookingRepo{})

	err := svc.Cancel(context.Background(), 404, "причина")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
