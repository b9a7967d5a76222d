package payments

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	bookingstore "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	storage "github.com/m04kA/SMC-RentalService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-RentalService/internal/service/payments/models"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubPaymentRepo struct {
	payment   *domain.Payment
	getErr    error
	createErr error
	deleteErr error
	deleted   []int64
}

func (s *stubPaymentRepo) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	created := *payment
	created.ID = 10
	created.CreatedAt = time.Now()
	return &created, nil
}

func (s *stubPaymentRepo) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	return s.payment, s.getErr
}

func (s *stubPaymentRepo) List(ctx context.Context, filter domain.PaymentsFilter) ([]*domain.Payment, error) {
	return nil, nil
}

func (s *stubPaymentRepo) Delete(ctx context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return s.deleteErr
}

type stubBalanceRepo struct {
	deltas map[int64]decimal.Decimal
	err    error
}

func newStubBalanceRepo() *stubBalanceRepo {
	return &stubBalanceRepo{deltas: make(map[int64]decimal.Decimal)}
}

func (s *stubBalanceRepo) ApplyPaymentDelta(ctx context.Context, id int64, delta decimal.Decimal) error {
	if s.err != nil {
		return s.err
	}
	s.deltas[id] = s.deltas[id].Add(delta)
	return nil
}

func TestCreate_IncomingBookingPayment_AppliesDelta(t *testing.T) {
	repo := &stubPaymentRepo{}
	balances := newStubBalanceRepo()

	svc := NewService(repo, balances, fakeTxManager{}, nopLogger{})

	resp, err := svc.Create(context.Background(), &models.CreatePaymentRequest{
		BookingID: ptr.Ptr(int64(7)),
		Direction: "in",
		Method:    "card",
		Amount:    "350.50",
		PaidAt:    "2025-06-01T10:00:00Z",
	})

	require.NoError(t, err)
	assert.Equal(t, "350.50", resp.Amount)
	assert.True(t, balances.deltas[7].Equal(decimal.RequireFromString("350.50")))
}

func TestCreate_OutgoingPayment_DoesNotTouchBalance(t *testing.T) {
	repo := &stubPaymentRepo{}
	balances := newStubBalanceRepo()

	svc := NewService(repo, balances, fakeTxManager{}, nopLogger{})

	_, err := svc.Create(context.Background(), &models.CreatePaymentRequest{
		BookingID: ptr.Ptr(int64(7)),
		Direction: "out",
		Method:    "transfer",
		Amount:    "100.00",
		PaidAt:    "2025-06-01T10:00:00Z",
	})

	require.NoError(t, err)
	assert.Empty(t, balances.deltas)
}

func TestCreate_UnlinkedPayment_DoesNotTouchBalance(t *testing.T) {
	repo := &stubPaymentRepo{}
	balances := newStubBalanceRepo()

	svc := NewService(repo, balances, fakeTxManager{}, nopLogger{})

	_, err := svc.Create(context.Background(), &models.CreatePaymentRequest{
		Direction: "in",
		Method:    "cash",
		Amount:    "100.00",
		PaidAt:    "2025-06-01T10:00:00Z",
	})

	require.NoError(t, err)
	assert.Empty(t, balances.deltas)
}

func TestCreate_NonPositiveAmount(t *testing.T) {
	svc := NewService(&stubPaymentRepo{}, newStubBalanceRepo(), fakeTxManager{}, nopLogger{})

	_, err := svc.Create(context.Background(), &models.CreatePaymentRequest{
		Direction: "in",
		Method:    "card",
		Amount:    "-5",
		PaidAt:    "2025-06-01T10:00:00Z",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_LinkedBookingNotFound(t *testing.T) {
	repo := &stubPaymentRepo{}
	balances := newStubBalanceRepo()
	balances.err = bookingstore.ErrBookingNotFound

	svc := NewService(repo, balances, fakeTxManager{}, nopLogger{})

	_, err := svc.Create(context.Background(), &models.CreatePaymentRequest{
		BookingID: ptr.Ptr(int64(404)),
		Direction: "in",
		Method:    "card",
		Amount:    "100.00",
		PaidAt:    "2025-06-01T10:00:00Z",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestDelete_RevertsBookingDelta(t *testing.T) {
	payment := &domain.Payment{
		ID:        10,
		BookingID: ptr.Ptr(int64(7)),
		Direction: domain.PaymentIn,
		Amount:    decimal.NewFromInt(200),
	}
	repo := &stubPaymentRepo{payment: payment}
	balances := newStubBalanceRepo()

	svc := NewService(repo, balances, fakeTxManager{}, nopLogger{})

	err := svc.Delete(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, []int64{10}, repo.deleted)
	assert.True(t, balances.deltas[7].Equal(decimal.NewFromInt(-200)))
}

func TestDelete_PaymentNotFound(t *testing.T) {
	repo := &stubPaymentRepo{getErr: storage.ErrPaymentNotFound}

	svc := NewService(repo, newStubBalanceRepo(), fakeTxManager{}, nopLogger{})

	err := svc.Delete(context.Background(), 404)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}
