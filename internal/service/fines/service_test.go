package fines

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	storage "github.com/m04kA/SMC-RentalService/internal/infra/storage/fine"
	"github.com/m04kA/SMC-RentalService/internal/service/fines/models"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type stubFineRepo struct {
	fine      *domain.Fine
	getErr    error
	listErr   error
	updateErr error
	deleteErr error
	updated   []*domain.Fine
	deleted   []int64
}

func (s *stubFineRepo) Create(ctx context.Context, fine *domain.Fine) (*domain.Fine, error) {
	created := *fine
	created.ID = 20
	return &created, nil
}

func (s *stubFineRepo) GetByID(ctx context.Context, id int64) (*domain.Fine, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.fine, nil
}

func (s *stubFineRepo) List(ctx context.Context, filter domain.FinesFilter) ([]*domain.Fine, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return nil, nil
}

func (s *stubFineRepo) Update(ctx context.Context, fine *domain.Fine) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	copied := *fine
	s.updated = append(s.updated, &copied)
	s.fine = &copied
	return nil
}

func (s *stubFineRepo) Delete(ctx context.Context, id int64) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func createRequest() *models.CreateFineRequest {
	return &models.CreateFineRequest{
		BookingID:  ptr.Ptr(int64(7)),
		DriverName: "Иван Иванов",
		Plate:      "А123ВС77",
		IssuedAt:   "2025-06-01T10:00:00Z",
		Amount:     "5000.00",
		Authority:  "ГИБДД",
	}
}

func registeredFine() *domain.Fine {
	fine, err := createRequest().ToDomainFine()
	if err != nil {
		panic(err)
	}
	fine.ID = 20
	return fine
}

func TestCreate_StartsAsReceived(t *testing.T) {
	repo := &stubFineRepo{}
	service := NewService(repo, nopLogger{})

	resp, err := service.Create(context.Background(), createRequest())

	require.NoError(t, err)
	assert.Equal(t, "received", resp.Status)
	assert.Equal(t, "5000.00", resp.Amount)
	assert.Equal(t, "А123ВС77", resp.Plate)
}

func TestCreate_InvalidDatetime(t *testing.T) {
	service := NewService(&stubFineRepo{}, nopLogger{})

	req := createRequest()
	req.IssuedAt = "01.06.2025"

	_, err := service.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_InvalidAmount(t *testing.T) {
	service := NewService(&stubFineRepo{}, nopLogger{})

	req := createRequest()
	req.Amount = "много"

	_, err := service.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_InvalidStatusFilter(t *testing.T) {
	service := NewService(&stubFineRepo{}, nopLogger{})

	_, err := service.List(context.Background(), &models.ListFinesRequest{
		Status: ptr.Ptr("annulled"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_StatusTransition(t *testing.T) {
	repo := &stubFineRepo{fine: registeredFine()}
	service := NewService(repo, nopLogger{})

	resp, err := service.Update(context.Background(), 20, &models.UpdateFineRequest{
		BookingID:  ptr.Ptr(int64(7)),
		DriverName: "Иван Иванов",
		Plate:      "А123ВС77",
		IssuedAt:   "2025-06-01T10:00:00Z",
		Amount:     "5000.00",
		Authority:  "ГИБДД",
		Status:     "recharged",
	})

	require.NoError(t, err)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, "recharged", resp.Status)
}

func TestUpdate_InvalidStatus(t *testing.T) {
	repo := &stubFineRepo{fine: registeredFine()}
	service := NewService(repo, nopLogger{})

	_, err := service.Update(context.Background(), 20, &models.UpdateFineRequest{
		DriverName: "Иван Иванов",
		Plate:      "А123ВС77",
		IssuedAt:   "2025-06-01T10:00:00Z",
		Amount:     "5000.00",
		Status:     "annulled",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.updated)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := &stubFineRepo{getErr: storage.ErrFineNotFound}
	service := NewService(repo, nopLogger{})

	_, err := service.Update(context.Background(), 404, &models.UpdateFineRequest{})

	assert.ErrorIs(t, err, ErrFineNotFound)
}

func TestDelete_Ok(t *testing.T) {
	repo := &stubFineRepo{}
	service := NewService(repo, nopLogger{})

	err := service.Delete(context.Background(), 20)

	require.NoError(t, err)
	assert.Equal(t, []int64{20}, repo.deleted)
}

func TestDelete_NotFound(t *testing.T) {
	repo := &stubFineRepo{deleteErr: storage.ErrFineNotFound}
	service := NewService(repo, nopLogger{})

	err := service.Delete(context.Background(), 404)

	assert.ErrorIs(t, err, ErrFineNotFound)
}

func TestDelete_InternalError(t *testing.T) {
	repo := &stubFineRepo{deleteErr: errors.New("db down")}
	service := NewService(repo, nopLogger{})

	err := service.Delete(context.Background(), 20)

	assert.ErrorIs(t, err, ErrInternal)
}
