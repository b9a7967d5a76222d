package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	storage "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
)

// Service сервис управления бронированиями
type Service struct {
	repo BookingRepository
	time TimeProvider
	log  Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(repo BookingRepository, timeProvider TimeProvider, logger Logger) *Service {
	return &Service{
		repo: repo,
		time: timeProvider,
		log:  logger,
	}
}

// Create создает новое бронирование
func (s *Service) Create(ctx context.Context, req *models.CreateBookingRequest) (*models.BookingResponse, error) {
	booking, err := req.ToDomainBooking(s.time.Now())
	if err != nil {
		s.log.Warn("[Bookings] Create - invalid input: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.repo.Create(ctx, booking)
	if err != nil {
		s.log.Error("[Bookings] Create - failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: Create - failed to create booking: %v", ErrInternal, err)
	}

	s.log.Info("[Bookings] Create - booking created: id=%d, client=%s, delivery=%s",
		created.ID, created.ClientName, created.DeliveryDatetime)

	return models.FromDomainBooking(created), nil
}

// GetByID возвращает бронирование по идентификатору
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
		}
		s.log.Error("[Bookings] GetByID - failed to get booking %d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to get booking: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List возвращает список бронирований по фильтру
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.log.Warn("[Bookings] List - invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log.Error("[Bookings] List - failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: List - failed to list bookings: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// Update обновляет бронирование
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
		}
		s.log.Error("[Bookings] Update - failed to get booking %d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - failed to get booking: %v", ErrInternal, err)
	}

	if !booking.CanBeUpdated() {
		s.log.Warn("[Bookings] Update - booking %d in status %s cannot be updated", id, booking.Status)
		return nil, fmt.Errorf("%w: id=%d, status=%s", ErrCannotUpdate, id, booking.Status)
	}

	if err := req.ApplyToDomainBooking(booking); err != nil {
		s.log.Warn("[Bookings] Update - invalid input for booking %d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Если подача переносится, пересчитываем признак срочного бронирования
	booking.ImmediateReminder = booking.DeliveryDatetime.Sub(s.time.Now()) < time.Duration(domain.ImmediateNoticeHours)*time.Hour

	if err := s.repo.Update(ctx, booking); err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
		}
		s.log.Error("[Bookings] Update - failed to update booking %d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - failed to update booking: %v", ErrInternal, err)
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error("[Bookings] Update - failed to reload booking %d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - failed to reload booking: %v", ErrInternal, err)
	}

	s.log.Info("[Bookings] Update - booking updated: id=%d, status=%s", id, updated.Status)

	return models.FromDomainBooking(updated), nil
}

// Cancel отменяет бронирование с указанием причины
func (s *Service) Cancel(ctx context.Context, id int64, reason string) error {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
		}
		s.log.Error("[Bookings] Cancel - failed to get booking %d: %v", id, err)
		return fmt.Errorf("%w: Cancel - failed to get booking: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.log.Warn("[Bookings] Cancel - booking %d in status %s cannot be cancelled", id, booking.Status)
		return fmt.Errorf("%w: id=%d, status=%s", ErrCannotCancel, id, booking.Status)
	}

	if err := s.repo.Cancel(ctx, id, reason); err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
		}
		s.log.Error("[Bookings] Cancel - failed to cancel booking %d: %v", id, err)
		return fmt.Errorf("%w: Cancel - failed to cancel booking: %v", ErrInternal, err)
	}

	s.log.Info("[Bookings] Cancel - booking cancelled: id=%d, reason=%s", id, reason)

	return nil
}
