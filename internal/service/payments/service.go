package payments

import (
	"context"
	"errors"
	"fmt"

	bookingstore "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	storage "github.com/m04kA/SMC-RentalService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-RentalService/internal/service/payments/models"
)

// Service сервис учёта платежей
// Входящие платежи, привязанные к бронированию, атомарно изменяют его amount_paid
type Service struct {
	repo      PaymentRepository
	bookings  BookingBalanceRepository
	txManager TxManager
	log       Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(repo PaymentRepository, bookings BookingBalanceRepository, txManager TxManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		bookings:  bookings,
		txManager: txManager,
		log:       logger,
	}
}

// Create регистрирует платёж. Если платёж влияет на остаток бронирования,
// запись платежа и обновление amount_paid выполняются в одной транзакции
func (s *Service) Create(ctx context.Context, req *models.CreatePaymentRequest) (*models.PaymentResponse, error) {
	payment, err := req.ToDomainPayment()
	if err != nil {
		s.log.Warn("[Payments] Create - invalid input: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	txErr := s.txManager.Do(ctx, func(ctx context.Context) error {
		created, err := s.repo.Create(ctx, payment)
		if err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		payment = created

		if payment.AffectsBookingBalance() {
			if err := s.bookings.ApplyPaymentDelta(ctx, *payment.BookingID, payment.Amount); err != nil {
				return fmt.Errorf("apply payment delta: %w", err)
			}
		}

		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, bookingstore.ErrBookingNotFound) {
			s.log.Warn("[Payments] Create - booking %v not found", req.BookingID)
			return nil, fmt.Errorf("%w: id=%v", ErrBookingNotFound, req.BookingID)
		}
		s.log.Error("[Payments] Create - failed to create payment: %v", txErr)
		return nil, fmt.Errorf("%w: Create - failed to create payment: %v", ErrInternal, txErr)
	}

	s.log.Info("[Payments] Create - payment created: id=%d, direction=%s, amount=%s",
		payment.ID, payment.Direction, payment.Amount)

	return models.FromDomainPayment(payment), nil
}

// List возвращает список платежей по фильтру
func (s *Service) List(ctx context.Context, req *models.ListPaymentsRequest) (*models.PaymentListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.log.Warn("[Payments] List - invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	payments, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log.Error("[Payments] List - failed to list payments: %v", err)
		return nil, fmt.Errorf("%w: List - failed to list payments: %v", ErrInternal, err)
	}

	return models.FromDomainPaymentList(payments), nil
}

// Delete удаляет платёж и откатывает его вклад в остаток бронирования
func (s *Service) Delete(ctx context.Context, id int64) error {
	payment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrPaymentNotFound) {
			return fmt.Errorf("%w: id=%d", ErrPaymentNotFound, id)
		}
		s.log.Error("[Payments] Delete - failed to get payment %d: %v", id, err)
		return fmt.Errorf("%w: Delete - failed to get payment: %v", ErrInternal, err)
	}

	txErr := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete payment: %w", err)
		}

		if payment.AffectsBookingBalance() {
			if err := s.bookings.ApplyPaymentDelta(ctx, *payment.BookingID, payment.Amount.Neg()); err != nil {
				return fmt.Errorf("revert payment delta: %w", err)
			}
		}

		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, storage.ErrPaymentNotFound) {
			return fmt.Errorf("%w: id=%d", ErrPaymentNotFound, id)
		}
		s.log.Error("[Payments] Delete - failed to delete payment %d: %v", id, txErr)
		return fmt.Errorf("%w: Delete - failed to delete payment: %v", ErrInternal, txErr)
	}

	s.log.Info("[Payments] Delete - payment deleted: id=%d", id)

	return nil
}
