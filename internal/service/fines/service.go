package fines

import (
	"context"
	"errors"
	"fmt"

	storage "github.com/m04kA/SMC-RentalService/internal/infra/storage/fine"
	"github.com/m04kA/SMC-RentalService/internal/service/fines/models"
)

// Service сервис учёта штрафов
type Service struct {
	repo FineRepository
	log  Logger
}

// NewService создает новый экземпляр сервиса штрафов
func NewService(repo FineRepository, logger Logger) *Service {
	return &Service{
		repo: repo,
		log:  logger,
	}
}

// Create регистрирует новый штраф
func (s *Service) Create(ctx context.Context, req *models.CreateFineRequest) (*models.FineResponse, error) {
	fine, err := req.ToDomainFine()
	if err != nil {
		s.log.Warn("[Fines] Create - invalid input: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.repo.Create(ctx, fine)
	if err != nil {
		s.log.Error("[Fines] Create - failed to create fine: %v", err)
		return nil, fmt.Errorf("%w: Create - failed to create fine: %v", ErrInternal, err)
	}

	s.log.Info("[Fines] Create - fine created: id=%d, plate=%s, amount=%s",
		created.ID, created.Plate, created.Amount)

	return models.FromDomainFine(created), nil
}

// List возвращает список штрафов по фильтру
func (s *Service) List(ctx context.Context, req *models.ListFinesRequest) (*models.FineListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.log.Warn("[Fines] List - invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	fines, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log.Error("[Fines] List - failed to list fines: %v", err)
		return nil, fmt.Errorf("%w: List - failed to list fines: %v", ErrInternal, err)
	}

	return models.FromDomainFineList(fines), nil
}

// Update обновляет штраф
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateFineRequest) (*models.FineResponse, error) {
	fine, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrFineNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrFineNotFound, id)
		}
		s.log.Error("[Fines] Update - failed to get fine %d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - failed to get fine: %v", ErrInternal, err)
	}

	if err := req.ApplyToDomainFine(fine); err != nil {
		s.log.Warn("[Fines] Update - invalid input for fine %d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Update(ctx, fine); err != nil {
		if errors.Is(err, storage.ErrFineNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrFineNotFound, id)
		}
		s.log.Error("[Fines] Update - failed to update fine %d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - failed to update fine: %v", ErrInternal, err)
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error("[Fines] Update - failed to reload fine %d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - failed to reload fine: %v", ErrInternal, err)
	}

	s.log.Info("[Fines] Update - fine updated: id=%d, status=%s", id, updated.Status)

	return models.FromDomainFine(updated), nil
}

// Delete удаляет штраф
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrFineNotFound) {
			return fmt.Errorf("%w: id=%d", ErrFineNotFound, id)
		}
		s.log.Error("[Fines] Delete - failed to delete fine %d: %v", id, err)
		return fmt.Errorf("%w: Delete - failed to delete fine: %v", ErrInternal, err)
	}

	s.log.Info("[Fines] Delete - fine deleted: id=%d", id)

	return nil
}
