package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе штрафа
	ErrInvalidStatus = errors.New("invalid fine status")

	// ErrInvalidAmount возвращается при некорректной денежной сумме
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidDatetime возвращается при некорректной дате/времени
	ErrInvalidDatetime = errors.New("invalid datetime, RFC3339 expected")
)

// CreateFineRequest запрос на регистрацию штрафа
type CreateFineRequest struct {
	BookingID *int64 `json:"bookingId,omitempty"`

	DriverName string `json:"driverName"`
	Plate      string `json:"plate"`
	IssuedAt   string `json:"issuedAt"` // RFC3339
	Amount     string `json:"amount"`
	Authority  string `json:"authority"`

	Notes *string `json:"notes,omitempty"`
}

// UpdateFineRequest запрос на обновление штрафа
type UpdateFineRequest struct {
	BookingID *int64 `json:"bookingId,omitempty"`

	DriverName string `json:"driverName"`
	Plate      string `json:"plate"`
	IssuedAt   string `json:"issuedAt"`
	Amount     string `json:"amount"`
	Authority  string `json:"authority"`

	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

// ListFinesRequest параметры списка штрафов
type ListFinesRequest struct {
	BookingID *int64
	Status    *string
	Plate     *string
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListFinesRequest) ToDomainFilter() (domain.FinesFilter, error) {
	filter := domain.FinesFilter{
		BookingID: r.BookingID,
		Plate:     r.Plate,
	}

	if r.Status != nil {
		status, err := ToDomainFineStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// FineResponse ответ с данными штрафа
type FineResponse struct {
	ID        int64  `json:"id"`
	BookingID *int64 `json:"bookingId,omitempty"`

	DriverName string `json:"driverName"`
	Plate      string `json:"plate"`
	IssuedAt   string `json:"issuedAt"`
	Amount     string `json:"amount"`
	Authority  string `json:"authority"`

	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FineListResponse ответ со списком штрафов
type FineListResponse struct {
	Fines []FineResponse `json:"fines"`
}

// ToDomainFine конвертирует запрос создания в domain модель
func (r *CreateFineRequest) ToDomainFine() (*domain.Fine, error) {
	issuedAt, err := time.Parse(time.RFC3339, r.IssuedAt)
	if err != nil {
		return nil, ErrInvalidDatetime
	}

	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return nil, ErrInvalidAmount
	}

	return &domain.Fine{
		BookingID:  r.BookingID,
		DriverName: strings.TrimSpace(r.DriverName),
		Plate:      strings.TrimSpace(r.Plate),
		IssuedAt:   issuedAt,
		Amount:     amount,
		Authority:  strings.TrimSpace(r.Authority),
		Status:     domain.FineStatusReceived,
		Notes:      r.Notes,
	}, nil
}

// ApplyToDomainFine применяет запрос обновления к существующей domain модели
func (r *UpdateFineRequest) ApplyToDomainFine(fine *domain.Fine) error {
	issuedAt, err := time.Parse(time.RFC3339, r.IssuedAt)
	if err != nil {
		return ErrInvalidDatetime
	}

	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return ErrInvalidAmount
	}

	status, err := ToDomainFineStatus(r.Status)
	if err != nil {
		return err
	}

	fine.BookingID = r.BookingID
	fine.DriverName = strings.TrimSpace(r.DriverName)
	fine.Plate = strings.TrimSpace(r.Plate)
	fine.IssuedAt = issuedAt
	fine.Amount = amount
	fine.Authority = strings.TrimSpace(r.Authority)
	fine.Status = status
	fine.Notes = r.Notes

	return nil
}

// FromDomainFine конвертирует domain модель в DTO
func FromDomainFine(f *domain.Fine) *FineResponse {
	if f == nil {
		return nil
	}

	return &FineResponse{
		ID:         f.ID,
		BookingID:  f.BookingID,
		DriverName: f.DriverName,
		Plate:      f.Plate,
		IssuedAt:   f.IssuedAt.Format(time.RFC3339),
		Amount:     f.Amount.StringFixed(2),
		Authority:  f.Authority,
		Status:     string(f.Status),
		Notes:      f.Notes,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}

// FromDomainFineList конвертирует список domain моделей в DTO
func FromDomainFineList(fines []*domain.Fine) *FineListResponse {
	resp := &FineListResponse{
		Fines: make([]FineResponse, 0, len(fines)),
	}

	for _, fine := range fines {
		if fineResp := FromDomainFine(fine); fineResp != nil {
			resp.Fines = append(resp.Fines, *fineResp)
		}
	}

	return resp
}

// ToDomainFineStatus конвертирует строку в domain.FineStatus с валидацией
func ToDomainFineStatus(status string) (domain.FineStatus, error) {
	s := domain.FineStatus(status)

	validStatuses := []domain.FineStatus{
		domain.FineStatusReceived,
		domain.FineStatusNotified,
		domain.FineStatusRecharged,
		domain.FineStatusPaid,
		domain.FineStatusDisputed,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
