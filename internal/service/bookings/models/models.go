package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidAmount возвращается при некорректной денежной сумме
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidDatetime возвращается при некорректной дате/времени
	ErrInvalidDatetime = errors.New("invalid datetime, RFC3339 expected")
)

// Request модели

// CreateBookingRequest запрос на создание бронирования
type CreateBookingRequest struct {
	ClientName  string  `json:"clientName"`
	ClientEmail string  `json:"clientEmail"`
	ClientPhone *string `json:"clientPhone,omitempty"`

	VehiclePlate string `json:"vehiclePlate"`
	VehicleModel string `json:"vehicleModel"`

	DeliveryDatetime string  `json:"deliveryDatetime"` // RFC3339
	ReturnDatetime   string  `json:"returnDatetime"`   // RFC3339
	DeliveryLocation *string `json:"deliveryLocation,omitempty"`

	AmountTotal           string `json:"amountTotal"`
	SecurityDepositAmount string `json:"securityDepositAmount"`

	Notes *string `json:"notes,omitempty"`
}

// UpdateBookingRequest запрос на обновление бронирования
type UpdateBookingRequest struct {
	ClientName  string  `json:"clientName"`
	ClientEmail string  `json:"clientEmail"`
	ClientPhone *string `json:"clientPhone,omitempty"`

	VehiclePlate string `json:"vehiclePlate"`
	VehicleModel string `json:"vehicleModel"`

	DeliveryDatetime string  `json:"deliveryDatetime"`
	ReturnDatetime   string  `json:"returnDatetime"`
	DeliveryLocation *string `json:"deliveryLocation,omitempty"`

	AmountTotal           string `json:"amountTotal"`
	SecurityDepositAmount string `json:"securityDepositAmount"`

	// Отметка об авторизации депозита (RFC3339, null = не авторизован)
	SecurityDepositAuthorizedAt *string `json:"securityDepositAuthorizedAt,omitempty"`

	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ListBookingsRequest параметры списка бронирований
type ListBookingsRequest struct {
	StartDate        *time.Time
	EndDate          *time.Time
	Status           *string
	ClientQuery      *string
	IncludeCancelled bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		ClientQuery:      r.ClientQuery,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64   `json:"id"`
	ClientName  string  `json:"clientName"`
	ClientEmail string  `json:"clientEmail"`
	ClientPhone *string `json:"clientPhone,omitempty"`

	VehiclePlate string `json:"vehiclePlate"`
	VehicleModel string `json:"vehicleModel"`

	DeliveryDatetime string  `json:"deliveryDatetime"`
	ReturnDatetime   string  `json:"returnDatetime"`
	DeliveryLocation *string `json:"deliveryLocation,omitempty"`

	AmountTotal           string `json:"amountTotal"`
	AmountPaid            string `json:"amountPaid"`
	BalanceDue            string `json:"balanceDue"`
	SecurityDepositAmount string `json:"securityDepositAmount"`

	SecurityDepositAuthorizedAt *string `json:"securityDepositAuthorizedAt,omitempty"`
	BalanceReminderSentAt       *string `json:"balanceReminderSentAt,omitempty"`
	DepositReminderSentAt       *string `json:"depositReminderSentAt,omitempty"`
	ImmediateReminder           bool    `json:"immediateReminder"`

	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// ToDomainBooking конвертирует запрос создания в domain модель
// now нужен для определения срочного бронирования (<48ч до подачи)
func (r *CreateBookingRequest) ToDomainBooking(now time.Time) (*domain.Booking, error) {
	delivery, err := time.Parse(time.RFC3339, r.DeliveryDatetime)
	if err != nil {
		return nil, ErrInvalidDatetime
	}

	ret, err := time.Parse(time.RFC3339, r.ReturnDatetime)
	if err != nil {
		return nil, ErrInvalidDatetime
	}

	amountTotal, err := decimal.NewFromString(r.AmountTotal)
	if err != nil {
		return nil, ErrInvalidAmount
	}

	deposit := decimal.Zero
	if strings.TrimSpace(r.SecurityDepositAmount) != "" {
		deposit, err = decimal.NewFromString(r.SecurityDepositAmount)
		if err != nil {
			return nil, ErrInvalidAmount
		}
	}

	return &domain.Booking{
		ClientName:            strings.TrimSpace(r.ClientName),
		ClientEmail:           strings.TrimSpace(r.ClientEmail),
		ClientPhone:           r.ClientPhone,
		VehiclePlate:          strings.TrimSpace(r.VehiclePlate),
		VehicleModel:          strings.TrimSpace(r.VehicleModel),
		DeliveryDatetime:      delivery,
		ReturnDatetime:        ret,
		DeliveryLocation:      r.DeliveryLocation,
		AmountTotal:           amountTotal,
		AmountPaid:            decimal.Zero,
		SecurityDepositAmount: deposit,
		// Бронирования с подачей менее чем через 48 часов идут по ускоренному пути напоминаний
		ImmediateReminder: delivery.Sub(now) < time.Duration(domain.ImmediateNoticeHours)*time.Hour,
		Status:            domain.StatusPending,
		Notes:             r.Notes,
	}, nil
}

// ApplyToDomainBooking применяет запрос обновления к существующей domain модели
func (r *UpdateBookingRequest) ApplyToDomainBooking(booking *domain.Booking) error {
	delivery, err := time.Parse(time.RFC3339, r.DeliveryDatetime)
	if err != nil {
		return ErrInvalidDatetime
	}

	ret, err := time.Parse(time.RFC3339, r.ReturnDatetime)
	if err != nil {
		return ErrInvalidDatetime
	}

	amountTotal, err := decimal.NewFromString(r.AmountTotal)
	if err != nil {
		return ErrInvalidAmount
	}

	deposit := decimal.Zero
	if strings.TrimSpace(r.SecurityDepositAmount) != "" {
		deposit, err = decimal.NewFromString(r.SecurityDepositAmount)
		if err != nil {
			return ErrInvalidAmount
		}
	}

	status, err := ToDomainBookingStatus(r.Status)
	if err != nil {
		return err
	}

	var depositAuthorizedAt *time.Time
	if r.SecurityDepositAuthorizedAt != nil {
		parsed, err := time.Parse(time.RFC3339, *r.SecurityDepositAuthorizedAt)
		if err != nil {
			return ErrInvalidDatetime
		}
		depositAuthorizedAt = &parsed
	}

	booking.ClientName = strings.TrimSpace(r.ClientName)
	booking.ClientEmail = strings.TrimSpace(r.ClientEmail)
	booking.ClientPhone = r.ClientPhone
	booking.VehiclePlate = strings.TrimSpace(r.VehiclePlate)
	booking.VehicleModel = strings.TrimSpace(r.VehicleModel)
	booking.DeliveryDatetime = delivery
	booking.ReturnDatetime = ret
	booking.DeliveryLocation = r.DeliveryLocation
	booking.AmountTotal = amountTotal
	booking.SecurityDepositAmount = deposit
	booking.SecurityDepositAuthorizedAt = depositAuthorizedAt
	booking.Status = status
	booking.Notes = r.Notes

	return nil
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                    b.ID,
		ClientName:            b.ClientName,
		ClientEmail:           b.ClientEmail,
		ClientPhone:           b.ClientPhone,
		VehiclePlate:          b.VehiclePlate,
		VehicleModel:          b.VehicleModel,
		DeliveryDatetime:      b.DeliveryDatetime.Format(time.RFC3339),
		ReturnDatetime:        b.ReturnDatetime.Format(time.RFC3339),
		DeliveryLocation:      b.DeliveryLocation,
		AmountTotal:           b.AmountTotal.StringFixed(2),
		AmountPaid:            b.AmountPaid.StringFixed(2),
		BalanceDue:            b.BalanceDue().StringFixed(2),
		SecurityDepositAmount: b.SecurityDepositAmount.StringFixed(2),
		ImmediateReminder:     b.ImmediateReminder,
		Status:                string(b.Status),
		Notes:                 b.Notes,
		CancellationReason:    b.CancellationReason,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
	}

	resp.SecurityDepositAuthorizedAt = formatTimePtr(b.SecurityDepositAuthorizedAt)
	resp.BalanceReminderSentAt = formatTimePtr(b.BalanceReminderSentAt)
	resp.DepositReminderSentAt = formatTimePtr(b.DepositReminderSentAt)
	resp.CancelledAt = formatTimePtr(b.CancelledAt)

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusActive,
		domain.StatusCompleted,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
