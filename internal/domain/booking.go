package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a rental booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a rental reservation in the system
type Booking struct {
	ID          int64
	ClientName  string
	ClientEmail string
	ClientPhone *string

	VehiclePlate string
	VehicleModel string

	DeliveryDatetime time.Time
	ReturnDatetime   time.Time
	DeliveryLocation *string

	AmountTotal           decimal.Decimal
	AmountPaid            decimal.Decimal
	SecurityDepositAmount decimal.Decimal

	// Отметка об авторизации депозита (если установлена - напоминания о депозите не шлём)
	SecurityDepositAuthorizedAt *time.Time

	// Отметки о последней отправке напоминаний
	BalanceReminderSentAt *time.Time
	DepositReminderSentAt *time.Time

	// Бронирование создано менее чем за 48 часов до подачи - напоминания идут по ускоренному пути
	ImmediateReminder bool

	Status BookingStatus
	Notes  *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking is in an active state
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusCompleted
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeUpdated returns true if the booking can be updated
func (b *Booking) CanBeUpdated() bool {
	return b.Status != StatusCancelled && b.Status != StatusCompleted
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// BalanceDue возвращает остаток к оплате (не бывает отрицательным)
func (b *Booking) BalanceDue() decimal.Decimal {
	due := b.AmountTotal.Sub(b.AmountPaid)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// HasOutstandingBalance returns true if the booking has an unpaid balance
func (b *Booking) HasOutstandingBalance() bool {
	return b.AmountPaid.LessThan(b.AmountTotal)
}

// DepositPending returns true if a security deposit is required but not yet authorized
func (b *Booking) DepositPending() bool {
	return b.SecurityDepositAmount.IsPositive() && b.SecurityDepositAuthorizedAt == nil
}

// DaysUntilDelivery возвращает число дней до подачи автомобиля
// Округление вверх: подача завтра утром = 1 день. Для прошедших подач значение отрицательное или 0.
func (b *Booking) DaysUntilDelivery(now time.Time) int {
	hours := b.DeliveryDatetime.Sub(now).Hours()
	days := int(hours / 24)
	if hours > float64(days)*24 {
		days++
	}
	return days
}

// BookingsFilter фильтр для получения списка бронирований
type BookingsFilter struct {
	StartDate        *time.Time     // Начало периода по дате подачи (опционально)
	EndDate          *time.Time     // Конец периода по дате подачи (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	ClientQuery      *string        // Поиск по имени или email клиента (опционально)
	IncludeCancelled bool           // Включать ли отменённые бронирования
}
