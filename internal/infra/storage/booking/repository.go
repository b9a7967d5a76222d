package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"client_name",
	"client_email",
	"client_phone",
	"vehicle_plate",
	"vehicle_model",
	"delivery_datetime",
	"return_datetime",
	"delivery_location",
	"amount_total",
	"amount_paid",
	"security_deposit_amount",
	"security_deposit_authorized_at",
	"balance_reminder_sent_at",
	"deposit_reminder_sent_at",
	"immediate_reminder",
	"status",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"client_name",
			"client_email",
			"client_phone",
			"vehicle_plate",
			"vehicle_model",
			"delivery_datetime",
			"return_datetime",
			"delivery_location",
			"amount_total",
			"amount_paid",
			"security_deposit_amount",
			"immediate_reminder",
			"status",
			"notes",
		).
		Values(
			booking.ClientName,
			booking.ClientEmail,
			booking.ClientPhone,
			booking.VehiclePlate,
			booking.VehicleModel,
			booking.DeliveryDatetime,
			booking.ReturnDatetime,
			booking.DeliveryLocation,
			booking.AmountTotal,
			booking.AmountPaid,
			booking.SecurityDepositAmount,
			booking.ImmediateReminder,
			booking.Status,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования с гибкой фильтрацией
// Поддерживает фильтрацию по периоду подачи, статусу, поиску по клиенту
// и включению отменённых бронирований
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings")

	// Фильтрация по периоду подачи
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"delivery_datetime": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"delivery_datetime": *filter.EndDate})
	}

	// Поиск по имени или email клиента
	if filter.ClientQuery != nil && *filter.ClientQuery != "" {
		pattern := "%" + *filter.ClientQuery + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"client_name": pattern},
			squirrel.ILike{"client_email": pattern},
		})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		// Если не указан конкретный статус и отменённые не нужны - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveBookingStatuses))
		for i, s := range domain.InactiveBookingStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("delivery_datetime DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Update обновляет редактируемые поля бронирования
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("client_name", booking.ClientName).
		Set("client_email", booking.ClientEmail).
		Set("client_phone", booking.ClientPhone).
		Set("vehicle_plate", booking.VehiclePlate).
		Set("vehicle_model", booking.VehicleModel).
		Set("delivery_datetime", booking.DeliveryDatetime).
		Set("return_datetime", booking.ReturnDatetime).
		Set("delivery_location", booking.DeliveryLocation).
		Set("amount_total", booking.AmountTotal).
		Set("security_deposit_amount", booking.SecurityDepositAmount).
		Set("security_deposit_authorized_at", booking.SecurityDepositAuthorizedAt).
		Set("immediate_reminder", booking.ImmediateReminder).
		Set("status", booking.Status).
		Set("notes", booking.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ApplyPaymentDelta изменяет сумму оплаченного на delta (может быть отрицательной)
// Вызывается в транзакции вместе с созданием/удалением платежа
func (r *Repository) ApplyPaymentDelta(ctx context.Context, id int64, delta decimal.Decimal) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("amount_paid", squirrel.Expr("amount_paid + ?", delta)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ApplyPaymentDelta - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ApplyPaymentDelta - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ApplyPaymentDelta - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// MarkReminderSent фиксирует время отправки напоминания указанного типа
// Обновляется только после успешной отправки письма - это и есть
// неформальная гарантия "не чаще раза за окно"
func (r *Repository) MarkReminderSent(ctx context.Context, id int64, reminderType domain.ReminderType, sentAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	column := "balance_reminder_sent_at"
	if reminderType == domain.ReminderDeposit {
		column = "deposit_reminder_sent_at"
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set(column, sentAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ListReminderCandidates получает бронирования, потенциально требующие напоминания
// Берём все незавершённые бронирования с подачей в ближайшие 7 дней:
// точное решение об отправке принимает usecase по порогам расписания
func (r *Repository) ListReminderCandidates(ctx context.Context, now time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statusStrings := make([]string, len(domain.ReminderEligibleStatuses))
	for i, s := range domain.ReminderEligibleStatuses {
		statusStrings[i] = string(s)
	}

	horizon := now.Add(time.Duration(domain.BalanceFirstReminderDays) * 24 * time.Hour)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": statusStrings}).
		Where(squirrel.Gt{"delivery_datetime": now}).
		Where(squirrel.LtOrEq{"delivery_datetime": horizon}).
		OrderBy("delivery_datetime ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListReminderCandidates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListReminderCandidates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListNameRecords агрегирует пары (имя, email) клиентов для поиска дубликатов
func (r *Repository) ListNameRecords(ctx context.Context) ([]domain.NameRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("client_name", "client_email", "COUNT(*)").
		From("bookings").
		GroupBy("client_name", "client_email").
		OrderBy("client_name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListNameRecords - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListNameRecords - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]domain.NameRecord, 0)
	for rows.Next() {
		record := domain.NameRecord{Source: domain.NameSourceBooking}
		if err := rows.Scan(&record.Name, &record.Email, &record.Count); err != nil {
			return nil, fmt.Errorf("%w: ListNameRecords - scan row: %v", ErrScanRow, err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListNameRecords - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

// RenameClient переименовывает клиента во всех бронированиях
// Используется утилитой объединения дубликатов, всегда вызывается в транзакции
func (r *Repository) RenameClient(ctx context.Context, fromNames []string, toName string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("client_name", toName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"client_name": fromNames}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: RenameClient - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: RenameClient - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: RenameClient - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку результата в модель бронирования
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ClientName,
		&booking.ClientEmail,
		&booking.ClientPhone,
		&booking.VehiclePlate,
		&booking.VehicleModel,
		&booking.DeliveryDatetime,
		&booking.ReturnDatetime,
		&booking.DeliveryLocation,
		&booking.AmountTotal,
		&booking.AmountPaid,
		&booking.SecurityDepositAmount,
		&booking.SecurityDepositAuthorizedAt,
		&booking.BalanceReminderSentAt,
		&booking.DepositReminderSentAt,
		&booking.ImmediateReminder,
		&booking.Status,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
