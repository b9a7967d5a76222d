package fine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

var fineColumns = []string{
	"id",
	"booking_id",
	"driver_name",
	"plate",
	"issued_at",
	"amount",
	"authority",
	"status",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со штрафами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория штрафов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый штраф
func (r *Repository) Create(ctx context.Context, fine *domain.Fine) (*domain.Fine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("fines").
		Columns(
			"booking_id",
			"driver_name",
			"plate",
			"issued_at",
			"amount",
			"authority",
			"status",
			"notes",
		).
		Values(
			fine.BookingID,
			fine.DriverName,
			fine.Plate,
			fine.IssuedAt,
			fine.Amount,
			fine.Authority,
			fine.Status,
			fine.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&fine.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	fine.CreatedAt = createdAt.Time
	fine.UpdatedAt = updatedAt.Time

	return fine, nil
}

// GetByID получает штраф по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Fine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(fineColumns...).
		From("fines").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	fine, err := scanFine(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrFineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan fine: %v", ErrScanRow, err)
	}

	return fine, nil
}

// List получает штрафы с фильтрацией по бронированию, статусу и госномеру
func (r *Repository) List(ctx context.Context, filter domain.FinesFilter) ([]*domain.Fine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(fineColumns...).
		From("fines")

	if filter.BookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_id": *filter.BookingID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Plate != nil && *filter.Plate != "" {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"plate": *filter.Plate})
	}

	query, args, err := selectBuilder.
		OrderBy("issued_at DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanFines(rows)
}

// Update обновляет редактируемые поля штрафа
func (r *Repository) Update(ctx context.Context, fine *domain.Fine) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("fines").
		Set("booking_id", fine.BookingID).
		Set("driver_name", fine.DriverName).
		Set("plate", fine.Plate).
		Set("issued_at", fine.IssuedAt).
		Set("amount", fine.Amount).
		Set("authority", fine.Authority).
		Set("status", fine.Status).
		Set("notes", fine.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": fine.ID}).
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
		return ErrFineNotFound
	}

	return nil
}

// Delete удаляет штраф
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("fines").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrFineNotFound
	}

	return nil
}

// RenameDriver переименовывает водителя во всех штрафах
// Используется утилитой объединения дубликатов, всегда вызывается в транзакции
func (r *Repository) RenameDriver(ctx context.Context, fromNames []string, toName string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("fines").
		Set("driver_name", toName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"driver_name": fromNames}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: RenameDriver - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: RenameDriver - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: RenameDriver - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFine(row rowScanner) (*domain.Fine, error) {
	var fine domain.Fine
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&fine.ID,
		&fine.BookingID,
		&fine.DriverName,
		&fine.Plate,
		&fine.IssuedAt,
		&fine.Amount,
		&fine.Authority,
		&fine.Status,
		&fine.Notes,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	fine.CreatedAt = createdAt.Time
	fine.UpdatedAt = updatedAt.Time

	return &fine, nil
}

func scanFines(rows *sql.Rows) ([]*domain.Fine, error) {
	fines := make([]*domain.Fine, 0)

	for rows.Next() {
		fine, err := scanFine(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanFines - scan row: %v", ErrScanRow, err)
		}
		fines = append(fines, fine)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanFines - rows error: %v", ErrScanRow, err)
	}

	return fines, nil
}
