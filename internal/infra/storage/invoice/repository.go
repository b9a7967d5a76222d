package invoice

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

var invoiceColumns = []string{
	"id",
	"kind",
	"booking_id",
	"counterparty_name",
	"counterparty_email",
	"number",
	"issue_date",
	"due_date",
	"amount",
	"vat_amount",
	"status",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со счетами поставщиков и клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория счетов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый счёт
func (r *Repository) Create(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("invoices").
		Columns(
			"kind",
			"booking_id",
			"counterparty_name",
			"counterparty_email",
			"number",
			"issue_date",
			"due_date",
			"amount",
			"vat_amount",
			"status",
			"notes",
		).
		Values(
			invoice.Kind,
			invoice.BookingID,
			invoice.CounterpartyName,
			invoice.CounterpartyEmail,
			invoice.Number,
			invoice.IssueDate,
			invoice.DueDate,
			invoice.Amount,
			invoice.VATAmount,
			invoice.Status,
			invoice.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&invoice.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	invoice.CreatedAt = createdAt.Time
	invoice.UpdatedAt = updatedAt.Time

	return invoice, nil
}

// GetByID получает счёт по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(invoiceColumns...).
		From("invoices").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	invoice, err := scanInvoice(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan invoice: %v", ErrScanRow, err)
	}

	return invoice, nil
}

// List получает счета с фильтрацией по типу, бронированию, статусу и периоду
func (r *Repository) List(ctx context.Context, filter domain.InvoicesFilter) ([]*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(invoiceColumns...).
		From("invoices")

	if filter.Kind != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"kind": *filter.Kind})
	}
	if filter.BookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_id": *filter.BookingID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"issue_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"issue_date": *filter.EndDate})
	}

	query, args, err := selectBuilder.
		OrderBy("issue_date DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanInvoices(rows)
}

// Update обновляет редактируемые поля счёта
func (r *Repository) Update(ctx context.Context, invoice *domain.Invoice) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("invoices").
		Set("booking_id", invoice.BookingID).
		Set("counterparty_name", invoice.CounterpartyName).
		Set("counterparty_email", invoice.CounterpartyEmail).
		Set("number", invoice.Number).
		Set("issue_date", invoice.IssueDate).
		Set("due_date", invoice.DueDate).
		Set("amount", invoice.Amount).
		Set("vat_amount", invoice.VATAmount).
		Set("status", invoice.Status).
		Set("notes", invoice.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": invoice.ID}).
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
		return ErrInvoiceNotFound
	}

	return nil
}

// Delete удаляет счёт
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("invoices").
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
		return ErrInvoiceNotFound
	}

	return nil
}

// ListNameRecords агрегирует пары (имя, email) контрагентов клиентских счетов
// Счета поставщиков не участвуют в поиске дубликатов клиентов
func (r *Repository) ListNameRecords(ctx context.Context) ([]domain.NameRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("counterparty_name", "counterparty_email", "COUNT(*)").
		From("invoices").
		Where(squirrel.Eq{"kind": domain.InvoiceKindClient}).
		GroupBy("counterparty_name", "counterparty_email").
		OrderBy("counterparty_name ASC").
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
		record := domain.NameRecord{Source: domain.NameSourceInvoice}
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

// RenameCounterparty переименовывает контрагента во всех клиентских счетах
// Используется утилитой объединения дубликатов, всегда вызывается в транзакции
func (r *Repository) RenameCounterparty(ctx context.Context, fromNames []string, toName string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("invoices").
		Set("counterparty_name", toName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"kind": domain.InvoiceKindClient}).
		Where(squirrel.Eq{"counterparty_name": fromNames}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: RenameCounterparty - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: RenameCounterparty - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: RenameCounterparty - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInvoice(row rowScanner) (*domain.Invoice, error) {
	var invoice domain.Invoice
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&invoice.ID,
		&invoice.Kind,
		&invoice.BookingID,
		&invoice.CounterpartyName,
		&invoice.CounterpartyEmail,
		&invoice.Number,
		&invoice.IssueDate,
		&invoice.DueDate,
		&invoice.Amount,
		&invoice.VATAmount,
		&invoice.Status,
		&invoice.Notes,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	invoice.CreatedAt = createdAt.Time
	invoice.UpdatedAt = updatedAt.Time

	return &invoice, nil
}

func scanInvoices(rows *sql.Rows) ([]*domain.Invoice, error) {
	invoices := make([]*domain.Invoice, 0)

	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanInvoices - scan row: %v", ErrScanRow, err)
		}
		invoices = append(invoices, invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanInvoices - rows error: %v", ErrScanRow, err)
	}

	return invoices, nil
}
