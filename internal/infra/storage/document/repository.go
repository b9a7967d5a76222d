package document

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

var documentColumns = []string{
	"id",
	"entity_type",
	"entity_id",
	"file_name",
	"object_key",
	"mime_type",
	"size_bytes",
	"uploaded_by",
	"created_at",
}

// Repository репозиторий для работы с метаданными документов и токенами доступа
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория документов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись о загруженном документе
func (r *Repository) Create(ctx context.Context, document *domain.Document) (*domain.Document, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("documents").
		Columns(
			"entity_type",
			"entity_id",
			"file_name",
			"object_key",
			"mime_type",
			"size_bytes",
			"uploaded_by",
		).
		Values(
			document.EntityType,
			document.EntityID,
			document.FileName,
			document.ObjectKey,
			document.MimeType,
			document.SizeBytes,
			document.UploadedBy,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&document.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	document.CreatedAt = createdAt.Time

	return document, nil
}

// GetByID получает документ по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(documentColumns...).
		From("documents").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	document, err := scanDocument(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan document: %v", ErrScanRow, err)
	}

	return document, nil
}

// List получает документы сущности (новые сверху)
func (r *Repository) List(ctx context.Context, entityType domain.EntityType, entityID int64) ([]*domain.Document, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(documentColumns...).
		From("documents").
		Where(squirrel.Eq{"entity_type": entityType, "entity_id": entityID}).
		OrderBy("created_at DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	documents := make([]*domain.Document, 0)
	for rows.Next() {
		document, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		documents = append(documents, document)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return documents, nil
}

// Delete удаляет запись о документе
// Объект в бакете удаляет сервис документов
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("documents").
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
		return ErrDocumentNotFound
	}

	return nil
}

// CreateAccessToken создает публичный токен доступа к документу
func (r *Repository) CreateAccessToken(ctx context.Context, token *domain.AccessToken) (*domain.AccessToken, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("access_tokens").
		Columns(
			"token",
			"document_id",
			"created_by",
			"expires_at",
		).
		Values(
			token.Token,
			token.DocumentID,
			token.CreatedBy,
			token.ExpiresAt,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateAccessToken - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&token.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: CreateAccessToken - execute insert: %v", ErrExecQuery, err)
	}

	token.CreatedAt = createdAt.Time

	return token, nil
}

// GetAccessToken получает токен доступа по значению
func (r *Repository) GetAccessToken(ctx context.Context, tokenValue string) (*domain.AccessToken, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"token",
		"document_id",
		"created_by",
		"expires_at",
		"created_at",
	).
		From("access_tokens").
		Where(squirrel.Eq{"token": tokenValue}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAccessToken - build select query: %v", ErrBuildQuery, err)
	}

	var token domain.AccessToken
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&token.ID,
		&token.Token,
		&token.DocumentID,
		&token.CreatedBy,
		&token.ExpiresAt,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetAccessToken - scan token: %v", ErrScanRow, err)
	}

	token.CreatedAt = createdAt.Time

	return &token, nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var document domain.Document
	var createdAt sql.NullTime

	err := row.Scan(
		&document.ID,
		&document.EntityType,
		&document.EntityID,
		&document.FileName,
		&document.ObjectKey,
		&document.MimeType,
		&document.SizeBytes,
		&document.UploadedBy,
		&createdAt,
	)

	if err != nil {
		return nil, err
	}

	document.CreatedAt = createdAt.Time

	return &document, nil
}
