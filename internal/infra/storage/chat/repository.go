package chat

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с сообщениями чата и уведомлениями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория чата
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateMessage создает новое сообщение чата
func (r *Repository) CreateMessage(ctx context.Context, message *domain.ChatMessage) (*domain.ChatMessage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("chat_messages").
		Columns(
			"entity_type",
			"entity_id",
			"author_id",
			"body",
			"mentions",
		).
		Values(
			message.EntityType,
			message.EntityID,
			message.AuthorID,
			message.Body,
			pq.Array(message.Mentions),
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateMessage - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&message.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: CreateMessage - execute insert: %v", ErrExecQuery, err)
	}

	message.CreatedAt = createdAt.Time

	return message, nil
}

// ListMessages получает сообщения треда сущности в хронологическом порядке
func (r *Repository) ListMessages(ctx context.Context, entityType domain.EntityType, entityID int64) ([]*domain.ChatMessage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"entity_type",
		"entity_id",
		"author_id",
		"body",
		"mentions",
		"created_at",
	).
		From("chat_messages").
		Where(squirrel.Eq{"entity_type": entityType, "entity_id": entityID}).
		OrderBy("created_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListMessages - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListMessages - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	messages := make([]*domain.ChatMessage, 0)
	for rows.Next() {
		var message domain.ChatMessage
		var createdAt sql.NullTime

		err := rows.Scan(
			&message.ID,
			&message.EntityType,
			&message.EntityID,
			&message.AuthorID,
			&message.Body,
			pq.Array(&message.Mentions),
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListMessages - scan row: %v", ErrScanRow, err)
		}

		message.CreatedAt = createdAt.Time
		messages = append(messages, &message)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListMessages - rows error: %v", ErrScanRow, err)
	}

	return messages, nil
}

// CreateNotification создает уведомление пользователя
func (r *Repository) CreateNotification(ctx context.Context, notification *domain.Notification) (*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notifications").
		Columns(
			"user_id",
			"kind",
			"entity_type",
			"entity_id",
			"message_id",
			"body",
		).
		Values(
			notification.UserID,
			notification.Kind,
			notification.EntityType,
			notification.EntityID,
			notification.MessageID,
			notification.Body,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateNotification - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&notification.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: CreateNotification - execute insert: %v", ErrExecQuery, err)
	}

	notification.CreatedAt = createdAt.Time

	return notification, nil
}

// ListNotifications получает уведомления пользователя (новые сверху)
// unreadOnly = true ограничивает выборку непрочитанными
func (r *Repository) ListNotifications(ctx context.Context, userID int64, unreadOnly bool) ([]*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"user_id",
		"kind",
		"entity_type",
		"entity_id",
		"message_id",
		"body",
		"read_at",
		"created_at",
	).
		From("notifications").
		Where(squirrel.Eq{"user_id": userID})

	if unreadOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"read_at": nil})
	}

	query, args, err := selectBuilder.
		OrderBy("created_at DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListNotifications - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListNotifications - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		var notification domain.Notification
		var createdAt sql.NullTime

		err := rows.Scan(
			&notification.ID,
			&notification.UserID,
			&notification.Kind,
			&notification.EntityType,
			&notification.EntityID,
			&notification.MessageID,
			&notification.Body,
			&notification.ReadAt,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListNotifications - scan row: %v", ErrScanRow, err)
		}

		notification.CreatedAt = createdAt.Time
		notifications = append(notifications, &notification)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListNotifications - rows error: %v", ErrScanRow, err)
	}

	return notifications, nil
}

// MarkNotificationRead отмечает уведомление прочитанным
// Уведомление можно отметить только своё (userID участвует в условии)
func (r *Repository) MarkNotificationRead(ctx context.Context, id int64, userID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("notifications").
		Set("read_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		Where(squirrel.Eq{"read_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkNotificationRead - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkNotificationRead - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkNotificationRead - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}
