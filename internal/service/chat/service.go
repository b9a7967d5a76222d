package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	storage "github.com/m04kA/SMC-RentalService/internal/infra/storage/chat"
	"github.com/m04kA/SMC-RentalService/internal/service/chat/models"
)

// Service сервис внутреннего чата и уведомлений
type Service struct {
	repo        ChatRepository
	broadcaster Broadcaster
	log         Logger
}

// NewService создает новый экземпляр сервиса чата
func NewService(repo ChatRepository, broadcaster Broadcaster, logger Logger) *Service {
	return &Service{
		repo:        repo,
		broadcaster: broadcaster,
		log:         logger,
	}
}

// SendMessage сохраняет сообщение, создаёт уведомления об упоминаниях
// и рассылает событие подключённым клиентам
func (s *Service) SendMessage(ctx context.Context, authorID int64, req *models.SendMessageRequest) (*models.MessageResponse, error) {
	message, err := req.ToDomainMessage(authorID)
	if err != nil {
		s.log.Warn("[Chat] SendMessage - invalid input: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.repo.CreateMessage(ctx, message)
	if err != nil {
		s.log.Error("[Chat] SendMessage - failed to create message: %v", err)
		return nil, fmt.Errorf("%w: SendMessage - failed to create message: %v", ErrInternal, err)
	}

	// Уведомления об упоминаниях не блокируют отправку сообщения:
	// ошибка по отдельному получателю логируется и пропускается
	for _, userID := range created.Mentions {
		notification := &domain.Notification{
			UserID:     userID,
			Kind:       domain.NotificationMention,
			EntityType: created.EntityType,
			EntityID:   created.EntityID,
			MessageID:  &created.ID,
			Body:       created.Body,
		}

		saved, err := s.repo.CreateNotification(ctx, notification)
		if err != nil {
			s.log.Error("[Chat] SendMessage - failed to create mention notification for user %d: %v", userID, err)
			continue
		}

		s.broadcaster.NotifyUser(userID, saved)
	}

	s.broadcaster.BroadcastMessage(created)

	s.log.Info("[Chat] SendMessage - message sent: id=%d, entity=%s/%d, author=%d, mentions=%d",
		created.ID, created.EntityType, created.EntityID, authorID, len(created.Mentions))

	return models.FromDomainMessage(created), nil
}

// ListMessages возвращает историю чата сущности
func (s *Service) ListMessages(ctx context.Context, entityType string, entityID int64) (*models.MessageListResponse, error) {
	et := domain.EntityType(entityType)
	if !domain.IsValidEntityType(et) {
		s.log.Warn("[Chat] ListMessages - invalid entity type: %s", entityType)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, models.ErrInvalidEntityType)
	}

	messages, err := s.repo.ListMessages(ctx, et, entityID)
	if err != nil {
		s.log.Error("[Chat] ListMessages - failed to list messages for %s/%d: %v", entityType, entityID, err)
		return nil, fmt.Errorf("%w: ListMessages - failed to list messages: %v", ErrInternal, err)
	}

	return models.FromDomainMessageList(messages), nil
}

// CreateNotification создаёт уведомление и доставляет его пользователю
// Используется другими компонентами (напоминания) для системных уведомлений
func (s *Service) CreateNotification(ctx context.Context, notification *domain.Notification) error {
	saved, err := s.repo.CreateNotification(ctx, notification)
	if err != nil {
		s.log.Error("[Chat] CreateNotification - failed to create notification for user %d: %v", notification.UserID, err)
		return fmt.Errorf("%w: CreateNotification - failed to create notification: %v", ErrInternal, err)
	}

	s.broadcaster.NotifyUser(saved.UserID, saved)

	return nil
}

// ListNotifications возвращает уведомления пользователя
func (s *Service) ListNotifications(ctx context.Context, userID int64, unreadOnly bool) (*models.NotificationListResponse, error) {
	notifications, err := s.repo.ListNotifications(ctx, userID, unreadOnly)
	if err != nil {
		s.log.Error("[Chat] ListNotifications - failed to list notifications for user %d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListNotifications - failed to list notifications: %v", ErrInternal, err)
	}

	return models.FromDomainNotificationList(notifications), nil
}

// MarkNotificationRead помечает уведомление пользователя прочитанным
func (s *Service) MarkNotificationRead(ctx context.Context, id int64, userID int64) error {
	if err := s.repo.MarkNotificationRead(ctx, id, userID); err != nil {
		if errors.Is(err, storage.ErrNotificationNotFound) {
			return fmt.Errorf("%w: id=%d", ErrNotificationNotFound, id)
		}
		s.log.Error("[Chat] MarkNotificationRead - failed to mark notification %d for user %d: %v", id, userID, err)
		return fmt.Errorf("%w: MarkNotificationRead - failed to mark notification: %v", ErrInternal, err)
	}

	s.log.Info("[Chat] MarkNotificationRead - notification read: id=%d, user=%d", id, userID)

	return nil
}
