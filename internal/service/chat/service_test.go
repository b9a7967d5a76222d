package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/chat/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type stubChatRepo struct {
	notifications   []*domain.Notification
	notificationErr error
}

func (s *stubChatRepo) CreateMessage(ctx context.Context, message *domain.ChatMessage) (*domain.ChatMessage, error) {
	created := *message
	created.ID = 100
	created.CreatedAt = time.Now()
	return &created, nil
}

func (s *stubChatRepo) ListMessages(ctx context.Context, entityType domain.EntityType, entityID int64) ([]*domain.ChatMessage, error) {
	return nil, nil
}

func (s *stubChatRepo) CreateNotification(ctx context.Context, notification *domain.Notification) (*domain.Notification, error) {
	if s.notificationErr != nil {
		return nil, s.notificationErr
	}
	saved := *notification
	saved.ID = int64(len(s.notifications) + 1)
	s.notifications = append(s.notifications, &saved)
	return &saved, nil
}

func (s *stubChatRepo) ListNotifications(ctx context.Context, userID int64, unreadOnly bool) ([]*domain.Notification, error) {
	return nil, nil
}

func (s *stubChatRepo) MarkNotificationRead(ctx context.Context, id int64, userID int64) error {
	return nil
}

type stubBroadcaster struct {
	broadcasts []*domain.ChatMessage
	notified   []int64
}

func (s *stubBroadcaster) BroadcastMessage(message *domain.ChatMessage) {
	s.broadcasts = append(s.broadcasts, message)
}

func (s *stubBroadcaster) NotifyUser(userID int64, notification *domain.Notification) {
	s.notified = append(s.notified, userID)
}

func TestSendMessage_CreatesMentionNotifications(t *testing.T) {
	repo := &stubChatRepo{}
	broadcaster := &stubBroadcaster{}

	svc := NewService(repo, broadcaster, nopLogger{})

	resp, err := svc.SendMessage(context.Background(), 1, &models.SendMessageRequest{
		EntityType: "booking",
		EntityID:   7,
		Body:       "Нужно проверить оплату",
		Mentions:   []int64{2, 3},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)

	require.Len(t, repo.notifications, 2)
	assert.Equal(t, domain.NotificationMention, repo.notifications[0].Kind)
	assert.Equal(t, domain.EntityBooking, repo.notifications[0].EntityType)

	assert.Equal(t, []int64{2, 3}, broadcaster.notified)
	require.Len(t, broadcaster.broadcasts, 1)
	assert.Equal(t, int64(100), broadcaster.broadcasts[0].ID)
}

func TestSendMessage_SelfMentionDropped(t *testing.T) {
	repo := &stubChatRepo{}
	broadcaster := &stubBroadcaster{}

	svc := NewService(repo, broadcaster, nopLogger{})

	_, err := svc.SendMessage(context.Background(), 1, &models.SendMessageRequest{
		EntityType: "invoice",
		EntityID:   5,
		Body:       "Комментарий",
		Mentions:   []int64{1, 2, 2},
	})

	require.NoError(t, err)
	require.Len(t, repo.notifications, 1)
	assert.Equal(t, int64(2), repo.notifications[0].UserID)
}

func TestSendMessage_NotificationFailureDoesNotBlock(t *testing.T) {
	repo := &stubChatRepo{notificationErr: errors.New("db down")}
	broadcaster := &stubBroadcaster{}

	svc := NewService(repo, broadcaster, nopLogger{})

	resp, err := svc.SendMessage(context.Background(), 1, &models.SendMessageRequest{
		EntityType: "booking",
		EntityID:   7,
		Body:       "Сообщение",
		Mentions:   []int64{2},
	})

	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Empty(t, broadcaster.notified)
	assert.Len(t, broadcaster.broadcasts, 1)
}

func TestSendMessage_EmptyBody(t *testing.T) {
	svc := NewService(&stubChatRepo{}, &stubBroadcaster{}, nopLogger{})

	_, err := svc.SendMessage(context.Background(), 1, &models.SendMessageRequest{
		EntityType: "booking",
		EntityID:   7,
		Body:       "   ",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSendMessage_BodyTooLong(t *testing.T) {
	svc := NewService(&stubChatRepo{}, &stubBroadcaster{}, nopLogger{})

	_, err := svc.SendMessage(context.Background(), 1, &models.SendMessageRequest{
		EntityType: "booking",
		EntityID:   7,
		Body:       strings.Repeat("а", domain.MaxChatMessageLength+1),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSendMessage_InvalidEntityType(t *testing.T) {
	svc := NewService(&stubChatRepo{}, &stubBroadcaster{}, nopLogger{})

	_, err := svc.SendMessage(context.Background(), 1, &models.SendMessageRequest{
		EntityType: "vehicle",
		EntityID:   7,
		Body:       "Сообщение",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateNotification_DeliversToUser(t *testing.T) {
	repo := &stubChatRepo{}
	broadcaster := &stubBroadcaster{}

	svc := NewService(repo, broadcaster, nopLogger{})

	err := svc.CreateNotification(context.Background(), &domain.Notification{
		UserID:     42,
		Kind:       domain.NotificationReminderFailed,
		EntityType: domain.EntityBooking,
		EntityID:   7,
		Body:       "Сбой отправки напоминания",
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{42}, broadcaster.notified)
}
