package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"anoa.com/lifesaver/internal/entity"
	contactRepo "anoa.com/lifesaver/internal/modules/contact/repository"
	notifRepo "anoa.com/lifesaver/internal/modules/notification/repository"
	"anoa.com/lifesaver/pkg/apperror"
)

// NotificationService is the fanout engine and the inbox in one place:
// it materializes per-contact notifications from an alert and serves them
// back with read-state semantics.
type NotificationService interface {
	Fanout(ctx context.Context, alert *entity.Alert) ([]entity.Notification, error)
	ListUnread(ctx context.Context, phone string) ([]entity.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) (*entity.Notification, error)
	MarkAllRead(ctx context.Context, phone string) error
	UnreadCount(ctx context.Context, phone string) (int64, error)
}

type notificationService struct {
	repo        notifRepo.NotificationRepository
	contacts    contactRepo.ContactRepository
	redisClient *redis.Client
}

func NewNotificationService(repo notifRepo.NotificationRepository, contacts contactRepo.ContactRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		contacts:    contacts,
		redisClient: redisClient,
	}
}

// InboxChannel is the redis pub/sub channel carrying new notifications for
// one phone. The websocket feed subscribes to it.
func InboxChannel(phone string) string {
	return fmt.Sprintf("inbox:%s", phone)
}

// Fanout snapshots the contact directory and creates one notification per
// contact. Duplicate phones get one notification each (distinct contact rows
// are independent recipients); contacts flagged is_self are the sender's own
// device and are skipped. The batch is all-or-nothing, so a recipient is
// never silently dropped while the call reports success.
func (s *notificationService) Fanout(ctx context.Context, alert *entity.Alert) ([]entity.Notification, error) {
	contacts, err := s.contacts.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: reading contact directory: %v", apperror.ErrStorage, err)
	}

	batch := make([]*entity.Notification, 0, len(contacts))
	for _, c := range contacts {
		if c.IsSelf {
			continue
		}
		batch = append(batch, &entity.Notification{
			AlertID:        alert.ID,
			RecipientPhone: c.Phone,
			SenderName:     alert.SenderName,
			Message:        buildMessage(alert),
			Latitude:       alert.Latitude,
			Longitude:      alert.Longitude,
		})
	}

	// An empty directory is a valid, silent outcome.
	if len(batch) == 0 {
		return []entity.Notification{}, nil
	}

	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}

	created := make([]entity.Notification, 0, len(batch))
	for _, n := range batch {
		created = append(created, *n)
		s.publish(ctx, n)
	}

	return created, nil
}

func buildMessage(alert *entity.Alert) string {
	return fmt.Sprintf(
		"🆘 %s needs help! Location: https://www.google.com/maps?q=%f,%f",
		alert.SenderName, alert.Latitude, alert.Longitude,
	)
}

func (s *notificationService) publish(ctx context.Context, n *entity.Notification) {
	if s.redisClient == nil {
		return
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return
	}
	s.redisClient.Publish(ctx, InboxChannel(n.RecipientPhone), payload)
}

// ListUnread returns the unread inbox for a phone, newest first. A phone
// with no contacts and no history gets an empty list, not an error.
func (s *notificationService) ListUnread(ctx context.Context, phone string) ([]entity.Notification, error) {
	notifications, err := s.repo.FindUnreadByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}
	if notifications == nil {
		notifications = []entity.Notification{}
	}
	return notifications, nil
}

// MarkRead acknowledges one notification. Acknowledging an already-read
// notification succeeds and returns it unchanged.
func (s *notificationService) MarkRead(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	notification, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: notification %s", apperror.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}
	return notification, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, phone string) error {
	if err := s.repo.MarkAllRead(ctx, phone); err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}
	return nil
}

func (s *notificationService) UnreadCount(ctx context.Context, phone string) (int64, error) {
	count, err := s.repo.CountUnread(ctx, phone)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}
	return count, nil
}
