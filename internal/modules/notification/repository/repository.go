package repository

import (
	"context"

	"anoa.com/lifesaver/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	// CreateBatch persists one fanout's notifications as a single logical
	// batch: either every row lands or none do.
	CreateBatch(ctx context.Context, notifications []*entity.Notification) error
	FindUnreadByPhone(ctx context.Context, phone string) ([]entity.Notification, error)
	// MarkRead flips is_read in one atomic UPDATE and returns the row.
	// Returns gorm.ErrRecordNotFound when the id does not exist.
	MarkRead(ctx context.Context, id uuid.UUID) (*entity.Notification, error)
	MarkAllRead(ctx context.Context, phone string) error
	CountUnread(ctx context.Context, phone string) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []*entity.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, n := range notifications {
			if err := tx.Create(n).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *notificationRepository) FindUnreadByPhone(ctx context.Context, phone string) ([]entity.Notification, error) {
	var notifications []entity.Notification
	err := r.db.WithContext(ctx).
		Where("recipient_phone = ? AND is_read = ?", phone, false).
		Order("created_at desc").
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	// A plain UPDATE keyed on id alone: already-read rows still match, so
	// the call is idempotent, and zero rows affected can only mean the id
	// does not exist. No read-modify-write at this layer.
	res := r.db.WithContext(ctx).
		Model(&entity.Notification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var notification entity.Notification
	if err := r.db.WithContext(ctx).First(&notification, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, phone string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Notification{}).
		Where("recipient_phone = ? AND is_read = ?", phone, false).
		Update("is_read", true).Error
}

func (r *notificationRepository) CountUnread(ctx context.Context, phone string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Notification{}).
		Where("recipient_phone = ? AND is_read = ?", phone, false).
		Count(&count).Error
	return count, err
}
