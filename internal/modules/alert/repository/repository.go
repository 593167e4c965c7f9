package repository

import (
	"context"

	"anoa.com/lifesaver/internal/entity"
	"gorm.io/gorm"
)

// AlertRepository is append-only: alerts are write-once and retention is
// someone else's problem, so there is no update or delete.
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	FindAll(ctx context.Context) ([]entity.Alert, error)
}

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(ctx context.Context, alert *entity.Alert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *alertRepository) FindAll(ctx context.Context) ([]entity.Alert, error) {
	var alerts []entity.Alert
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(100).
		Find(&alerts).Error
	return alerts, err
}
