package repository

import (
	"context"
	"time"

	"anoa.com/lifesaver/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicalRepository interface {
	Create(ctx context.Context, info *entity.MedicalInfo) error
	FindAll(ctx context.Context) ([]entity.MedicalInfo, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MedicalInfo, error)
	Update(ctx context.Context, info *entity.MedicalInfo) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateAttachment(ctx context.Context, attachment *entity.MedicalAttachment) error
	FindOrphanAttachments(ctx context.Context, cutoffTime time.Time) ([]entity.MedicalAttachment, error)
	DeleteAttachment(ctx context.Context, id uint) error
}

type medicalRepository struct {
	db *gorm.DB
}

func NewMedicalRepository(db *gorm.DB) MedicalRepository {
	return &medicalRepository{db: db}
}

func (r *medicalRepository) Create(ctx context.Context, info *entity.MedicalInfo) error {
	return r.db.WithContext(ctx).Create(info).Error
}

func (r *medicalRepository) FindAll(ctx context.Context) ([]entity.MedicalInfo, error) {
	var infos []entity.MedicalInfo
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&infos).Error
	return infos, err
}

func (r *medicalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MedicalInfo, error) {
	var info entity.MedicalInfo
	if err := r.db.WithContext(ctx).First(&info, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *medicalRepository) Update(ctx context.Context, info *entity.MedicalInfo) error {
	return r.db.WithContext(ctx).Save(info).Error
}

func (r *medicalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Detach the card's attachments instead of leaving them pointing at a
	// dead id; the scheduled sweep reclaims detached rows and their files.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.MedicalAttachment{}).
			Where("medical_info_id = ?", id).
			Update("medical_info_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.MedicalInfo{}, "id = ?", id).Error
	})
}

func (r *medicalRepository) CreateAttachment(ctx context.Context, attachment *entity.MedicalAttachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *medicalRepository) FindOrphanAttachments(ctx context.Context, cutoffTime time.Time) ([]entity.MedicalAttachment, error) {
	var orphans []entity.MedicalAttachment
	err := r.db.WithContext(ctx).
		Where("medical_info_id IS NULL AND created_at < ?", cutoffTime).
		Find(&orphans).Error
	return orphans, err
}

func (r *medicalRepository) DeleteAttachment(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.MedicalAttachment{}, "id = ?", id).Error
}
