package medical

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"anoa.com/lifesaver/internal/entity"
	"anoa.com/lifesaver/internal/modules/medical/dto"
	"anoa.com/lifesaver/internal/modules/medical/repository"
	"anoa.com/lifesaver/pkg/apperror"
	"anoa.com/lifesaver/pkg/storage"
)

type MedicalService interface {
	CreateMedicalInfo(ctx context.Context, req dto.MedicalInfoRequest) (*entity.MedicalInfo, error)
	GetAllMedicalInfo(ctx context.Context) ([]entity.MedicalInfo, error)
	GetMedicalInfoByID(ctx context.Context, id uuid.UUID) (*entity.MedicalInfo, error)
	UpdateMedicalInfo(ctx context.Context, id uuid.UUID, req dto.MedicalInfoRequest) (*entity.MedicalInfo, error)
	DeleteMedicalInfo(ctx context.Context, id uuid.UUID) error

	UploadAttachment(ctx context.Context, medicalID uuid.UUID, file *multipart.FileHeader) (*entity.MedicalAttachment, error)
	CleanupOrphanAttachments(ctx context.Context) error
}

type medicalService struct {
	repo         repository.MedicalRepository
	docStorage   storage.DocumentStorage
	uploadFolder string
	orphanCutoff time.Duration
}

func NewMedicalService(repo repository.MedicalRepository, docStorage storage.DocumentStorage, uploadFolder string, orphanCutoff time.Duration) MedicalService {
	if orphanCutoff <= 0 {
		orphanCutoff = 24 * time.Hour
	}
	return &medicalService{
		repo:         repo,
		docStorage:   docStorage,
		uploadFolder: uploadFolder,
		orphanCutoff: orphanCutoff,
	}
}

func (s *medicalService) CreateMedicalInfo(ctx context.Context, req dto.MedicalInfoRequest) (*entity.MedicalInfo, error) {
	info := &entity.MedicalInfo{
		Name:                  req.Name,
		BloodGroup:            req.BloodGroup,
		Allergies:             req.Allergies,
		MedicalConditions:     req.MedicalConditions,
		Medications:           req.Medications,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
	}

	if err := s.repo.Create(ctx, info); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}
	return info, nil
}

func (s *medicalService) GetAllMedicalInfo(ctx context.Context) ([]entity.MedicalInfo, error) {
	infos, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}
	return infos, nil
}

func (s *medicalService) GetMedicalInfoByID(ctx context.Context, id uuid.UUID) (*entity.MedicalInfo, error) {
	info, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: medical info %s", apperror.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}
	return info, nil
}

func (s *medicalService) UpdateMedicalInfo(ctx context.Context, id uuid.UUID, req dto.MedicalInfoRequest) (*entity.MedicalInfo, error) {
	info, err := s.GetMedicalInfoByID(ctx, id)
	if err != nil {
		return nil, err
	}

	info.Name = req.Name
	info.BloodGroup = req.BloodGroup
	info.Allergies = req.Allergies
	info.MedicalConditions = req.MedicalConditions
	info.Medications = req.Medications
	info.EmergencyContactName = req.EmergencyContactName
	info.EmergencyContactPhone = req.EmergencyContactPhone

	if err := s.repo.Update(ctx, info); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}
	return info, nil
}

func (s *medicalService) DeleteMedicalInfo(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetMedicalInfoByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}
	return nil
}

func (s *medicalService) UploadAttachment(ctx context.Context, medicalID uuid.UUID, file *multipart.FileHeader) (*entity.MedicalAttachment, error) {
	if s.docStorage == nil {
		return nil, apperror.ErrNotConfigured
	}

	if _, err := s.GetMedicalInfoByID(ctx, medicalID); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening upload: %v", apperror.ErrInvalidInput, err)
	}
	defer src.Close()

	fileURL, err := s.docStorage.Upload(ctx, src, s.uploadFolder, file.Filename)
	if err != nil {
		return nil, err
	}

	attachment := &entity.MedicalAttachment{
		MedicalInfoID: &medicalID,
		FileURL:       fileURL,
		FileName:      file.Filename,
	}

	if err := s.repo.CreateAttachment(ctx, attachment); err != nil {
		// The upload already happened; best effort removal so storage
		// does not accumulate rows the DB never saw.
		if delErr := s.docStorage.Delete(ctx, fileURL); delErr != nil {
			log.Printf("Failed to remove dangling upload %s: %v", fileURL, delErr)
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}

	return attachment, nil
}

// CleanupOrphanAttachments removes uploads that never got linked to a
// medical card. Runs on a schedule from the server.
func (s *medicalService) CleanupOrphanAttachments(ctx context.Context) error {
	cutoff := time.Now().Add(-s.orphanCutoff)

	orphans, err := s.repo.FindOrphanAttachments(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}

	for _, orphan := range orphans {
		if s.docStorage != nil {
			if err := s.docStorage.Delete(ctx, orphan.FileURL); err != nil {
				log.Printf("Failed to delete orphan file %s: %v", orphan.FileURL, err)
				continue
			}
		}
		if err := s.repo.DeleteAttachment(ctx, orphan.ID); err != nil {
			log.Printf("Failed to delete orphan attachment row %d: %v", orphan.ID, err)
		}
	}

	return nil
}
