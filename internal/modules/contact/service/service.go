package contact

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"anoa.com/lifesaver/internal/entity"
	"anoa.com/lifesaver/internal/modules/contact/dto"
	"anoa.com/lifesaver/internal/modules/contact/repository"
	search "anoa.com/lifesaver/internal/modules/search/service"
	"anoa.com/lifesaver/pkg/apperror"
)

type ContactService interface {
	CreateContact(ctx context.Context, req dto.CreateContactRequest) (*entity.Contact, error)
	GetAllContacts(ctx context.Context) ([]entity.Contact, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error
	SearchContacts(ctx context.Context, query string) ([]entity.Contact, error)
}

type contactService struct {
	repo      repository.ContactRepository
	searchSvc search.ContactSearchService
}

func NewContactService(repo repository.ContactRepository, searchSvc search.ContactSearchService) ContactService {
	return &contactService{repo: repo, searchSvc: searchSvc}
}

func (s *contactService) CreateContact(ctx context.Context, req dto.CreateContactRequest) (*entity.Contact, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	relationship := strings.TrimSpace(req.Relationship)

	if name == "" || phone == "" || relationship == "" {
		return nil, fmt.Errorf("%w: name, phone and relationship are required", apperror.ErrInvalidInput)
	}

	contact := &entity.Contact{
		Name:         name,
		Phone:        phone,
		Relationship: relationship,
		Email:        req.Email,
		IsSelf:       req.IsSelf,
	}

	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}

	if s.searchSvc != nil {
		if err := s.searchSvc.IndexContact(contact); err != nil {
			log.Printf("Failed to index contact %s: %v", contact.ID, err)
		}
	}

	return contact, nil
}

func (s *contactService) GetAllContacts(ctx context.Context) ([]entity.Contact, error) {
	contacts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}
	return contacts, nil
}

func (s *contactService) DeleteContact(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: contact %s", apperror.ErrNotFound, id)
		}
		return fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}

	if s.searchSvc != nil {
		if err := s.searchSvc.RemoveContact(id.String()); err != nil {
			log.Printf("Failed to remove contact %s from index: %v", id, err)
		}
	}

	return nil
}

func (s *contactService) SearchContacts(ctx context.Context, query string) ([]entity.Contact, error) {
	if s.searchSvc == nil {
		return nil, apperror.ErrNotConfigured
	}

	docs, err := s.searchSvc.SearchContacts(query)
	if err != nil {
		return nil, err
	}

	contacts := make([]entity.Contact, 0, len(docs))
	for _, doc := range docs {
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			continue
		}
		contact, err := s.repo.FindByID(ctx, id)
		if err != nil {
			// Index can lag behind deletes; skip stale hits.
			continue
		}
		contacts = append(contacts, *contact)
	}

	return contacts, nil
}
