package search

import (
	"encoding/json"
	"html"
	"log"
	"strings"

	"anoa.com/lifesaver/internal/entity"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const contactIndex = "contacts"

var indexSanitizer = bluemonday.StrictPolicy()

// cleanForIndex strips any markup a client smuggled into a text field before
// it lands in the search index, then normalizes whitespace.
func cleanForIndex(s string) string {
	clean := html.UnescapeString(indexSanitizer.Sanitize(s))
	return strings.Join(strings.Fields(clean), " ")
}

// ContactSearchService mirrors the contact directory into Meilisearch so the
// app can search the safety network by name. It is optional: a nil service is
// a no-op everywhere so the pipeline works without a search backend.
type ContactSearchService interface {
	IndexContact(contact *entity.Contact) error
	RemoveContact(id string) error
	SearchContacts(query string) ([]ContactDoc, error)
}

type ContactDoc struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
	CreatedAt    int64  `json:"created_at"`
}

type contactSearchService struct {
	client meilisearch.ServiceManager
}

func NewContactSearchService(client meilisearch.ServiceManager) ContactSearchService {
	s := &contactSearchService{client: client}
	s.initIndex()
	return s
}

func (s *contactSearchService) initIndex() {
	sortableAttrs := []string{"created_at"}
	if _, err := s.client.Index(contactIndex).UpdateSortableAttributes(&sortableAttrs); err != nil {
		log.Printf("Failed to update contacts sortable attributes: %v", err)
	}

	searchableAttrs := []string{"name", "phone", "relationship"}
	if _, err := s.client.Index(contactIndex).UpdateSearchableAttributes(&searchableAttrs); err != nil {
		log.Printf("Failed to update contacts searchable attributes: %v", err)
	}
}

func (s *contactSearchService) IndexContact(contact *entity.Contact) error {
	doc := newContactDoc(contact)

	_, err := s.client.Index(contactIndex).AddDocuments([]ContactDoc{doc}, strPtr("id"))
	return err
}

func newContactDoc(contact *entity.Contact) ContactDoc {
	return ContactDoc{
		ID:           contact.ID.String(),
		Name:         cleanForIndex(contact.Name),
		Phone:        cleanForIndex(contact.Phone),
		Relationship: cleanForIndex(contact.Relationship),
		CreatedAt:    contact.CreatedAt.Unix(),
	}
}

func strPtr(s string) *string {
	return &s
}

func (s *contactSearchService) RemoveContact(id string) error {
	_, err := s.client.Index(contactIndex).DeleteDocument(id)
	return err
}

func (s *contactSearchService) SearchContacts(query string) ([]ContactDoc, error) {
	resp, err := s.client.Index(contactIndex).Search(query, &meilisearch.SearchRequest{
		Limit: 50,
	})
	if err != nil {
		return nil, err
	}

	docs := make([]ContactDoc, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			continue
		}
		var doc ContactDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}
		docs = append(docs, doc)
	}

	return docs, nil
}
