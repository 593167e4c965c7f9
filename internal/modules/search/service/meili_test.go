package search

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"anoa.com/lifesaver/internal/entity"
)

func TestCleanForIndex(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Alice", "Alice"},
		{"<script>alert(1)</script>Alice", "Alice"},
		{"<b>Mom</b>", "Mom"},
		{"  spaced   out  ", "spaced out"},
		{"O&amp;Malley", "O&Malley"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, cleanForIndex(tc.in))
	}
}

func TestNewContactDoc(t *testing.T) {
	id := uuid.New()
	now := time.Now()

	doc := newContactDoc(&entity.Contact{
		ID:           id,
		Name:         "<img src=x onerror=alert(1)>Dana",
		Phone:        "+1-555-0100",
		Relationship: "<i>sister</i>",
		CreatedAt:    now,
	})

	assert.Equal(t, id.String(), doc.ID)
	assert.Equal(t, "Dana", doc.Name)
	assert.Equal(t, "+1-555-0100", doc.Phone)
	assert.Equal(t, "sister", doc.Relationship)
	assert.Equal(t, now.Unix(), doc.CreatedAt)
}
