package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact is one member of the user's safety network. Phone is the routing key
// for notification fanout. IsSelf marks the owner's own number so fanout can
// skip it without guessing from the relationship text.
type Contact struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Phone        string    `gorm:"size:32;not null;index" json:"phone"`
	Relationship string    `gorm:"size:50;not null" json:"relationship"`
	Email        *string   `gorm:"size:255" json:"email,omitempty"`
	IsSelf       bool      `gorm:"default:false" json:"is_self"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (c *Contact) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}
