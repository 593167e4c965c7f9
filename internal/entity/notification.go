package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is one recipient's copy of an alert, created at fanout time.
// IsRead only ever flips false to true, and only through the inbox service.
type Notification struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AlertID        uuid.UUID `gorm:"type:uuid;not null;index" json:"alert_id"`
	RecipientPhone string    `gorm:"size:32;not null;index:idx_notifications_inbox" json:"recipient_phone"`
	SenderName     string    `gorm:"size:100;not null" json:"sender_name"`
	Message        string    `gorm:"type:text" json:"message"`
	Latitude       float64   `gorm:"not null" json:"latitude"`
	Longitude      float64   `gorm:"not null" json:"longitude"`
	IsRead         bool      `gorm:"default:false;index:idx_notifications_inbox" json:"read"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID, err = uuid.NewV7()
	}
	return
}
