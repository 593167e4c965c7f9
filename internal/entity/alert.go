package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const AlertStatusActive = "active"

// Alert is a single SOS event. Rows are write-once: no component updates or
// deletes an alert after creation.
type Alert struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SenderName string    `gorm:"size:100;not null" json:"sender_name"`
	Latitude   float64   `gorm:"not null" json:"latitude"`
	Longitude  float64   `gorm:"not null" json:"longitude"`
	Status     string    `gorm:"size:20;not null;default:active" json:"status"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (a *Alert) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID, err = uuid.NewV7()
	}
	if a.Status == "" {
		a.Status = AlertStatusActive
	}
	return
}
