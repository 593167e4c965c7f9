package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MedicalInfo is the medical card shown to first responders.
type MedicalInfo struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name                  string    `gorm:"size:100;not null" json:"name"`
	BloodGroup            string    `gorm:"size:10;not null" json:"blood_group"`
	Allergies             *string   `gorm:"type:text" json:"allergies,omitempty"`
	MedicalConditions     *string   `gorm:"type:text" json:"medical_conditions,omitempty"`
	Medications           *string   `gorm:"type:text" json:"medications,omitempty"`
	EmergencyContactName  string    `gorm:"size:100;not null" json:"emergency_contact_name"`
	EmergencyContactPhone string    `gorm:"size:32;not null" json:"emergency_contact_phone"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (m *MedicalInfo) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID, err = uuid.NewV7()
	}
	return
}

// MedicalAttachment is an uploaded document photo (prescription, insurance
// card). Rows without a MedicalInfoID past the orphan cutoff are swept.
type MedicalAttachment struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	MedicalInfoID *uuid.UUID `gorm:"type:uuid;index" json:"medical_info_id,omitempty"`
	FileURL       string     `gorm:"size:512;not null" json:"file_url"`
	FileName      string     `gorm:"size:255;not null" json:"file_name"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
