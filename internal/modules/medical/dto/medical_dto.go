package dto

type MedicalInfoRequest struct {
	Name                  string  `json:"name" binding:"required,max=100"`
	BloodGroup            string  `json:"blood_group" binding:"required,max=10"`
	Allergies             *string `json:"allergies,omitempty"`
	MedicalConditions     *string `json:"medical_conditions,omitempty"`
	Medications           *string `json:"medications,omitempty"`
	EmergencyContactName  string  `json:"emergency_contact_name" binding:"required,max=100"`
	EmergencyContactPhone string  `json:"emergency_contact_phone" binding:"required,max=32"`
}

type MedicalInfoURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}
