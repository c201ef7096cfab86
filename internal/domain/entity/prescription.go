package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Prescription is the care record a doctor issues to close a consultation.
// Created only for an accepted request; at most one per request; immutable
// once written (no update path exists anywhere in the service).
type Prescription struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ConsultationRequestID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"consultation_request_id"`
	PatientID             uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID              uuid.UUID  `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Medications           string     `gorm:"type:text;not null" json:"medications"`
	DosageInstructions    string     `gorm:"type:text;not null" json:"dosage_instructions"`
	HealthTips            string     `gorm:"type:text" json:"health_tips,omitempty"`
	FollowUpDate          *time.Time `gorm:"type:date" json:"follow_up_date,omitempty"`
	Notes                 string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt             time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	ConsultationRequest ConsultationRequest `gorm:"foreignKey:ConsultationRequestID" json:"consultation_request,omitempty"`
	Patient             PatientProfile      `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor              DoctorProfile       `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

func (p *Prescription) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
