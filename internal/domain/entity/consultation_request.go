package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConsultationRequestStatus represents the lifecycle state of a request
type ConsultationRequestStatus string

const (
	ConsultationStatusPending   ConsultationRequestStatus = "pending"
	ConsultationStatusAccepted  ConsultationRequestStatus = "accepted"
	ConsultationStatusRejected  ConsultationRequestStatus = "rejected"
	ConsultationStatusCompleted ConsultationRequestStatus = "completed"
)

// ConsultationType is the requested consultation channel
type ConsultationType string

const (
	ConsultationTypeVideo ConsultationType = "video"
	ConsultationTypeChat  ConsultationType = "chat"
)

// ConsultationRequest is a patient's ask for care, independent of a specific
// slot. State machine: pending -> accepted|rejected (doctor only);
// accepted -> completed (prescription issuance). rejected and completed are
// terminal.
type ConsultationRequest struct {
	ID               uuid.UUID                 `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID        uuid.UUID                 `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID         uuid.UUID                 `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Symptoms         string                    `gorm:"type:text;not null" json:"symptoms"`
	ConsultationType ConsultationType          `gorm:"type:varchar(10);not null;default:'video'" json:"consultation_type"`
	Status           ConsultationRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	RequestMessage   string                    `gorm:"type:text" json:"request_message,omitempty"`
	DoctorResponse   string                    `gorm:"type:text" json:"doctor_response,omitempty"`
	ScheduledTime    *time.Time                `json:"scheduled_time,omitempty"`
	CreatedAt        time.Time                 `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt        time.Time                 `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (ConsultationRequest) TableName() string {
	return "consultation_requests"
}

func (r *ConsultationRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IsPending checks if the request still awaits a doctor response
func (r *ConsultationRequest) IsPending() bool {
	return r.Status == ConsultationStatusPending
}

// IsAccepted checks if the doctor accepted the request
func (r *ConsultationRequest) IsAccepted() bool {
	return r.Status == ConsultationStatusAccepted
}

// IsTerminal checks if no further transition is possible
func (r *ConsultationRequest) IsTerminal() bool {
	return r.Status == ConsultationStatusRejected || r.Status == ConsultationStatusCompleted
}
