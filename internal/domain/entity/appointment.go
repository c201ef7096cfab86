package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus represents the status of a confirmed appointment
type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment pairs a booked TimeSlot with an accepted ConsultationRequest.
// SlotID is stored explicitly so cancellation reverts exactly the slot this
// appointment occupies, even when a patient holds several bookings.
type Appointment struct {
	ID                    uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	DoctorID              uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID             uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	ConsultationRequestID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex" json:"consultation_request_id"`
	SlotID                uuid.UUID         `gorm:"type:uuid;not null;index" json:"slot_id"`
	ScheduledDate         time.Time         `gorm:"type:date;not null;index" json:"scheduled_date"`
	ScheduledTime         string            `gorm:"type:time;not null" json:"scheduled_time"`
	AppointmentType       ConsultationType  `gorm:"type:varchar(10);not null;default:'video'" json:"appointment_type"`
	Status                AppointmentStatus `gorm:"type:varchar(20);not null;default:'confirmed';index" json:"status"`
	Notes                 string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt             time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor              DoctorProfile       `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient             PatientProfile      `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	ConsultationRequest ConsultationRequest `gorm:"foreignKey:ConsultationRequestID" json:"consultation_request,omitempty"`
	Slot                TimeSlot            `gorm:"foreignKey:SlotID" json:"slot,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// IsConfirmed checks if the appointment is still upcoming
func (a *Appointment) IsConfirmed() bool {
	return a.Status == AppointmentStatusConfirmed
}

// IsCancelled checks if the appointment was cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}
