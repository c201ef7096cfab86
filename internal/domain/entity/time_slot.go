package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeSlotStatus represents the state of a bookable time slot
type TimeSlotStatus string

const (
	TimeSlotStatusAvailable TimeSlotStatus = "available"
	TimeSlotStatusBooked    TimeSlotStatus = "booked"
	TimeSlotStatusBlocked   TimeSlotStatus = "blocked"
)

// TimeSlot represents one bookable time window owned by a doctor on a date.
// Invariant: PatientID is set exactly when Status is booked.
// (DoctorID, Date, StartTime) is unique per slot.
type TimeSlot struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	DoctorID              uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_doctor_date_start" json:"doctor_id"`
	Date                  time.Time      `gorm:"type:date;not null;index;uniqueIndex:idx_doctor_date_start" json:"date"`
	StartTime             string         `gorm:"type:time;not null;uniqueIndex:idx_doctor_date_start" json:"start_time"`
	EndTime               string         `gorm:"type:time;not null" json:"end_time"`
	Status                TimeSlotStatus `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	PatientID             *uuid.UUID     `gorm:"type:uuid;index" json:"patient_id,omitempty"`
	ConsultationRequestID *uuid.UUID     `gorm:"type:uuid" json:"consultation_request_id,omitempty"`
	Notes                 string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt             time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  DoctorProfile   `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient *PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (TimeSlot) TableName() string {
	return "time_slots"
}

func (s *TimeSlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// IsAvailable checks if the slot can be booked
func (s *TimeSlot) IsAvailable() bool {
	return s.Status == TimeSlotStatusAvailable
}

// IsBooked checks if the slot holds a confirmed booking
func (s *TimeSlot) IsBooked() bool {
	return s.Status == TimeSlotStatusBooked
}

// IsBlocked checks if the doctor has blocked the slot
func (s *TimeSlot) IsBlocked() bool {
	return s.Status == TimeSlotStatusBlocked
}
