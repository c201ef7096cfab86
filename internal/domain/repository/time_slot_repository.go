package repository

import (
	"time"

	"telemed-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TimeSlotRepository interface {
	Create(db *gorm.DB, slot *entity.TimeSlot) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.TimeSlot, error)
	FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.TimeSlot, error)
	FindAvailable(db *gorm.DB, filter *entity.AvailabilityFilter) ([]entity.TimeSlot, error)

	// Claim atomically transitions available -> booked and sets the patient.
	// Returns affected rows: 1 = won the slot, 0 = lost the race.
	Claim(db *gorm.DB, id uuid.UUID, patientID uuid.UUID) (int64, error)

	// Release atomically transitions booked -> available and clears the
	// patient and request links. Returns affected rows.
	Release(db *gorm.DB, id uuid.UUID) (int64, error)

	// UpdateStatus performs a conditional from -> to transition.
	// Returns affected rows so callers can detect a state machine violation.
	UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.TimeSlotStatus) (int64, error)

	LinkRequest(db *gorm.DB, id uuid.UUID, requestID uuid.UUID) error

	// DeleteIfNotBooked removes a slot unless it holds a booking.
	DeleteIfNotBooked(db *gorm.DB, id uuid.UUID) (int64, error)
}
