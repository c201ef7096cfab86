package repository

import (
	"time"

	"telemed-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID, fromDate time.Time) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, fromDate time.Time, limit int) ([]entity.Appointment, error)

	// Cancel transitions confirmed -> cancelled. Returns affected rows:
	// 0 means the appointment was already cancelled or completed.
	Cancel(db *gorm.DB, id uuid.UUID) (int64, error)
}
