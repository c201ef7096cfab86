package repository

import (
	"telemed-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	Create(db *gorm.DB, prescription *entity.Prescription) error
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Prescription, error)
	FindByRequestID(db *gorm.DB, requestID uuid.UUID) (*entity.Prescription, error)
}
