package repository

import (
	"errors"

	"telemed-scheduling/internal/domain/entity"
	domainRepo "telemed-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type prescriptionRepository struct{}

func NewPrescriptionRepository() domainRepo.PrescriptionRepository {
	return &prescriptionRepository{}
}

func (r *prescriptionRepository) Create(db *gorm.DB, prescription *entity.Prescription) error {
	return db.Create(prescription).Error
}

func (r *prescriptionRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	err := db.Preload("Doctor.User").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) FindByRequestID(db *gorm.DB, requestID uuid.UUID) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := db.Where("consultation_request_id = ?", requestID).First(&prescription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}
