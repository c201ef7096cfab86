package repository

import (
	"errors"

	"telemed-scheduling/internal/domain/entity"
	domainRepo "telemed-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type consultationRequestRepository struct{}

func NewConsultationRequestRepository() domainRepo.ConsultationRequestRepository {
	return &consultationRequestRepository{}
}

func (r *consultationRequestRepository) Create(db *gorm.DB, request *entity.ConsultationRequest) error {
	return db.Create(request).Error
}

func (r *consultationRequestRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.ConsultationRequest, error) {
	var request entity.ConsultationRequest
	err := db.Where("id = ?", id).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *consultationRequestRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, status entity.ConsultationRequestStatus) ([]entity.ConsultationRequest, error) {
	var requests []entity.ConsultationRequest
	query := db.Preload("Patient.User").Where("doctor_id = ?", doctorID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *consultationRequestRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.ConsultationRequest, error) {
	var requests []entity.ConsultationRequest
	err := db.Preload("Doctor.User").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// Respond updates a request ONLY while it is still pending, so a second
// response (or a response after completion) affects zero rows.
func (r *consultationRequestRepository) Respond(db *gorm.DB, id uuid.UUID, status entity.ConsultationRequestStatus, response string) (int64, error) {
	result := db.Model(&entity.ConsultationRequest{}).
		Where("id = ? AND status = ?", id, entity.ConsultationStatusPending).
		Updates(map[string]interface{}{
			"status":          status,
			"doctor_response": response,
		})
	return result.RowsAffected, result.Error
}

func (r *consultationRequestRepository) MarkCompleted(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.ConsultationRequest{}).
		Where("id = ? AND status = ?", id, entity.ConsultationStatusAccepted).
		Update("status", entity.ConsultationStatusCompleted)
	return result.RowsAffected, result.Error
}
