package repository

import (
	"telemed-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConsultationRequestRepository interface {
	Create(db *gorm.DB, request *entity.ConsultationRequest) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.ConsultationRequest, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, status entity.ConsultationRequestStatus) ([]entity.ConsultationRequest, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.ConsultationRequest, error)

	// Respond transitions pending -> accepted|rejected and stores the doctor
	// response. Returns affected rows: 0 means the request was not pending.
	Respond(db *gorm.DB, id uuid.UUID, status entity.ConsultationRequestStatus, response string) (int64, error)

	// MarkCompleted transitions accepted -> completed. Returns affected rows:
	// 0 means the request was not accepted.
	MarkCompleted(db *gorm.DB, id uuid.UUID) (int64, error)
}
