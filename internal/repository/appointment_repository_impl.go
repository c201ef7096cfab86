package repository

import (
	"errors"
	"time"

	"telemed-scheduling/internal/domain/entity"
	domainRepo "telemed-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Doctor.User").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID, fromDate time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor.User").
		Where("patient_id = ? AND scheduled_date >= ?", patientID, fromDate).
		Order("scheduled_date ASC, scheduled_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, fromDate time.Time, limit int) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Preload("Patient.User").
		Where("doctor_id = ? AND scheduled_date >= ?", doctorID, fromDate).
		Order("scheduled_date ASC, scheduled_time ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// Cancel only transitions out of confirmed, which makes a double-cancel
// affect zero rows.
func (r *appointmentRepository) Cancel(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.AppointmentStatusConfirmed).
		Update("status", entity.AppointmentStatusCancelled)
	return result.RowsAffected, result.Error
}
