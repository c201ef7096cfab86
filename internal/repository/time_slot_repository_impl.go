package repository

import (
	"errors"
	"time"

	"telemed-scheduling/internal/domain/entity"
	domainRepo "telemed-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type timeSlotRepository struct{}

func NewTimeSlotRepository() domainRepo.TimeSlotRepository {
	return &timeSlotRepository{}
}

func (r *timeSlotRepository) Create(db *gorm.DB, slot *entity.TimeSlot) error {
	return db.Create(slot).Error
}

func (r *timeSlotRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.TimeSlot, error) {
	var slot entity.TimeSlot
	err := db.Preload("Doctor.User").Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *timeSlotRepository) FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.TimeSlot, error) {
	var slots []entity.TimeSlot
	err := db.Where("doctor_id = ? AND date = ?", doctorID, date).
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// FindAvailable returns open slots for the date joined with active doctor
// profiles. Supports optional filters: doctor name and specialization.
func (r *timeSlotRepository) FindAvailable(db *gorm.DB, filter *entity.AvailabilityFilter) ([]entity.TimeSlot, error) {
	var slots []entity.TimeSlot
	query := db.
		Joins("JOIN doctor_profiles ON doctor_profiles.user_id = time_slots.doctor_id").
		Joins("JOIN users ON users.id = doctor_profiles.user_id").
		Where("time_slots.status = ?", entity.TimeSlotStatusAvailable).
		Where("users.is_active = ?", true).
		Where("doctor_profiles.available = ?", true)

	if filter != nil {
		if filter.Date != "" {
			query = query.Where("time_slots.date = ?", filter.Date)
		}
		if filter.DoctorName != "" {
			query = query.Where("users.full_name ILIKE ?", "%"+filter.DoctorName+"%")
		}
		if filter.Specialization != "" {
			query = query.Where("doctor_profiles.specialization ILIKE ?", "%"+filter.Specialization+"%")
		}
	}

	err := query.
		Preload("Doctor").Preload("Doctor.User").
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// Claim is the compare-and-set that prevents double-booking: the status
// predicate and the write happen in one statement, so of two racing callers
// exactly one sees RowsAffected == 1.
func (r *timeSlotRepository) Claim(db *gorm.DB, id uuid.UUID, patientID uuid.UUID) (int64, error) {
	result := db.Model(&entity.TimeSlot{}).
		Where("id = ? AND status = ?", id, entity.TimeSlotStatusAvailable).
		Updates(map[string]interface{}{
			"status":     entity.TimeSlotStatusBooked,
			"patient_id": patientID,
		})
	return result.RowsAffected, result.Error
}

func (r *timeSlotRepository) Release(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.TimeSlot{}).
		Where("id = ? AND status = ?", id, entity.TimeSlotStatusBooked).
		Updates(map[string]interface{}{
			"status":                  entity.TimeSlotStatusAvailable,
			"patient_id":              nil,
			"consultation_request_id": nil,
		})
	return result.RowsAffected, result.Error
}

func (r *timeSlotRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.TimeSlotStatus) (int64, error) {
	result := db.Model(&entity.TimeSlot{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *timeSlotRepository) LinkRequest(db *gorm.DB, id uuid.UUID, requestID uuid.UUID) error {
	return db.Model(&entity.TimeSlot{}).
		Where("id = ?", id).
		Update("consultation_request_id", requestID).Error
}

func (r *timeSlotRepository) DeleteIfNotBooked(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ? AND status != ?", id, entity.TimeSlotStatusBooked).
		Delete(&entity.TimeSlot{})
	return result.RowsAffected, result.Error
}
