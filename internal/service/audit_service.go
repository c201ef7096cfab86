package service

import (
	"telemed-scheduling/internal/domain/entity"
	"telemed-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService records who did what. Failures are logged and swallowed so an
// audit write never rolls back a business transaction.
type AuditService struct {
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditLogRepo repository.AuditLogRepository) *AuditService {
	return &AuditService{
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (s *AuditService) record(db *gorm.DB, userID *uuid.UUID, action string, payload map[string]interface{}) {
	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: entity.JSON(payload),
	}
	if err := s.auditLogRepo.Create(db, auditLog); err != nil {
		s.log.Warnf("Failed to write audit log for action %s: %+v", action, err)
	}
}

func (s *AuditService) SlotCreated(db *gorm.DB, doctorUserID uuid.UUID, slot *entity.TimeSlot) {
	s.record(db, &doctorUserID, entity.AuditActionSlotCreate, map[string]interface{}{
		"slot_id":    slot.ID.String(),
		"doctor_id":  slot.DoctorID.String(),
		"date":       slot.Date.Format("2006-01-02"),
		"start_time": slot.StartTime,
		"end_time":   slot.EndTime,
	})
}

func (s *AuditService) SlotBlocked(db *gorm.DB, doctorUserID uuid.UUID, slotID uuid.UUID, blocked bool) {
	action := entity.AuditActionSlotBlock
	if !blocked {
		action = entity.AuditActionSlotUnblock
	}
	s.record(db, &doctorUserID, action, map[string]interface{}{
		"slot_id": slotID.String(),
	})
}

func (s *AuditService) SlotDeleted(db *gorm.DB, doctorUserID uuid.UUID, slotID uuid.UUID) {
	s.record(db, &doctorUserID, entity.AuditActionSlotDelete, map[string]interface{}{
		"slot_id": slotID.String(),
	})
}

func (s *AuditService) AppointmentBooked(db *gorm.DB, patientUserID uuid.UUID, appointment *entity.Appointment) {
	s.record(db, &patientUserID, entity.AuditActionAppointmentBook, map[string]interface{}{
		"appointment_id": appointment.ID.String(),
		"slot_id":        appointment.SlotID.String(),
		"doctor_id":      appointment.DoctorID.String(),
		"request_id":     appointment.ConsultationRequestID.String(),
	})
}

func (s *AuditService) AppointmentCancelled(db *gorm.DB, actorUserID uuid.UUID, appointment *entity.Appointment) {
	s.record(db, &actorUserID, entity.AuditActionAppointmentCancel, map[string]interface{}{
		"appointment_id": appointment.ID.String(),
		"slot_id":        appointment.SlotID.String(),
	})
}

func (s *AuditService) RequestSubmitted(db *gorm.DB, patientUserID uuid.UUID, request *entity.ConsultationRequest) {
	s.record(db, &patientUserID, entity.AuditActionRequestSubmit, map[string]interface{}{
		"request_id": request.ID.String(),
		"doctor_id":  request.DoctorID.String(),
		"type":       string(request.ConsultationType),
	})
}

func (s *AuditService) RequestResponded(db *gorm.DB, doctorUserID uuid.UUID, requestID uuid.UUID, status entity.ConsultationRequestStatus) {
	s.record(db, &doctorUserID, entity.AuditActionRequestRespond, map[string]interface{}{
		"request_id": requestID.String(),
		"status":     string(status),
	})
}

func (s *AuditService) RequestCompleted(db *gorm.DB, doctorUserID uuid.UUID, requestID uuid.UUID, prescriptionID uuid.UUID) {
	s.record(db, &doctorUserID, entity.AuditActionRequestComplete, map[string]interface{}{
		"request_id":      requestID.String(),
		"prescription_id": prescriptionID.String(),
	})
}

func (s *AuditService) DoctorProfileUpdated(db *gorm.DB, doctorUserID uuid.UUID) {
	s.record(db, &doctorUserID, entity.AuditActionDoctorProfileUpdate, nil)
}

func (s *AuditService) UserLoggedIn(db *gorm.DB, userID uuid.UUID) {
	s.record(db, &userID, entity.AuditActionUserLogin, nil)
}

func (s *AuditService) UserLoggedOut(db *gorm.DB, userID uuid.UUID) {
	s.record(db, &userID, entity.AuditActionUserLogout, nil)
}

func (s *AuditService) UserRegistered(db *gorm.DB, userID uuid.UUID, role string) {
	s.record(db, &userID, entity.AuditActionUserRegister, map[string]interface{}{
		"role": role,
	})
}
