package usecase

import (
	"context"
	"time"

	"telemed-scheduling/internal/converter"
	"telemed-scheduling/internal/delivery/dto"
	"telemed-scheduling/internal/delivery/http/middleware"
	"telemed-scheduling/internal/domain/entity"
	"telemed-scheduling/internal/domain/repository"
	"telemed-scheduling/internal/service"
	"telemed-scheduling/pkg/apperr"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSlotTaken                 = apperr.New(apperr.KindSlotUnavailable, "slot is no longer available")
	ErrSlotDatePast              = apperr.New(apperr.KindValidation, "cannot book a slot on a past date")
	ErrAppointmentNotFound       = apperr.New(apperr.KindNotFound, "appointment not found")
	ErrAppointmentNotOwned       = apperr.New(apperr.KindValidation, "appointment does not belong to you")
	ErrAppointmentNotCancellable = apperr.New(apperr.KindInvalidTransition, "appointment is already cancelled or completed")
)

type BookingUsecase interface {
	BookSlot(ctx context.Context, req *dto.BookSlotRequest) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error
	GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetDoctorAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
}

type bookingUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	slotRepo        repository.TimeSlotRepository
	requestRepo     repository.ConsultationRequestRepository
	appointmentRepo repository.AppointmentRepository
	slotCache       SlotCache
	auditService    *service.AuditService
	now             func() time.Time
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	slotRepo repository.TimeSlotRepository,
	requestRepo repository.ConsultationRequestRepository,
	appointmentRepo repository.AppointmentRepository,
	slotCache SlotCache,
	auditService *service.AuditService,
) BookingUsecase {
	return &bookingUsecase{
		db:              db,
		log:             log,
		slotRepo:        slotRepo,
		requestRepo:     requestRepo,
		appointmentRepo: appointmentRepo,
		slotCache:       slotCache,
		auditService:    auditService,
		now:             time.Now,
	}
}

// BookSlot books an open slot for the logged-in patient.
//
// The whole write runs in one transaction so a half-booked state can never
// be observed:
//  1. Conditional claim available -> booked. Zero rows means another
//     patient won the slot and the caller must pick a different one.
//  2. Create the consultation request directly in accepted state. Direct
//     booking carries the doctor's implicit acceptance.
//  3. Create the confirmed appointment, pinning the slot id so cancellation
//     later reverts exactly this slot.
//  4. Link the slot back to the request.
func (u *bookingUsecase) BookSlot(ctx context.Context, req *dto.BookSlotRequest) (*dto.AppointmentResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoUserInContext
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	slot, err := u.slotRepo.FindByID(tx, req.SlotID)
	if err != nil {
		u.log.Warnf("Failed to find slot %s: %+v", req.SlotID, err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	today := u.now().UTC().Truncate(24 * time.Hour)
	if slot.Date.Before(today) {
		return nil, ErrSlotDatePast
	}

	// Step 1: atomic claim. This is the only guard against double booking;
	// no prior status check can substitute for it.
	affected, err := u.slotRepo.Claim(tx, req.SlotID, patientID)
	if err != nil {
		u.log.Warnf("Failed to claim slot %s: %+v", req.SlotID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrSlotTaken
	}

	// Step 2: consultation request, born accepted
	scheduledTime := combineDateTime(slot.Date, slot.StartTime)
	request := &entity.ConsultationRequest{
		PatientID:        patientID,
		DoctorID:         slot.DoctorID,
		Symptoms:         req.Symptoms,
		ConsultationType: entity.ConsultationType(req.ConsultationType),
		Status:           entity.ConsultationStatusAccepted,
		RequestMessage:   req.RequestMessage,
		ScheduledTime:    scheduledTime,
	}
	if err := u.requestRepo.Create(tx, request); err != nil {
		u.log.Warnf("Failed to create consultation request for slot %s: %+v", req.SlotID, err)
		return nil, err
	}

	// Step 3: confirmed appointment
	appointment := &entity.Appointment{
		DoctorID:              slot.DoctorID,
		PatientID:             patientID,
		ConsultationRequestID: request.ID,
		SlotID:                slot.ID,
		ScheduledDate:         slot.Date,
		ScheduledTime:         slot.StartTime,
		AppointmentType:       entity.ConsultationType(req.ConsultationType),
		Status:                entity.AppointmentStatusConfirmed,
	}
	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment for slot %s: %+v", req.SlotID, err)
		return nil, err
	}

	// Step 4: point the slot at its request
	if err := u.slotRepo.LinkRequest(tx, slot.ID, request.ID); err != nil {
		u.log.Warnf("Failed to link request %s to slot %s: %+v", request.ID, slot.ID, err)
		return nil, err
	}

	u.auditService.AppointmentBooked(tx, patientID, appointment)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit booking transaction: %+v", err)
		return nil, err
	}

	u.reserveCache(slot.DoctorID, slot.Date)

	u.log.Infof("Appointment booked: id=%s, slot=%s, patient=%s, doctor=%s", appointment.ID, slot.ID, patientID, slot.DoctorID)
	return converter.AppointmentToResponse(appointment), nil
}

// CancelAppointment cancels a confirmed appointment and releases its slot
// back to available. Either party to the appointment may cancel.
func (u *bookingUsecase) CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return ErrNoUserInContext
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.PatientID != userID && appointment.DoctorID != userID {
		return ErrAppointmentNotOwned
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.Cancel(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", appointmentID, err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotCancellable
	}

	// Release uses the pinned slot id so a patient with several bookings
	// always frees the right one
	released, err := u.slotRepo.Release(tx, appointment.SlotID)
	if err != nil {
		u.log.Warnf("Failed to release slot %s: %+v", appointment.SlotID, err)
		return err
	}
	if released == 0 {
		u.log.Warnf("Slot %s was not booked when cancelling appointment %s", appointment.SlotID, appointmentID)
	}

	u.auditService.AppointmentCancelled(tx, userID, appointment)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit cancellation transaction: %+v", err)
		return err
	}

	u.restoreCache(appointment.DoctorID, appointment.ScheduledDate)

	u.log.Infof("Appointment cancelled: id=%s, slot=%s, by=%s", appointmentID, appointment.SlotID, userID)
	return nil
}

// GetMyAppointments returns all appointments for the logged-in patient
func (u *bookingUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoUserInContext
	}

	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID, time.Time{})
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// GetDoctorAppointments returns the logged-in doctor's upcoming appointments
func (u *bookingUsecase) GetDoctorAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoUserInContext
	}

	today := u.now().UTC().Truncate(24 * time.Hour)
	appointments, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID, today, 100)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *bookingUsecase) reserveCache(doctorID uuid.UUID, date time.Time) {
	syncCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := u.slotCache.Reserve(syncCtx, doctorID, date); err != nil {
		u.log.Warnf("Failed to decrement slot counter for doctor %s (non-fatal): %+v", doctorID, err)
	}
}

func (u *bookingUsecase) restoreCache(doctorID uuid.UUID, date time.Time) {
	syncCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := u.slotCache.Restore(syncCtx, doctorID, date); err != nil {
		u.log.Warnf("Failed to increment slot counter for doctor %s (non-fatal): %+v", doctorID, err)
	}
}

// combineDateTime merges a date with an HH:MM or HH:MM:SS wall time
func combineDateTime(date time.Time, wallTime string) *time.Time {
	parsed, err := time.Parse("15:04:05", wallTime)
	if err != nil {
		parsed, err = time.Parse("15:04", wallTime)
		if err != nil {
			return nil
		}
	}
	combined := time.Date(date.Year(), date.Month(), date.Day(), parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
	return &combined
}
