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
	ErrSlotNotFound     = apperr.New(apperr.KindNotFound, "slot not found")
	ErrSlotNotOwned     = apperr.New(apperr.KindValidation, "slot does not belong to you")
	ErrInvalidSlotDate  = apperr.New(apperr.KindValidation, "invalid date format, use YYYY-MM-DD")
	ErrInvalidSlotTime  = apperr.New(apperr.KindValidation, "invalid time format, use HH:MM")
	ErrSlotTimeOrder    = apperr.New(apperr.KindValidation, "start time must be before end time")
	ErrSlotInPast       = apperr.New(apperr.KindValidation, "cannot create a slot on a past date")
	ErrDuplicateSlot    = apperr.New(apperr.KindValidation, "a slot already exists at this time")
	ErrSlotNotDeletable = apperr.New(apperr.KindInvalidTransition, "booked slots cannot be deleted")
	ErrSlotTransition   = apperr.New(apperr.KindInvalidTransition, "slot cannot change state from its current status")
	ErrNoUserInContext  = apperr.New(apperr.KindValidation, "user not found in context")
)

type TimeSlotUsecase interface {
	CreateSlot(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error)
	SetBlocked(ctx context.Context, slotID uuid.UUID, blocked bool) (*dto.SlotResponse, error)
	DeleteSlot(ctx context.Context, slotID uuid.UUID) error
	GetMySlots(ctx context.Context, date string) (*dto.SlotListResponse, error)
	ListAvailable(ctx context.Context, filter *entity.AvailabilityFilter) (*dto.SlotListResponse, error)
	AvailabilitySummary(ctx context.Context, date string) (*dto.AvailabilitySummaryResponse, error)
}

type timeSlotUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	slotRepo     repository.TimeSlotRepository
	slotCache    SlotCache
	auditService *service.AuditService
	now          func() time.Time
}

func NewTimeSlotUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	slotRepo repository.TimeSlotRepository,
	slotCache SlotCache,
	auditService *service.AuditService,
) TimeSlotUsecase {
	return &timeSlotUsecase{
		db:           db,
		log:          log,
		slotRepo:     slotRepo,
		slotCache:    slotCache,
		auditService: auditService,
		now:          time.Now,
	}
}

// CreateSlot publishes a new bookable window for the logged-in doctor.
// The (doctor, date, start) unique index is the real duplicate guard; the
// usecase only translates the violation into a business error.
func (u *timeSlotUsecase) CreateSlot(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoUserInContext
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidSlotDate
	}

	startTime, err := time.Parse("15:04", req.StartTime)
	if err != nil {
		return nil, ErrInvalidSlotTime
	}
	endTime, err := time.Parse("15:04", req.EndTime)
	if err != nil {
		return nil, ErrInvalidSlotTime
	}
	if !startTime.Before(endTime) {
		return nil, ErrSlotTimeOrder
	}

	today := u.now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		return nil, ErrSlotInPast
	}

	slot := &entity.TimeSlot{
		DoctorID:  doctorID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    entity.TimeSlotStatusAvailable,
		Notes:     req.Notes,
	}

	if err := u.slotRepo.Create(u.db.WithContext(ctx), slot); err != nil {
		if isDuplicateKeyError(err, "idx_doctor_date_start") {
			return nil, ErrDuplicateSlot
		}
		u.log.Warnf("Failed to create slot for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	u.auditService.SlotCreated(u.db.WithContext(ctx), doctorID, slot)
	u.syncDayCache(doctorID, date)

	u.log.Infof("Slot created: id=%s, doctor=%s, date=%s %s-%s", slot.ID, doctorID, req.Date, req.StartTime, req.EndTime)
	return converter.SlotToResponse(slot), nil
}

// SetBlocked toggles a slot between available and blocked. The transition is
// a conditional update, so a slot that was booked in the meantime is left
// untouched and the caller gets a state error.
func (u *timeSlotUsecase) SetBlocked(ctx context.Context, slotID uuid.UUID, blocked bool) (*dto.SlotResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoUserInContext
	}

	slot, err := u.slotRepo.FindByID(u.db.WithContext(ctx), slotID)
	if err != nil {
		u.log.Warnf("Failed to find slot %s: %+v", slotID, err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}
	if slot.DoctorID != doctorID {
		return nil, ErrSlotNotOwned
	}

	from, to := entity.TimeSlotStatusAvailable, entity.TimeSlotStatusBlocked
	if !blocked {
		from, to = entity.TimeSlotStatusBlocked, entity.TimeSlotStatusAvailable
	}

	affected, err := u.slotRepo.UpdateStatus(u.db.WithContext(ctx), slotID, from, to)
	if err != nil {
		u.log.Warnf("Failed to update slot %s status: %+v", slotID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrSlotTransition
	}

	u.auditService.SlotBlocked(u.db.WithContext(ctx), doctorID, slotID, blocked)

	// Counter moves opposite to the slot's availability
	if blocked {
		u.reserveCache(slot.DoctorID, slot.Date)
	} else {
		u.restoreCache(slot.DoctorID, slot.Date)
	}

	slot.Status = to
	u.log.Infof("Slot %s transitioned %s -> %s by doctor %s", slotID, from, to, doctorID)
	return converter.SlotToResponse(slot), nil
}

// DeleteSlot removes an unbooked slot. Booked slots must be cancelled
// through the appointment, never deleted out from under the patient.
func (u *timeSlotUsecase) DeleteSlot(ctx context.Context, slotID uuid.UUID) error {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return ErrNoUserInContext
	}

	slot, err := u.slotRepo.FindByID(u.db.WithContext(ctx), slotID)
	if err != nil {
		u.log.Warnf("Failed to find slot %s: %+v", slotID, err)
		return err
	}
	if slot == nil {
		return ErrSlotNotFound
	}
	if slot.DoctorID != doctorID {
		return ErrSlotNotOwned
	}

	affected, err := u.slotRepo.DeleteIfNotBooked(u.db.WithContext(ctx), slotID)
	if err != nil {
		u.log.Warnf("Failed to delete slot %s: %+v", slotID, err)
		return err
	}
	if affected == 0 {
		return ErrSlotNotDeletable
	}

	u.auditService.SlotDeleted(u.db.WithContext(ctx), doctorID, slotID)
	u.syncDayCache(slot.DoctorID, slot.Date)

	u.log.Infof("Slot deleted: id=%s, doctor=%s", slotID, doctorID)
	return nil
}

// GetMySlots returns the logged-in doctor's slots for one date, all
// statuses included so the doctor sees the full day.
func (u *timeSlotUsecase) GetMySlots(ctx context.Context, date string) (*dto.SlotListResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoUserInContext
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidSlotDate
	}

	slots, err := u.slotRepo.FindByDoctorAndDate(u.db.WithContext(ctx), doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to find slots for doctor %s on %s: %+v", doctorID, date, err)
		return nil, err
	}

	return &dto.SlotListResponse{
		Slots: converter.SlotsToResponses(slots),
		Total: len(slots),
	}, nil
}

// ListAvailable returns open slots matching the filter, for the patient
// browse and booking flow.
func (u *timeSlotUsecase) ListAvailable(ctx context.Context, filter *entity.AvailabilityFilter) (*dto.SlotListResponse, error) {
	if filter.Date != "" {
		if _, err := time.Parse("2006-01-02", filter.Date); err != nil {
			return nil, ErrInvalidSlotDate
		}
	}

	slots, err := u.slotRepo.FindAvailable(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find available slots: %+v", err)
		return nil, err
	}

	return &dto.SlotListResponse{
		Slots: converter.SlotsToResponses(slots),
		Total: len(slots),
	}, nil
}

// AvailabilitySummary reads per-doctor open slot counts for a date from the
// cache. Counts may trail the store by a moment; the booking path does its
// own authoritative check.
func (u *timeSlotUsecase) AvailabilitySummary(ctx context.Context, date string) (*dto.AvailabilitySummaryResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidSlotDate
	}

	counts, err := u.slotCache.DayCounts(ctx, day)
	if err != nil {
		u.log.Warnf("Failed to read availability summary for %s: %+v", date, err)
		return nil, err
	}

	doctors := make([]dto.DoctorDaySummaryEntry, 0, len(counts))
	for doctorID, count := range counts {
		doctors = append(doctors, dto.DoctorDaySummaryEntry{
			DoctorID:       doctorID,
			AvailableSlots: count,
		})
	}

	return &dto.AvailabilitySummaryResponse{
		Date:    date,
		Doctors: doctors,
	}, nil
}

// Cache adjustments run detached from the request context so a client
// disconnect cannot strand a counter mid-update.

func (u *timeSlotUsecase) syncDayCache(doctorID uuid.UUID, date time.Time) {
	syncCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := u.slotCache.SyncDay(syncCtx, doctorID, date); err != nil {
		u.log.Warnf("Failed to sync slot counter for doctor %s (non-fatal): %+v", doctorID, err)
	}
}

func (u *timeSlotUsecase) reserveCache(doctorID uuid.UUID, date time.Time) {
	syncCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := u.slotCache.Reserve(syncCtx, doctorID, date); err != nil {
		u.log.Warnf("Failed to decrement slot counter for doctor %s (non-fatal): %+v", doctorID, err)
	}
}

func (u *timeSlotUsecase) restoreCache(doctorID uuid.UUID, date time.Time) {
	syncCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := u.slotCache.Restore(syncCtx, doctorID, date); err != nil {
		u.log.Warnf("Failed to increment slot counter for doctor %s (non-fatal): %+v", doctorID, err)
	}
}
