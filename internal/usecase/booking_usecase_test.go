package usecase

import (
	"testing"
	"time"

	"telemed-scheduling/internal/delivery/dto"
	"telemed-scheduling/internal/domain/entity"
	"telemed-scheduling/internal/repository"
	"telemed-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBookingFixture(t *testing.T) (*bookingUsecase, *gorm.DB, *stubSlotCache) {
	t.Helper()

	db := setupTestDB(t)
	log := newTestLogger()
	cache := &stubSlotCache{}
	auditService := service.NewAuditService(log, repository.NewAuditLogRepository())

	uc := NewBookingUsecase(
		db,
		log,
		repository.NewTimeSlotRepository(),
		repository.NewConsultationRequestRepository(),
		repository.NewAppointmentRepository(),
		cache,
		auditService,
	).(*bookingUsecase)
	uc.now = fixedClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	return uc, db, cache
}

func TestBookSlot(t *testing.T) {
	uc, db, cache := newBookingFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Cardiology", 12)
	patient := createTestPatient(t, db, "Budi Santoso")
	slot := createTestSlot(t, db, doctor.UserID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "09:00", "09:30")

	resp, err := uc.BookSlot(ctxWithUser(patient.UserID), &dto.BookSlotRequest{
		SlotID:           slot.ID,
		Symptoms:         "chest pain, shortness of breath",
		ConsultationType: "video",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusConfirmed), resp.Status)
	assert.Equal(t, slot.ID, resp.SlotID)
	assert.Equal(t, "09:00", resp.ScheduledTime)
	assert.Equal(t, 1, cache.reserves)

	// Slot is claimed by the patient
	var storedSlot entity.TimeSlot
	require.NoError(t, db.First(&storedSlot, "id = ?", slot.ID).Error)
	assert.Equal(t, entity.TimeSlotStatusBooked, storedSlot.Status)
	require.NotNil(t, storedSlot.PatientID)
	assert.Equal(t, patient.UserID, *storedSlot.PatientID)
	require.NotNil(t, storedSlot.ConsultationRequestID)

	// The request is born accepted with a scheduled time
	var request entity.ConsultationRequest
	require.NoError(t, db.First(&request, "id = ?", *storedSlot.ConsultationRequestID).Error)
	assert.Equal(t, entity.ConsultationStatusAccepted, request.Status)
	assert.Equal(t, patient.UserID, request.PatientID)
	assert.Equal(t, doctor.UserID, request.DoctorID)
	require.NotNil(t, request.ScheduledTime)
	assert.Equal(t, 9, request.ScheduledTime.Hour())

	// The appointment pins the slot it occupies
	var appointment entity.Appointment
	require.NoError(t, db.First(&appointment, "id = ?", resp.ID).Error)
	assert.Equal(t, slot.ID, appointment.SlotID)
	assert.Equal(t, request.ID, appointment.ConsultationRequestID)
}

func TestBookSlotTaken(t *testing.T) {
	uc, db, _ := newBookingFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Cardiology", 12)
	first := createTestPatient(t, db, "Budi Santoso")
	second := createTestPatient(t, db, "Siti Rahma")
	slot := createTestSlot(t, db, doctor.UserID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "09:00", "09:30")

	_, err := uc.BookSlot(ctxWithUser(first.UserID), &dto.BookSlotRequest{
		SlotID:           slot.ID,
		Symptoms:         "headache",
		ConsultationType: "chat",
	})
	require.NoError(t, err)

	_, err = uc.BookSlot(ctxWithUser(second.UserID), &dto.BookSlotRequest{
		SlotID:           slot.ID,
		Symptoms:         "fever",
		ConsultationType: "video",
	})
	assert.ErrorIs(t, err, ErrSlotTaken)

	// The loser's booking left nothing behind
	var requests, appointments int64
	require.NoError(t, db.Model(&entity.ConsultationRequest{}).Count(&requests).Error)
	require.NoError(t, db.Model(&entity.Appointment{}).Count(&appointments).Error)
	assert.EqualValues(t, 1, requests)
	assert.EqualValues(t, 1, appointments)

	var storedSlot entity.TimeSlot
	require.NoError(t, db.First(&storedSlot, "id = ?", slot.ID).Error)
	require.NotNil(t, storedSlot.PatientID)
	assert.Equal(t, first.UserID, *storedSlot.PatientID)
}

func TestBookSlotBlocked(t *testing.T) {
	uc, db, _ := newBookingFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Cardiology", 12)
	patient := createTestPatient(t, db, "Budi Santoso")

	slot := createTestSlot(t, db, doctor.UserID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "09:00", "09:30")
	require.NoError(t, db.Model(&entity.TimeSlot{}).
		Where("id = ?", slot.ID).
		Update("status", entity.TimeSlotStatusBlocked).Error)

	_, err := uc.BookSlot(ctxWithUser(patient.UserID), &dto.BookSlotRequest{
		SlotID:           slot.ID,
		Symptoms:         "fever",
		ConsultationType: "video",
	})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestBookSlotPastDate(t *testing.T) {
	uc, db, _ := newBookingFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Cardiology", 12)
	patient := createTestPatient(t, db, "Budi Santoso")
	slot := createTestSlot(t, db, doctor.UserID, time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC), "09:00", "09:30")

	_, err := uc.BookSlot(ctxWithUser(patient.UserID), &dto.BookSlotRequest{
		SlotID:           slot.ID,
		Symptoms:         "fever",
		ConsultationType: "video",
	})
	assert.ErrorIs(t, err, ErrSlotDatePast)
}

func TestBookSlotNotFound(t *testing.T) {
	uc, db, _ := newBookingFixture(t)
	patient := createTestPatient(t, db, "Budi Santoso")

	_, err := uc.BookSlot(ctxWithUser(patient.UserID), &dto.BookSlotRequest{
		SlotID:           uuid.New(),
		Symptoms:         "fever",
		ConsultationType: "video",
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestCancelAppointment(t *testing.T) {
	uc, db, cache := newBookingFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Cardiology", 12)
	patient := createTestPatient(t, db, "Budi Santoso")
	slot := createTestSlot(t, db, doctor.UserID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "09:00", "09:30")

	resp, err := uc.BookSlot(ctxWithUser(patient.UserID), &dto.BookSlotRequest{
		SlotID:           slot.ID,
		Symptoms:         "headache",
		ConsultationType: "video",
	})
	require.NoError(t, err)

	require.NoError(t, uc.CancelAppointment(ctxWithUser(patient.UserID), resp.ID))
	assert.Equal(t, 1, cache.restores)

	// Slot reverted to available with the booking fields cleared
	var storedSlot entity.TimeSlot
	require.NoError(t, db.First(&storedSlot, "id = ?", slot.ID).Error)
	assert.Equal(t, entity.TimeSlotStatusAvailable, storedSlot.Status)
	assert.Nil(t, storedSlot.PatientID)
	assert.Nil(t, storedSlot.ConsultationRequestID)

	var appointment entity.Appointment
	require.NoError(t, db.First(&appointment, "id = ?", resp.ID).Error)
	assert.Equal(t, entity.AppointmentStatusCancelled, appointment.Status)

	// Cancelling twice trips the state guard
	err = uc.CancelAppointment(ctxWithUser(patient.UserID), resp.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotCancellable)
}

func TestCancelAppointmentByDoctor(t *testing.T) {
	uc, db, _ := newBookingFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Cardiology", 12)
	patient := createTestPatient(t, db, "Budi Santoso")
	slot := createTestSlot(t, db, doctor.UserID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "09:00", "09:30")

	resp, err := uc.BookSlot(ctxWithUser(patient.UserID), &dto.BookSlotRequest{
		SlotID:           slot.ID,
		Symptoms:         "headache",
		ConsultationType: "video",
	})
	require.NoError(t, err)

	assert.NoError(t, uc.CancelAppointment(ctxWithUser(doctor.UserID), resp.ID))
}

func TestCancelAppointmentOwnership(t *testing.T) {
	uc, db, _ := newBookingFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Cardiology", 12)
	patient := createTestPatient(t, db, "Budi Santoso")
	stranger := createTestPatient(t, db, "Siti Rahma")
	slot := createTestSlot(t, db, doctor.UserID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "09:00", "09:30")

	resp, err := uc.BookSlot(ctxWithUser(patient.UserID), &dto.BookSlotRequest{
		SlotID:           slot.ID,
		Symptoms:         "headache",
		ConsultationType: "video",
	})
	require.NoError(t, err)

	err = uc.CancelAppointment(ctxWithUser(stranger.UserID), resp.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotOwned)

	err = uc.CancelAppointment(ctxWithUser(patient.UserID), uuid.New())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetMyAppointments(t *testing.T) {
	uc, db, _ := newBookingFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Cardiology", 12)
	patient := createTestPatient(t, db, "Budi Santoso")

	for _, start := range []string{"09:00", "10:00"} {
		slot := createTestSlot(t, db, doctor.UserID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), start, start[:3]+"30")
		_, err := uc.BookSlot(ctxWithUser(patient.UserID), &dto.BookSlotRequest{
			SlotID:           slot.ID,
			Symptoms:         "headache",
			ConsultationType: "video",
		})
		require.NoError(t, err)
	}

	resp, err := uc.GetMyAppointments(ctxWithUser(patient.UserID))
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	if assert.Len(t, resp.Appointments, 2) {
		assert.Equal(t, "09:00", resp.Appointments[0].ScheduledTime)
		assert.Equal(t, "10:00", resp.Appointments[1].ScheduledTime)
	}

	docResp, err := uc.GetDoctorAppointments(ctxWithUser(doctor.UserID))
	require.NoError(t, err)
	assert.Equal(t, 2, docResp.Total)
}
