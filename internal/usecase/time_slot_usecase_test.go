package usecase

import (
	"context"
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

func newTimeSlotFixture(t *testing.T) (*timeSlotUsecase, *gorm.DB, *stubSlotCache) {
	t.Helper()

	db := setupTestDB(t)
	log := newTestLogger()
	cache := &stubSlotCache{}
	auditService := service.NewAuditService(log, repository.NewAuditLogRepository())

	uc := NewTimeSlotUsecase(db, log, repository.NewTimeSlotRepository(), cache, auditService).(*timeSlotUsecase)
	uc.now = fixedClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	return uc, db, cache
}

func TestCreateSlot(t *testing.T) {
	uc, db, cache := newTimeSlotFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Cardiology", 12)
	ctx := ctxWithUser(doctor.UserID)

	resp, err := uc.CreateSlot(ctx, &dto.CreateSlotRequest{
		Date:      "2026-03-02",
		StartTime: "09:00",
		EndTime:   "09:30",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.TimeSlotStatusAvailable), resp.Status)
	assert.Equal(t, "2026-03-02", resp.Date)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, 1, cache.syncs)

	var stored entity.TimeSlot
	require.NoError(t, db.First(&stored, "id = ?", resp.ID).Error)
	assert.Equal(t, doctor.UserID, stored.DoctorID)
	assert.Equal(t, entity.TimeSlotStatusAvailable, stored.Status)
}

func TestCreateSlotValidation(t *testing.T) {
	uc, db, _ := newTimeSlotFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Cardiology", 12)
	ctx := ctxWithUser(doctor.UserID)

	tests := []struct {
		name    string
		req     *dto.CreateSlotRequest
		wantErr error
	}{
		{
			name:    "bad date format",
			req:     &dto.CreateSlotRequest{Date: "02-03-2026", StartTime: "09:00", EndTime: "09:30"},
			wantErr: ErrInvalidSlotDate,
		},
		{
			name:    "bad start time",
			req:     &dto.CreateSlotRequest{Date: "2026-03-02", StartTime: "9am", EndTime: "09:30"},
			wantErr: ErrInvalidSlotTime,
		},
		{
			name:    "start after end",
			req:     &dto.CreateSlotRequest{Date: "2026-03-02", StartTime: "10:00", EndTime: "09:30"},
			wantErr: ErrSlotTimeOrder,
		},
		{
			name:    "start equals end",
			req:     &dto.CreateSlotRequest{Date: "2026-03-02", StartTime: "09:30", EndTime: "09:30"},
			wantErr: ErrSlotTimeOrder,
		},
		{
			name:    "past date",
			req:     &dto.CreateSlotRequest{Date: "2026-02-28", StartTime: "09:00", EndTime: "09:30"},
			wantErr: ErrSlotInPast,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateSlot(ctx, tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCreateSlotToday(t *testing.T) {
	uc, db, _ := newTimeSlotFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Cardiology", 12)
	ctx := ctxWithUser(doctor.UserID)

	// Same-day slots stay allowed
	_, err := uc.CreateSlot(ctx, &dto.CreateSlotRequest{
		Date:      "2026-03-01",
		StartTime: "14:00",
		EndTime:   "14:30",
	})
	assert.NoError(t, err)
}

func TestCreateSlotDuplicate(t *testing.T) {
	uc, db, _ := newTimeSlotFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Cardiology", 12)
	ctx := ctxWithUser(doctor.UserID)

	req := &dto.CreateSlotRequest{Date: "2026-03-02", StartTime: "09:00", EndTime: "09:30"}
	_, err := uc.CreateSlot(ctx, req)
	require.NoError(t, err)

	_, err = uc.CreateSlot(ctx, req)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&entity.TimeSlot{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateSlotNoUser(t *testing.T) {
	uc, _, _ := newTimeSlotFixture(t)

	_, err := uc.CreateSlot(context.Background(), &dto.CreateSlotRequest{
		Date:      "2026-03-02",
		StartTime: "09:00",
		EndTime:   "09:30",
	})
	assert.ErrorIs(t, err, ErrNoUserInContext)
}

func TestSetBlocked(t *testing.T) {
	uc, db, cache := newTimeSlotFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Cardiology", 12)
	ctx := ctxWithUser(doctor.UserID)
	slot := createTestSlot(t, db, doctor.UserID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "09:00", "09:30")

	resp, err := uc.SetBlocked(ctx, slot.ID, true)
	require.NoError(t, err)
	assert.Equal(t, string(entity.TimeSlotStatusBlocked), resp.Status)
	assert.Equal(t, 1, cache.reserves)

	var stored entity.TimeSlot
	require.NoError(t, db.First(&stored, "id = ?", slot.ID).Error)
	assert.Equal(t, entity.TimeSlotStatusBlocked, stored.Status)

	resp, err = uc.SetBlocked(ctx, slot.ID, false)
	require.NoError(t, err)
	assert.Equal(t, string(entity.TimeSlotStatusAvailable), resp.Status)
	assert.Equal(t, 1, cache.restores)
}

func TestSetBlockedWrongState(t *testing.T) {
	uc, db, _ := newTimeSlotFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Cardiology", 12)
	patient := createTestPatient(t, db, "Budi Santoso")
	ctx := ctxWithUser(doctor.UserID)

	slot := createTestSlot(t, db, doctor.UserID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "09:00", "09:30")
	require.NoError(t, db.Model(&entity.TimeSlot{}).
		Where("id = ?", slot.ID).
		Updates(map[string]interface{}{"status": entity.TimeSlotStatusBooked, "patient_id": patient.UserID}).Error)

	// A booked slot refuses to block
	_, err := uc.SetBlocked(ctx, slot.ID, true)
	assert.ErrorIs(t, err, ErrSlotTransition)

	// Unblocking an already available slot is also a no-op transition
	open := createTestSlot(t, db, doctor.UserID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "10:00", "10:30")
	_, err = uc.SetBlocked(ctx, open.ID, false)
	assert.ErrorIs(t, err, ErrSlotTransition)
}

func TestSetBlockedOwnership(t *testing.T) {
	uc, db, _ := newTimeSlotFixture(t)
	owner := createTestDoctor(t, db, "Dr. Sari Wijaya", "Cardiology", 12)
	other := createTestDoctor(t, db, "Dr. Andi Pratama", "Neurology", 8)
	slot := createTestSlot(t, db, owner.UserID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "09:00", "09:30")

	_, err := uc.SetBlocked(ctxWithUser(other.UserID), slot.ID, true)
	assert.ErrorIs(t, err, ErrSlotNotOwned)

	_, err = uc.SetBlocked(ctxWithUser(owner.UserID), uuid.New(), true)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestDeleteSlot(t *testing.T) {
	uc, db, _ := newTimeSlotFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Cardiology", 12)
	ctx := ctxWithUser(doctor.UserID)
	slot := createTestSlot(t, db, doctor.UserID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "09:00", "09:30")

	require.NoError(t, uc.DeleteSlot(ctx, slot.ID))

	var count int64
	require.NoError(t, db.Model(&entity.TimeSlot{}).Where("id = ?", slot.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDeleteSlotBooked(t *testing.T) {
	uc, db, _ := newTimeSlotFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Cardiology", 12)
	patient := createTestPatient(t, db, "Budi Santoso")
	ctx := ctxWithUser(doctor.UserID)

	slot := createTestSlot(t, db, doctor.UserID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "09:00", "09:30")
	require.NoError(t, db.Model(&entity.TimeSlot{}).
		Where("id = ?", slot.ID).
		Updates(map[string]interface{}{"status": entity.TimeSlotStatusBooked, "patient_id": patient.UserID}).Error)

	err := uc.DeleteSlot(ctx, slot.ID)
	assert.ErrorIs(t, err, ErrSlotNotDeletable)

	var count int64
	require.NoError(t, db.Model(&entity.TimeSlot{}).Where("id = ?", slot.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetMySlots(t *testing.T) {
	uc, db, _ := newTimeSlotFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Cardiology", 12)
	other := createTestDoctor(t, db, "Dr. Andi Pratama", "Neurology", 8)
	ctx := ctxWithUser(doctor.UserID)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	createTestSlot(t, db, doctor.UserID, day, "09:00", "09:30")
	createTestSlot(t, db, doctor.UserID, day, "10:00", "10:30")
	createTestSlot(t, db, other.UserID, day, "09:00", "09:30")
	createTestSlot(t, db, doctor.UserID, day.AddDate(0, 0, 1), "09:00", "09:30")

	resp, err := uc.GetMySlots(ctx, "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	_, err = uc.GetMySlots(ctx, "not-a-date")
	assert.ErrorIs(t, err, ErrInvalidSlotDate)
}

func TestAvailabilitySummary(t *testing.T) {
	uc, _, _ := newTimeSlotFixture(t)

	resp, err := uc.AvailabilitySummary(context.Background(), "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", resp.Date)
	assert.Empty(t, resp.Doctors)

	_, err = uc.AvailabilitySummary(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrInvalidSlotDate)
}
