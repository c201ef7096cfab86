package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"telemed-scheduling/internal/delivery/http/middleware"
	"telemed-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.DoctorProfile{},
		&entity.PatientProfile{},
		&entity.TimeSlot{},
		&entity.ConsultationRequest{},
		&entity.Appointment{},
		&entity.Prescription{},
		&entity.AuditLog{},
	)
	require.NoError(t, err)

	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin},
		{ID: entity.RoleIDDoctor, RoleName: entity.RoleDoctor},
		{ID: entity.RoleIDPatient, RoleName: entity.RolePatient},
		{ID: entity.RoleIDSupport, RoleName: entity.RoleSupport},
	}
	require.NoError(t, db.Create(&roles).Error)

	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func ctxWithUser(userID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), middleware.UserIDKey, userID)
}

func createTestDoctor(t *testing.T, db *gorm.DB, name, specialization string, years int) *entity.DoctorProfile {
	t.Helper()

	user := &entity.User{
		RoleID:   entity.RoleIDDoctor,
		Email:    uuid.New().String() + "@clinic.test",
		Password: "hashed",
		FullName: name,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)

	profile := &entity.DoctorProfile{
		UserID:          user.ID,
		LicenseNumber:   "LIC-" + uuid.New().String()[:8],
		Specialization:  specialization,
		ExperienceYears: years,
		ConsultationFee: decimal.NewFromInt(150),
		Available:       true,
	}
	require.NoError(t, db.Create(profile).Error)

	return profile
}

func createTestPatient(t *testing.T, db *gorm.DB, name string) *entity.PatientProfile {
	t.Helper()

	user := &entity.User{
		RoleID:   entity.RoleIDPatient,
		Email:    uuid.New().String() + "@patient.test",
		Password: "hashed",
		FullName: name,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)

	profile := &entity.PatientProfile{
		UserID:      user.ID,
		DateOfBirth: time.Date(1990, 5, 12, 0, 0, 0, 0, time.UTC),
		Gender:      entity.GenderMale,
	}
	require.NoError(t, db.Create(profile).Error)

	return profile
}

func createTestSlot(t *testing.T, db *gorm.DB, doctorID uuid.UUID, date time.Time, start, end string) *entity.TimeSlot {
	t.Helper()

	slot := &entity.TimeSlot{
		DoctorID:  doctorID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Status:    entity.TimeSlotStatusAvailable,
	}
	require.NoError(t, db.Create(slot).Error)

	return slot
}

// stubSlotCache records cache calls without touching Redis
type stubSlotCache struct {
	syncs    int
	reserves int
	restores int
}

func (s *stubSlotCache) SyncDay(ctx context.Context, doctorID uuid.UUID, date time.Time) error {
	s.syncs++
	return nil
}

func (s *stubSlotCache) Reserve(ctx context.Context, doctorID uuid.UUID, date time.Time) error {
	s.reserves++
	return nil
}

func (s *stubSlotCache) Restore(ctx context.Context, doctorID uuid.UUID, date time.Time) error {
	s.restores++
	return nil
}

func (s *stubSlotCache) DayCounts(ctx context.Context, date time.Time) (map[uuid.UUID]int, error) {
	return map[uuid.UUID]int{}, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
