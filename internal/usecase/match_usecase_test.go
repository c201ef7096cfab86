package usecase

import (
	"testing"

	"telemed-scheduling/internal/delivery/dto"
	"telemed-scheduling/internal/domain/entity"
	"telemed-scheduling/internal/repository"
	"telemed-scheduling/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMatchFixture(t *testing.T) (MatchUsecase, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	log := newTestLogger()

	return NewMatchUsecase(db, log, repository.NewDoctorProfileRepository(), service.NewMatchRanker()), db
}

func TestMatchDoctors(t *testing.T) {
	uc, db := newMatchFixture(t)
	patient := createTestPatient(t, db, "Budi Santoso")
	cardiologist := createTestDoctor(t, db, "Dr. Sari Wijaya", "Cardiology", 12)
	createTestDoctor(t, db, "Dr. Andi Pratama", "Dermatology", 8)

	resp, err := uc.MatchDoctors(ctxWithUser(patient.UserID), &dto.MatchDoctorsRequest{
		Symptoms: "chest pain and palpitations",
	})
	require.NoError(t, err)

	// Category detected from the symptom text
	assert.Equal(t, "Cardiology", resp.Category)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, cardiologist.UserID, resp.Matches[0].Doctor.UserID)
	assert.NotEmpty(t, resp.Matches[0].Reasons)
	assert.Greater(t, resp.Matches[0].Score, 0)
}

func TestMatchDoctorsExplicitCategory(t *testing.T) {
	uc, db := newMatchFixture(t)
	patient := createTestPatient(t, db, "Budi Santoso")
	createTestDoctor(t, db, "Dr. Sari Wijaya", "Dermatology", 6)

	resp, err := uc.MatchDoctors(ctxWithUser(patient.UserID), &dto.MatchDoctorsRequest{
		Symptoms: "itchy rash",
		Category: "Dermatology",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dermatology", resp.Category)
	assert.Equal(t, 1, resp.Total)
}

func TestMatchDoctorsUnavailableExcluded(t *testing.T) {
	uc, db := newMatchFixture(t)
	patient := createTestPatient(t, db, "Budi Santoso")
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Cardiology", 12)
	require.NoError(t, db.Model(&entity.DoctorProfile{}).
		Where("user_id = ?", doctor.UserID).
		Update("available", false).Error)

	resp, err := uc.MatchDoctors(ctxWithUser(patient.UserID), &dto.MatchDoctorsRequest{
		Symptoms: "chest pain",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Total)
}
