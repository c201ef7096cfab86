package service

import (
	"testing"

	"telemed-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankerDoctor(name, specialization string, years int, bio string) entity.DoctorProfile {
	return entity.DoctorProfile{
		UserID:          uuid.New(),
		LicenseNumber:   "LIC-" + name,
		Specialization:  specialization,
		ExperienceYears: years,
		Bio:             bio,
		Available:       true,
		User:            entity.User{FullName: name},
	}
}

func TestRankScoring(t *testing.T) {
	ranker := NewMatchRanker()
	doctor := rankerDoctor("Dr. Sari Wijaya", "Cardiology", 12, "Senior cardiologist focused on chest pain and preventive care")

	ranked := ranker.Rank([]entity.DoctorProfile{doctor}, "chest pain after climbing stairs", "Cardiology")
	require.Len(t, ranked, 1)

	// 15 exact specialization + 7 for one keyword + 3 bio hit + 3 senior tier
	assert.Equal(t, 28, ranked[0].Score)
	assert.Equal(t, []string{
		"Specializes in Cardiology",
		"Covers 1 reported symptom(s) in Cardiology",
		"Profile mentions 1 of your symptom(s)",
		"10+ years of experience",
	}, ranked[0].Reasons)
}

func TestRankOrdering(t *testing.T) {
	ranker := NewMatchRanker()
	doctors := []entity.DoctorProfile{
		rankerDoctor("Dr. Junior", "Cardiology", 3, ""),
		rankerDoctor("Dr. Senior", "Cardiology", 15, ""),
		rankerDoctor("Dr. Mid", "Cardiology", 7, ""),
	}

	ranked := ranker.Rank(doctors, "heart palpitations", "Cardiology")
	require.Len(t, ranked, 3)
	assert.Equal(t, "Dr. Senior", ranked[0].Doctor.User.FullName)
	assert.Equal(t, "Dr. Mid", ranked[1].Doctor.User.FullName)
	assert.Equal(t, "Dr. Junior", ranked[2].Doctor.User.FullName)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
}

func TestRankDeterministic(t *testing.T) {
	ranker := NewMatchRanker()
	doctors := []entity.DoctorProfile{
		rankerDoctor("Dr. A", "Cardiology", 8, ""),
		rankerDoctor("Dr. B", "Cardiology", 8, ""),
	}

	first := ranker.Rank(doctors, "chest pain", "Cardiology")
	second := ranker.Rank(doctors, "chest pain", "Cardiology")
	require.Len(t, first, 2)

	// Equal scores keep input order, every run
	assert.Equal(t, first[0].Doctor.UserID, second[0].Doctor.UserID)
	assert.Equal(t, "Dr. A", first[0].Doctor.User.FullName)
	assert.Equal(t, first[0].Reasons, second[0].Reasons)
}

func TestRankFiltersZeroScores(t *testing.T) {
	ranker := NewMatchRanker()
	doctors := []entity.DoctorProfile{
		rankerDoctor("Dr. Heart", "Cardiology", 10, ""),
		rankerDoctor("Dr. Skin", "Dermatology", 2, ""),
	}

	ranked := ranker.Rank(doctors, "chest pain", "Cardiology")
	require.Len(t, ranked, 1)
	assert.Equal(t, "Dr. Heart", ranked[0].Doctor.User.FullName)
}

func TestRankGeneralMedicineKeepsEveryone(t *testing.T) {
	ranker := NewMatchRanker()
	doctors := []entity.DoctorProfile{
		rankerDoctor("Dr. Skin", "Dermatology", 2, ""),
		rankerDoctor("Dr. GP", "General Medicine", 6, ""),
	}

	ranked := ranker.Rank(doctors, "fever and fatigue", "General Medicine")
	assert.Len(t, ranked, 2)
}

func TestRankFallbackByExperience(t *testing.T) {
	ranker := NewMatchRanker()
	doctors := []entity.DoctorProfile{
		rankerDoctor("Dr. Newer", "Dermatology", 4, ""),
		rankerDoctor("Dr. Older", "Dermatology", 11, ""),
	}

	// Nobody scores against Cardiology, so the full list comes back ordered
	// by experience
	ranked := ranker.Rank(doctors, "chest pain", "Cardiology")
	require.Len(t, ranked, 2)
	assert.Equal(t, "Dr. Older", ranked[0].Doctor.User.FullName)
	assert.Equal(t, 0, ranked[0].Score)
	assert.Equal(t, []string{"11 years of experience"}, ranked[0].Reasons)
}

func TestRankKeywordCoverage(t *testing.T) {
	ranker := NewMatchRanker()
	doctor := rankerDoctor("Dr. Heart", "Cardiology", 2, "")

	ranked := ranker.Rank([]entity.DoctorProfile{doctor}, "chest pain with palpitations and shortness of breath", "Cardiology")
	require.Len(t, ranked, 1)

	// 15 exact + 3 keywords at 7 each, no experience tier below 5 years
	assert.Equal(t, 36, ranked[0].Score)
	assert.Contains(t, ranked[0].Reasons, "Covers 3 reported symptom(s) in Cardiology")
}

func TestDetectCategory(t *testing.T) {
	ranker := NewMatchRanker()

	tests := []struct {
		symptoms string
		want     string
	}{
		{"chest pain and palpitations", "Cardiology"},
		{"itchy skin rash on my arms", "Dermatology"},
		{"my knee pain gets worse when walking", "Orthopedics"},
		{"blurred vision and eye pain", "Ophthalmology"},
		{"anxiety and panic attacks", "Psychiatry"},
		{"something unrecognizable", "General Medicine"},
		{"", "General Medicine"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, ranker.DetectCategory(tc.symptoms))
		})
	}
}
