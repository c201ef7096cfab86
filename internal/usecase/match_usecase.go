package usecase

import (
	"context"

	"telemed-scheduling/internal/converter"
	"telemed-scheduling/internal/delivery/dto"
	"telemed-scheduling/internal/domain/repository"
	"telemed-scheduling/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type MatchUsecase interface {
	MatchDoctors(ctx context.Context, req *dto.MatchDoctorsRequest) (*dto.MatchListResponse, error)
}

type matchUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	doctorProfileRepo repository.DoctorProfileRepository
	ranker            *service.MatchRanker
}

func NewMatchUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorProfileRepo repository.DoctorProfileRepository,
	ranker *service.MatchRanker,
) MatchUsecase {
	return &matchUsecase{
		db:                db,
		log:               log,
		doctorProfileRepo: doctorProfileRepo,
		ranker:            ranker,
	}
}

// MatchDoctors ranks available doctors against the patient's symptoms.
// When no category is supplied it is detected from the symptom text first,
// so the ranker always works with a concrete category.
func (u *matchUsecase) MatchDoctors(ctx context.Context, req *dto.MatchDoctorsRequest) (*dto.MatchListResponse, error) {
	doctors, err := u.doctorProfileRepo.FindAllAvailable(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to load available doctors: %+v", err)
		return nil, err
	}

	category := req.Category
	if category == "" {
		category = u.ranker.DetectCategory(req.Symptoms)
	}

	ranked := u.ranker.Rank(doctors, req.Symptoms, category)

	u.log.Infof("Doctor match: category=%s, candidates=%d, matched=%d", category, len(doctors), len(ranked))
	return &dto.MatchListResponse{
		Category: category,
		Matches:  converter.RankedDoctorsToResponses(ranked),
		Total:    len(ranked),
	}, nil
}
