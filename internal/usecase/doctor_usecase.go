package usecase

import (
	"context"

	"telemed-scheduling/internal/converter"
	"telemed-scheduling/internal/delivery/dto"
	"telemed-scheduling/internal/delivery/http/middleware"
	"telemed-scheduling/internal/domain/repository"
	"telemed-scheduling/internal/service"
	"telemed-scheduling/pkg/apperr"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrInvalidFee = apperr.New(apperr.KindValidation, "invalid consultation fee")

type DoctorUsecase interface {
	GetAvailableDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	GetMyProfile(ctx context.Context) (*dto.DoctorResponse, error)
	UpdateMyProfile(ctx context.Context, req *dto.UpdateDoctorProfileRequest) (*dto.DoctorResponse, error)
}

type doctorUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      *service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService *service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:                db,
		log:               log,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
	}
}

// GetAvailableDoctors lists doctors currently accepting patients
func (u *doctorUsecase) GetAvailableDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorProfileRepo.FindAllAvailable(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to load available doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

// GetMyProfile returns the logged-in doctor's profile
func (u *doctorUsecase) GetMyProfile(ctx context.Context) (*dto.DoctorResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoUserInContext
	}

	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile %s: %+v", userID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(profile), nil
}

// UpdateMyProfile applies partial updates to the logged-in doctor's profile
func (u *doctorUsecase) UpdateMyProfile(ctx context.Context, req *dto.UpdateDoctorProfileRequest) (*dto.DoctorResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoUserInContext
	}

	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile %s: %+v", userID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	if req.Specialization != "" {
		profile.Specialization = req.Specialization
	}
	if req.ExperienceYears != nil {
		profile.ExperienceYears = *req.ExperienceYears
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.ConsultationFee != "" {
		fee, err := decimal.NewFromString(req.ConsultationFee)
		if err != nil || fee.IsNegative() {
			return nil, ErrInvalidFee
		}
		profile.ConsultationFee = fee
	}
	if req.Available != nil {
		profile.Available = *req.Available
	}

	if err := u.doctorProfileRepo.Update(u.db.WithContext(ctx), profile); err != nil {
		u.log.Warnf("Failed to update doctor profile %s: %+v", userID, err)
		return nil, err
	}

	u.auditService.DoctorProfileUpdated(u.db.WithContext(ctx), userID)

	u.log.Infof("Doctor profile updated: %s", userID)
	return converter.DoctorToResponse(profile), nil
}
