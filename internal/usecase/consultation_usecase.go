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
	ErrRequestNotFound      = apperr.New(apperr.KindNotFound, "consultation request not found")
	ErrRequestNotOwned      = apperr.New(apperr.KindValidation, "consultation request does not belong to you")
	ErrRequestNotPending    = apperr.New(apperr.KindInvalidTransition, "request has already been responded to")
	ErrRequestNotAccepted   = apperr.New(apperr.KindInvalidTransition, "only accepted requests can be completed")
	ErrPrescriptionExists   = apperr.New(apperr.KindInvalidTransition, "a prescription was already issued for this request")
	ErrPrescriptionNotFound = apperr.New(apperr.KindNotFound, "prescription not found")
	ErrDoctorNotFound       = apperr.New(apperr.KindNotFound, "doctor not found")
	ErrInvalidFollowUpDate  = apperr.New(apperr.KindValidation, "invalid follow-up date format, use YYYY-MM-DD")
)

type ConsultationUsecase interface {
	SubmitRequest(ctx context.Context, req *dto.SubmitConsultationRequest) (*dto.ConsultationRequestResponse, error)
	Respond(ctx context.Context, requestID uuid.UUID, req *dto.RespondConsultationRequest) (*dto.ConsultationRequestResponse, error)
	Complete(ctx context.Context, requestID uuid.UUID, req *dto.CompleteConsultationRequest) (*dto.PrescriptionResponse, error)
	GetMyRequests(ctx context.Context) (*dto.ConsultationRequestListResponse, error)
	GetDoctorRequests(ctx context.Context, status string) (*dto.ConsultationRequestListResponse, error)
	GetMyPrescriptions(ctx context.Context) (*dto.PrescriptionListResponse, error)
	GetPrescriptionByRequest(ctx context.Context, requestID uuid.UUID) (*dto.PrescriptionResponse, error)
}

type consultationUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	requestRepo       repository.ConsultationRequestRepository
	prescriptionRepo  repository.PrescriptionRepository
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      *service.AuditService
}

func NewConsultationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	requestRepo repository.ConsultationRequestRepository,
	prescriptionRepo repository.PrescriptionRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService *service.AuditService,
) ConsultationUsecase {
	return &consultationUsecase{
		db:                db,
		log:               log,
		requestRepo:       requestRepo,
		prescriptionRepo:  prescriptionRepo,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
	}
}

// SubmitRequest files a pending consultation request with a doctor. No slot
// is involved; scheduling happens later if the doctor accepts.
func (u *consultationUsecase) SubmitRequest(ctx context.Context, req *dto.SubmitConsultationRequest) (*dto.ConsultationRequestResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoUserInContext
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	request := &entity.ConsultationRequest{
		PatientID:        patientID,
		DoctorID:         req.DoctorID,
		Symptoms:         req.Symptoms,
		ConsultationType: entity.ConsultationType(req.ConsultationType),
		Status:           entity.ConsultationStatusPending,
		RequestMessage:   req.RequestMessage,
	}

	if err := u.requestRepo.Create(u.db.WithContext(ctx), request); err != nil {
		u.log.Warnf("Failed to create consultation request: %+v", err)
		return nil, err
	}

	u.auditService.RequestSubmitted(u.db.WithContext(ctx), patientID, request)

	u.log.Infof("Consultation request submitted: id=%s, patient=%s, doctor=%s", request.ID, patientID, req.DoctorID)
	return converter.ConsultationRequestToResponse(request), nil
}

// Respond lets the owning doctor accept or reject a pending request. The
// transition is a conditional update so two concurrent responses cannot
// both win.
func (u *consultationUsecase) Respond(ctx context.Context, requestID uuid.UUID, req *dto.RespondConsultationRequest) (*dto.ConsultationRequestResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoUserInContext
	}

	request, err := u.requestRepo.FindByID(u.db.WithContext(ctx), requestID)
	if err != nil {
		u.log.Warnf("Failed to find consultation request %s: %+v", requestID, err)
		return nil, err
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	if request.DoctorID != doctorID {
		return nil, ErrRequestNotOwned
	}

	status := entity.ConsultationRequestStatus(req.Status)
	affected, err := u.requestRepo.Respond(u.db.WithContext(ctx), requestID, status, req.DoctorResponse)
	if err != nil {
		u.log.Warnf("Failed to respond to request %s: %+v", requestID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrRequestNotPending
	}

	u.auditService.RequestResponded(u.db.WithContext(ctx), doctorID, requestID, status)

	request.Status = status
	request.DoctorResponse = req.DoctorResponse

	u.log.Infof("Consultation request %s responded: status=%s, doctor=%s", requestID, status, doctorID)
	return converter.ConsultationRequestToResponse(request), nil
}

// Complete closes an accepted request by issuing its prescription. The
// prescription insert and the accepted -> completed transition commit
// together; a completed request without a prescription cannot exist.
func (u *consultationUsecase) Complete(ctx context.Context, requestID uuid.UUID, req *dto.CompleteConsultationRequest) (*dto.PrescriptionResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoUserInContext
	}

	request, err := u.requestRepo.FindByID(u.db.WithContext(ctx), requestID)
	if err != nil {
		u.log.Warnf("Failed to find consultation request %s: %+v", requestID, err)
		return nil, err
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	if request.DoctorID != doctorID {
		return nil, ErrRequestNotOwned
	}

	var followUpDate *time.Time
	if req.FollowUpDate != "" {
		parsed, err := time.Parse("2006-01-02", req.FollowUpDate)
		if err != nil {
			return nil, ErrInvalidFollowUpDate
		}
		followUpDate = &parsed
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	prescription := &entity.Prescription{
		ConsultationRequestID: requestID,
		PatientID:             request.PatientID,
		DoctorID:              doctorID,
		Medications:           req.Medications,
		DosageInstructions:    req.DosageInstructions,
		HealthTips:            req.HealthTips,
		FollowUpDate:          followUpDate,
		Notes:                 req.Notes,
	}

	if err := u.prescriptionRepo.Create(tx, prescription); err != nil {
		if isDuplicateKeyError(err, "consultation_request_id") {
			return nil, ErrPrescriptionExists
		}
		u.log.Warnf("Failed to create prescription for request %s: %+v", requestID, err)
		return nil, err
	}

	affected, err := u.requestRepo.MarkCompleted(tx, requestID)
	if err != nil {
		u.log.Warnf("Failed to mark request %s completed: %+v", requestID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrRequestNotAccepted
	}

	u.auditService.RequestCompleted(tx, doctorID, requestID, prescription.ID)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit completion transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Consultation completed: request=%s, prescription=%s, doctor=%s", requestID, prescription.ID, doctorID)
	return converter.PrescriptionToResponse(prescription), nil
}

// GetMyRequests returns all consultation requests of the logged-in patient
func (u *consultationUsecase) GetMyRequests(ctx context.Context) (*dto.ConsultationRequestListResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoUserInContext
	}

	requests, err := u.requestRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find requests for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.ConsultationRequestListResponse{
		Requests: converter.ConsultationRequestsToResponses(requests),
		Total:    len(requests),
	}, nil
}

// GetDoctorRequests returns the logged-in doctor's requests, optionally
// narrowed to one status
func (u *consultationUsecase) GetDoctorRequests(ctx context.Context, status string) (*dto.ConsultationRequestListResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoUserInContext
	}

	requests, err := u.requestRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID, entity.ConsultationRequestStatus(status))
	if err != nil {
		u.log.Warnf("Failed to find requests for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.ConsultationRequestListResponse{
		Requests: converter.ConsultationRequestsToResponses(requests),
		Total:    len(requests),
	}, nil
}

// GetMyPrescriptions returns all prescriptions issued to the logged-in patient
func (u *consultationUsecase) GetMyPrescriptions(ctx context.Context) (*dto.PrescriptionListResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoUserInContext
	}

	prescriptions, err := u.prescriptionRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find prescriptions for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(prescriptions),
		Total:         len(prescriptions),
	}, nil
}

// GetPrescriptionByRequest returns the prescription that closed a request.
// Visible to both parties of the consultation.
func (u *consultationUsecase) GetPrescriptionByRequest(ctx context.Context, requestID uuid.UUID) (*dto.PrescriptionResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoUserInContext
	}

	prescription, err := u.prescriptionRepo.FindByRequestID(u.db.WithContext(ctx), requestID)
	if err != nil {
		u.log.Warnf("Failed to find prescription for request %s: %+v", requestID, err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}
	if prescription.PatientID != userID && prescription.DoctorID != userID {
		return nil, ErrRequestNotOwned
	}

	return converter.PrescriptionToResponse(prescription), nil
}
