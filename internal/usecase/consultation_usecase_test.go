package usecase

import (
	"testing"

	"telemed-scheduling/internal/delivery/dto"
	"telemed-scheduling/internal/domain/entity"
	"telemed-scheduling/internal/repository"
	"telemed-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newConsultationFixture(t *testing.T) (ConsultationUsecase, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	log := newTestLogger()
	auditService := service.NewAuditService(log, repository.NewAuditLogRepository())

	uc := NewConsultationUsecase(
		db,
		log,
		repository.NewConsultationRequestRepository(),
		repository.NewPrescriptionRepository(),
		repository.NewDoctorProfileRepository(),
		auditService,
	)

	return uc, db
}

func submitTestRequest(t *testing.T, uc ConsultationUsecase, patientID, doctorID uuid.UUID) *dto.ConsultationRequestResponse {
	t.Helper()

	resp, err := uc.SubmitRequest(ctxWithUser(patientID), &dto.SubmitConsultationRequest{
		DoctorID:         doctorID,
		Symptoms:         "persistent cough and mild fever",
		ConsultationType: "chat",
		RequestMessage:   "Symptoms started three days ago",
	})
	require.NoError(t, err)
	return resp
}

func TestSubmitRequest(t *testing.T) {
	uc, db := newConsultationFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Pulmonology", 9)
	patient := createTestPatient(t, db, "Budi Santoso")

	resp := submitTestRequest(t, uc, patient.UserID, doctor.UserID)
	assert.Equal(t, string(entity.ConsultationStatusPending), resp.Status)
	assert.Equal(t, patient.UserID, resp.PatientID)
	assert.Equal(t, doctor.UserID, resp.DoctorID)
	assert.Nil(t, resp.ScheduledTime)
}

func TestSubmitRequestUnknownDoctor(t *testing.T) {
	uc, db := newConsultationFixture(t)
	patient := createTestPatient(t, db, "Budi Santoso")

	_, err := uc.SubmitRequest(ctxWithUser(patient.UserID), &dto.SubmitConsultationRequest{
		DoctorID:         uuid.New(),
		Symptoms:         "headache",
		ConsultationType: "video",
	})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestRespond(t *testing.T) {
	uc, db := newConsultationFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Pulmonology", 9)
	patient := createTestPatient(t, db, "Budi Santoso")
	request := submitTestRequest(t, uc, patient.UserID, doctor.UserID)

	resp, err := uc.Respond(ctxWithUser(doctor.UserID), request.ID, &dto.RespondConsultationRequest{
		Status:         "accepted",
		DoctorResponse: "Please prepare your recent lab results",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.ConsultationStatusAccepted), resp.Status)
	assert.Equal(t, "Please prepare your recent lab results", resp.DoctorResponse)

	var stored entity.ConsultationRequest
	require.NoError(t, db.First(&stored, "id = ?", request.ID).Error)
	assert.Equal(t, entity.ConsultationStatusAccepted, stored.Status)
}

func TestRespondReject(t *testing.T) {
	uc, db := newConsultationFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Pulmonology", 9)
	patient := createTestPatient(t, db, "Budi Santoso")
	request := submitTestRequest(t, uc, patient.UserID, doctor.UserID)

	resp, err := uc.Respond(ctxWithUser(doctor.UserID), request.ID, &dto.RespondConsultationRequest{
		Status: "rejected",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.ConsultationStatusRejected), resp.Status)
}

func TestRespondTwice(t *testing.T) {
	uc, db := newConsultationFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Pulmonology", 9)
	patient := createTestPatient(t, db, "Budi Santoso")
	request := submitTestRequest(t, uc, patient.UserID, doctor.UserID)

	_, err := uc.Respond(ctxWithUser(doctor.UserID), request.ID, &dto.RespondConsultationRequest{Status: "accepted"})
	require.NoError(t, err)

	_, err = uc.Respond(ctxWithUser(doctor.UserID), request.ID, &dto.RespondConsultationRequest{Status: "rejected"})
	assert.ErrorIs(t, err, ErrRequestNotPending)

	// First answer stands
	var stored entity.ConsultationRequest
	require.NoError(t, db.First(&stored, "id = ?", request.ID).Error)
	assert.Equal(t, entity.ConsultationStatusAccepted, stored.Status)
}

func TestRespondOwnership(t *testing.T) {
	uc, db := newConsultationFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Pulmonology", 9)
	other := createTestDoctor(t, db, "Dr. Andi Pratama", "Neurology", 8)
	patient := createTestPatient(t, db, "Budi Santoso")
	request := submitTestRequest(t, uc, patient.UserID, doctor.UserID)

	_, err := uc.Respond(ctxWithUser(other.UserID), request.ID, &dto.RespondConsultationRequest{Status: "accepted"})
	assert.ErrorIs(t, err, ErrRequestNotOwned)

	_, err = uc.Respond(ctxWithUser(doctor.UserID), uuid.New(), &dto.RespondConsultationRequest{Status: "accepted"})
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestComplete(t *testing.T) {
	uc, db := newConsultationFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Pulmonology", 9)
	patient := createTestPatient(t, db, "Budi Santoso")
	request := submitTestRequest(t, uc, patient.UserID, doctor.UserID)

	_, err := uc.Respond(ctxWithUser(doctor.UserID), request.ID, &dto.RespondConsultationRequest{Status: "accepted"})
	require.NoError(t, err)

	resp, err := uc.Complete(ctxWithUser(doctor.UserID), request.ID, &dto.CompleteConsultationRequest{
		Medications:        "Amoxicillin 500mg",
		DosageInstructions: "One capsule three times daily for 7 days",
		HealthTips:         "Rest and stay hydrated",
		FollowUpDate:       "2026-03-15",
	})
	require.NoError(t, err)
	assert.Equal(t, request.ID, resp.ConsultationRequestID)
	assert.Equal(t, patient.UserID, resp.PatientID)
	require.NotNil(t, resp.FollowUpDate)
	assert.Equal(t, "2026-03-15", *resp.FollowUpDate)

	var stored entity.ConsultationRequest
	require.NoError(t, db.First(&stored, "id = ?", request.ID).Error)
	assert.Equal(t, entity.ConsultationStatusCompleted, stored.Status)
}

func TestCompleteNotAccepted(t *testing.T) {
	uc, db := newConsultationFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Pulmonology", 9)
	patient := createTestPatient(t, db, "Budi Santoso")
	request := submitTestRequest(t, uc, patient.UserID, doctor.UserID)

	// Still pending, cannot complete
	_, err := uc.Complete(ctxWithUser(doctor.UserID), request.ID, &dto.CompleteConsultationRequest{
		Medications:        "Paracetamol 500mg",
		DosageInstructions: "As needed",
	})
	assert.ErrorIs(t, err, ErrRequestNotAccepted)

	// The rolled back prescription never persisted
	var count int64
	require.NoError(t, db.Model(&entity.Prescription{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	var stored entity.ConsultationRequest
	require.NoError(t, db.First(&stored, "id = ?", request.ID).Error)
	assert.Equal(t, entity.ConsultationStatusPending, stored.Status)
}

func TestCompleteInvalidFollowUp(t *testing.T) {
	uc, db := newConsultationFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Pulmonology", 9)
	patient := createTestPatient(t, db, "Budi Santoso")
	request := submitTestRequest(t, uc, patient.UserID, doctor.UserID)

	_, err := uc.Respond(ctxWithUser(doctor.UserID), request.ID, &dto.RespondConsultationRequest{Status: "accepted"})
	require.NoError(t, err)

	_, err = uc.Complete(ctxWithUser(doctor.UserID), request.ID, &dto.CompleteConsultationRequest{
		Medications:        "Paracetamol 500mg",
		DosageInstructions: "As needed",
		FollowUpDate:       "15/03/2026",
	})
	assert.ErrorIs(t, err, ErrInvalidFollowUpDate)
}

func TestCompleteTwice(t *testing.T) {
	uc, db := newConsultationFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Pulmonology", 9)
	patient := createTestPatient(t, db, "Budi Santoso")
	request := submitTestRequest(t, uc, patient.UserID, doctor.UserID)

	_, err := uc.Respond(ctxWithUser(doctor.UserID), request.ID, &dto.RespondConsultationRequest{Status: "accepted"})
	require.NoError(t, err)

	complete := &dto.CompleteConsultationRequest{
		Medications:        "Paracetamol 500mg",
		DosageInstructions: "As needed",
	}
	_, err = uc.Complete(ctxWithUser(doctor.UserID), request.ID, complete)
	require.NoError(t, err)

	_, err = uc.Complete(ctxWithUser(doctor.UserID), request.ID, complete)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&entity.Prescription{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetRequestsAndPrescriptions(t *testing.T) {
	uc, db := newConsultationFixture(t)
	doctor := createTestDoctor(t, db, "Dr. Sari Wijaya", "Pulmonology", 9)
	patient := createTestPatient(t, db, "Budi Santoso")
	request := submitTestRequest(t, uc, patient.UserID, doctor.UserID)

	_, err := uc.Respond(ctxWithUser(doctor.UserID), request.ID, &dto.RespondConsultationRequest{Status: "accepted"})
	require.NoError(t, err)
	_, err = uc.Complete(ctxWithUser(doctor.UserID), request.ID, &dto.CompleteConsultationRequest{
		Medications:        "Amoxicillin 500mg",
		DosageInstructions: "Three times daily",
	})
	require.NoError(t, err)

	mine, err := uc.GetMyRequests(ctxWithUser(patient.UserID))
	require.NoError(t, err)
	assert.Equal(t, 1, mine.Total)

	completed, err := uc.GetDoctorRequests(ctxWithUser(doctor.UserID), string(entity.ConsultationStatusCompleted))
	require.NoError(t, err)
	assert.Equal(t, 1, completed.Total)

	pending, err := uc.GetDoctorRequests(ctxWithUser(doctor.UserID), string(entity.ConsultationStatusPending))
	require.NoError(t, err)
	assert.Equal(t, 0, pending.Total)

	prescriptions, err := uc.GetMyPrescriptions(ctxWithUser(patient.UserID))
	require.NoError(t, err)
	assert.Equal(t, 1, prescriptions.Total)

	// Both parties can read it by request id, strangers cannot
	_, err = uc.GetPrescriptionByRequest(ctxWithUser(patient.UserID), request.ID)
	assert.NoError(t, err)
	_, err = uc.GetPrescriptionByRequest(ctxWithUser(doctor.UserID), request.ID)
	assert.NoError(t, err)

	stranger := createTestPatient(t, db, "Siti Rahma")
	_, err = uc.GetPrescriptionByRequest(ctxWithUser(stranger.UserID), request.ID)
	assert.ErrorIs(t, err, ErrRequestNotOwned)

	_, err = uc.GetPrescriptionByRequest(ctxWithUser(patient.UserID), uuid.New())
	assert.ErrorIs(t, err, ErrPrescriptionNotFound)
}
