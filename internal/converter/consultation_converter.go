package converter

import (
	"telemed-scheduling/internal/delivery/dto"
	"telemed-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

// ConsultationRequestToResponse converts a ConsultationRequest entity to DTO
func ConsultationRequestToResponse(request *entity.ConsultationRequest) *dto.ConsultationRequestResponse {
	if request == nil {
		return nil
	}

	response := &dto.ConsultationRequestResponse{
		ID:               request.ID,
		PatientID:        request.PatientID,
		DoctorID:         request.DoctorID,
		Symptoms:         request.Symptoms,
		ConsultationType: string(request.ConsultationType),
		Status:           string(request.Status),
		RequestMessage:   request.RequestMessage,
		DoctorResponse:   request.DoctorResponse,
		ScheduledTime:    request.ScheduledTime,
		CreatedAt:        request.CreatedAt,
		UpdatedAt:        request.UpdatedAt,
	}

	if request.Doctor.UserID != uuid.Nil {
		response.Doctor = DoctorToResponse(&request.Doctor)
	}

	return response
}

// ConsultationRequestsToResponses converts a slice of requests to DTOs
func ConsultationRequestsToResponses(requests []entity.ConsultationRequest) []dto.ConsultationRequestResponse {
	responses := make([]dto.ConsultationRequestResponse, len(requests))
	for i, request := range requests {
		resp := ConsultationRequestToResponse(&request)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// PrescriptionToResponse converts a Prescription entity to DTO
func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	response := &dto.PrescriptionResponse{
		ID:                    prescription.ID,
		ConsultationRequestID: prescription.ConsultationRequestID,
		PatientID:             prescription.PatientID,
		DoctorID:              prescription.DoctorID,
		Medications:           prescription.Medications,
		DosageInstructions:    prescription.DosageInstructions,
		HealthTips:            prescription.HealthTips,
		Notes:                 prescription.Notes,
		CreatedAt:             prescription.CreatedAt,
	}

	if prescription.FollowUpDate != nil {
		followUp := prescription.FollowUpDate.Format("2006-01-02")
		response.FollowUpDate = &followUp
	}

	return response
}

// PrescriptionsToResponses converts a slice of Prescription entities to DTOs
func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i, prescription := range prescriptions {
		resp := PrescriptionToResponse(&prescription)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
