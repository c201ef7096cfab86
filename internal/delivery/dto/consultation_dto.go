package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type SubmitConsultationRequest struct {
	DoctorID         uuid.UUID `json:"doctor_id" validate:"required"`
	Symptoms         string    `json:"symptoms" validate:"required,min=3,max=2000"`
	ConsultationType string    `json:"consultation_type" validate:"required,oneof=video chat"`
	RequestMessage   string    `json:"request_message" validate:"omitempty,max=2000"`
}

type RespondConsultationRequest struct {
	Status         string `json:"status" validate:"required,oneof=accepted rejected"`
	DoctorResponse string `json:"doctor_response" validate:"omitempty,max=2000"`
}

// CompleteConsultationRequest closes an accepted request by issuing its
// prescription.
type CompleteConsultationRequest struct {
	Medications        string `json:"medications" validate:"required,min=2,max=4000"`
	DosageInstructions string `json:"dosage_instructions" validate:"required,min=2,max=4000"`
	HealthTips         string `json:"health_tips" validate:"omitempty,max=4000"`
	FollowUpDate       string `json:"follow_up_date" validate:"omitempty"`
	Notes              string `json:"notes" validate:"omitempty,max=2000"`
}

// Response DTOs

type ConsultationRequestResponse struct {
	ID               uuid.UUID       `json:"id"`
	PatientID        uuid.UUID       `json:"patient_id"`
	DoctorID         uuid.UUID       `json:"doctor_id"`
	Symptoms         string          `json:"symptoms"`
	ConsultationType string          `json:"consultation_type"`
	Status           string          `json:"status"`
	RequestMessage   string          `json:"request_message,omitempty"`
	DoctorResponse   string          `json:"doctor_response,omitempty"`
	ScheduledTime    *time.Time      `json:"scheduled_time,omitempty"`
	Doctor           *DoctorResponse `json:"doctor,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type ConsultationRequestListResponse struct {
	Requests []ConsultationRequestResponse `json:"requests"`
	Total    int                           `json:"total"`
}

type PrescriptionResponse struct {
	ID                    uuid.UUID `json:"id"`
	ConsultationRequestID uuid.UUID `json:"consultation_request_id"`
	PatientID             uuid.UUID `json:"patient_id"`
	DoctorID              uuid.UUID `json:"doctor_id"`
	Medications           string    `json:"medications"`
	DosageInstructions    string    `json:"dosage_instructions"`
	HealthTips            string    `json:"health_tips,omitempty"`
	FollowUpDate          *string   `json:"follow_up_date,omitempty"`
	Notes                 string    `json:"notes,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

type PrescriptionListResponse struct {
	Prescriptions []PrescriptionResponse `json:"prescriptions"`
	Total         int                    `json:"total"`
}
