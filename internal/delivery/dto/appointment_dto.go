package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// BookSlotRequest books an open slot directly. The consultation request is
// created server-side in accepted state together with the appointment.
type BookSlotRequest struct {
	SlotID           uuid.UUID `json:"slot_id" validate:"required"`
	Symptoms         string    `json:"symptoms" validate:"required,min=3,max=2000"`
	ConsultationType string    `json:"consultation_type" validate:"required,oneof=video chat"`
	RequestMessage   string    `json:"request_message" validate:"omitempty,max=2000"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                    uuid.UUID       `json:"id"`
	DoctorID              uuid.UUID       `json:"doctor_id"`
	PatientID             uuid.UUID       `json:"patient_id"`
	ConsultationRequestID uuid.UUID       `json:"consultation_request_id"`
	SlotID                uuid.UUID       `json:"slot_id"`
	ScheduledDate         string          `json:"scheduled_date"`
	ScheduledTime         string          `json:"scheduled_time"`
	AppointmentType       string          `json:"appointment_type"`
	Status                string          `json:"status"`
	Notes                 string          `json:"notes,omitempty"`
	Doctor                *DoctorResponse `json:"doctor,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
