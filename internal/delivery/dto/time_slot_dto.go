package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateSlotRequest struct {
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	Notes     string `json:"notes" validate:"omitempty,max=500"`
}

type SetSlotBlockedRequest struct {
	Blocked *bool `json:"blocked" validate:"required"`
}

// Response DTOs

type SlotResponse struct {
	ID                    uuid.UUID       `json:"id"`
	DoctorID              uuid.UUID       `json:"doctor_id"`
	Date                  string          `json:"date"`
	StartTime             string          `json:"start_time"`
	EndTime               string          `json:"end_time"`
	Status                string          `json:"status"`
	PatientID             *uuid.UUID      `json:"patient_id,omitempty"`
	ConsultationRequestID *uuid.UUID      `json:"consultation_request_id,omitempty"`
	Notes                 string          `json:"notes,omitempty"`
	Doctor                *DoctorResponse `json:"doctor,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

// AvailabilitySummaryResponse reports open slot counts per doctor for one
// date, served from the Redis counters.
type AvailabilitySummaryResponse struct {
	Date    string                  `json:"date"`
	Doctors []DoctorDaySummaryEntry `json:"doctors"`
}

type DoctorDaySummaryEntry struct {
	DoctorID       uuid.UUID `json:"doctor_id"`
	AvailableSlots int       `json:"available_slots"`
}
