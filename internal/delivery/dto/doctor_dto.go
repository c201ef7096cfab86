package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type UpdateDoctorProfileRequest struct {
	Specialization  string  `json:"specialization" validate:"omitempty,min=2,max=100"`
	ExperienceYears *int    `json:"experience_years" validate:"omitempty,min=0,max=70"`
	Bio             *string `json:"bio" validate:"omitempty,max=2000"`
	ConsultationFee string  `json:"consultation_fee" validate:"omitempty"`
	Available       *bool   `json:"available"`
}

// Response DTOs

type DoctorResponse struct {
	UserID          uuid.UUID `json:"user_id"`
	FullName        string    `json:"full_name,omitempty"`
	LicenseNumber   string    `json:"license_number"`
	Specialization  string    `json:"specialization"`
	ExperienceYears int       `json:"experience_years"`
	Bio             string    `json:"bio,omitempty"`
	ConsultationFee string    `json:"consultation_fee"`
	Available       bool      `json:"available"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
