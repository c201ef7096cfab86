package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type RegisterPatientRequest struct {
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
	FullName         string `json:"full_name" validate:"required,min=2,max=255"`
	PhoneNumber      string `json:"phone_number" validate:"omitempty,min=8,max=20"`
	EmergencyContact string `json:"emergency_contact" validate:"omitempty,min=8,max=20"`
	DateOfBirth      string `json:"date_of_birth" validate:"required"`
	Gender           string `json:"gender" validate:"required,oneof=M F"`
	Address          string `json:"address" validate:"omitempty,max=500"`
}

type RegisterDoctorRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	FullName        string `json:"full_name" validate:"required,min=2,max=255"`
	LicenseNumber   string `json:"license_number" validate:"required,min=4,max=50"`
	Specialization  string `json:"specialization" validate:"required,min=2,max=100"`
	ExperienceYears int    `json:"experience_years" validate:"min=0,max=70"`
	Bio             string `json:"bio" validate:"omitempty,max=2000"`
	ConsultationFee string `json:"consultation_fee" validate:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Response DTOs

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
