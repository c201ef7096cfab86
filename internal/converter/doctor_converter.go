package converter

import (
	"telemed-scheduling/internal/delivery/dto"
	"telemed-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

// DoctorToResponse converts a DoctorProfile entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.DoctorProfile) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		UserID:          doctor.UserID,
		LicenseNumber:   doctor.LicenseNumber,
		Specialization:  doctor.Specialization,
		ExperienceYears: doctor.ExperienceYears,
		Bio:             doctor.Bio,
		ConsultationFee: doctor.ConsultationFee.StringFixed(2),
		Available:       doctor.Available,
	}

	if doctor.User.ID != uuid.Nil {
		response.FullName = doctor.User.FullName
	}

	return response
}

// DoctorsToResponses converts a slice of DoctorProfile entities to DTOs
func DoctorsToResponses(doctors []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		resp := DoctorToResponse(&doctor)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
