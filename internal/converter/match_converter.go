package converter

import (
	"telemed-scheduling/internal/delivery/dto"
	"telemed-scheduling/internal/service"
)

// RankedDoctorsToResponses converts ranking results to MatchedDoctorResponse DTOs
func RankedDoctorsToResponses(ranked []service.RankedDoctor) []dto.MatchedDoctorResponse {
	responses := make([]dto.MatchedDoctorResponse, len(ranked))
	for i, entry := range ranked {
		doctorResp := DoctorToResponse(&entry.Doctor)
		responses[i] = dto.MatchedDoctorResponse{
			Doctor:  *doctorResp,
			Score:   entry.Score,
			Reasons: entry.Reasons,
		}
	}
	return responses
}
