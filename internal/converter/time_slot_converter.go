package converter

import (
	"telemed-scheduling/internal/delivery/dto"
	"telemed-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

// SlotToResponse converts a TimeSlot entity to SlotResponse DTO
func SlotToResponse(slot *entity.TimeSlot) *dto.SlotResponse {
	if slot == nil {
		return nil
	}

	response := &dto.SlotResponse{
		ID:                    slot.ID,
		DoctorID:              slot.DoctorID,
		Date:                  slot.Date.Format("2006-01-02"),
		StartTime:             slot.StartTime,
		EndTime:               slot.EndTime,
		Status:                string(slot.Status),
		PatientID:             slot.PatientID,
		ConsultationRequestID: slot.ConsultationRequestID,
		Notes:                 slot.Notes,
		CreatedAt:             slot.CreatedAt,
		UpdatedAt:             slot.UpdatedAt,
	}

	// Include doctor info if preloaded
	if slot.Doctor.UserID != uuid.Nil {
		response.Doctor = DoctorToResponse(&slot.Doctor)
	}

	return response
}

// SlotsToResponses converts a slice of TimeSlot entities to DTOs
func SlotsToResponses(slots []entity.TimeSlot) []dto.SlotResponse {
	responses := make([]dto.SlotResponse, len(slots))
	for i, slot := range slots {
		resp := SlotToResponse(&slot)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
