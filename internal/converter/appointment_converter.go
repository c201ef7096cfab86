package converter

import (
	"telemed-scheduling/internal/delivery/dto"
	"telemed-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                    appointment.ID,
		DoctorID:              appointment.DoctorID,
		PatientID:             appointment.PatientID,
		ConsultationRequestID: appointment.ConsultationRequestID,
		SlotID:                appointment.SlotID,
		ScheduledDate:         appointment.ScheduledDate.Format("2006-01-02"),
		ScheduledTime:         appointment.ScheduledTime,
		AppointmentType:       string(appointment.AppointmentType),
		Status:                string(appointment.Status),
		Notes:                 appointment.Notes,
		CreatedAt:             appointment.CreatedAt,
		UpdatedAt:             appointment.UpdatedAt,
	}

	// Include doctor info if preloaded
	if appointment.Doctor.UserID != uuid.Nil {
		response.Doctor = DoctorToResponse(&appointment.Doctor)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
