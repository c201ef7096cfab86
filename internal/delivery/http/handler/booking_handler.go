package handler

import (
	"encoding/json"
	"net/http"

	"telemed-scheduling/internal/delivery/dto"
	"telemed-scheduling/internal/usecase"
	"telemed-scheduling/pkg/response"
	"telemed-scheduling/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

func (h *BookingHandler) BookSlot(w http.ResponseWriter, r *http.Request) {
	var req dto.BookSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.bookingUsecase.BookSlot(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Slot not found")
		case usecase.ErrSlotDatePast:
			response.Error(w, http.StatusBadRequest, "Cannot book a slot on a past date", nil)
		case usecase.ErrSlotTaken:
			response.Error(w, http.StatusConflict, "Slot is no longer available", nil)
		default:
			response.InternalServerError(w, "Failed to book slot")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *BookingHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	if err := h.bookingUsecase.CancelAppointment(r.Context(), appointmentID); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentNotOwned:
			response.Forbidden(w, "Appointment does not belong to you")
		case usecase.ErrAppointmentNotCancellable:
			response.Error(w, http.StatusConflict, "Appointment is already cancelled or completed", nil)
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}

func (h *BookingHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.bookingUsecase.GetMyAppointments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *BookingHandler) GetDoctorAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.bookingUsecase.GetDoctorAppointments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}
