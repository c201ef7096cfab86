package handler

import (
	"encoding/json"
	"net/http"

	"telemed-scheduling/internal/delivery/dto"
	"telemed-scheduling/internal/domain/entity"
	"telemed-scheduling/internal/usecase"
	"telemed-scheduling/pkg/response"
	"telemed-scheduling/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type TimeSlotHandler struct {
	slotUsecase usecase.TimeSlotUsecase
	validator   *validator.CustomValidator
}

func NewTimeSlotHandler(slotUsecase usecase.TimeSlotUsecase, validator *validator.CustomValidator) *TimeSlotHandler {
	return &TimeSlotHandler{
		slotUsecase: slotUsecase,
		validator:   validator,
	}
}

func (h *TimeSlotHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.slotUsecase.CreateSlot(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidSlotDate, usecase.ErrInvalidSlotTime, usecase.ErrSlotTimeOrder, usecase.ErrSlotInPast:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrDuplicateSlot:
			response.Error(w, http.StatusConflict, "A slot already exists at this time", nil)
		default:
			response.InternalServerError(w, "Failed to create slot")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Slot created successfully", slot)
}

func (h *TimeSlotHandler) SetBlocked(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid slot ID", nil)
		return
	}

	var req dto.SetSlotBlockedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.slotUsecase.SetBlocked(r.Context(), slotID, *req.Blocked)
	if err != nil {
		switch err {
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Slot not found")
		case usecase.ErrSlotNotOwned:
			response.Forbidden(w, "Slot does not belong to you")
		case usecase.ErrSlotTransition:
			response.Error(w, http.StatusConflict, "Slot cannot change state from its current status", nil)
		default:
			response.InternalServerError(w, "Failed to update slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slot updated successfully", slot)
}

func (h *TimeSlotHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid slot ID", nil)
		return
	}

	if err := h.slotUsecase.DeleteSlot(r.Context(), slotID); err != nil {
		switch err {
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Slot not found")
		case usecase.ErrSlotNotOwned:
			response.Forbidden(w, "Slot does not belong to you")
		case usecase.ErrSlotNotDeletable:
			response.Error(w, http.StatusConflict, "Booked slots cannot be deleted", nil)
		default:
			response.InternalServerError(w, "Failed to delete slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slot deleted successfully", nil)
}

func (h *TimeSlotHandler) GetMySlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter 'date' is required", nil)
		return
	}

	slots, err := h.slotUsecase.GetMySlots(r.Context(), date)
	if err != nil {
		switch err {
		case usecase.ErrInvalidSlotDate:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to get slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}

func (h *TimeSlotHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := &entity.AvailabilityFilter{
		Date:           query.Get("date"),
		DoctorName:     query.Get("doctor_name"),
		Specialization: query.Get("specialization"),
	}

	slots, err := h.slotUsecase.ListAvailable(r.Context(), filter)
	if err != nil {
		switch err {
		case usecase.ErrInvalidSlotDate:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to get available slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}

func (h *TimeSlotHandler) AvailabilitySummary(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter 'date' is required", nil)
		return
	}

	summary, err := h.slotUsecase.AvailabilitySummary(r.Context(), date)
	if err != nil {
		switch err {
		case usecase.ErrInvalidSlotDate:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to get availability summary")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability summary retrieved successfully", summary)
}
