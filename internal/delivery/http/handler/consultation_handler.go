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

type ConsultationHandler struct {
	consultationUsecase usecase.ConsultationUsecase
	validator           *validator.CustomValidator
}

func NewConsultationHandler(consultationUsecase usecase.ConsultationUsecase, validator *validator.CustomValidator) *ConsultationHandler {
	return &ConsultationHandler{
		consultationUsecase: consultationUsecase,
		validator:           validator,
	}
}

func (h *ConsultationHandler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	request, err := h.consultationUsecase.SubmitRequest(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to submit consultation request")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Consultation request submitted successfully", request)
}

func (h *ConsultationHandler) Respond(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request ID", nil)
		return
	}

	var req dto.RespondConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	request, err := h.consultationUsecase.Respond(r.Context(), requestID, &req)
	if err != nil {
		switch err {
		case usecase.ErrRequestNotFound:
			response.NotFound(w, "Consultation request not found")
		case usecase.ErrRequestNotOwned:
			response.Forbidden(w, "Consultation request does not belong to you")
		case usecase.ErrRequestNotPending:
			response.Error(w, http.StatusConflict, "Request has already been responded to", nil)
		default:
			response.InternalServerError(w, "Failed to respond to request")
		}
		return
	}

	response.Success(w, http.StatusOK, "Consultation request updated successfully", request)
}

func (h *ConsultationHandler) Complete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request ID", nil)
		return
	}

	var req dto.CompleteConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	prescription, err := h.consultationUsecase.Complete(r.Context(), requestID, &req)
	if err != nil {
		switch err {
		case usecase.ErrRequestNotFound:
			response.NotFound(w, "Consultation request not found")
		case usecase.ErrRequestNotOwned:
			response.Forbidden(w, "Consultation request does not belong to you")
		case usecase.ErrRequestNotAccepted:
			response.Error(w, http.StatusConflict, "Only accepted requests can be completed", nil)
		case usecase.ErrPrescriptionExists:
			response.Error(w, http.StatusConflict, "A prescription was already issued for this request", nil)
		case usecase.ErrInvalidFollowUpDate:
			response.Error(w, http.StatusBadRequest, "Invalid follow-up date format, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to complete consultation")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Consultation completed successfully", prescription)
}

func (h *ConsultationHandler) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.consultationUsecase.GetMyRequests(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get consultation requests")
		return
	}

	response.Success(w, http.StatusOK, "Consultation requests retrieved successfully", requests)
}

func (h *ConsultationHandler) GetDoctorRequests(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	requests, err := h.consultationUsecase.GetDoctorRequests(r.Context(), status)
	if err != nil {
		response.InternalServerError(w, "Failed to get consultation requests")
		return
	}

	response.Success(w, http.StatusOK, "Consultation requests retrieved successfully", requests)
}

func (h *ConsultationHandler) GetMyPrescriptions(w http.ResponseWriter, r *http.Request) {
	prescriptions, err := h.consultationUsecase.GetMyPrescriptions(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get prescriptions")
		return
	}

	response.Success(w, http.StatusOK, "Prescriptions retrieved successfully", prescriptions)
}

func (h *ConsultationHandler) GetPrescriptionByRequest(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request ID", nil)
		return
	}

	prescription, err := h.consultationUsecase.GetPrescriptionByRequest(r.Context(), requestID)
	if err != nil {
		switch err {
		case usecase.ErrPrescriptionNotFound:
			response.NotFound(w, "Prescription not found")
		case usecase.ErrRequestNotOwned:
			response.Forbidden(w, "Prescription does not belong to you")
		default:
			response.InternalServerError(w, "Failed to get prescription")
		}
		return
	}

	response.Success(w, http.StatusOK, "Prescription retrieved successfully", prescription)
}
