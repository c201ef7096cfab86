package handler

import (
	"encoding/json"
	"net/http"

	"telemed-scheduling/internal/delivery/dto"
	"telemed-scheduling/internal/usecase"
	"telemed-scheduling/pkg/response"
	"telemed-scheduling/pkg/validator"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	matchUsecase  usecase.MatchUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, matchUsecase usecase.MatchUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		matchUsecase:  matchUsecase,
		validator:     validator,
	}
}

func (h *DoctorHandler) GetAvailableDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.GetAvailableDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.doctorUsecase.GetMyProfile(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor profile not found")
		default:
			response.InternalServerError(w, "Failed to get profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", profile)
}

func (h *DoctorHandler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateDoctorProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.doctorUsecase.UpdateMyProfile(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor profile not found")
		case usecase.ErrInvalidFee:
			response.Error(w, http.StatusBadRequest, "Invalid consultation fee", nil)
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", profile)
}

// MatchDoctors ranks available doctors against reported symptoms
func (h *DoctorHandler) MatchDoctors(w http.ResponseWriter, r *http.Request) {
	var req dto.MatchDoctorsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	matches, err := h.matchUsecase.MatchDoctors(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to match doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors matched successfully", matches)
}
