package handlers

import (
	"errors"
	"time"

	"careconnect-backend/internal/adapters/http/middleware"
	"careconnect-backend/internal/core/domain"
	"careconnect-backend/internal/core/services"
	"careconnect-backend/internal/pkg/response"
	"careconnect-backend/internal/pkg/sanitize"
	"careconnect-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// PatientHandler handles the patient profile endpoints
type PatientHandler struct {
	profileService *services.ProfileService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(profileService *services.ProfileService) *PatientHandler {
	return &PatientHandler{profileService: profileService}
}

// UpdateProfileRequest represents a profile update body
type UpdateProfileRequest struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
}

// GetProfile returns the acting patient's profile
// @Summary Get patient profile
// @Tags Patient
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/patient/profile [get]
func (h *PatientHandler) GetProfile(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	profile, err := h.profileService.Get(c.Context(), principal)
	if err != nil {
		if errors.Is(err, domain.ErrPatientProfileNotFound) {
			return response.NotFound(c, "Patient profile not found")
		}
		return response.InternalServerError(c, "Failed to fetch profile")
	}

	return response.Success(c, "", profile)
}

// UpdateProfile patches name and date of birth
// @Summary Update patient profile
// @Tags Patient
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body UpdateProfileRequest true "Profile update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/patient/profile [put]
func (h *PatientHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var issues validation.Issues
	validation.Name(&issues, "name", req.Name)

	var dateOfBirth *time.Time
	if req.DateOfBirth != "" {
		if dob, ok := validation.Date(&issues, "dateOfBirth", req.DateOfBirth); ok {
			dateOfBirth = &dob
		}
	}
	if !issues.Empty() {
		return response.ValidationFailed(c, issues)
	}

	profile, err := h.profileService.Update(c.Context(), principal, &services.UpdateProfileInput{
		Name:        sanitize.String(req.Name),
		DateOfBirth: dateOfBirth,
	})
	if err != nil {
		if errors.Is(err, domain.ErrPatientProfileNotFound) {
			return response.NotFound(c, "Patient profile not found")
		}
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.Success(c, "Profile updated", profile)
}
