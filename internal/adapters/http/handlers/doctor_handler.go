package handlers

import (
	"errors"
	"strconv"

	"careconnect-backend/internal/core/domain"
	"careconnect-backend/internal/core/services"
	"careconnect-backend/internal/pkg/pagination"
	"careconnect-backend/internal/pkg/response"
	"careconnect-backend/internal/pkg/sanitize"
	"careconnect-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// DoctorHandler handles the public roster and admin doctor lifecycle
type DoctorHandler struct {
	doctorService *services.DoctorService
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(doctorService *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctorService: doctorService}
}

// CreateDoctorRequest represents an admin doctor-creation body
type CreateDoctorRequest struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}

// UpdateDoctorRequest represents a partial doctor update body
type UpdateDoctorRequest struct {
	Name           *string `json:"name"`
	Specialization *string `json:"specialization"`
}

// Roster lists doctors for the public booking page
// @Summary List available doctors
// @Tags Doctors
// @Produce json
// @Success 200 {object} pagination.Response
// @Router /api/doctors [get]
func (h *DoctorHandler) Roster(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	doctors, total, err := h.doctorService.Roster(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch doctors")
	}

	return c.JSON(pagination.NewResponse(doctors, params, total))
}

// List lists doctors with active appointment counts (admin)
// @Summary List doctors with active appointment counts
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} pagination.Response
// @Router /api/admin/doctors [get]
func (h *DoctorHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	doctors, total, err := h.doctorService.ListWithActiveCounts(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch doctors")
	}

	return c.JSON(pagination.NewResponse(doctors, params, total))
}

// Create provisions a new doctor account (admin)
// @Summary Create doctor
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body CreateDoctorRequest true "Doctor data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/admin/doctors [post]
func (h *DoctorHandler) Create(c *fiber.Ctx) error {
	var req CreateDoctorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var issues validation.Issues
	validation.Name(&issues, "name", req.Name)
	validation.MinLen(&issues, "specialization", req.Specialization, 2,
		"Specialization must be at least 2 characters")
	if !issues.Empty() {
		return response.ValidationFailed(c, issues)
	}

	result, err := h.doctorService.Create(c.Context(), &services.CreateDoctorInput{
		Name:           sanitize.String(req.Name),
		Specialization: sanitize.String(req.Specialization),
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to create doctor")
	}

	return response.Created(c, "Doctor created", result)
}

// Get returns one doctor (admin)
// @Summary Get doctor
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path int true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/admin/doctors/{id} [get]
func (h *DoctorHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid doctor ID")
	}

	doctor, err := h.doctorService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrDoctorNotFound) {
			return response.NotFound(c, "Doctor not found")
		}
		return response.InternalServerError(c, "Failed to fetch doctor")
	}

	return response.Success(c, "", doctor)
}

// Update patches a doctor's name/specialization (admin)
// @Summary Update doctor
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Doctor ID"
// @Param body body UpdateDoctorRequest true "Partial update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/admin/doctors/{id} [put]
func (h *DoctorHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid doctor ID")
	}

	var req UpdateDoctorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var issues validation.Issues
	if req.Name != nil {
		validation.Name(&issues, "name", *req.Name)
	}
	if req.Specialization != nil {
		validation.MinLen(&issues, "specialization", *req.Specialization, 2,
			"Specialization must be at least 2 characters")
	}
	if !issues.Empty() {
		return response.ValidationFailed(c, issues)
	}

	doctor, err := h.doctorService.Update(c.Context(), id, &services.UpdateDoctorInput{
		Name:           sanitize.StringPtr(req.Name),
		Specialization: sanitize.StringPtr(req.Specialization),
	})
	if err != nil {
		if errors.Is(err, domain.ErrDoctorNotFound) {
			return response.NotFound(c, "Doctor not found")
		}
		return response.InternalServerError(c, "Failed to update doctor")
	}

	return response.Success(c, "Doctor updated", doctor)
}

// Delete removes a doctor with no active appointments (admin)
// @Summary Delete doctor
// @Tags Admin
// @Security BearerAuth
// @Param id path int true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/admin/doctors/{id} [delete]
func (h *DoctorHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid doctor ID")
	}

	if err := h.doctorService.Delete(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrDoctorNotFound):
			return response.NotFound(c, "Doctor not found")
		case errors.Is(err, domain.ErrDoctorHasActiveAppts):
			return response.BadRequest(c, "Cannot delete doctor with active appointments")
		default:
			return response.InternalServerError(c, "Failed to delete doctor")
		}
	}

	return response.Success(c, "Doctor deleted", nil)
}

// parseID parses the :id path parameter
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
