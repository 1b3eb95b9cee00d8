package handlers

import (
	"errors"
	"strconv"

	"careconnect-backend/internal/adapters/http/middleware"
	"careconnect-backend/internal/core/domain"
	"careconnect-backend/internal/core/services"
	"careconnect-backend/internal/pkg/pagination"
	"careconnect-backend/internal/pkg/response"
	"careconnect-backend/internal/pkg/sanitize"
	"careconnect-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// AppointmentHandler handles appointment endpoints
type AppointmentHandler struct {
	apptService *services.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(apptService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{apptService: apptService}
}

// BookRequest represents an appointment booking request body
type BookRequest struct {
	DoctorID uint    `json:"doctorId"`
	DateTime string  `json:"dateTime"`
	Notes    *string `json:"notes"`
}

// Book handles appointment creation
// @Summary Book an appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body BookRequest true "Booking data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/appointments [post]
func (h *AppointmentHandler) Book(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req BookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var issues validation.Issues
	if req.DoctorID == 0 {
		issues = append(issues, validation.Issue{Field: "doctorId", Message: "Doctor is required"})
	}
	dateTime, _ := validation.DateTime(&issues, "dateTime", req.DateTime)
	if !issues.Empty() {
		return response.ValidationFailed(c, issues)
	}

	result, err := h.apptService.Book(c.Context(), principal, &services.BookInput{
		DoctorID: req.DoctorID,
		DateTime: dateTime,
		Notes:    sanitize.StringPtr(req.Notes),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDoctorNotFound):
			return response.NotFound(c, "Doctor not found")
		case errors.Is(err, domain.ErrPatientProfileNotFound):
			return response.NotFound(c, "Patient profile not found")
		default:
			return response.InternalServerError(c, "Failed to create appointment")
		}
	}

	return response.Created(c, "Appointment booked", result)
}

// List handles role-scoped appointment listing
// @Summary List appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param patient_id query int false "Filter by patient (admin only)"
// @Param doctor_id query int false "Filter by doctor (admin only)"
// @Success 200 {object} pagination.Response
// @Router /api/appointments [get]
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	filter := services.ListFilter{
		PatientID: queryUint(c, "patient_id"),
		DoctorID:  queryUint(c, "doctor_id"),
	}

	appts, total, err := h.apptService.List(c.Context(), principal, filter, params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, domain.ErrPatientProfileNotFound) {
			return response.NotFound(c, "Patient profile not found")
		}
		return response.InternalServerError(c, "Failed to fetch appointments")
	}

	return c.JSON(pagination.NewResponse(appts, params, total))
}

// Get returns one appointment visible to the caller
// @Summary Get appointment
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/appointments/{id} [get]
func (h *AppointmentHandler) Get(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	result, err := h.apptService.Get(c.Context(), principal, id)
	if err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			return response.NotFound(c, "Appointment not found")
		}
		return response.InternalServerError(c, "Failed to fetch appointment")
	}

	return response.Success(c, "", result)
}

// Cancel marks a scheduled appointment cancelled
// @Summary Cancel appointment
// @Tags Appointments
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/appointments/{id} [delete]
func (h *AppointmentHandler) Cancel(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	if err := h.apptService.Cancel(c.Context(), principal, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrAppointmentNotFound):
			return response.NotFound(c, "Appointment not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Only scheduled appointments can be cancelled")
		default:
			return response.InternalServerError(c, "Failed to cancel appointment")
		}
	}

	return response.Success(c, "Appointment cancelled", nil)
}

// queryUint parses an optional uint query parameter
func queryUint(c *fiber.Ctx, key string) *uint {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	u := uint(v)
	return &u
}
