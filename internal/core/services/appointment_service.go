package services

import (
	"context"
	"errors"
	"time"

	"careconnect-backend/internal/adapters/persistence/models"
	"careconnect-backend/internal/adapters/persistence/repositories"
	"careconnect-backend/internal/core/domain"

	"gorm.io/gorm"
)

// AppointmentService handles appointment booking and listing
type AppointmentService struct {
	apptRepo    repositories.AppointmentRepository
	doctorRepo  repositories.DoctorRepository
	patientRepo repositories.PatientRepository
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	apptRepo repositories.AppointmentRepository,
	doctorRepo repositories.DoctorRepository,
	patientRepo repositories.PatientRepository,
) *AppointmentService {
	return &AppointmentService{
		apptRepo:    apptRepo,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
	}
}

// BookInput represents a validated, sanitized booking request
type BookInput struct {
	DoctorID uint
	DateTime time.Time
	Notes    *string
}

// Book creates an appointment for the acting principal's patient
// profile. The doctor must exist with role DOCTOR at creation time.
func (s *AppointmentService) Book(ctx context.Context, principal domain.Principal, input *BookInput) (*models.AppointmentResponse, error) {
	// 1. Verify doctor exists
	doctor, err := s.doctorRepo.GetByID(ctx, input.DoctorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, err
	}

	// 2. Resolve the caller's patient profile
	patient, err := s.patientRepo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPatientProfileNotFound
		}
		return nil, err
	}

	// 3. Create with default SCHEDULED status
	appt := &models.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		DateTime:  input.DateTime,
		Notes:     input.Notes,
		Status:    models.ApptStatusScheduled,
	}
	if err := s.apptRepo.Create(ctx, appt); err != nil {
		return nil, err
	}

	appt.Doctor = doctor
	appt.Patient = patient
	return appt.ToResponse(), nil
}

// Get returns one appointment, scoped to what the principal may see.
// Appointments outside the principal's scope read as not found.
func (s *AppointmentService) Get(ctx context.Context, principal domain.Principal, id uint) (*models.AppointmentResponse, error) {
	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}
	if !canView(principal, appt) {
		return nil, domain.ErrAppointmentNotFound
	}
	return appt.ToResponse(), nil
}

// Cancel marks a SCHEDULED appointment CANCELLED. Anyone who can view
// the appointment may cancel it; completed or already-cancelled
// appointments cannot change.
func (s *AppointmentService) Cancel(ctx context.Context, principal domain.Principal, id uint) error {
	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrAppointmentNotFound
		}
		return err
	}
	if !canView(principal, appt) {
		return domain.ErrAppointmentNotFound
	}
	if !appt.IsActive() {
		return domain.ErrInvalidInput
	}
	return s.apptRepo.UpdateStatus(ctx, appt.ID, models.ApptStatusCancelled)
}

// canView decides appointment visibility: patients see their own,
// doctors their schedule, admins everything.
func canView(principal domain.Principal, appt *models.Appointment) bool {
	switch principal.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleDoctor:
		return appt.DoctorID == principal.UserID
	case domain.RolePatient:
		return appt.Patient != nil && appt.Patient.UserID == principal.UserID
	}
	return false
}

// ListFilter represents admin-supplied list filters
type ListFilter struct {
	PatientID *uint
	DoctorID  *uint
}

// List returns appointments scoped to the principal's role: patients
// see their own, doctors their own schedule, admins everything with
// optional filters.
func (s *AppointmentService) List(ctx context.Context, principal domain.Principal, filter ListFilter, offset, limit int) ([]*models.AppointmentResponse, int64, error) {
	var (
		appts []*models.Appointment
		total int64
		err   error
	)

	switch principal.Role {
	case domain.RolePatient:
		patient, perr := s.patientRepo.GetByUserID(ctx, principal.UserID)
		if perr != nil {
			if errors.Is(perr, gorm.ErrRecordNotFound) {
				return nil, 0, domain.ErrPatientProfileNotFound
			}
			return nil, 0, perr
		}
		appts, total, err = s.apptRepo.ListByPatient(ctx, patient.ID, offset, limit)
	case domain.RoleDoctor:
		appts, total, err = s.apptRepo.ListByDoctor(ctx, principal.UserID, offset, limit)
	case domain.RoleAdmin:
		appts, total, err = s.apptRepo.List(ctx, filter.PatientID, filter.DoctorID, offset, limit)
	default:
		return nil, 0, domain.ErrForbidden
	}
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.AppointmentResponse, 0, len(appts))
	for _, a := range appts {
		responses = append(responses, a.ToResponse())
	}
	return responses, total, nil
}
