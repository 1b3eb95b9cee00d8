package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"careconnect-backend/internal/adapters/persistence/models"
	"careconnect-backend/internal/adapters/persistence/repositories"
	"careconnect-backend/internal/core/domain"
	"careconnect-backend/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// invitationTTL is how long a doctor invitation stays redeemable.
const invitationTTL = 7 * 24 * time.Hour

// DoctorService handles the admin-managed doctor lifecycle
type DoctorService struct {
	userRepo   repositories.UserRepository
	doctorRepo repositories.DoctorRepository
	apptRepo   repositories.AppointmentRepository
}

// NewDoctorService creates a new doctor service
func NewDoctorService(
	userRepo repositories.UserRepository,
	doctorRepo repositories.DoctorRepository,
	apptRepo repositories.AppointmentRepository,
) *DoctorService {
	return &DoctorService{
		userRepo:   userRepo,
		doctorRepo: doctorRepo,
		apptRepo:   apptRepo,
	}
}

// CreateDoctorInput represents a validated admin doctor-creation request
type CreateDoctorInput struct {
	Name           string
	Specialization string
}

// CreatedDoctor is the creation response including the one-time
// invitation token the admin hands to the doctor.
type CreatedDoctor struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	InviteToken    string    `json:"invite_token"`
	InviteExpires  time.Time `json:"invite_expires"`
}

// Create provisions a DOCTOR account with placeholder credentials and
// an invitation token. The account cannot log in until the invitation
// is redeemed through the activation endpoint.
func (s *DoctorService) Create(ctx context.Context, input *CreateDoctorInput) (*CreatedDoctor, error) {
	placeholderEmail := synthesizeEmail(input.Name)

	// Placeholder password is random and never disclosed; the real one
	// is set on activation.
	placeholderPassword, err := password.Hash(uuid.New().String())
	if err != nil {
		return nil, err
	}

	token := uuid.New().String()
	expires := time.Now().Add(invitationTTL)

	doctor := &models.User{
		Email:          placeholderEmail,
		Password:       placeholderPassword,
		Name:           input.Name,
		Role:           domain.RoleDoctor.String(),
		Specialization: input.Specialization,
		InviteToken:    &token,
		InviteExpires:  &expires,
		IsActive:       true,
	}

	if err := s.userRepo.Create(ctx, doctor); err != nil {
		return nil, err
	}

	log.Printf("✅ Doctor created: %s (%s)", doctor.Name, doctor.Specialization)

	return &CreatedDoctor{
		ID:             doctor.ID,
		Name:           doctor.Name,
		Specialization: doctor.Specialization,
		InviteToken:    token,
		InviteExpires:  expires,
	}, nil
}

// Roster lists all doctors for the public booking page
func (s *DoctorService) Roster(ctx context.Context, offset, limit int) ([]*models.DoctorResponse, int64, error) {
	doctors, total, err := s.doctorRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.DoctorResponse, 0, len(doctors))
	for _, d := range doctors {
		responses = append(responses, &models.DoctorResponse{
			ID:             d.ID,
			Name:           d.Name,
			Specialization: d.Specialization,
		})
	}
	return responses, total, nil
}

// ListWithActiveCounts lists doctors with their SCHEDULED appointment
// counts for the admin dashboard.
func (s *DoctorService) ListWithActiveCounts(ctx context.Context, offset, limit int) ([]*models.DoctorResponse, int64, error) {
	doctors, total, err := s.doctorRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.DoctorResponse, 0, len(doctors))
	for _, d := range doctors {
		active, err := s.apptRepo.CountScheduledByDoctor(ctx, d.ID)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, &models.DoctorResponse{
			ID:                 d.ID,
			Name:               d.Name,
			Specialization:     d.Specialization,
			ActiveAppointments: active,
		})
	}
	return responses, total, nil
}

// Get returns one doctor
func (s *DoctorService) Get(ctx context.Context, id uint) (*models.DoctorResponse, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, err
	}
	return &models.DoctorResponse{
		ID:             doctor.ID,
		Name:           doctor.Name,
		Specialization: doctor.Specialization,
	}, nil
}

// UpdateDoctorInput represents a partial doctor update
type UpdateDoctorInput struct {
	Name           *string
	Specialization *string
}

// Update patches name and/or specialization
func (s *DoctorService) Update(ctx context.Context, id uint, input *UpdateDoctorInput) (*models.DoctorResponse, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		doctor.Name = *input.Name
	}
	if input.Specialization != nil {
		doctor.Specialization = *input.Specialization
	}

	if err := s.userRepo.Update(ctx, doctor); err != nil {
		return nil, err
	}

	return &models.DoctorResponse{
		ID:             doctor.ID,
		Name:           doctor.Name,
		Specialization: doctor.Specialization,
	}, nil
}

// Delete removes a doctor and all its appointments unless any
// appointment is still SCHEDULED. The guard lives inside the delete
// transaction, which returns ErrDoctorHasActiveAppts when it fires.
func (s *DoctorService) Delete(ctx context.Context, id uint) error {
	doctor, err := s.doctorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDoctorNotFound
		}
		return err
	}

	if err := s.doctorRepo.DeleteWithAppointments(ctx, doctor.ID); err != nil {
		return err
	}

	log.Printf("✅ Doctor deleted: %s (ID: %d)", doctor.Name, doctor.ID)
	return nil
}

// synthesizeEmail builds the placeholder unique email for a freshly
// created doctor account.
func synthesizeEmail(name string) string {
	slug := strings.Join(strings.Fields(strings.ToLower(name)), ".")
	return fmt.Sprintf("%s.%d@placeholder.invalid", slug, time.Now().UnixNano())
}
