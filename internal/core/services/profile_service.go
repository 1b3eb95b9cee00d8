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

// ProfileService handles the patient profile endpoints
type ProfileService struct {
	patientRepo repositories.PatientRepository
}

// NewProfileService creates a new profile service
func NewProfileService(patientRepo repositories.PatientRepository) *ProfileService {
	return &ProfileService{patientRepo: patientRepo}
}

// Get returns the acting patient's joined profile
func (s *ProfileService) Get(ctx context.Context, principal domain.Principal) (*models.ProfileResponse, error) {
	patient, err := s.patientRepo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPatientProfileNotFound
		}
		return nil, err
	}
	return patient.ToProfileResponse(), nil
}

// UpdateProfileInput represents a validated, sanitized profile update
type UpdateProfileInput struct {
	Name        string
	DateOfBirth *time.Time
}

// Update patches the display name and date of birth in one transaction
func (s *ProfileService) Update(ctx context.Context, principal domain.Principal, input *UpdateProfileInput) (*models.ProfileResponse, error) {
	// The profile must exist before we touch either row.
	if _, err := s.patientRepo.GetByUserID(ctx, principal.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPatientProfileNotFound
		}
		return nil, err
	}

	patient, err := s.patientRepo.UpdateProfile(ctx, principal.UserID, input.Name, input.DateOfBirth)
	if err != nil {
		return nil, err
	}
	return patient.ToProfileResponse(), nil
}
