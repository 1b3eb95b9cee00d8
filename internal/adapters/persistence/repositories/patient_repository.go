package repositories

import (
	"context"
	"time"

	"careconnect-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// patientRepository implements PatientRepository interface
type patientRepository struct {
	db *gorm.DB
}

// NewPatientRepository creates a new patient repository
func NewPatientRepository(db *gorm.DB) PatientRepository {
	return &patientRepository{db: db}
}

// GetByUserID gets a patient profile by owning user ID
func (r *patientRepository) GetByUserID(ctx context.Context, userID uint) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&patient).Error
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

// UpdateProfile patches the user name and patient date of birth in one
// transaction, then reloads the joined profile.
func (r *patientRepository) UpdateProfile(ctx context.Context, userID uint, name string, dateOfBirth *time.Time) (*models.Patient, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Update("name", name).Error; err != nil {
			return err
		}
		if dateOfBirth != nil {
			if err := tx.Model(&models.Patient{}).Where("user_id = ?", userID).
				Update("date_of_birth", *dateOfBirth).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByUserID(ctx, userID)
}
