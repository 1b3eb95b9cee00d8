package repositories

import (
	"context"
	"time"

	"careconnect-backend/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	// CreateWithPatient persists a user and its dependent patient profile
	// in one transaction (all-or-nothing).
	CreateWithPatient(ctx context.Context, user *models.User, patient *models.Patient) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByInviteToken(ctx context.Context, token string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	ExpireInvitations(ctx context.Context, now time.Time) (int64, error)
}

// DoctorRepository defines the DOCTOR-role slice of the users table
type DoctorRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	// DeleteWithAppointments removes the doctor's appointments and the
	// user row in one transaction. Returns ErrDoctorHasActiveAppts when
	// any SCHEDULED appointment exists at delete time.
	DeleteWithAppointments(ctx context.Context, doctorID uint) error
}

// PatientRepository defines patient repository interface
type PatientRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Patient, error)
	// UpdateProfile patches the user display name and the patient row in
	// one transaction.
	UpdateProfile(ctx context.Context, userID uint, name string, dateOfBirth *time.Time) (*models.Patient, error)
}

// AppointmentRepository defines appointment repository interface
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	ListByPatient(ctx context.Context, patientID uint, offset, limit int) ([]*models.Appointment, int64, error)
	ListByDoctor(ctx context.Context, doctorID uint, offset, limit int) ([]*models.Appointment, int64, error)
	List(ctx context.Context, patientID, doctorID *uint, offset, limit int) ([]*models.Appointment, int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	CountScheduledByDoctor(ctx context.Context, doctorID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CompletePast(ctx context.Context, now time.Time) (int64, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}
