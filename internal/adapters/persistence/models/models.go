package models

import (
	"time"

	"careconnect-backend/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table. Doctors created by an admin carry a
// placeholder email/password plus an invitation token until activated.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Email          string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password       string         `gorm:"size:255;not null" json:"-"`
	Name           string         `gorm:"size:100;not null" json:"name"`
	Role           string         `gorm:"size:20;not null;default:'PATIENT'" json:"role"`
	Specialization string         `gorm:"size:100" json:"specialization,omitempty"`
	InviteToken    *string        `gorm:"size:64;index" json:"-"`
	InviteExpires  *time.Time     `json:"-"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Patient *Patient `gorm:"foreignKey:UserID" json:"patient,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// RoleEnum returns the user's role as the closed domain enum.
func (u *User) RoleEnum() domain.Role {
	r, _ := domain.ParseRole(u.Role)
	return r
}

// UserResponse DTO
type UserResponse struct {
	ID             uint      `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	Specialization string    `json:"specialization,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
		Specialization: u.Specialization,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Patient Tables
// ============================================================

// Patient represents patients table (1:1 with a PATIENT-role user)
type Patient struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	DateOfBirth time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	BloodType   *string   `gorm:"size:10" json:"blood_type,omitempty"`
	Allergies   *string   `gorm:"type:text" json:"allergies,omitempty"`
	Address     *string   `gorm:"size:255" json:"address,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// ProfileResponse DTO joining user display fields onto the profile
type ProfileResponse struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	DateOfBirth time.Time `json:"date_of_birth"`
	BloodType   *string   `json:"blood_type,omitempty"`
	Allergies   *string   `json:"allergies,omitempty"`
	Address     *string   `json:"address,omitempty"`
}

func (p *Patient) ToProfileResponse() *ProfileResponse {
	resp := &ProfileResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		DateOfBirth: p.DateOfBirth,
		BloodType:   p.BloodType,
		Allergies:   p.Allergies,
		Address:     p.Address,
	}
	if p.User != nil {
		resp.Name = p.User.Name
		resp.Email = p.User.Email
	}
	return resp
}

// ============================================================
// Appointment Tables
// ============================================================

// Appointment statuses
const (
	ApptStatusScheduled = "SCHEDULED"
	ApptStatusCompleted = "COMPLETED"
	ApptStatusCancelled = "CANCELLED"
)

// Appointment represents appointments table
type Appointment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PatientID uint           `gorm:"not null;index" json:"patient_id"`
	DoctorID  uint           `gorm:"not null;index" json:"doctor_id"`
	DateTime  time.Time      `gorm:"not null;index" json:"date_time"`
	Notes     *string        `gorm:"type:text" json:"notes,omitempty"`
	Status    string         `gorm:"size:20;not null;default:'SCHEDULED'" json:"status"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *User    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsActive reports whether the appointment still blocks doctor deletion.
func (a *Appointment) IsActive() bool {
	return a.Status == ApptStatusScheduled
}

// AppointmentResponse DTO with embedded doctor display fields
type AppointmentResponse struct {
	ID                   uint      `json:"id"`
	PatientID            uint      `json:"patient_id"`
	DoctorID             uint      `json:"doctor_id"`
	DateTime             time.Time `json:"date_time"`
	Notes                *string   `json:"notes,omitempty"`
	Status               string    `json:"status"`
	DoctorName           string    `json:"doctor_name,omitempty"`
	DoctorSpecialization string    `json:"doctor_specialization,omitempty"`
	PatientName          string    `json:"patient_name,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

func (a *Appointment) ToResponse() *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:        a.ID,
		PatientID: a.PatientID,
		DoctorID:  a.DoctorID,
		DateTime:  a.DateTime,
		Notes:     a.Notes,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
	}
	if a.Doctor != nil {
		resp.DoctorName = a.Doctor.Name
		resp.DoctorSpecialization = a.Doctor.Specialization
	}
	if a.Patient != nil && a.Patient.User != nil {
		resp.PatientName = a.Patient.User.Name
	}
	return resp
}

// DoctorResponse DTO for roster listings
type DoctorResponse struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	Specialization     string `json:"specialization"`
	ActiveAppointments int64  `json:"active_appointments,omitempty"`
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Patient{},
		&Appointment{},
	)
}
