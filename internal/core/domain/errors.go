package domain

import "errors"

// Common domain errors
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserInactive      = errors.New("user account is inactive")
)

// Doctor errors
var (
	ErrDoctorNotFound       = errors.New("doctor not found")
	ErrDoctorHasActiveAppts = errors.New("cannot delete doctor with active appointments")
	ErrInvitationInvalid    = errors.New("invitation token invalid")
	ErrInvitationExpired    = errors.New("invitation token expired")
)

// Patient / appointment errors
var (
	ErrPatientProfileNotFound = errors.New("patient profile not found")
	ErrAppointmentNotFound    = errors.New("appointment not found")
)
