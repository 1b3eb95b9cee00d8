package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"careconnect-backend/internal/adapters/persistence/models"
	"careconnect-backend/internal/core/domain"
)

func seededApptService(appts ...*models.Appointment) (*AppointmentService, *fakeApptRepo) {
	apptRepo := &fakeApptRepo{appts: appts, nextID: uint(len(appts))}
	return NewAppointmentService(apptRepo, &fakeDoctorRepo{}, nil), apptRepo
}

func scheduledAppt(id, patientUserID, doctorID uint) *models.Appointment {
	return &models.Appointment{
		ID:        id,
		PatientID: id,
		DoctorID:  doctorID,
		DateTime:  time.Now().Add(24 * time.Hour),
		Status:    models.ApptStatusScheduled,
		Patient:   &models.Patient{ID: id, UserID: patientUserID},
	}
}

func TestGetAppointmentScoping(t *testing.T) {
	svc, _ := seededApptService(scheduledAppt(1, 10, 20))

	tests := []struct {
		name      string
		principal domain.Principal
		wantErr   error
	}{
		{"owning patient", domain.Principal{UserID: 10, Role: domain.RolePatient}, nil},
		{"other patient", domain.Principal{UserID: 11, Role: domain.RolePatient}, domain.ErrAppointmentNotFound},
		{"assigned doctor", domain.Principal{UserID: 20, Role: domain.RoleDoctor}, nil},
		{"other doctor", domain.Principal{UserID: 21, Role: domain.RoleDoctor}, domain.ErrAppointmentNotFound},
		{"admin", domain.Principal{UserID: 1, Role: domain.RoleAdmin}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Get(context.Background(), tt.principal, 1)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Get() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetAppointmentMissing(t *testing.T) {
	svc, _ := seededApptService()

	_, err := svc.Get(context.Background(), domain.Principal{UserID: 1, Role: domain.RoleAdmin}, 42)
	if !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Fatalf("Get() error = %v, want ErrAppointmentNotFound", err)
	}
}

func TestCancelScheduledAppointment(t *testing.T) {
	svc, apptRepo := seededApptService(scheduledAppt(1, 10, 20))

	principal := domain.Principal{UserID: 10, Role: domain.RolePatient}
	if err := svc.Cancel(context.Background(), principal, 1); err != nil {
		t.Fatalf("Cancel() error: %v", err)
	}
	if got := apptRepo.appts[0].Status; got != models.ApptStatusCancelled {
		t.Fatalf("status = %q, want CANCELLED", got)
	}
}

func TestCancelCompletedAppointmentRejected(t *testing.T) {
	appt := scheduledAppt(1, 10, 20)
	appt.Status = models.ApptStatusCompleted
	svc, apptRepo := seededApptService(appt)

	principal := domain.Principal{UserID: 10, Role: domain.RolePatient}
	if err := svc.Cancel(context.Background(), principal, 1); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("Cancel() error = %v, want ErrInvalidInput", err)
	}
	if got := apptRepo.appts[0].Status; got != models.ApptStatusCompleted {
		t.Fatalf("status changed to %q", got)
	}
}

func TestCancelOtherPatientsAppointmentHidden(t *testing.T) {
	svc, apptRepo := seededApptService(scheduledAppt(1, 10, 20))

	principal := domain.Principal{UserID: 11, Role: domain.RolePatient}
	if err := svc.Cancel(context.Background(), principal, 1); !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Fatalf("Cancel() error = %v, want ErrAppointmentNotFound", err)
	}
	if got := apptRepo.appts[0].Status; got != models.ApptStatusScheduled {
		t.Fatalf("status changed to %q", got)
	}
}
