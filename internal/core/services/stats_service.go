package services

import (
	"context"

	"careconnect-backend/internal/adapters/persistence/models"
	"careconnect-backend/internal/adapters/persistence/repositories"
	"careconnect-backend/internal/core/domain"
)

// StatsService computes the admin dashboard counts
type StatsService struct {
	userRepo repositories.UserRepository
	apptRepo repositories.AppointmentRepository
}

// NewStatsService creates a new stats service
func NewStatsService(userRepo repositories.UserRepository, apptRepo repositories.AppointmentRepository) *StatsService {
	return &StatsService{userRepo: userRepo, apptRepo: apptRepo}
}

// AdminStats represents the admin dashboard counters
type AdminStats struct {
	TotalPatients         int64 `json:"total_patients"`
	TotalDoctors          int64 `json:"total_doctors"`
	TotalAppointments     int64 `json:"total_appointments"`
	ScheduledAppointments int64 `json:"scheduled_appointments"`
}

// GetAdminStats returns aggregate counts for the admin dashboard
func (s *StatsService) GetAdminStats(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{}
	var err error

	if stats.TotalPatients, err = s.userRepo.CountByRole(ctx, domain.RolePatient.String()); err != nil {
		return nil, err
	}
	if stats.TotalDoctors, err = s.userRepo.CountByRole(ctx, domain.RoleDoctor.String()); err != nil {
		return nil, err
	}
	if stats.TotalAppointments, err = s.apptRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ScheduledAppointments, err = s.apptRepo.CountByStatus(ctx, models.ApptStatusScheduled); err != nil {
		return nil, err
	}

	return stats, nil
}
