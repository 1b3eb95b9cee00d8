package services

import (
	"context"
	"log"
	"time"

	"careconnect-backend/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs the daily maintenance jobs: expiring stale doctor
// invitations, completing past appointments, and pruning expired
// refresh tokens.
type CronService struct {
	userRepo         repositories.UserRepository
	apptRepo         repositories.AppointmentRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	cron             *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(
	userRepo repositories.UserRepository,
	apptRepo repositories.AppointmentRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
) *CronService {
	return &CronService{
		userRepo:         userRepo,
		apptRepo:         apptRepo,
		refreshTokenRepo: refreshTokenRepo,
		cron:             cron.New(),
	}
}

// Start schedules the maintenance jobs (daily at 02:00)
func (s *CronService) Start() {
	if _, err := s.cron.AddFunc("0 2 * * *", s.runMaintenance); err != nil {
		log.Printf("❌ Failed to schedule maintenance job: %v", err)
		return
	}
	s.cron.Start()
	log.Println("🚀 CronService started (daily maintenance at 02:00)")
}

// Stop stops the scheduler, waiting for a running job to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) runMaintenance() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	now := time.Now()

	if n, err := s.userRepo.ExpireInvitations(ctx, now); err != nil {
		log.Printf("❌ Invitation expiry sweep failed: %v", err)
	} else if n > 0 {
		log.Printf("✅ Expired %d stale doctor invitations", n)
	}

	if n, err := s.apptRepo.CompletePast(ctx, now); err != nil {
		log.Printf("❌ Past-appointment sweep failed: %v", err)
	} else if n > 0 {
		log.Printf("✅ Marked %d past appointments completed", n)
	}

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Refresh token cleanup failed: %v", err)
	}
}
