package services

import (
	"context"
	"time"

	"careconnect-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// In-memory repositories for service tests. They mirror the GORM
// implementations' observable behavior, including ErrRecordNotFound.

type fakeUserRepo struct {
	users  []*models.User
	nextID uint
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) CreateWithPatient(ctx context.Context, user *models.User, patient *models.Patient) error {
	if err := f.Create(ctx, user); err != nil {
		return err
	}
	patient.UserID = user.ID
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByInviteToken(_ context.Context, token string) (*models.User, error) {
	for _, u := range f.users {
		if u.InviteToken != nil && *u.InviteToken == token {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	for i, u := range f.users {
		if u.ID == user.ID {
			f.users[i] = user
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepo) ExpireInvitations(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.InviteToken != nil && u.InviteExpires != nil && u.InviteExpires.Before(now) {
			u.InviteToken = nil
			u.InviteExpires = nil
			n++
		}
	}
	return n, nil
}

type fakeRefreshTokenRepo struct {
	tokens []*models.RefreshToken
	nextID uint
}

func (f *fakeRefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	f.nextID++
	token.ID = f.nextID
	f.tokens = append(f.tokens, token)
	return nil
}

func (f *fakeRefreshTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	for _, t := range f.tokens {
		if t.TokenHash == tokenHash {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRefreshTokenRepo) Revoke(_ context.Context, id uint) error {
	now := time.Now()
	for _, t := range f.tokens {
		if t.ID == id {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeRefreshTokenRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	now := time.Now()
	for _, t := range f.tokens {
		if t.TokenHash == tokenHash && t.RevokedAt == nil {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeRefreshTokenRepo) RevokeAllByUserID(_ context.Context, userID uint) error {
	now := time.Now()
	for _, t := range f.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) error {
	kept := f.tokens[:0]
	for _, t := range f.tokens {
		if !t.IsExpired() {
			kept = append(kept, t)
		}
	}
	f.tokens = kept
	return nil
}

type fakeDoctorRepo struct {
	doctors   []*models.User
	deleteErr error
	deleted   []uint
}

func (f *fakeDoctorRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	for _, d := range f.doctors {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDoctorRepo) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	return f.doctors, int64(len(f.doctors)), nil
}

func (f *fakeDoctorRepo) DeleteWithAppointments(_ context.Context, doctorID uint) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, doctorID)
	kept := f.doctors[:0]
	for _, d := range f.doctors {
		if d.ID != doctorID {
			kept = append(kept, d)
		}
	}
	f.doctors = kept
	return nil
}

type fakeApptRepo struct {
	appts  []*models.Appointment
	nextID uint
}

func (f *fakeApptRepo) Create(_ context.Context, appt *models.Appointment) error {
	f.nextID++
	appt.ID = f.nextID
	f.appts = append(f.appts, appt)
	return nil
}

func (f *fakeApptRepo) GetByID(_ context.Context, id uint) (*models.Appointment, error) {
	for _, a := range f.appts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeApptRepo) ListByPatient(ctx context.Context, patientID uint, offset, limit int) ([]*models.Appointment, int64, error) {
	return f.List(ctx, &patientID, nil, offset, limit)
}

func (f *fakeApptRepo) ListByDoctor(ctx context.Context, doctorID uint, offset, limit int) ([]*models.Appointment, int64, error) {
	return f.List(ctx, nil, &doctorID, offset, limit)
}

func (f *fakeApptRepo) List(_ context.Context, patientID, doctorID *uint, offset, limit int) ([]*models.Appointment, int64, error) {
	var out []*models.Appointment
	for _, a := range f.appts {
		if patientID != nil && a.PatientID != *patientID {
			continue
		}
		if doctorID != nil && a.DoctorID != *doctorID {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (f *fakeApptRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	for _, a := range f.appts {
		if a.ID == id {
			a.Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeApptRepo) CountScheduledByDoctor(_ context.Context, doctorID uint) (int64, error) {
	var n int64
	for _, a := range f.appts {
		if a.DoctorID == doctorID && a.Status == models.ApptStatusScheduled {
			n++
		}
	}
	return n, nil
}

func (f *fakeApptRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.appts)), nil
}

func (f *fakeApptRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, a := range f.appts {
		if a.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeApptRepo) CompletePast(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, a := range f.appts {
		if a.Status == models.ApptStatusScheduled && a.DateTime.Before(now) {
			a.Status = models.ApptStatusCompleted
			n++
		}
	}
	return n, nil
}
