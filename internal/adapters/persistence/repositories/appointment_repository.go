package repositories

import (
	"context"
	"time"

	"careconnect-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// appointmentRepository implements AppointmentRepository interface
type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

// Create creates a new appointment
func (r *appointmentRepository) Create(ctx context.Context, appt *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

// GetByID gets an appointment with doctor and patient preloaded
func (r *appointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Patient.User").
		Where("id = ?", id).
		First(&appt).Error
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// ListByPatient lists a patient's appointments, newest first
func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID uint, offset, limit int) ([]*models.Appointment, int64, error) {
	patID := patientID
	return r.List(ctx, &patID, nil, offset, limit)
}

// ListByDoctor lists a doctor's appointments, newest first
func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID uint, offset, limit int) ([]*models.Appointment, int64, error) {
	docID := doctorID
	return r.List(ctx, nil, &docID, offset, limit)
}

// List lists appointments with optional patient/doctor filters
func (r *appointmentRepository) List(ctx context.Context, patientID, doctorID *uint, offset, limit int) ([]*models.Appointment, int64, error) {
	var appts []*models.Appointment
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Appointment{})
	if patientID != nil {
		q = q.Where("patient_id = ?", *patientID)
	}
	if doctorID != nil {
		q = q.Where("doctor_id = ?", *doctorID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Doctor").
		Preload("Patient.User").
		Order("date_time DESC").
		Offset(offset).
		Limit(limit).
		Find(&appts).Error
	if err != nil {
		return nil, 0, err
	}

	return appts, total, nil
}

// UpdateStatus sets an appointment's status
func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// CountScheduledByDoctor counts a doctor's SCHEDULED appointments
func (r *appointmentRepository) CountScheduledByDoctor(ctx context.Context, doctorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("doctor_id = ? AND status = ?", doctorID, models.ApptStatusScheduled).
		Count(&count).Error
	return count, err
}

// Count counts all appointments
func (r *appointmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).Count(&count).Error
	return count, err
}

// CountByStatus counts appointments with the given status
func (r *appointmentRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// CompletePast marks past-dated SCHEDULED appointments COMPLETED
func (r *appointmentRepository) CompletePast(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("status = ? AND date_time < ?", models.ApptStatusScheduled, now).
		Update("status", models.ApptStatusCompleted)
	return result.RowsAffected, result.Error
}
