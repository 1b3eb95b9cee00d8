package repositories

import (
	"context"

	"careconnect-backend/internal/adapters/persistence/models"
	"careconnect-backend/internal/core/domain"

	"gorm.io/gorm"
)

// doctorRepository implements DoctorRepository over the users table
type doctorRepository struct {
	db *gorm.DB
}

// NewDoctorRepository creates a new doctor repository
func NewDoctorRepository(db *gorm.DB) DoctorRepository {
	return &doctorRepository{db: db}
}

// GetByID gets a user by ID constrained to role DOCTOR
func (r *doctorRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var doctor models.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, domain.RoleDoctor.String()).
		First(&doctor).Error
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

// List lists doctors ordered by name, with pagination
func (r *doctorRepository) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	var doctors []*models.User
	var total int64

	q := r.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", domain.RoleDoctor.String())
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Order("name ASC").Offset(offset).Limit(limit).Find(&doctors).Error; err != nil {
		return nil, 0, err
	}

	return doctors, total, nil
}

// DeleteWithAppointments deletes the doctor's appointments then the
// user row inside one transaction. The SCHEDULED-appointment guard
// runs inside the same transaction, so a booking landing after the
// caller's check still blocks the delete.
func (r *doctorRepository) DeleteWithAppointments(ctx context.Context, doctorID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var active int64
		if err := tx.Model(&models.Appointment{}).
			Where("doctor_id = ? AND status = ?", doctorID, models.ApptStatusScheduled).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return domain.ErrDoctorHasActiveAppts
		}

		if err := tx.Unscoped().Where("doctor_id = ?", doctorID).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.User{}, doctorID).Error
	})
}
