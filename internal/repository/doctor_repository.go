package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/redsoft-clinic/clinicflow/internal/domain/doctor"
)

type GormDoctorRepository struct {
	db *gorm.DB
}

func NewGormDoctorRepository(db *gorm.DB) *GormDoctorRepository {
	return &GormDoctorRepository{db: db}
}

func (r *GormDoctorRepository) Create(ctx context.Context, d *doctor.Doctor) error {
	err := r.db.WithContext(ctx).Create(d).Error
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return doctor.ErrDoctorAlreadyExists
	}
	return err
}

func (r *GormDoctorRepository) GetByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	var d doctor.Doctor
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, doctor.ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *GormDoctorRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*doctor.Doctor, error) {
	if len(ids) == 0 {
		return []*doctor.Doctor{}, nil
	}
	var doctors []*doctor.Doctor
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Where("status = ?", doctor.StatusActive).
		Where("id IN ?", ids).
		Order("first_name ASC").
		Find(&doctors).Error
	return doctors, err
}

func (r *GormDoctorRepository) List(ctx context.Context, q *doctor.ListDoctorsQuery) (*doctor.PagedDoctors, error) {
	query := r.db.WithContext(ctx).
		Model(&doctor.Doctor{}).
		Where("deleted_at IS NULL")

	if q.Center != "" {
		query = query.Where("center = ?", q.Center)
	}
	if q.Status != nil {
		query = query.Where("status = ?", *q.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var doctors []*doctor.Doctor
	offset := (q.Page - 1) * q.PageSize
	if err := query.Order("first_name ASC").Limit(q.PageSize).Offset(offset).Find(&doctors).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(q.PageSize) - 1) / int64(q.PageSize))
	return &doctor.PagedDoctors{
		Doctors:    doctors,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (r *GormDoctorRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&doctor.Doctor{}).
		Where("id = ?", id).
		Update("status", doctor.StatusInactive)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return doctor.ErrDoctorNotFound
	}
	return nil
}
