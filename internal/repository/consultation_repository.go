package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/redsoft-clinic/clinicflow/internal/domain/consultation"
)

// occupiedStatuses are the consultation states that hold a seat against
// slot capacity.
var occupiedStatuses = []consultation.Status{
	consultation.StatusScheduled,
	consultation.StatusConfirmed,
	consultation.StatusCompleted,
}

type GormConsultationRepository struct {
	db *gorm.DB
}

func NewGormConsultationRepository(db *gorm.DB) *GormConsultationRepository {
	return &GormConsultationRepository{db: db}
}

func (r *GormConsultationRepository) Create(ctx context.Context, c *consultation.Consultation) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *GormConsultationRepository) GetByID(ctx context.Context, id uuid.UUID) (*consultation.Consultation, error) {
	var c consultation.Consultation
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, consultation.ErrConsultationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormConsultationRepository) List(ctx context.Context, q *consultation.ListConsultationsQuery) (*consultation.PagedConsultations, error) {
	query := r.db.WithContext(ctx).
		Model(&consultation.Consultation{}).
		Where("deleted_at IS NULL")

	if q.PatientID != nil {
		query = query.Where("patient_id = ?", *q.PatientID)
	}
	if q.DoctorID != nil {
		query = query.Where("doctor_id = ?", *q.DoctorID)
	}
	if q.Status != nil {
		query = query.Where("status = ?", *q.Status)
	}
	if q.Mode != nil {
		query = query.Where("mode = ?", *q.Mode)
	}
	if q.DateFrom != nil {
		query = query.Where("date >= ?", *q.DateFrom)
	}
	if q.DateTo != nil {
		query = query.Where("date <= ?", *q.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []*consultation.Consultation
	offset := (q.Page - 1) * q.PageSize
	if err := query.Order("date ASC, created_at ASC").Limit(q.PageSize).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(q.PageSize) - 1) / int64(q.PageSize))
	return &consultation.PagedConsultations{
		Consultations: items,
		TotalCount:    total,
		Page:          q.Page,
		PageSize:      q.PageSize,
		TotalPages:    totalPages,
	}, nil
}

func (r *GormConsultationRepository) UpdateStatus(ctx context.Context, c *consultation.Consultation) error {
	return r.db.WithContext(ctx).
		Model(&consultation.Consultation{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"status":              c.Status,
			"cancelled_at":        c.CancelledAt,
			"cancellation_reason": c.CancellationReason,
			"cancelled_by":        c.CancelledBy,
			"completed_at":        c.CompletedAt,
		}).Error
}

func (r *GormConsultationRepository) CountBooked(ctx context.Context, doctorID uuid.UUID, date time.Time, timeSlot string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&consultation.Consultation{}).
		Where("deleted_at IS NULL").
		Where("doctor_id = ?", doctorID).
		Where("date = ?", date).
		Where("time_slot = ?", timeSlot).
		Where("status IN ?", occupiedStatuses).
		Count(&count).Error
	return int(count), err
}

func (r *GormConsultationRepository) UsageByDoctor(ctx context.Context, doctorID uuid.UUID, from time.Time) ([]consultation.SlotUsage, error) {
	var usage []consultation.SlotUsage
	err := r.db.WithContext(ctx).
		Model(&consultation.Consultation{}).
		Select("date, time_slot, COUNT(*) AS booked").
		Where("deleted_at IS NULL").
		Where("doctor_id = ?", doctorID).
		Where("date >= ?", from).
		Where("status IN ?", occupiedStatuses).
		Group("date, time_slot").
		Scan(&usage).Error
	return usage, err
}

func (r *GormConsultationRepository) UsageByDate(ctx context.Context, date time.Time) (map[uuid.UUID][]consultation.SlotUsage, error) {
	var rows []struct {
		DoctorID uuid.UUID
		Date     time.Time
		TimeSlot string
		Booked   int
	}
	err := r.db.WithContext(ctx).
		Model(&consultation.Consultation{}).
		Select("doctor_id, date, time_slot, COUNT(*) AS booked").
		Where("deleted_at IS NULL").
		Where("date = ?", date).
		Where("status IN ?", occupiedStatuses).
		Group("doctor_id, date, time_slot").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID][]consultation.SlotUsage, len(rows))
	for _, row := range rows {
		out[row.DoctorID] = append(out[row.DoctorID], consultation.SlotUsage{
			Date:     row.Date,
			TimeSlot: row.TimeSlot,
			Booked:   row.Booked,
		})
	}
	return out, nil
}
