package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/redsoft-clinic/clinicflow/internal/domain/schedule"
)

type GormScheduleRepository struct {
	db *gorm.DB
}

func NewGormScheduleRepository(db *gorm.DB) *GormScheduleRepository {
	return &GormScheduleRepository{db: db}
}

// Replace runs the regeneration policy: delete everything inside the scope,
// then insert the fresh batch, in one transaction. Entries outside the scope
// survive untouched.
func (r *GormScheduleRepository) Replace(ctx context.Context, scope schedule.ReplaceScope, entries []*schedule.Entry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		del := tx.
			Where("doctor_id = ?", scope.DoctorID).
			Where("date >= ? AND date <= ?", scope.FromDate, scope.ToDate).
			Where("mode = ?", scope.Mode)
		if len(scope.Slots) > 0 {
			del = del.Where("time_slot IN ?", scope.Slots)
		}
		if err := del.Delete(&schedule.Entry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.CreateInBatches(entries, 500).Error
	})
}

func (r *GormScheduleRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID, from, to time.Time, limit int) ([]*schedule.Entry, error) {
	q := r.db.WithContext(ctx).
		Model(&schedule.Entry{}).
		Where("doctor_id = ?", doctorID)

	if !from.IsZero() {
		q = q.Where("date >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("date <= ?", to)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var entries []*schedule.Entry
	if err := q.Order("date ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormScheduleRepository) ListByDate(ctx context.Context, date time.Time, limit int) ([]*schedule.Entry, error) {
	q := r.db.WithContext(ctx).
		Model(&schedule.Entry{}).
		Where("date = ?", date)

	if limit > 0 {
		q = q.Limit(limit)
	}

	var entries []*schedule.Entry
	if err := q.Order("doctor_id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormScheduleRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Delete(&schedule.Entry{}, "id IN ?", ids)
	return res.RowsAffected, res.Error
}

func (r *GormScheduleRepository) DeleteRange(ctx context.Context, doctorID uuid.UUID, from, to time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Where("date >= ? AND date <= ?", from, to).
		Delete(&schedule.Entry{})
	return res.RowsAffected, res.Error
}
