package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/redsoft-clinic/clinicflow/internal/domain/doctor"
	"github.com/redsoft-clinic/clinicflow/internal/domain/schedule"
	"github.com/redsoft-clinic/clinicflow/pkg/metrics"
)

type ScheduleService struct {
	repo       schedule.Repository
	doctorRepo doctor.Repository
	auditSvc   *AuditService
	collector  *metrics.Collector
	log        *zap.Logger
}

func NewScheduleService(
	repo schedule.Repository,
	doctorRepo doctor.Repository,
	auditSvc *AuditService,
	collector *metrics.Collector,
	log *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		repo:       repo,
		doctorRepo: doctorRepo,
		auditSvc:   auditSvc,
		collector:  collector,
		log:        log,
	}
}

// GenerateSlots expands an availability rule into schedule entries and
// persists them, replacing whatever the same scope held before. Validation
// happens before any store call, so an invalid rule never leaves a partial
// schedule behind.
func (s *ScheduleService) GenerateSlots(
	ctx context.Context,
	rule *schedule.AvailabilityRule,
	callerID uuid.UUID,
	callerRole string,
	ip string,
) ([]*schedule.Entry, error) {
	ctx, span := otel.Tracer("clinicflow/schedule").Start(ctx, "GenerateSlots")
	defer span.End()

	d, err := s.doctorRepo.GetByID(ctx, rule.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("verifying doctor: %w", err)
	}
	if !d.IsActive() {
		return nil, doctor.ErrDoctorInactive
	}

	entries, err := schedule.Generate(rule)
	if err != nil {
		return nil, err
	}

	// No active weekday selected: nothing to persist, and nothing to wipe.
	if len(entries) == 0 {
		return entries, nil
	}

	for _, e := range entries {
		e.CreatedBy = callerID
	}

	scope, err := rule.Scope()
	if err != nil {
		return nil, err
	}

	if err := s.repo.Replace(ctx, scope, entries); err != nil {
		s.log.Error("failed to persist schedule entries",
			zap.String("doctor_id", rule.DoctorID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("persisting schedule entries: %w", err)
	}

	if s.collector != nil {
		s.collector.SlotsGeneratedTotal.Add(float64(len(entries)))
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       "create",
		ResourceType: "schedule",
		ResourceID:   rule.DoctorID.String(),
		IPAddress:    ip,
		Changes:      fmt.Sprintf(`{"entries":%d,"mode":%q}`, len(entries), rule.Mode),
	})

	s.log.Info("schedule generated",
		zap.String("doctor_id", rule.DoctorID.String()),
		zap.Int("entries", len(entries)),
		zap.String("mode", string(rule.Mode)),
	)

	return entries, nil
}

// ListByDoctor returns a doctor's entries in chronological order. The store
// orders by date; ordering within a date is catalog order, which only the
// selector knows how to apply.
func (s *ScheduleService) ListByDoctor(ctx context.Context, doctorID uuid.UUID, from, to time.Time, limit int) ([]*schedule.Entry, error) {
	entries, err := s.repo.ListByDoctor(ctx, doctorID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("listing schedule: %w", err)
	}
	return schedule.Filter(entries, schedule.BookingRequest{})
}

func (s *ScheduleService) ListByDate(ctx context.Context, date time.Time, limit int) ([]*schedule.Entry, error) {
	entries, err := s.repo.ListByDate(ctx, schedule.DateOnly(date), limit)
	if err != nil {
		return nil, fmt.Errorf("listing schedule: %w", err)
	}
	return schedule.Filter(entries, schedule.BookingRequest{})
}

// DeleteRange removes a doctor's entries inside a date range, the staff bulk
// cleanup operation.
func (s *ScheduleService) DeleteRange(
	ctx context.Context,
	doctorID uuid.UUID,
	from, to time.Time,
	callerID uuid.UUID,
	callerRole string,
	ip string,
) (int64, error) {
	from, to = schedule.DateOnly(from), schedule.DateOnly(to)
	if from.After(to) {
		return 0, schedule.ErrInvalidRange
	}

	deleted, err := s.repo.DeleteRange(ctx, doctorID, from, to)
	if err != nil {
		return 0, fmt.Errorf("deleting schedule range: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       "delete",
		ResourceType: "schedule",
		ResourceID:   doctorID.String(),
		IPAddress:    ip,
		Changes:      fmt.Sprintf(`{"deleted":%d}`, deleted),
	})

	return deleted, nil
}
