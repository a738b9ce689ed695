package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/redsoft-clinic/clinicflow/internal/domain/consultation"
	"github.com/redsoft-clinic/clinicflow/internal/domain/doctor"
	"github.com/redsoft-clinic/clinicflow/internal/domain/patient"
	"github.com/redsoft-clinic/clinicflow/internal/domain/schedule"
	"github.com/redsoft-clinic/clinicflow/pkg/metrics"
)

// AvailableSlot is one bookable entry with its remaining capacity after
// subtracting consultations already holding seats.
type AvailableSlot struct {
	Entry     *schedule.Entry
	Remaining int
}

// DoctorAvailability is the doctor-first discovery result: every open slot
// from today onward plus the date bounds the booking UI uses to constrain
// its date picker.
type DoctorAvailability struct {
	Slots     []AvailableSlot
	FirstDate time.Time
	LastDate  time.Time
}

type BookingService struct {
	scheduleRepo schedule.Repository
	consultRepo  consultation.Repository
	doctorRepo   doctor.Repository
	patientRepo  patient.Repository
	auditSvc     *AuditService
	collector    *metrics.Collector
	log          *zap.Logger
	now          func() time.Time
}

func NewBookingService(
	scheduleRepo schedule.Repository,
	consultRepo consultation.Repository,
	doctorRepo doctor.Repository,
	patientRepo patient.Repository,
	auditSvc *AuditService,
	collector *metrics.Collector,
	log *zap.Logger,
) *BookingService {
	return &BookingService{
		scheduleRepo: scheduleRepo,
		consultRepo:  consultRepo,
		doctorRepo:   doctorRepo,
		patientRepo:  patientRepo,
		auditSvc:     auditSvc,
		collector:    collector,
		log:          log,
		now:          time.Now,
	}
}

// SlotsForDoctor is the doctor-first flow: the user picked a doctor and the
// UI needs every open slot from today onward, plus date bounds for its
// picker. Entries whose seats are all taken are not offered.
func (s *BookingService) SlotsForDoctor(ctx context.Context, doctorID uuid.UUID) (*DoctorAvailability, error) {
	ctx, span := otel.Tracer("clinicflow/booking").Start(ctx, "SlotsForDoctor")
	defer span.End()

	if _, err := s.doctorRepo.GetByID(ctx, doctorID); err != nil {
		return nil, fmt.Errorf("verifying doctor: %w", err)
	}

	today := schedule.DateOnly(s.now())
	entries, err := s.scheduleRepo.ListByDoctor(ctx, doctorID, today, time.Time{}, 0)
	if err != nil {
		return nil, fmt.Errorf("listing schedule: %w", err)
	}

	usage, err := s.consultRepo.UsageByDoctor(ctx, doctorID, today)
	if err != nil {
		return nil, fmt.Errorf("loading slot usage: %w", err)
	}

	slots, kept, err := subtractUsage(entries, usage)
	if err != nil {
		return nil, err
	}

	if s.collector != nil {
		s.collector.SlotLookupsTotal.WithLabelValues("doctor_first").Inc()
	}

	avail := &DoctorAvailability{Slots: slots}
	if min, max, ok := schedule.DateBounds(kept); ok {
		avail.FirstDate, avail.LastDate = min, max
	}
	return avail, nil
}

// DoctorsForDate is the date-first flow: the user picked a date and the UI
// needs the doctors who still have an open slot that day.
func (s *BookingService) DoctorsForDate(ctx context.Context, date time.Time) ([]*doctor.Doctor, error) {
	ctx, span := otel.Tracer("clinicflow/booking").Start(ctx, "DoctorsForDate")
	defer span.End()

	day := schedule.DateOnly(date)
	entries, err := s.scheduleRepo.ListByDate(ctx, day, 0)
	if err != nil {
		return nil, fmt.Errorf("listing schedule: %w", err)
	}

	usageByDoctor, err := s.consultRepo.UsageByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("loading slot usage: %w", err)
	}

	var open []*schedule.Entry
	for _, e := range entries {
		booked := usageFor(usageByDoctor[e.DoctorID], e.Date, e.TimeSlot)
		if e.Capacity-booked > 0 {
			open = append(open, e)
		}
	}

	if s.collector != nil {
		s.collector.SlotLookupsTotal.WithLabelValues("date_first").Inc()
	}

	ids := schedule.DoctorIDs(open)
	if len(ids) == 0 {
		return []*doctor.Doctor{}, nil
	}
	return s.doctorRepo.GetByIDs(ctx, ids)
}

// SlotOptions narrows to the final slot list once doctor, date, and mode all
// agree, sorted in catalog order. An empty result is a valid state the UI
// renders as a single placeholder option.
func (s *BookingService) SlotOptions(ctx context.Context, doctorID uuid.UUID, date time.Time, mode schedule.Mode) ([]AvailableSlot, error) {
	day := schedule.DateOnly(date)
	entries, err := s.scheduleRepo.ListByDoctor(ctx, doctorID, day, day, 0)
	if err != nil {
		return nil, fmt.Errorf("listing schedule: %w", err)
	}

	narrowed, err := schedule.Filter(entries, schedule.BookingRequest{
		DoctorID: &doctorID,
		Date:     &day,
		Mode:     &mode,
	})
	if err != nil {
		return nil, err
	}

	usage, err := s.consultRepo.UsageByDoctor(ctx, doctorID, day)
	if err != nil {
		return nil, fmt.Errorf("loading slot usage: %w", err)
	}

	slots, _, err := subtractUsage(narrowed, usage)
	if err != nil {
		return nil, err
	}

	if s.collector != nil {
		s.collector.SlotLookupsTotal.WithLabelValues("options").Inc()
	}
	return slots, nil
}

// BookConsultation confirms a booking. Doctor, date, mode, and slot must
// mutually agree with a persisted schedule entry that still has a free seat.
func (s *BookingService) BookConsultation(
	ctx context.Context,
	cmd *consultation.BookConsultationCommand,
	callerID uuid.UUID,
	callerRole string,
	ip string,
) (*consultation.Consultation, error) {
	ctx, span := otel.Tracer("clinicflow/booking").Start(ctx, "BookConsultation")
	defer span.End()

	if !cmd.Mode.IsValid() {
		return nil, schedule.ErrUnknownMode
	}
	if _, err := schedule.CatalogIndex(cmd.TimeSlot); err != nil {
		return nil, err
	}

	day := schedule.DateOnly(cmd.Date)
	if day.Before(schedule.DateOnly(s.now())) {
		return nil, consultation.ErrDateInPast
	}

	p, err := s.patientRepo.GetByID(ctx, cmd.PatientID)
	if err != nil {
		return nil, fmt.Errorf("verifying patient: %w", err)
	}
	if !p.IsActive() {
		return nil, patient.ErrPatientInactive
	}

	d, err := s.doctorRepo.GetByID(ctx, cmd.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("verifying doctor: %w", err)
	}
	if !d.IsActive() {
		return nil, doctor.ErrDoctorInactive
	}

	entries, err := s.scheduleRepo.ListByDoctor(ctx, cmd.DoctorID, day, day, 0)
	if err != nil {
		return nil, fmt.Errorf("listing schedule: %w", err)
	}

	var entry *schedule.Entry
	for _, e := range entries {
		if e.TimeSlot == cmd.TimeSlot && e.Mode == cmd.Mode {
			entry = e
			break
		}
	}
	if entry == nil {
		return nil, consultation.ErrSlotNotOffered
	}

	booked, err := s.consultRepo.CountBooked(ctx, cmd.DoctorID, day, cmd.TimeSlot)
	if err != nil {
		return nil, fmt.Errorf("counting booked seats: %w", err)
	}
	if booked >= entry.Capacity {
		return nil, consultation.ErrSlotFull
	}

	c := &consultation.Consultation{
		PatientID: cmd.PatientID,
		DoctorID:  cmd.DoctorID,
		Date:      day,
		TimeSlot:  cmd.TimeSlot,
		Mode:      cmd.Mode,
		Status:    consultation.StatusScheduled,
		Complaint: cmd.Complaint,
		Notes:     cmd.Notes,
		CreatedBy: cmd.CreatedBy,
	}

	if err := s.consultRepo.Create(ctx, c); err != nil {
		s.log.Error("failed to create consultation", zap.Error(err))
		return nil, fmt.Errorf("creating consultation: %w", err)
	}

	if s.collector != nil {
		s.collector.ConsultationsTotal.WithLabelValues(string(c.Status)).Inc()
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       "create",
		ResourceType: "consultation",
		ResourceID:   c.ID.String(),
		IPAddress:    ip,
	})

	return c, nil
}

func (s *BookingService) GetConsultation(ctx context.Context, id uuid.UUID) (*consultation.Consultation, error) {
	return s.consultRepo.GetByID(ctx, id)
}

func (s *BookingService) ListConsultations(ctx context.Context, q *consultation.ListConsultationsQuery) (*consultation.PagedConsultations, error) {
	if q.PageSize <= 0 || q.PageSize > 100 {
		q.PageSize = 20
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	return s.consultRepo.List(ctx, q)
}

func (s *BookingService) CancelConsultation(
	ctx context.Context,
	id uuid.UUID,
	cmd *consultation.CancelConsultationCommand,
	callerID uuid.UUID,
	callerRole string,
	ip string,
) (*consultation.Consultation, error) {
	c, err := s.consultRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.Cancel(cmd.Reason, cmd.CancelledBy); err != nil {
		return nil, err
	}

	if err := s.consultRepo.UpdateStatus(ctx, c); err != nil {
		return nil, fmt.Errorf("updating consultation status: %w", err)
	}

	if s.collector != nil {
		s.collector.ConsultationsTotal.WithLabelValues(string(c.Status)).Inc()
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       "update",
		ResourceType: "consultation",
		ResourceID:   id.String(),
		IPAddress:    ip,
		Changes:      fmt.Sprintf(`{"status":"cancelled","reason":%q}`, cmd.Reason),
	})

	return c, nil
}

func (s *BookingService) ConfirmConsultation(ctx context.Context, id uuid.UUID) (*consultation.Consultation, error) {
	c, err := s.consultRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.CanTransitionTo(consultation.StatusConfirmed) {
		return nil, consultation.ErrInvalidStatusTransition
	}
	c.Status = consultation.StatusConfirmed
	if err := s.consultRepo.UpdateStatus(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *BookingService) CompleteConsultation(ctx context.Context, id uuid.UUID) (*consultation.Consultation, error) {
	c, err := s.consultRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Complete(); err != nil {
		return nil, err
	}
	if err := s.consultRepo.UpdateStatus(ctx, c); err != nil {
		return nil, err
	}
	if s.collector != nil {
		s.collector.ConsultationsTotal.WithLabelValues(string(c.Status)).Inc()
	}
	return c, nil
}

// subtractUsage pairs entries with their remaining capacity, dropping
// fully booked ones. Returns the kept entries alongside for bounds math.
func subtractUsage(entries []*schedule.Entry, usage []consultation.SlotUsage) ([]AvailableSlot, []*schedule.Entry, error) {
	sorted, err := schedule.Filter(entries, schedule.BookingRequest{})
	if err != nil {
		return nil, nil, err
	}

	slots := make([]AvailableSlot, 0, len(sorted))
	kept := make([]*schedule.Entry, 0, len(sorted))
	for _, e := range sorted {
		remaining := e.Capacity - usageFor(usage, e.Date, e.TimeSlot)
		if remaining <= 0 {
			continue
		}
		slots = append(slots, AvailableSlot{Entry: e, Remaining: remaining})
		kept = append(kept, e)
	}
	return slots, kept, nil
}

func usageFor(usage []consultation.SlotUsage, date time.Time, slot string) int {
	day := schedule.DateOnly(date)
	for _, u := range usage {
		if schedule.DateOnly(u.Date).Equal(day) && u.TimeSlot == slot {
			return u.Booked
		}
	}
	return 0
}
