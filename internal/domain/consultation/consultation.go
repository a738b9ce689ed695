package consultation

import (
	"time"

	"github.com/google/uuid"

	"github.com/redsoft-clinic/clinicflow/internal/domain/schedule"
)

// State transitions possibilities:
//
//	scheduled → confirmed → completed
//	scheduled → cancelled
//	confirmed → cancelled
//	confirmed → no_show (if patient doesn't arrive)
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

type Consultation struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`
	DoctorID  uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;index"`

	// A consultation occupies exactly one generated schedule slot.
	Date     time.Time     `gorm:"column:date;type:date;not null;index"`
	TimeSlot string        `gorm:"column:time_slot;type:varchar(10);not null"`
	Mode     schedule.Mode `gorm:"column:mode;type:varchar(20);not null;index"`

	Status Status `gorm:"column:status;type:varchar(30);not null;default:'scheduled';index"`

	Complaint string `gorm:"column:complaint;type:text"`
	Notes     string `gorm:"column:notes;type:text"`

	// Cancellation tracking
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`
	CancellationReason string     `gorm:"column:cancellation_reason;type:text"`
	CancelledBy        *uuid.UUID `gorm:"column:cancelled_by;type:uuid"`

	CompletedAt *time.Time `gorm:"column:completed_at"`

	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
}

func (Consultation) TableName() string {
	return "clinical.consultations"
}

// Occupied reports whether this consultation still holds its slot against
// capacity. Cancelled and no-show visits free the seat.
func (c *Consultation) Occupied() bool {
	return c.Status != StatusCancelled && c.Status != StatusNoShow
}

func (c *Consultation) CanTransitionTo(newStatus Status) bool {
	allowed := map[Status][]Status{
		StatusScheduled: {StatusConfirmed, StatusCancelled},
		StatusConfirmed: {StatusCompleted, StatusNoShow, StatusCancelled},
		StatusCompleted: {},
		StatusCancelled: {},
		StatusNoShow:    {},
	}

	for _, s := range allowed[c.Status] {
		if s == newStatus {
			return true
		}
	}
	return false
}

func (c *Consultation) Cancel(reason string, cancelledBy uuid.UUID) error {
	if !c.CanTransitionTo(StatusCancelled) {
		return ErrInvalidStatusTransition
	}
	now := time.Now()
	c.Status = StatusCancelled
	c.CancelledAt = &now
	c.CancellationReason = reason
	c.CancelledBy = &cancelledBy
	return nil
}

func (c *Consultation) Complete() error {
	if !c.CanTransitionTo(StatusCompleted) {
		return ErrInvalidStatusTransition
	}
	now := time.Now()
	c.Status = StatusCompleted
	c.CompletedAt = &now
	return nil
}

type BookConsultationCommand struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	Date      time.Time
	TimeSlot  string
	Mode      schedule.Mode
	Complaint string
	Notes     string
	CreatedBy uuid.UUID
}

type CancelConsultationCommand struct {
	Reason      string
	CancelledBy uuid.UUID
}

type ListConsultationsQuery struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
	Status    *Status
	Mode      *schedule.Mode
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	PageSize  int
}

type PagedConsultations struct {
	Consultations []*Consultation
	TotalCount    int64
	Page          int
	PageSize      int
	TotalPages    int
}
