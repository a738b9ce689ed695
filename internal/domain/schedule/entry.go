package schedule

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one concrete bookable (doctor, date, slot, mode) unit produced by
// the generator. (doctor_id, date, time_slot, mode) is unique; the index is
// created in pkg/database alongside the migrations.
type Entry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	DoctorID uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;index"`

	Date    time.Time `gorm:"column:date;type:date;not null;index"`
	Weekday string    `gorm:"column:weekday;type:varchar(10);not null"`

	TimeSlot string `gorm:"column:time_slot;type:varchar(10);not null"`
	Mode     Mode   `gorm:"column:mode;type:varchar(20);not null;index"`

	// Capacity is the number of patients bookable into this slot.
	Capacity int `gorm:"column:capacity;not null;default:1"`

	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid"`
}

func (Entry) TableName() string {
	return "clinical.schedule_entries"
}

// ReplaceScope names the exact portion of a doctor's schedule a regeneration
// covers. The store deletes matching rows and inserts the fresh batch in one
// transaction, so re-running a rule over an overlapping range replaces
// rather than duplicates.
// Slots is the expanded label list because slot order is catalog order, not
// something the database can range over.
type ReplaceScope struct {
	DoctorID uuid.UUID
	FromDate time.Time
	ToDate   time.Time
	Slots    []string
	Mode     Mode
}
