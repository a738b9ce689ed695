package doctor

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a doctor record.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Doctor struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	FirstName string `gorm:"column:first_name;type:varchar(100);not null"`
	LastName  string `gorm:"column:last_name;type:varchar(100);not null"`

	// Center is the clinic branch the doctor consults at.
	Center    string `gorm:"column:center;type:varchar(100);not null;index"`
	Specialty string `gorm:"column:specialty;type:varchar(100)"`

	Phone string `gorm:"column:phone;type:varchar(20)"`
	Email string `gorm:"column:email;type:varchar(255);uniqueIndex"`

	Status Status `gorm:"column:status;type:varchar(20);default:'active';index"`

	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
}

func (Doctor) TableName() string {
	return "clinical.doctors"
}

func (d *Doctor) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

func (d *Doctor) IsActive() bool {
	return d.Status == StatusActive && d.DeletedAt == nil
}

type CreateDoctorCommand struct {
	FirstName string
	LastName  string
	Center    string
	Specialty string
	Phone     string
	Email     string
	CreatedBy uuid.UUID
}

type ListDoctorsQuery struct {
	Center   string
	Status   *Status
	Page     int
	PageSize int
}

type PagedDoctors struct {
	Doctors    []*Doctor
	TotalCount int64
	Page       int
	PageSize   int
	TotalPages int
}
