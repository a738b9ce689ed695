package patient

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
	GenderUnknown Gender = "unknown"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderUnknown:
		return true
	}
	return false
}

// Source is the marketing channel a patient enquiry arrived through.
type Source string

const (
	SourceWalkIn    Source = "walk_in"
	SourceWebsite   Source = "website"
	SourceGoogleAds Source = "google_ads"
	SourceSocial    Source = "social_media"
	SourceReferral  Source = "referral"
	SourceUnknown   Source = "unknown"
)

func (s Source) IsValid() bool {
	switch s {
	case SourceWalkIn, SourceWebsite, SourceGoogleAds, SourceSocial, SourceReferral, SourceUnknown:
		return true
	}
	return false
}

// Status represents the lifecycle state of a patient record.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Patient struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"` // Soft Delete

	FirstName   string     `gorm:"column:first_name;type:varchar(100);not null"`
	LastName    string     `gorm:"column:last_name;type:varchar(100)"`
	Gender      Gender     `gorm:"column:gender;type:varchar(20);not null"`
	DateOfBirth *time.Time `gorm:"column:date_of_birth"`

	// Phone is the dedup key for enquiries; the clinic treats a repeated
	// number as the same person.
	Phone string `gorm:"column:phone;type:varchar(20);not null;uniqueIndex"`
	Email string `gorm:"column:email;type:varchar(255)"`
	City  string `gorm:"column:city;type:varchar(100)"`

	Source Source `gorm:"column:source;type:varchar(30);not null;default:'unknown';index"`

	Status Status `gorm:"column:status;type:varchar(20);default:'active';index"`
	Notes  string `gorm:"column:notes;type:text"`

	// Audit: who registered this patient and when
	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
}

func (Patient) TableName() string {
	return "clinical.patients"
}

func (p *Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p *Patient) IsActive() bool {
	return p.Status == StatusActive && p.DeletedAt == nil
}

func (p *Patient) Deactivate() {
	p.Status = StatusInactive
}

type CreatePatientCommand struct {
	FirstName   string
	LastName    string
	Gender      Gender
	DateOfBirth *time.Time
	Phone       string
	Email       string
	City        string
	Source      Source
	Notes       string
	CreatedBy   uuid.UUID
}

// ListPatientsQuery defines filtering and pagination for patient list queries.
type ListPatientsQuery struct {
	Search   string // name or phone
	Status   *Status
	Source   *Source
	Page     int
	PageSize int
}

type PagedPatients struct {
	Patients   []*Patient
	TotalCount int64
	Page       int
	PageSize   int
	TotalPages int
}
