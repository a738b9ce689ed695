package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/redsoft-clinic/clinicflow/internal/domain"
	"github.com/redsoft-clinic/clinicflow/internal/domain/consultation"
	"github.com/redsoft-clinic/clinicflow/internal/domain/doctor"
	"github.com/redsoft-clinic/clinicflow/internal/domain/patient"
	"github.com/redsoft-clinic/clinicflow/internal/domain/schedule"
)

type mockScheduleRepo struct {
	entries []*schedule.Entry

	replaceCalls  int
	replacedScope schedule.ReplaceScope
	replaced      []*schedule.Entry
	replaceErr    error

	deletedRange int64
}

func (m *mockScheduleRepo) Replace(_ context.Context, scope schedule.ReplaceScope, entries []*schedule.Entry) error {
	m.replaceCalls++
	m.replacedScope = scope
	m.replaced = entries
	return m.replaceErr
}

func (m *mockScheduleRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID, from, to time.Time, _ int) ([]*schedule.Entry, error) {
	var out []*schedule.Entry
	for _, e := range m.entries {
		if e.DoctorID != doctorID {
			continue
		}
		d := schedule.DateOnly(e.Date)
		if !from.IsZero() && d.Before(schedule.DateOnly(from)) {
			continue
		}
		if !to.IsZero() && d.After(schedule.DateOnly(to)) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *mockScheduleRepo) ListByDate(_ context.Context, date time.Time, _ int) ([]*schedule.Entry, error) {
	var out []*schedule.Entry
	for _, e := range m.entries {
		if schedule.DateOnly(e.Date).Equal(schedule.DateOnly(date)) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockScheduleRepo) DeleteByIDs(_ context.Context, ids []uuid.UUID) (int64, error) {
	return int64(len(ids)), nil
}

func (m *mockScheduleRepo) DeleteRange(_ context.Context, doctorID uuid.UUID, from, to time.Time) (int64, error) {
	var n int64
	for _, e := range m.entries {
		d := schedule.DateOnly(e.Date)
		if e.DoctorID == doctorID && !d.Before(from) && !d.After(to) {
			n++
		}
	}
	m.deletedRange = n
	return n, nil
}

type mockDoctorRepo struct {
	doctors map[uuid.UUID]*doctor.Doctor
}

func newMockDoctorRepo(docs ...*doctor.Doctor) *mockDoctorRepo {
	m := &mockDoctorRepo{doctors: make(map[uuid.UUID]*doctor.Doctor)}
	for _, d := range docs {
		m.doctors[d.ID] = d
	}
	return m
}

func (m *mockDoctorRepo) Create(_ context.Context, d *doctor.Doctor) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	m.doctors[d.ID] = d
	return nil
}

func (m *mockDoctorRepo) GetByID(_ context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, doctor.ErrDoctorNotFound
	}
	return d, nil
}

func (m *mockDoctorRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*doctor.Doctor, error) {
	var out []*doctor.Doctor
	for _, id := range ids {
		if d, ok := m.doctors[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockDoctorRepo) List(_ context.Context, q *doctor.ListDoctorsQuery) (*doctor.PagedDoctors, error) {
	var docs []*doctor.Doctor
	for _, d := range m.doctors {
		docs = append(docs, d)
	}
	return &doctor.PagedDoctors{Doctors: docs, TotalCount: int64(len(docs)), Page: q.Page, PageSize: q.PageSize}, nil
}

func (m *mockDoctorRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	d, ok := m.doctors[id]
	if !ok {
		return doctor.ErrDoctorNotFound
	}
	d.Status = doctor.StatusInactive
	return nil
}

type mockPatientRepo struct {
	patients map[uuid.UUID]*patient.Patient
}

func newMockPatientRepo(ps ...*patient.Patient) *mockPatientRepo {
	m := &mockPatientRepo{patients: make(map[uuid.UUID]*patient.Patient)}
	for _, p := range ps {
		m.patients[p.ID] = p
	}
	return m
}

func (m *mockPatientRepo) Create(_ context.Context, p *patient.Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) GetByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	return p, nil
}

func (m *mockPatientRepo) GetByPhone(_ context.Context, phone string) (*patient.Patient, error) {
	for _, p := range m.patients {
		if p.Phone == phone {
			return p, nil
		}
	}
	return nil, patient.ErrPatientNotFound
}

func (m *mockPatientRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.patients[id]; !ok {
		return patient.ErrPatientNotFound
	}
	delete(m.patients, id)
	return nil
}

func (m *mockPatientRepo) List(_ context.Context, q *patient.ListPatientsQuery) (*patient.PagedPatients, error) {
	var ps []*patient.Patient
	for _, p := range m.patients {
		ps = append(ps, p)
	}
	return &patient.PagedPatients{Patients: ps, TotalCount: int64(len(ps)), Page: q.Page, PageSize: q.PageSize}, nil
}

func (m *mockPatientRepo) ExistsByPhone(_ context.Context, phone string, excludeID *uuid.UUID) (bool, error) {
	for _, p := range m.patients {
		if excludeID != nil && p.ID == *excludeID {
			continue
		}
		if p.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

type mockConsultationRepo struct {
	consultations map[uuid.UUID]*consultation.Consultation
	usage         map[uuid.UUID][]consultation.SlotUsage
	created       []*consultation.Consultation
}

func newMockConsultationRepo() *mockConsultationRepo {
	return &mockConsultationRepo{
		consultations: make(map[uuid.UUID]*consultation.Consultation),
		usage:         make(map[uuid.UUID][]consultation.SlotUsage),
	}
}

func (m *mockConsultationRepo) Create(_ context.Context, c *consultation.Consultation) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.consultations[c.ID] = c
	m.created = append(m.created, c)
	return nil
}

func (m *mockConsultationRepo) GetByID(_ context.Context, id uuid.UUID) (*consultation.Consultation, error) {
	c, ok := m.consultations[id]
	if !ok {
		return nil, consultation.ErrConsultationNotFound
	}
	return c, nil
}

func (m *mockConsultationRepo) List(_ context.Context, q *consultation.ListConsultationsQuery) (*consultation.PagedConsultations, error) {
	var cs []*consultation.Consultation
	for _, c := range m.consultations {
		cs = append(cs, c)
	}
	return &consultation.PagedConsultations{Consultations: cs, TotalCount: int64(len(cs)), Page: q.Page, PageSize: q.PageSize}, nil
}

func (m *mockConsultationRepo) UpdateStatus(_ context.Context, c *consultation.Consultation) error {
	m.consultations[c.ID] = c
	return nil
}

func (m *mockConsultationRepo) CountBooked(_ context.Context, doctorID uuid.UUID, date time.Time, timeSlot string) (int, error) {
	for _, u := range m.usage[doctorID] {
		if schedule.DateOnly(u.Date).Equal(schedule.DateOnly(date)) && u.TimeSlot == timeSlot {
			return u.Booked, nil
		}
	}
	return 0, nil
}

func (m *mockConsultationRepo) UsageByDoctor(_ context.Context, doctorID uuid.UUID, from time.Time) ([]consultation.SlotUsage, error) {
	var out []consultation.SlotUsage
	for _, u := range m.usage[doctorID] {
		if !schedule.DateOnly(u.Date).Before(schedule.DateOnly(from)) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockConsultationRepo) UsageByDate(_ context.Context, date time.Time) (map[uuid.UUID][]consultation.SlotUsage, error) {
	out := make(map[uuid.UUID][]consultation.SlotUsage)
	for docID, usages := range m.usage {
		for _, u := range usages {
			if schedule.DateOnly(u.Date).Equal(schedule.DateOnly(date)) {
				out[docID] = append(out[docID], u)
			}
		}
	}
	return out, nil
}

type mockAuditRepo struct{}

func (mockAuditRepo) Create(context.Context, *domain.AuditLog) error { return nil }

func testAuditService() *AuditService {
	return NewAuditService(mockAuditRepo{}, zap.NewNop())
}

func activeDoctor() *doctor.Doctor {
	return &doctor.Doctor{
		ID:        uuid.New(),
		FirstName: "Asha",
		LastName:  "Rao",
		Center:    "Indiranagar",
		Email:     "asha.rao@clinic.example",
		Status:    doctor.StatusActive,
	}
}

func activePatient() *patient.Patient {
	return &patient.Patient{
		ID:        uuid.New(),
		FirstName: "Ravi",
		Gender:    patient.GenderMale,
		Phone:     "+919900112233",
		Source:    patient.SourceWalkIn,
		Status:    patient.StatusActive,
	}
}
