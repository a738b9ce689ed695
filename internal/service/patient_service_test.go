package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/redsoft-clinic/clinicflow/internal/domain/patient"
)

func newPatientService(repo *mockPatientRepo) *PatientService {
	return NewPatientService(repo, testAuditService(), nil, zap.NewNop())
}

func TestCreatePatientDefaultsSource(t *testing.T) {
	svc := newPatientService(newMockPatientRepo())

	p, err := svc.CreatePatient(context.Background(), &patient.CreatePatientCommand{
		FirstName: "Meera",
		Gender:    patient.GenderFemale,
		Phone:     "+918800112233",
	}, uuid.New(), "receptionist", "10.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Source != patient.SourceUnknown {
		t.Errorf("source = %s, want unknown", p.Source)
	}
	if p.Status != patient.StatusActive {
		t.Errorf("status = %s, want active", p.Status)
	}
}

func TestCreatePatientRejectsDuplicatePhone(t *testing.T) {
	existing := activePatient()
	svc := newPatientService(newMockPatientRepo(existing))

	_, err := svc.CreatePatient(context.Background(), &patient.CreatePatientCommand{
		FirstName: "Another",
		Gender:    patient.GenderMale,
		Phone:     existing.Phone,
	}, uuid.New(), "receptionist", "10.0.0.1")
	if !errors.Is(err, patient.ErrPatientAlreadyExists) {
		t.Fatalf("error = %v, want ErrPatientAlreadyExists", err)
	}
}

func TestCreatePatientValidation(t *testing.T) {
	svc := newPatientService(newMockPatientRepo())

	_, err := svc.CreatePatient(context.Background(), &patient.CreatePatientCommand{
		LastName: "NoFirstName",
		Gender:   patient.Gender("not-a-gender"),
	}, uuid.New(), "receptionist", "10.0.0.1")

	var validErr *ValidationError
	if !errors.As(err, &validErr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if len(validErr.Fields) != 3 {
		t.Errorf("got %d field errors, want 3 (first_name, phone, gender): %v", len(validErr.Fields), validErr.Fields)
	}
}
