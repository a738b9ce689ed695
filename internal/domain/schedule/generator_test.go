package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mondayOnly() WeekdaySet {
	var w WeekdaySet
	w[time.Monday] = true
	return w
}

func allWeekdays() WeekdaySet {
	var w WeekdaySet
	for i := range w {
		w[i] = true
	}
	return w
}

func TestGenerateSkipsInactiveWeekdays(t *testing.T) {
	// 2025-06-02 is a Monday, 2025-06-03 a Tuesday.
	rule := &AvailabilityRule{
		DoctorID:        uuid.New(),
		FromDate:        date(2025, time.June, 2),
		ToDate:          date(2025, time.June, 3),
		FromSlot:        "09:00 AM",
		ToSlot:          "10:00 AM",
		ActiveWeekdays:  mondayOnly(),
		Mode:            ModeCall,
		CapacityPerSlot: 5,
	}

	entries, err := Generate(rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	wantSlots := []string{"09:00 AM", "09:30 AM", "10:00 AM"}
	for i, e := range entries {
		if !e.Date.Equal(date(2025, time.June, 2)) {
			t.Errorf("entry %d date = %v, want 2025-06-02", i, e.Date)
		}
		if e.Weekday != "monday" {
			t.Errorf("entry %d weekday = %q, want monday", i, e.Weekday)
		}
		if e.TimeSlot != wantSlots[i] {
			t.Errorf("entry %d slot = %q, want %q", i, e.TimeSlot, wantSlots[i])
		}
		if e.Mode != ModeCall {
			t.Errorf("entry %d mode = %q, want Call", i, e.Mode)
		}
		if e.Capacity != 5 {
			t.Errorf("entry %d capacity = %d, want 5", i, e.Capacity)
		}
	}
}

func TestGenerateCardinality(t *testing.T) {
	// Full week, 4-slot range: 7 days x 4 slots.
	rule := &AvailabilityRule{
		DoctorID:        uuid.New(),
		FromDate:        date(2025, time.June, 2),
		ToDate:          date(2025, time.June, 8),
		FromSlot:        "02:00 PM",
		ToSlot:          "03:30 PM",
		ActiveWeekdays:  allWeekdays(),
		Mode:            ModeInPerson,
		CapacityPerSlot: 1,
	}

	entries, err := Generate(rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 28 {
		t.Fatalf("got %d entries, want 28", len(entries))
	}
}

func TestGenerateOrderingIsDateMajorSlotMinor(t *testing.T) {
	rule := &AvailabilityRule{
		DoctorID:        uuid.New(),
		FromDate:        date(2025, time.June, 2),
		ToDate:          date(2025, time.June, 9),
		FromSlot:        "09:30 AM",
		ToSlot:          "10:30 AM",
		ActiveWeekdays:  mondayOnly(),
		Mode:            ModeInPerson,
		CapacityPerSlot: 1,
	}

	entries, err := Generate(rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 6 {
		t.Fatalf("got %d entries, want 6", len(entries))
	}

	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if cur.Date.Before(prev.Date) {
			t.Fatalf("entries out of date order at %d", i)
		}
		if cur.Date.Equal(prev.Date) {
			pi, _ := CatalogIndex(prev.TimeSlot)
			ci, _ := CatalogIndex(cur.TimeSlot)
			if ci <= pi {
				t.Fatalf("entries out of slot order at %d: %q then %q", i, prev.TimeSlot, cur.TimeSlot)
			}
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	rule := &AvailabilityRule{
		DoctorID:        uuid.New(),
		FromDate:        date(2025, time.June, 2),
		ToDate:          date(2025, time.June, 15),
		FromSlot:        "09:00 AM",
		ToSlot:          "05:00 PM",
		ActiveWeekdays:  allWeekdays(),
		Mode:            ModeInPerson,
		CapacityPerSlot: 2,
	}

	first, err := Generate(rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Generate(rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("runs disagree on length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Date.Equal(second[i].Date) || first[i].TimeSlot != second[i].TimeSlot {
			t.Fatalf("runs disagree at %d", i)
		}
	}
}

func TestGenerateNoActiveWeekdaysYieldsEmpty(t *testing.T) {
	rule := &AvailabilityRule{
		DoctorID:        uuid.New(),
		FromDate:        date(2025, time.June, 2),
		ToDate:          date(2025, time.June, 8),
		FromSlot:        "09:00 AM",
		ToSlot:          "10:00 AM",
		Mode:            ModeInPerson,
		CapacityPerSlot: 1,
	}

	entries, err := Generate(rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(entries) != 0 {
		t.Fatalf("got %d entries, want 0", len(entries))
	}
}

func TestGenerateSingleDaySingleSlot(t *testing.T) {
	rule := &AvailabilityRule{
		DoctorID:        uuid.New(),
		FromDate:        date(2025, time.June, 2),
		ToDate:          date(2025, time.June, 2),
		FromSlot:        "11:00 AM",
		ToSlot:          "11:00 AM",
		ActiveWeekdays:  mondayOnly(),
		Mode:            ModeCall,
		CapacityPerSlot: 1,
	}

	entries, err := Generate(rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].TimeSlot != "11:00 AM" {
		t.Errorf("slot = %q, want 11:00 AM", entries[0].TimeSlot)
	}
}

func TestGenerateValidationErrors(t *testing.T) {
	base := AvailabilityRule{
		DoctorID:        uuid.New(),
		FromDate:        date(2025, time.June, 2),
		ToDate:          date(2025, time.June, 8),
		FromSlot:        "09:00 AM",
		ToSlot:          "10:00 AM",
		ActiveWeekdays:  allWeekdays(),
		Mode:            ModeInPerson,
		CapacityPerSlot: 1,
	}

	tests := []struct {
		name    string
		mutate  func(r *AvailabilityRule)
		wantErr error
	}{
		{
			name:    "inverted slot range",
			mutate:  func(r *AvailabilityRule) { r.FromSlot, r.ToSlot = "11:00 PM", "09:00 AM" },
			wantErr: ErrInvalidRange,
		},
		{
			name:    "inverted date range",
			mutate:  func(r *AvailabilityRule) { r.FromDate, r.ToDate = r.ToDate, r.FromDate },
			wantErr: ErrInvalidRange,
		},
		{
			name:    "zero from date",
			mutate:  func(r *AvailabilityRule) { r.FromDate = time.Time{} },
			wantErr: ErrInvalidRange,
		},
		{
			name:    "unknown from slot",
			mutate:  func(r *AvailabilityRule) { r.FromSlot = "09:15 AM" },
			wantErr: ErrUnknownSlot,
		},
		{
			name:    "unknown to slot",
			mutate:  func(r *AvailabilityRule) { r.ToSlot = "25:00 PM" },
			wantErr: ErrUnknownSlot,
		},
		{
			name:    "invalid mode",
			mutate:  func(r *AvailabilityRule) { r.Mode = "Telepathy" },
			wantErr: ErrUnknownMode,
		},
		{
			name:    "negative capacity",
			mutate:  func(r *AvailabilityRule) { r.CapacityPerSlot = -1 },
			wantErr: ErrInvalidCapacity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := base
			tt.mutate(&rule)

			entries, err := Generate(&rule)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if entries != nil {
				t.Error("expected nil entries on validation failure")
			}
		})
	}
}

func TestScopeExpandsSlotLabels(t *testing.T) {
	rule := &AvailabilityRule{
		DoctorID:        uuid.New(),
		FromDate:        date(2025, time.June, 2),
		ToDate:          date(2025, time.June, 8),
		FromSlot:        "09:00 AM",
		ToSlot:          "10:30 AM",
		ActiveWeekdays:  mondayOnly(),
		Mode:            ModeInPerson,
		CapacityPerSlot: 1,
	}

	scope, err := rule.Scope()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM"}
	if len(scope.Slots) != len(want) {
		t.Fatalf("got %d slots, want %d", len(scope.Slots), len(want))
	}
	for i, s := range want {
		if scope.Slots[i] != s {
			t.Errorf("slot %d = %q, want %q", i, scope.Slots[i], s)
		}
	}
	if scope.DoctorID != rule.DoctorID || scope.Mode != rule.Mode {
		t.Error("scope does not carry rule identity")
	}
}
