package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func entry(doctorID uuid.UUID, d time.Time, slot string, mode Mode) *Entry {
	return &Entry{
		DoctorID: doctorID,
		Date:     d,
		Weekday:  WeekdayName(d.Weekday()),
		TimeSlot: slot,
		Mode:     mode,
		Capacity: 1,
	}
}

func TestFilterNarrowsByEachField(t *testing.T) {
	docA, docB := uuid.New(), uuid.New()
	monday := date(2025, time.June, 2)
	tuesday := date(2025, time.June, 3)

	snapshot := []*Entry{
		entry(docA, monday, "09:00 AM", ModeInPerson),
		entry(docA, monday, "09:30 AM", ModeCall),
		entry(docA, tuesday, "09:00 AM", ModeInPerson),
		entry(docB, monday, "09:00 AM", ModeInPerson),
	}

	mode := ModeInPerson
	got, err := Filter(snapshot, BookingRequest{
		DoctorID: &docA,
		Date:     &monday,
		Mode:     &mode,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	if got[0].DoctorID != docA || got[0].TimeSlot != "09:00 AM" {
		t.Errorf("wrong entry selected: %+v", got[0])
	}
}

func TestFilterEmptyRequestReturnsAllSorted(t *testing.T) {
	doc := uuid.New()
	monday := date(2025, time.June, 2)
	tuesday := date(2025, time.June, 3)

	// Deliberately shuffled, with labels that sort wrong lexically:
	// "10:00 AM" < "09:30 AM" as strings.
	snapshot := []*Entry{
		entry(doc, tuesday, "09:00 AM", ModeInPerson),
		entry(doc, monday, "10:00 AM", ModeInPerson),
		entry(doc, monday, "09:30 AM", ModeInPerson),
		entry(doc, monday, "02:00 PM", ModeInPerson),
	}

	got, err := Filter(snapshot, BookingRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d entries, want 4", len(got))
	}

	wantOrder := []struct {
		date time.Time
		slot string
	}{
		{monday, "09:30 AM"},
		{monday, "10:00 AM"},
		{monday, "02:00 PM"},
		{tuesday, "09:00 AM"},
	}
	for i, w := range wantOrder {
		if !got[i].Date.Equal(w.date) || got[i].TimeSlot != w.slot {
			t.Errorf("position %d = (%v, %q), want (%v, %q)",
				i, got[i].Date, got[i].TimeSlot, w.date, w.slot)
		}
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	doc := uuid.New()
	monday := date(2025, time.June, 2)
	snapshot := []*Entry{
		entry(doc, monday, "11:00 AM", ModeCall),
		entry(doc, monday, "09:00 AM", ModeCall),
	}

	mode := ModeCall
	req := BookingRequest{DoctorID: &doc, Date: &monday, Mode: &mode}

	once, err := Filter(snapshot, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := Filter(once, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(once) != len(twice) {
		t.Fatalf("re-filter changed length: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("re-filter changed result at %d", i)
		}
	}
}

func TestFilterModeMismatchYieldsEmpty(t *testing.T) {
	doc := uuid.New()
	monday := date(2025, time.June, 2)
	snapshot := []*Entry{
		entry(doc, monday, "09:00 AM", ModeInPerson),
	}

	mode := ModeCall
	got, err := Filter(snapshot, BookingRequest{Mode: &mode})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d entries, want 0", len(got))
	}
}

func TestFilterRejectsInvalidMode(t *testing.T) {
	bad := Mode("Telegram")
	_, err := Filter(nil, BookingRequest{Mode: &bad})
	if !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("error = %v, want ErrUnknownMode", err)
	}
}

func TestFilterRejectsCorruptSlotLabels(t *testing.T) {
	doc := uuid.New()
	snapshot := []*Entry{
		entry(doc, date(2025, time.June, 2), "quarter past nine", ModeInPerson),
	}

	_, err := Filter(snapshot, BookingRequest{})
	if !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("error = %v, want ErrUnknownSlot", err)
	}
}

func TestDateBounds(t *testing.T) {
	doc := uuid.New()

	if _, _, ok := DateBounds(nil); ok {
		t.Fatal("empty snapshot should report ok=false")
	}

	snapshot := []*Entry{
		entry(doc, date(2025, time.June, 10), "09:00 AM", ModeInPerson),
		entry(doc, date(2025, time.June, 2), "09:00 AM", ModeInPerson),
		entry(doc, date(2025, time.June, 6), "09:00 AM", ModeInPerson),
	}

	min, max, ok := DateBounds(snapshot)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if !min.Equal(date(2025, time.June, 2)) {
		t.Errorf("min = %v, want 2025-06-02", min)
	}
	if !max.Equal(date(2025, time.June, 10)) {
		t.Errorf("max = %v, want 2025-06-10", max)
	}
}

func TestDoctorIDsDistinctFirstAppearance(t *testing.T) {
	docA, docB := uuid.New(), uuid.New()
	monday := date(2025, time.June, 2)

	snapshot := []*Entry{
		entry(docB, monday, "09:00 AM", ModeInPerson),
		entry(docA, monday, "09:30 AM", ModeInPerson),
		entry(docB, monday, "10:00 AM", ModeInPerson),
	}

	ids := DoctorIDs(snapshot)
	if len(ids) != 2 {
		t.Fatalf("got %d ids, want 2", len(ids))
	}
	if ids[0] != docB || ids[1] != docA {
		t.Errorf("order = %v, want first-appearance [%v %v]", ids, docB, docA)
	}
}
