package schedule

import (
	"errors"
	"testing"
	"time"
)

func TestCatalogShape(t *testing.T) {
	if SlotCount != 48 {
		t.Fatalf("SlotCount = %d, want 48", SlotCount)
	}
	if got := SlotAt(0); got != "12:00 AM" {
		t.Errorf("first slot = %q, want %q", got, "12:00 AM")
	}
	if got := SlotAt(SlotCount - 1); got != "11:30 PM" {
		t.Errorf("last slot = %q, want %q", got, "11:30 PM")
	}
}

func TestCatalogIndexRoundTrip(t *testing.T) {
	for i, label := range Catalog() {
		idx, err := CatalogIndex(label)
		if err != nil {
			t.Fatalf("CatalogIndex(%q) returned error: %v", label, err)
		}
		if idx != i {
			t.Errorf("CatalogIndex(%q) = %d, want %d", label, idx, i)
		}
	}
}

func TestCatalogIndexTrimsWhitespace(t *testing.T) {
	idx, err := CatalogIndex("  09:00 AM ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 18 {
		t.Errorf("index = %d, want 18", idx)
	}
}

func TestCatalogIndexRejectsUnknownLabels(t *testing.T) {
	cases := []string{"9:00 AM", "09:00", "09:15 AM", "13:00 PM", ""}
	for _, label := range cases {
		if _, err := CatalogIndex(label); !errors.Is(err, ErrUnknownSlot) {
			t.Errorf("CatalogIndex(%q) error = %v, want ErrUnknownSlot", label, err)
		}
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	c := Catalog()
	c[0] = "mutated"
	if got := SlotAt(0); got != "12:00 AM" {
		t.Errorf("catalog mutated through returned slice: %q", got)
	}
}

func TestWeekdayNames(t *testing.T) {
	if got := WeekdayName(time.Sunday); got != "sunday" {
		t.Errorf("WeekdayName(Sunday) = %q", got)
	}
	if got := WeekdayName(time.Wednesday); got != "wednesday" {
		t.Errorf("WeekdayName(Wednesday) = %q", got)
	}
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday(" Monday ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != time.Monday {
		t.Errorf("ParseWeekday = %v, want Monday", d)
	}

	if _, err := ParseWeekday("someday"); err == nil {
		t.Error("expected error for unknown weekday name")
	}
}
