package schedule

import (
	"fmt"
	"strings"
	"time"
)

// slotCatalog is the canonical table of bookable half-hour marks. Its order
// is the chronological order; every stored slot label must come from here.
var slotCatalog = [...]string{
	"12:00 AM", "12:30 AM", "01:00 AM", "01:30 AM", "02:00 AM", "02:30 AM",
	"03:00 AM", "03:30 AM", "04:00 AM", "04:30 AM", "05:00 AM", "05:30 AM",
	"06:00 AM", "06:30 AM", "07:00 AM", "07:30 AM", "08:00 AM", "08:30 AM",
	"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
	"12:00 PM", "12:30 PM", "01:00 PM", "01:30 PM", "02:00 PM", "02:30 PM",
	"03:00 PM", "03:30 PM", "04:00 PM", "04:30 PM", "05:00 PM", "05:30 PM",
	"06:00 PM", "06:30 PM", "07:00 PM", "07:30 PM", "08:00 PM", "08:30 PM",
	"09:00 PM", "09:30 PM", "10:00 PM", "10:30 PM", "11:00 PM", "11:30 PM",
}

// SlotCount is the number of bookable marks in a day.
const SlotCount = len(slotCatalog)

var slotIndexes = func() map[string]int {
	m := make(map[string]int, SlotCount)
	for i, label := range slotCatalog {
		m[label] = i
	}
	return m
}()

// CatalogIndex returns the position of a slot label in the catalog.
// Labels are trimmed before lookup; anything not in the catalog is rejected
// with ErrUnknownSlot so free-text corruption never sorts silently.
func CatalogIndex(label string) (int, error) {
	idx, ok := slotIndexes[strings.TrimSpace(label)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSlot, label)
	}
	return idx, nil
}

// SlotAt returns the catalog label at index i. Panics on an out-of-range
// index; callers only pass indexes obtained from CatalogIndex.
func SlotAt(i int) string {
	return slotCatalog[i]
}

// Catalog returns a copy of the full slot table in chronological order.
func Catalog() []string {
	out := make([]string, SlotCount)
	copy(out, slotCatalog[:])
	return out
}

// weekdayNames is indexed by time.Weekday (Sunday == 0).
var weekdayNames = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// WeekdayName returns the lower-case name stored on schedule entries.
func WeekdayName(d time.Weekday) string {
	return weekdayNames[d]
}

// ParseWeekday resolves a lower-case weekday name back to its time.Weekday.
func ParseWeekday(name string) (time.Weekday, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range weekdayNames {
		if n == name {
			return time.Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}
