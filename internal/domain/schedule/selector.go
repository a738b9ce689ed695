package schedule

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// BookingRequest is the partially filled selection a scheduling user is
// building. Fields populate incrementally; whichever are set narrow the
// candidate entries. A half-filled request is a normal transitional state,
// not an error.
type BookingRequest struct {
	DoctorID *uuid.UUID
	Date     *time.Time
	Mode     *Mode
}

// Filter narrows a snapshot of entries to those matching the request and
// returns them in chronological order: date ascending, then catalog order
// within a date. Slot labels sort by catalog position, never lexically —
// "10:00 AM" must come after "09:30 AM".
//
// An empty result is a valid outcome; callers present a placeholder option.
func Filter(entries []*Entry, req BookingRequest) ([]*Entry, error) {
	if req.Mode != nil && !req.Mode.IsValid() {
		return nil, ErrUnknownMode
	}

	matched := make([]*Entry, 0, len(entries))
	indexes := make(map[*Entry]int, len(entries))
	for _, e := range entries {
		if req.DoctorID != nil && e.DoctorID != *req.DoctorID {
			continue
		}
		if req.Date != nil && !DateOnly(e.Date).Equal(DateOnly(*req.Date)) {
			continue
		}
		if req.Mode != nil && e.Mode != *req.Mode {
			continue
		}
		idx, err := CatalogIndex(e.TimeSlot)
		if err != nil {
			// A stored label outside the catalog means the schedule store
			// was corrupted; surface it instead of sorting garbage.
			return nil, err
		}
		matched = append(matched, e)
		indexes[e] = idx
	}

	sort.SliceStable(matched, func(i, j int) bool {
		di, dj := DateOnly(matched[i].Date), DateOnly(matched[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return indexes[matched[i]] < indexes[matched[j]]
	})

	return matched, nil
}

// DateBounds returns the earliest and latest entry dates, used to bound the
// date picker in the doctor-first flow. ok is false for an empty snapshot.
func DateBounds(entries []*Entry) (min, max time.Time, ok bool) {
	for _, e := range entries {
		d := DateOnly(e.Date)
		if !ok {
			min, max, ok = d, d, true
			continue
		}
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}
	return min, max, ok
}

// DoctorIDs returns the distinct doctors present in a snapshot, used to
// restrict the doctor picker in the date-first flow. Order follows first
// appearance in the snapshot.
func DoctorIDs(entries []*Entry) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(entries))
	var out []uuid.UUID
	for _, e := range entries {
		if _, dup := seen[e.DoctorID]; dup {
			continue
		}
		seen[e.DoctorID] = struct{}{}
		out = append(out, e.DoctorID)
	}
	return out
}
