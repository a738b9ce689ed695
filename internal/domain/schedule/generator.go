package schedule

// Generate expands an availability rule into the full set of bookable
// entries: every calendar date in [FromDate, ToDate] whose weekday is active,
// crossed with every catalog slot in [FromSlot, ToSlot]. Output is
// date-major, slot-minor, both ascending; readers that claim chronological
// order rely on this and must not re-sort differently.
//
// A rule with no active weekday yields an empty batch, not an error.
func Generate(rule *AvailabilityRule) ([]*Entry, error) {
	fromIdx, toIdx, err := rule.Validate()
	if err != nil {
		return nil, err
	}

	if rule.ActiveWeekdays.None() {
		return []*Entry{}, nil
	}

	from := DateOnly(rule.FromDate)
	to := DateOnly(rule.ToDate)

	var entries []*Entry
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if !rule.ActiveWeekdays[d.Weekday()] {
			continue
		}
		for i := fromIdx; i <= toIdx; i++ {
			entries = append(entries, &Entry{
				DoctorID: rule.DoctorID,
				Date:     d,
				Weekday:  WeekdayName(d.Weekday()),
				TimeSlot: SlotAt(i),
				Mode:     rule.Mode,
				Capacity: rule.CapacityPerSlot,
			})
		}
	}
	if entries == nil {
		entries = []*Entry{}
	}
	return entries, nil
}

// Scope returns the replace scope a regeneration of this rule covers.
func (r *AvailabilityRule) Scope() (ReplaceScope, error) {
	fromIdx, toIdx, err := r.Validate()
	if err != nil {
		return ReplaceScope{}, err
	}
	slots := make([]string, 0, toIdx-fromIdx+1)
	for i := fromIdx; i <= toIdx; i++ {
		slots = append(slots, SlotAt(i))
	}
	return ReplaceScope{
		DoctorID: r.DoctorID,
		FromDate: DateOnly(r.FromDate),
		ToDate:   DateOnly(r.ToDate),
		Slots:    slots,
		Mode:     r.Mode,
	}, nil
}
