package domain

import (
	"fmt"
	"time"
)

// BoardLayout describes the fixed set of slots: which buildings exist and
// how many slots each board carries
type BoardLayout struct {
	Buildings        []string
	SlotsPerBuilding int
}

// HasBuilding returns true if the building tag is part of the layout
func (l BoardLayout) HasBuilding(building string) bool {
	for _, b := range l.Buildings {
		if b == building {
			return true
		}
	}
	return false
}

// Contains returns true if the slot exists on the board
func (l BoardLayout) Contains(ref SlotRef) bool {
	return l.HasBuilding(ref.Building) && ref.Index >= 1 && ref.Index <= l.SlotsPerBuilding
}

// BusinessHours window in which bookings may start, both ends inclusive.
// Minutes are counted from local midnight.
type BusinessHours struct {
	OpenMinute  int
	CloseMinute int
}

// ParseBusinessHours parses "HH:MM" bounds
func ParseBusinessHours(open, close string) (BusinessHours, error) {
	o, err := time.Parse(TimeFormat, open)
	if err != nil {
		return BusinessHours{}, fmt.Errorf("invalid open time %q: %w", open, err)
	}
	c, err := time.Parse(TimeFormat, close)
	if err != nil {
		return BusinessHours{}, fmt.Errorf("invalid close time %q: %w", close, err)
	}

	hours := BusinessHours{
		OpenMinute:  o.Hour()*60 + o.Minute(),
		CloseMinute: c.Hour()*60 + c.Minute(),
	}
	if hours.OpenMinute > hours.CloseMinute {
		return BusinessHours{}, fmt.Errorf("open time %s is after close time %s", open, close)
	}
	return hours, nil
}

// Contains checks the wall-clock HH:MM of t (seconds are ignored)
func (h BusinessHours) Contains(t time.Time) bool {
	minute := t.Hour()*60 + t.Minute()
	return minute >= h.OpenMinute && minute <= h.CloseMinute
}
