// Package slot provides the viewing time-slot enumeration and the
// rolling 7-day availability grid.
package slot

import (
	"errors"
	"fmt"
	"time"
)

// Slot is one of the four fixed daily viewing windows, indexed 0-3.
// The ordinal is the persisted form; the label is display-only.
type Slot int

const (
	First Slot = iota
	Second
	Third
	Fourth
)

// Count is the number of viewing slots per day.
const Count = 4

// ErrInvalidSlot is returned when a label or ordinal does not name a
// known slot. Slot ordinals are persisted and must round-trip exactly,
// so an unknown value is never silently defaulted.
var ErrInvalidSlot = errors.New("invalid slot")

var labels = [Count]string{"9-12", "12-14", "14-17", "17-20"}

// Date formats used throughout: dates are stored in ISO form and
// displayed in day-first form.
const (
	StoreFormat   = "2006-01-02"
	DisplayFormat = "02/01/2006"
)

// Valid reports whether s is one of the four known slots.
func (s Slot) Valid() bool {
	return s >= First && s <= Fourth
}

// Label returns the display string for a slot, e.g. "9-12".
func (s Slot) Label() (string, error) {
	if !s.Valid() {
		return "", fmt.Errorf("%w: ordinal %d", ErrInvalidSlot, int(s))
	}
	return labels[s], nil
}

// Parse maps a display label back to its slot ordinal.
func Parse(label string) (Slot, error) {
	for i, l := range labels {
		if l == label {
			return Slot(i), nil
		}
	}
	return 0, fmt.Errorf("%w: label %q", ErrInvalidSlot, label)
}

// Cell is one bookable slot within a day of the weekly grid.
type Cell struct {
	Time      string `json:"time"`
	Pos       Slot   `json:"pos"`
	Available bool   `json:"available"`
}

// Day is one day of the weekly grid with its four slot cells.
type Day struct {
	Date  string `json:"date"` // DD/MM/YYYY
	Slots []Cell `json:"slots"`
}

// BuildWeek returns the 7-day grid starting the day after now,
// all 28 cells initially available. Pure function of now.
func BuildWeek(now time.Time) []Day {
	tomorrow := now.AddDate(0, 0, 1)

	week := make([]Day, 0, 7)
	for i := 0; i < 7; i++ {
		day := Day{
			Date:  tomorrow.AddDate(0, 0, i).Format(DisplayFormat),
			Slots: make([]Cell, 0, Count),
		}
		for j := 0; j < Count; j++ {
			day.Slots = append(day.Slots, Cell{
				Time:      labels[j],
				Pos:       Slot(j),
				Available: true,
			})
		}
		week = append(week, day)
	}

	return week
}

// DisplayDate converts a stored ISO date to the grid's display form.
func DisplayDate(stored string) (string, error) {
	t, err := time.Parse(StoreFormat, stored)
	if err != nil {
		return "", fmt.Errorf("parsing stored date %q: %w", stored, err)
	}
	return t.Format(DisplayFormat), nil
}
