package slot

import (
	"errors"
	"testing"
	"time"
)

func TestLabelParseRoundTrip(t *testing.T) {
	for s := First; s <= Fourth; s++ {
		label, err := s.Label()
		if err != nil {
			t.Fatalf("label for %d: %v", s, err)
		}
		got, err := Parse(label)
		if err != nil {
			t.Fatalf("parse %q: %v", label, err)
		}
		if got != s {
			t.Errorf("Parse(Label(%d)) = %d, want %d", s, got, s)
		}
	}
}

func TestLabels(t *testing.T) {
	tests := []struct {
		s    Slot
		want string
	}{
		{First, "9-12"},
		{Second, "12-14"},
		{Third, "14-17"},
		{Fourth, "17-20"},
	}
	for _, tt := range tests {
		got, err := tt.s.Label()
		if err != nil {
			t.Fatalf("label for %d: %v", tt.s, err)
		}
		if got != tt.want {
			t.Errorf("Slot(%d).Label() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestParseUnknownLabel(t *testing.T) {
	for _, label := range []string{"", "8-12", "9-13", "nine to noon"} {
		_, err := Parse(label)
		if !errors.Is(err, ErrInvalidSlot) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidSlot", label, err)
		}
	}
}

func TestLabelInvalidOrdinal(t *testing.T) {
	for _, s := range []Slot{-1, 4, 99} {
		_, err := s.Label()
		if !errors.Is(err, ErrInvalidSlot) {
			t.Errorf("Slot(%d).Label() error = %v, want ErrInvalidSlot", s, err)
		}
	}
}

func TestBuildWeek(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	week := BuildWeek(now)
	if len(week) != 7 {
		t.Fatalf("got %d days, want 7", len(week))
	}
	if week[0].Date != "11/03/2026" {
		t.Errorf("first day = %q, want tomorrow (11/03/2026)", week[0].Date)
	}
	if week[6].Date != "17/03/2026" {
		t.Errorf("last day = %q, want 17/03/2026", week[6].Date)
	}

	cells := 0
	for _, day := range week {
		if len(day.Slots) != Count {
			t.Errorf("day %s has %d slots, want %d", day.Date, len(day.Slots), Count)
		}
		for i, cell := range day.Slots {
			cells++
			if !cell.Available {
				t.Errorf("cell %s/%s not available in fresh grid", day.Date, cell.Time)
			}
			if cell.Pos != Slot(i) {
				t.Errorf("cell %s[%d] pos = %d, want %d", day.Date, i, cell.Pos, i)
			}
		}
	}
	if cells != 28 {
		t.Errorf("got %d cells, want 28", cells)
	}
}

func TestBuildWeekCrossesMonthBoundary(t *testing.T) {
	now := time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC)

	week := BuildWeek(now)
	if week[0].Date != "01/02/2026" {
		t.Errorf("first day = %q, want 01/02/2026", week[0].Date)
	}
}

func TestDisplayDate(t *testing.T) {
	got, err := DisplayDate("2026-03-12")
	if err != nil {
		t.Fatalf("display date: %v", err)
	}
	if got != "12/03/2026" {
		t.Errorf("DisplayDate = %q, want %q", got, "12/03/2026")
	}

	if _, err := DisplayDate("12/03/2026"); err == nil {
		t.Error("expected error for non-ISO input")
	}
}
