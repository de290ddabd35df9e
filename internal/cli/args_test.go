package cli

import (
	"testing"

	"github.com/mgallina/casaviva/internal/slot"
)

func TestParseSlotArg(t *testing.T) {
	tests := []struct {
		arg     string
		want    slot.Slot
		wantErr bool
	}{
		{"9-12", slot.First, false},
		{"12-14", slot.Second, false},
		{"14-17", slot.Third, false},
		{"17-20", slot.Fourth, false},
		{"0", slot.First, false},
		{"3", slot.Fourth, false},
		{"4", 0, true},
		{"-1", 0, true},
		{"morning", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parseSlotArg(tt.arg)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseSlotArg(%q): expected error", tt.arg)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseSlotArg(%q): %v", tt.arg, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseSlotArg(%q) = %d, want %d", tt.arg, got, tt.want)
		}
	}
}
