// Package visit provides the viewing-appointment domain model and data access.
package visit

import (
	"time"

	"github.com/mgallina/casaviva/internal/slot"
)

// Status tracks a visit through its lifecycle. A visit is created
// pending and moves exactly once, to accepted or rejected, by the
// owning landlord.
type Status string

const (
	Pending  Status = "pending"
	Accepted Status = "accepted"
	Rejected Status = "rejected"
)

// Visit represents one viewing request for a listing. The
// (listing, visitor, date, slot) tuple identifies it for the
// accept/reject flow.
type Visit struct {
	ID            int64     `json:"id"`
	ListingID     int64     `json:"listing_id"`
	Visitor       string    `json:"visitor"`
	Date          string    `json:"date"` // YYYY-MM-DD
	Slot          slot.Slot `json:"slot"`
	Virtual       bool      `json:"virtual"`
	Status        Status    `json:"status"`
	RefusalReason string    `json:"refusal_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// View decorates a visit with its listing's derived display fields,
// computed at query time for display convenience.
type View struct {
	Visit
	SlotLabel    string `json:"slot_label"`
	ListingTitle string `json:"listing_title"`
	Address      string `json:"address"`
	Type         string `json:"type"`
	Rent         string `json:"rent"`
	Landlord     string `json:"landlord"`
}

// AcceptedSlot is one (date, slot) cell taken by an accepted visit.
type AcceptedSlot struct {
	Date string // YYYY-MM-DD
	Slot slot.Slot
}
