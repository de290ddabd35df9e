// Package booking applies the scheduling rules that sit above the
// listing and visit repositories: who may request a viewing, and what
// a listing's weekly calendar looks like.
package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/mgallina/casaviva/internal/listing"
	"github.com/mgallina/casaviva/internal/slot"
	"github.com/mgallina/casaviva/internal/visit"
)

// Conflict errors. Each names a distinct business-rule violation so
// the caller can render distinct messages; all are safe to retry with
// different parameters.
var (
	ErrAlreadyVisited = errors.New("an accepted visit for this listing already exists")
	ErrAlreadyPending = errors.New("a pending visit for this listing already exists")
	ErrSelfVisit      = errors.New("landlords cannot request visits on their own listings")
	ErrSlotTaken      = errors.New("the requested slot is no longer available")
	ErrReasonRequired = errors.New("rejecting a visit requires a reason")
)

// Decision is a landlord's verdict on a pending visit.
type Decision string

const (
	Approve Decision = "accept"
	Refuse  Decision = "reject"
)

// Policy is the stateless rules layer combining the slot grid with
// the two repositories.
type Policy struct {
	listings *listing.Repository
	visits   *visit.Repository
	now      func() time.Time
}

// NewPolicy creates a booking policy. The clock is injectable for
// tests; pass nil for time.Now.
func NewPolicy(listings *listing.Repository, visits *visit.Repository, now func() time.Time) *Policy {
	if now == nil {
		now = time.Now
	}
	return &Policy{listings: listings, visits: visits, now: now}
}

// AvailabilityCalendar builds the listing's weekly grid and marks
// every cell taken by an accepted visit unavailable. Pending requests
// do not block cells: only acceptance claims a slot.
func (p *Policy) AvailabilityCalendar(listingID int64) ([]slot.Day, error) {
	week := slot.BuildWeek(p.now())

	taken, err := p.visits.AcceptedSlots(listingID)
	if err != nil {
		return nil, fmt.Errorf("loading accepted slots: %w", err)
	}

	for _, a := range taken {
		display, err := slot.DisplayDate(a.Date)
		if err != nil {
			return nil, fmt.Errorf("visit on listing %d: %w", listingID, err)
		}
		for d := range week {
			if week[d].Date != display {
				continue
			}
			for c := range week[d].Slots {
				if week[d].Slots[c].Pos == a.Slot {
					week[d].Slots[c].Available = false
				}
			}
		}
	}

	return week, nil
}

// CanRequestVisit checks whether the visitor may request any viewing
// on the listing. An accepted visit bars them forever; a pending one
// bars them until it is resolved; landlords cannot visit themselves.
func (p *Policy) CanRequestVisit(visitor string, listingID int64) error {
	owner, err := p.listings.OwnerOf(listingID)
	if err != nil {
		return err
	}
	if owner == visitor {
		return ErrSelfVisit
	}

	accepted, err := p.visits.HasAccepted(visitor, listingID)
	if err != nil {
		return fmt.Errorf("checking accepted visits: %w", err)
	}
	if accepted {
		return ErrAlreadyVisited
	}

	pending, err := p.visits.HasPending(visitor, listingID)
	if err != nil {
		return fmt.Errorf("checking pending visits: %w", err)
	}
	if pending {
		return ErrAlreadyPending
	}

	return nil
}

// RequestVisit validates eligibility and records a pending viewing
// request. A cell already claimed by an accepted visit is refused
// with ErrSlotTaken; competing pending requests for the same cell
// are allowed and stay pending until the landlord picks one.
func (p *Policy) RequestVisit(visitor string, listingID int64, date string, s slot.Slot, virtual bool) (*visit.Visit, error) {
	if err := p.CanRequestVisit(visitor, listingID); err != nil {
		return nil, err
	}

	taken, err := p.visits.IsSlotTaken(listingID, date, s)
	if err != nil {
		return nil, fmt.Errorf("checking slot availability: %w", err)
	}
	if taken {
		return nil, ErrSlotTaken
	}

	v, err := p.visits.Create(visitor, listingID, date, s, virtual)
	if err != nil {
		return nil, fmt.Errorf("recording visit request: %w", err)
	}

	return v, nil
}

// Review dispatches a landlord's decision on a pending visit.
// Authorization, tuple matching, and the pending-state requirement
// are all enforced by the repository's conditional update; false
// means nothing matched.
func (p *Policy) Review(landlord string, decision Decision, visitor string, listingID int64, date string, s slot.Slot, reason string) (bool, error) {
	switch decision {
	case Approve:
		return p.visits.Accept(landlord, visitor, listingID, date, s)
	case Refuse:
		if reason == "" {
			return false, ErrReasonRequired
		}
		return p.visits.Reject(landlord, visitor, listingID, date, s, reason)
	default:
		return false, fmt.Errorf("unknown decision: %q", decision)
	}
}
