package visit

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mgallina/casaviva/internal/listing"
	"github.com/mgallina/casaviva/internal/slot"
)

// Repository provides persistence for viewing requests. It performs
// no business-rule checks beyond storage integrity: eligibility is
// the booking policy's concern.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a visit repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new visit in pending state.
func (r *Repository) Create(visitor string, listingID int64, date string, s slot.Slot, virtual bool) (*Visit, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: ordinal %d", slot.ErrInvalidSlot, int(s))
	}
	if _, err := time.Parse(slot.StoreFormat, date); err != nil {
		return nil, fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
	}

	result, err := r.db.Exec(
		"INSERT INTO visits (listing_id, visitor_username, visit_date, slot, virtual) VALUES (?, ?, ?, ?, ?)",
		listingID, visitor, date, int(s), virtual,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting visit: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	var v Visit
	err = r.db.QueryRow(
		"SELECT id, listing_id, visitor_username, visit_date, slot, virtual, status, refusal_reason, created_at FROM visits WHERE id = ?",
		id,
	).Scan(&v.ID, &v.ListingID, &v.Visitor, &v.Date, &v.Slot, &v.Virtual, &v.Status, &v.RefusalReason, &v.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("reading back visit: %w", err)
	}

	return &v, nil
}

// HasAccepted reports whether the visitor ever had a visit accepted
// on the listing. An accepted visit bars that visitor from the
// listing for good.
func (r *Repository) HasAccepted(visitor string, listingID int64) (bool, error) {
	return r.hasWithStatus(visitor, listingID, Accepted)
}

// HasPending reports whether the visitor has an unresolved request on
// the listing.
func (r *Repository) HasPending(visitor string, listingID int64) (bool, error) {
	return r.hasWithStatus(visitor, listingID, Pending)
}

func (r *Repository) hasWithStatus(visitor string, listingID int64, status Status) (bool, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM visits WHERE visitor_username = ? AND listing_id = ? AND status = ?",
		visitor, listingID, string(status),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("counting %s visits: %w", status, err)
	}
	return count > 0, nil
}

// AcceptedSlots returns every (date, slot) cell on the listing taken
// by an accepted visit.
func (r *Repository) AcceptedSlots(listingID int64) ([]AcceptedSlot, error) {
	rows, err := r.db.Query(
		"SELECT visit_date, slot FROM visits WHERE listing_id = ? AND status = ?",
		listingID, string(Accepted),
	)
	if err != nil {
		return nil, fmt.Errorf("querying accepted slots: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var taken []AcceptedSlot
	for rows.Next() {
		var a AcceptedSlot
		if err := rows.Scan(&a.Date, &a.Slot); err != nil {
			return nil, fmt.Errorf("scanning accepted slot: %w", err)
		}
		taken = append(taken, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating accepted slots: %w", err)
	}

	return taken, nil
}

// IsSlotTaken reports whether an accepted visit already occupies the
// exact (date, slot) cell on the listing.
func (r *Repository) IsSlotTaken(listingID int64, date string, s slot.Slot) (bool, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM visits WHERE listing_id = ? AND visit_date = ? AND slot = ? AND status = ?",
		listingID, date, int(s), string(Accepted),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking slot: %w", err)
	}
	return count > 0, nil
}

const viewQuery = `
	SELECT V.id, V.listing_id, V.visitor_username, V.visit_date, V.slot, V.virtual, V.status, V.refusal_reason, V.created_at,
	       L.title, L.address, L.house_type, L.rent, L.landlord_username
	FROM visits V
	INNER JOIN listings L ON L.id = V.listing_id
	WHERE %s
	ORDER BY V.created_at DESC, V.id DESC`

// ListByVisitor returns a visitor's requests, newest first, each
// decorated with its listing's display fields.
func (r *Repository) ListByVisitor(visitor string) ([]*View, error) {
	return r.listViews(fmt.Sprintf(viewQuery, "V.visitor_username = ?"), visitor)
}

// ListByLandlord returns every request on the landlord's listings,
// newest first, decorated the same way.
func (r *Repository) ListByLandlord(landlord string) ([]*View, error) {
	return r.listViews(fmt.Sprintf(viewQuery, "L.landlord_username = ?"), landlord)
}

func (r *Repository) listViews(query string, arg string) ([]*View, error) {
	rows, err := r.db.Query(query, arg)
	if err != nil {
		return nil, fmt.Errorf("listing visits: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var views []*View
	for rows.Next() {
		var v View
		var houseType listing.HouseType
		var rent float64
		if err := rows.Scan(
			&v.ID, &v.ListingID, &v.Visitor, &v.Date, &v.Slot, &v.Virtual, &v.Status, &v.RefusalReason, &v.CreatedAt,
			&v.ListingTitle, &v.Address, &houseType, &rent, &v.Landlord,
		); err != nil {
			return nil, fmt.Errorf("scanning visit: %w", err)
		}

		label, err := v.Slot.Label()
		if err != nil {
			return nil, fmt.Errorf("visit %d: %w", v.ID, err)
		}
		v.SlotLabel = label
		v.Type = houseType.DisplayName()
		v.Rent = listing.RentLabel(rent)
		views = append(views, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating visits: %w", err)
	}

	return views, nil
}

// Accept transitions a pending visit to accepted. The update matches
// only when the requesting landlord owns the listing, the exact
// tuple exists, and the visit is still pending; one conditional
// statement enforces all three, so there is no check-then-act race.
// Returns false when nothing matched.
func (r *Repository) Accept(landlord, visitor string, listingID int64, date string, s slot.Slot) (bool, error) {
	return r.resolve(Accepted, "", landlord, visitor, listingID, date, s)
}

// Reject transitions a pending visit to rejected, storing the reason.
// The reason must not be empty. Matching rules are the same as Accept.
func (r *Repository) Reject(landlord, visitor string, listingID int64, date string, s slot.Slot, reason string) (bool, error) {
	if reason == "" {
		return false, fmt.Errorf("a refusal reason is required")
	}
	return r.resolve(Rejected, reason, landlord, visitor, listingID, date, s)
}

func (r *Repository) resolve(to Status, reason, landlord, visitor string, listingID int64, date string, s slot.Slot) (bool, error) {
	result, err := r.db.Exec(`
		UPDATE visits
		SET status = ?, refusal_reason = ?, updated_at = CURRENT_TIMESTAMP
		WHERE listing_id = ?
		  AND visitor_username = ?
		  AND visit_date = ?
		  AND slot = ?
		  AND status = ?
		  AND EXISTS (
		      SELECT 1 FROM listings L
		      WHERE L.id = visits.listing_id AND L.landlord_username = ?
		  )`,
		string(to), reason, listingID, visitor, date, int(s), string(Pending), landlord,
	)
	if err != nil {
		return false, fmt.Errorf("updating visit status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking rows affected: %w", err)
	}

	return affected > 0, nil
}
