package listing

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a listing does not exist or is not
// reachable by the caller. Ownership mismatches surface as not-found
// too, so the existence of other landlords' listings never leaks.
var ErrNotFound = errors.New("listing not found")

// SortKey selects the public listing sort order.
type SortKey string

const (
	SortByPrice SortKey = "price" // highest rent first
	SortByRooms SortKey = "rooms" // fewest rooms first
)

// Repository provides CRUD operations for listings and their pictures.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a listing repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, address, title, description, rooms, house_type, furnished, rent, available, landlord_username, created_at, updated_at`

func scanListing(row interface{ Scan(...interface{}) error }) (*Listing, error) {
	var l Listing
	err := row.Scan(
		&l.ID, &l.Address, &l.Title, &l.Description, &l.Rooms, &l.Type,
		&l.Furnished, &l.Rent, &l.Available, &l.Landlord, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListPublic returns every available listing decorated for display,
// each with its landlord's name and one representative picture.
// Sorting happens on the stored numeric columns, not the display
// labels, so "5+" never sorts lexically against "4".
func (r *Repository) ListPublic(sortBy SortKey) ([]*View, error) {
	order := "L.rent DESC"
	if sortBy == SortByRooms {
		order = "L.rooms ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s, P.name,
		       COALESCE((SELECT path FROM pictures WHERE listing_id = L.id ORDER BY position, id LIMIT 1), '')
		FROM listings L
		INNER JOIN people P ON P.username = L.landlord_username
		WHERE L.available = 1
		ORDER BY %s, L.id ASC`,
		prefixColumns("L"), order,
	)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing public ads: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var views []*View
	for rows.Next() {
		var l Listing
		var name, image string
		if err := rows.Scan(
			&l.ID, &l.Address, &l.Title, &l.Description, &l.Rooms, &l.Type,
			&l.Furnished, &l.Rent, &l.Available, &l.Landlord, &l.CreatedAt, &l.UpdatedAt,
			&name, &image,
		); err != nil {
			return nil, fmt.Errorf("scanning listing: %w", err)
		}
		views = append(views, decorate(&l, name, image))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating listings: %w", err)
	}

	return views, nil
}

// GetByID returns one listing decorated for display.
func (r *Repository) GetByID(id int64) (*View, error) {
	query := fmt.Sprintf(`
		SELECT %s, P.name,
		       COALESCE((SELECT path FROM pictures WHERE listing_id = L.id ORDER BY position, id LIMIT 1), '')
		FROM listings L
		INNER JOIN people P ON P.username = L.landlord_username
		WHERE L.id = ?`,
		prefixColumns("L"),
	)

	var l Listing
	var name, image string
	err := r.db.QueryRow(query, id).Scan(
		&l.ID, &l.Address, &l.Title, &l.Description, &l.Rooms, &l.Type,
		&l.Furnished, &l.Rent, &l.Available, &l.Landlord, &l.CreatedAt, &l.UpdatedAt,
		&name, &image,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("listing %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying listing %d: %w", id, err)
	}

	return decorate(&l, name, image), nil
}

// GetRawByID returns the stored listing record, including the
// availability flag and owner. Used by the owning landlord's edit flow.
func (r *Repository) GetRawByID(id int64) (*Listing, error) {
	query := fmt.Sprintf("SELECT %s FROM listings WHERE id = ?", selectColumns)

	l, err := scanListing(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("listing %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying listing %d: %w", id, err)
	}

	return l, nil
}

// ListByLandlord returns all of a landlord's listings, newest first,
// available or not.
func (r *Repository) ListByLandlord(username string) ([]*Listing, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM listings WHERE landlord_username = ? ORDER BY created_at DESC, id DESC",
		selectColumns,
	)

	rows, err := r.db.Query(query, username)
	if err != nil {
		return nil, fmt.Errorf("listing ads for %s: %w", username, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var listings []*Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning listing: %w", err)
		}
		listings = append(listings, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating listings: %w", err)
	}

	return listings, nil
}

// Create inserts a new listing and its picture rows in one
// transaction and returns the stored record.
func (r *Repository) Create(l *Listing, imagePaths []string) (created *Listing, err error) {
	if err := validateFields(l); err != nil {
		return nil, err
	}
	if len(imagePaths) > MaxImages {
		return nil, fmt.Errorf("at most %d images allowed, got %d", MaxImages, len(imagePaths))
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				err = fmt.Errorf("%w (also failed to roll back: %v)", err, rbErr)
			}
		}
	}()

	result, err := tx.Exec(`
		INSERT INTO listings (address, title, description, rooms, house_type, furnished, rent, available, landlord_username)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.Address, l.Title, l.Description, l.Rooms, string(l.Type), l.Furnished, l.Rent, l.Available, l.Landlord,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting listing: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	if err := insertPictures(tx, id, imagePaths); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing listing: %w", err)
	}

	return r.GetRawByID(id)
}

// Update rewrites a listing's fields. Only the owning landlord's row
// matches; anything else reports not-found. An empty image list keeps
// the existing pictures; a non-empty one replaces the whole set and
// the previously stored paths are returned so their blobs can be
// removed.
func (r *Repository) Update(l *Listing, imagePaths []string) (replaced []string, err error) {
	if err := validateFields(l); err != nil {
		return nil, err
	}
	if len(imagePaths) > MaxImages {
		return nil, fmt.Errorf("at most %d images allowed, got %d", MaxImages, len(imagePaths))
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				err = fmt.Errorf("%w (also failed to roll back: %v)", err, rbErr)
			}
		}
	}()

	result, err := tx.Exec(`
		UPDATE listings
		SET address = ?, title = ?, description = ?, rooms = ?, house_type = ?,
		    furnished = ?, rent = ?, available = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND landlord_username = ?`,
		l.Address, l.Title, l.Description, l.Rooms, string(l.Type),
		l.Furnished, l.Rent, l.Available, l.ID, l.Landlord,
	)
	if err != nil {
		return nil, fmt.Errorf("updating listing %d: %w", l.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("listing %d: %w", l.ID, ErrNotFound)
	}

	if len(imagePaths) > 0 {
		replaced, err = queryPictures(tx, l.ID)
		if err != nil {
			return nil, err
		}
		if _, err = tx.Exec("DELETE FROM pictures WHERE listing_id = ?", l.ID); err != nil {
			return nil, fmt.Errorf("clearing pictures for listing %d: %w", l.ID, err)
		}
		if err = insertPictures(tx, l.ID, imagePaths); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing update: %w", err)
	}

	return replaced, nil
}

// ImagesOf returns all stored picture paths for a listing, in order.
func (r *Repository) ImagesOf(id int64) ([]string, error) {
	return queryPictures(r.db, id)
}

// OwnerOf returns the username of the landlord who owns a listing.
func (r *Repository) OwnerOf(id int64) (string, error) {
	var owner string
	err := r.db.QueryRow("SELECT landlord_username FROM listings WHERE id = ?", id).Scan(&owner)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("listing %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("querying owner of listing %d: %w", id, err)
	}
	return owner, nil
}

func validateFields(l *Listing) error {
	if !l.Type.IsValid() {
		return fmt.Errorf("invalid house type: %q", l.Type)
	}
	if l.Rooms < 1 {
		return fmt.Errorf("rooms must be at least 1, got %d", l.Rooms)
	}
	if l.Rent < 0 {
		return fmt.Errorf("rent must not be negative, got %.2f", l.Rent)
	}
	if l.Landlord == "" {
		return fmt.Errorf("landlord is required")
	}
	return nil
}

func insertPictures(tx *sql.Tx, listingID int64, paths []string) error {
	for i, p := range paths {
		if _, err := tx.Exec(
			"INSERT INTO pictures (listing_id, path, position) VALUES (?, ?, ?)",
			listingID, p, i,
		); err != nil {
			return fmt.Errorf("inserting picture %d for listing %d: %w", i, listingID, err)
		}
	}
	return nil
}

type querier interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

func queryPictures(q querier, listingID int64) ([]string, error) {
	rows, err := q.Query(
		"SELECT path FROM pictures WHERE listing_id = ? ORDER BY position, id",
		listingID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying pictures for listing %d: %w", listingID, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning picture: %w", err)
		}
		paths = append(paths, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pictures: %w", err)
	}

	return paths, nil
}

// prefixColumns qualifies the listing select columns with a table alias.
func prefixColumns(alias string) string {
	return alias + ".id, " + alias + ".address, " + alias + ".title, " + alias + ".description, " +
		alias + ".rooms, " + alias + ".house_type, " + alias + ".furnished, " + alias + ".rent, " +
		alias + ".available, " + alias + ".landlord_username, " + alias + ".created_at, " + alias + ".updated_at"
}
