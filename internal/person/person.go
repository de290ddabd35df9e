// Package person provides the account domain model and data access.
package person

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Person represents a registered account. Usernames are the natural
// key and never change. Only landlords may own listings and review
// visit requests; everyone else can only request visits.
type Person struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Landlord  bool      `json:"landlord"`
	CreatedAt time.Time `json:"created_at"`
}

// Store manages people in SQLite. Password hashing happens upstream;
// the store only persists an opaque hash string.
type Store struct {
	db *sql.DB
}

// NewStore creates a person store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Add creates a new person.
func (s *Store) Add(username, email, name, passwordHash string, landlord bool) (*Person, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	_, err := s.db.Exec(
		"INSERT INTO people (username, email, name, landlord, password) VALUES (?, ?, ?, ?, ?)",
		username, email, name, landlord, passwordHash,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, fmt.Errorf("username already taken: %s", username)
		}
		return nil, fmt.Errorf("adding person: %w", err)
	}

	return s.Get(username)
}

// Get returns a person by username.
func (s *Store) Get(username string) (*Person, error) {
	var p Person
	err := s.db.QueryRow(
		"SELECT username, email, name, landlord, created_at FROM people WHERE username = ?",
		username,
	).Scan(&p.Username, &p.Email, &p.Name, &p.Landlord, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("person %s not found", username)
	}
	if err != nil {
		return nil, fmt.Errorf("querying person %s: %w", username, err)
	}
	return &p, nil
}

// IsLandlord reports whether the username belongs to a landlord
// account. Unknown usernames are not landlords.
func (s *Store) IsLandlord(username string) (bool, error) {
	var landlord bool
	err := s.db.QueryRow(
		"SELECT landlord FROM people WHERE username = ?", username,
	).Scan(&landlord)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying person %s: %w", username, err)
	}
	return landlord, nil
}

// PasswordHash returns the stored password hash for a username.
// Verification against it is the caller's concern.
func (s *Store) PasswordHash(username string) (string, error) {
	var hash string
	err := s.db.QueryRow(
		"SELECT password FROM people WHERE username = ?", username,
	).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("person %s not found", username)
	}
	if err != nil {
		return "", fmt.Errorf("querying password for %s: %w", username, err)
	}
	return hash, nil
}
