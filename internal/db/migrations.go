package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
// Statements are idempotent so the list can run on every startup.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS people (
		username   TEXT    PRIMARY KEY,
		email      TEXT    NOT NULL,
		name       TEXT    NOT NULL,
		landlord   INTEGER NOT NULL DEFAULT 0,
		password   TEXT    NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS listings (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		address           TEXT    NOT NULL,
		title             TEXT    NOT NULL,
		description       TEXT    NOT NULL DEFAULT '',
		rooms             INTEGER NOT NULL CHECK (rooms >= 1),
		house_type        TEXT    NOT NULL,
		furnished         INTEGER NOT NULL DEFAULT 0,
		rent              REAL    NOT NULL CHECK (rent >= 0),
		available         INTEGER NOT NULL DEFAULT 1,
		landlord_username TEXT    NOT NULL REFERENCES people(username),
		created_at        DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at        DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS pictures (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		listing_id INTEGER NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
		path       TEXT    NOT NULL,
		position   INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS visits (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		listing_id       INTEGER NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
		visitor_username TEXT    NOT NULL REFERENCES people(username),
		visit_date       TEXT    NOT NULL,
		slot             INTEGER NOT NULL CHECK (slot >= 0 AND slot <= 3),
		virtual          INTEGER NOT NULL DEFAULT 0,
		status           TEXT    NOT NULL DEFAULT 'pending',
		refusal_reason   TEXT    NOT NULL DEFAULT '',
		created_at       DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at       DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_visits_listing ON visits(listing_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_visits_visitor ON visits(visitor_username)`,
	`CREATE INDEX IF NOT EXISTS idx_pictures_listing ON pictures(listing_id)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
