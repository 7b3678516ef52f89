package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// migration is one schema step. Steps are applied in order and recorded in
// schema_migrations so reruns are no-ops.
type migration struct {
	version int
	name    string
	stmts   []string
}

var migrations = []migration{
	{
		version: 1,
		name:    "create core tables",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS users (
				id         TEXT PRIMARY KEY,
				email      TEXT NOT NULL UNIQUE,
				password   TEXT NOT NULL,
				role       TEXT NOT NULL,
				first_name TEXT,
				last_name  TEXT,
				created_at TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS venues (
				id          TEXT PRIMARY KEY,
				name        TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				address     TEXT NOT NULL,
				admin_id    TEXT NOT NULL REFERENCES users(id),
				created_at  TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS rooms (
				id         TEXT PRIMARY KEY,
				venue_id   TEXT NOT NULL REFERENCES venues(id),
				name       TEXT NOT NULL,
				capacity   INTEGER NOT NULL CHECK (capacity >= 1),
				created_at TEXT NOT NULL
			)`,
		},
	},
	{
		version: 2,
		name:    "create membership and invitation tables",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS memberships (
				id            TEXT PRIMARY KEY,
				venue_id      TEXT NOT NULL REFERENCES venues(id),
				user_id       TEXT NOT NULL REFERENCES users(id),
				role          TEXT NOT NULL,
				joined_at     TEXT NOT NULL,
				invitation_id TEXT,
				UNIQUE (venue_id, user_id)
			)`,
			`CREATE TABLE IF NOT EXISTS invitations (
				id                 TEXT PRIMARY KEY,
				venue_id           TEXT NOT NULL REFERENCES venues(id),
				venue_name         TEXT NOT NULL,
				token              TEXT NOT NULL UNIQUE,
				created_by_user_id TEXT NOT NULL,
				invitee_user_id    TEXT,
				invitee_first_name TEXT NOT NULL DEFAULT '',
				invitee_last_name  TEXT NOT NULL DEFAULT '',
				invitee_email      TEXT NOT NULL,
				created_at         TEXT NOT NULL,
				expires_at         TEXT,
				max_uses           INTEGER,
				uses               INTEGER NOT NULL DEFAULT 0,
				status             TEXT NOT NULL,
				revoked_at         TEXT,
				connected_at       TEXT,
				connected_user_id  TEXT
			)`,
		},
	},
	{
		version: 3,
		name:    "create booking table",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS bookings (
				id           TEXT PRIMARY KEY,
				room_id      TEXT NOT NULL REFERENCES rooms(id),
				user_id      TEXT NOT NULL REFERENCES users(id),
				booking_date TEXT NOT NULL,
				start_time   TEXT NOT NULL,
				end_time     TEXT NOT NULL,
				status       TEXT NOT NULL,
				created_at   TEXT NOT NULL,
				CHECK (start_time < end_time)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_bookings_room_date
				ON bookings (room_id, booking_date, status)`,
		},
	},
}

// Migrate applies any pending schema migrations.
func Migrate(ctx context.Context, pool *ConnectionPool) error {
	if _, err := pool.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		)`); err != nil {
		return fmt.Errorf("sqlite: create schema_migrations: %w", err)
	}

	var current sql.NullInt64
	if err := pool.db.QueryRowContext(ctx, "SELECT MAX(version) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("sqlite: read schema version: %w", err)
	}

	for _, m := range migrations {
		if current.Valid && m.version <= int(current.Int64) {
			continue
		}
		err := pool.WithTransaction(ctx, func(tx *sql.Tx) error {
			for _, stmt := range m.stmts {
				if _, err := tx.Exec(stmt); err != nil {
					return fmt.Errorf("sqlite: migration %d %q: %w", m.version, m.name, err)
				}
			}
			if _, err := tx.Exec(
				"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
				m.version, m.name,
			); err != nil {
				return fmt.Errorf("sqlite: record migration %d: %w", m.version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
