package sqlite

import (
	"context"
	"fmt"
	"time"
)

// seedUser is a default account installed into an empty database so the
// service is usable immediately after first start.
type seedUser struct {
	id       string
	email    string
	password string
	role     string
}

var defaultUsers = []seedUser{
	{id: "1", email: "admin@example.com", password: "admin123", role: "admin"},
	{id: "2", email: "user@example.com", password: "user123", role: "user"},
}

// Seed installs the default accounts when the users table is empty. It runs
// after Migrate and is a no-op on a populated database.
func Seed(ctx context.Context, pool *ConnectionPool, now time.Time) error {
	var count int
	if err := pool.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("sqlite: count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, u := range defaultUsers {
		if _, err := pool.db.ExecContext(ctx, `
			INSERT INTO users (id, email, password, role, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			u.id, u.email, u.password, u.role, formatTime(now),
		); err != nil {
			return fmt.Errorf("sqlite: seed user %s: %w", u.email, err)
		}
	}
	return nil
}
