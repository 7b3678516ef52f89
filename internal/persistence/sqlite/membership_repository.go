package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/venue-booking/internal/persistence"
)

// MembershipRepository implements persistence.MembershipRepository on SQLite.
type MembershipRepository struct {
	pool *ConnectionPool
}

// NewMembershipRepository creates a SQLite membership repository.
func NewMembershipRepository(pool *ConnectionPool) *MembershipRepository {
	return &MembershipRepository{pool: pool}
}

// CreateMembership inserts a new membership. The (venue_id, user_id) pair is
// unique, so a concurrent duplicate join surfaces as persistence.ErrDuplicate.
func (r *MembershipRepository) CreateMembership(ctx context.Context, membership persistence.Membership) error {
	if membership.ID == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO memberships (id, venue_id, user_id, role, joined_at, invitation_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		membership.ID,
		membership.VenueID,
		membership.UserID,
		membership.Role,
		formatTime(membership.JoinedAt),
		optionalString(membership.InvitationID),
	)
	return mapError(err)
}

// FindMembership retrieves the membership for a venue/user pair.
func (r *MembershipRepository) FindMembership(ctx context.Context, venueID, userID string) (persistence.Membership, error) {
	if venueID == "" || userID == "" {
		return persistence.Membership{}, persistence.ErrNotFound
	}
	row := r.pool.db.QueryRowContext(ctx, `
		SELECT id, venue_id, user_id, role, joined_at, invitation_id
		FROM memberships WHERE venue_id = ? AND user_id = ?`, venueID, userID)
	return scanMembership(row)
}

// ListMemberships returns memberships matching the filter, ordered by join
// time then ID.
func (r *MembershipRepository) ListMemberships(ctx context.Context, filter persistence.MembershipFilter) ([]persistence.Membership, error) {
	query := `
		SELECT id, venue_id, user_id, role, joined_at, invitation_id
		FROM memberships`
	var (
		clauses []string
		args    []any
	)
	if filter.UserID != "" {
		clauses = append(clauses, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.VenueID != "" {
		clauses = append(clauses, "venue_id = ?")
		args = append(args, filter.VenueID)
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY joined_at ASC, id ASC"

	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var memberships []persistence.Membership
	for rows.Next() {
		membership, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, membership)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return memberships, nil
}

func scanMembership(row rowScanner) (persistence.Membership, error) {
	var (
		membership   persistence.Membership
		invitationID sql.NullString
		joinedAtStr  string
	)
	err := row.Scan(
		&membership.ID,
		&membership.VenueID,
		&membership.UserID,
		&membership.Role,
		&joinedAtStr,
		&invitationID,
	)
	if err != nil {
		return persistence.Membership{}, mapError(err)
	}

	membership.InvitationID = stringPtr(invitationID)
	if membership.JoinedAt, err = parseTime(joinedAtStr); err != nil {
		return persistence.Membership{}, err
	}
	return membership, nil
}
