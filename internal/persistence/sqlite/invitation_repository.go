package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/venue-booking/internal/persistence"
)

const invitationColumns = `id, venue_id, venue_name, token, created_by_user_id,
	invitee_user_id, invitee_first_name, invitee_last_name, invitee_email,
	created_at, expires_at, max_uses, uses, status, revoked_at, connected_at,
	connected_user_id`

// InvitationRepository implements persistence.InvitationRepository on SQLite.
type InvitationRepository struct {
	pool *ConnectionPool
}

// NewInvitationRepository creates a SQLite invitation repository.
func NewInvitationRepository(pool *ConnectionPool) *InvitationRepository {
	return &InvitationRepository{pool: pool}
}

// CreateInvitation inserts a new invitation. Tokens are unique, so an
// improbable token collision surfaces as persistence.ErrDuplicate.
func (r *InvitationRepository) CreateInvitation(ctx context.Context, invitation persistence.Invitation) error {
	if invitation.ID == "" || invitation.Token == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO invitations (`+invitationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		invitation.ID,
		invitation.VenueID,
		invitation.VenueName,
		invitation.Token,
		invitation.CreatedByUserID,
		optionalString(invitation.InviteeUserID),
		invitation.InviteeFirstName,
		invitation.InviteeLastName,
		invitation.InviteeEmail,
		formatTime(invitation.CreatedAt),
		optionalString(invitation.ExpiresAt),
		optionalInt(invitation.MaxUses),
		invitation.Uses,
		invitation.Status,
		formatOptionalTime(invitation.RevokedAt),
		formatOptionalTime(invitation.ConnectedAt),
		optionalString(invitation.ConnectedUserID),
	)
	return mapError(err)
}

// GetInvitation retrieves an invitation by ID.
func (r *InvitationRepository) GetInvitation(ctx context.Context, id string) (persistence.Invitation, error) {
	if id == "" {
		return persistence.Invitation{}, persistence.ErrNotFound
	}
	row := r.pool.db.QueryRowContext(ctx,
		"SELECT "+invitationColumns+" FROM invitations WHERE id = ?", id)
	return scanInvitation(row)
}

// GetInvitationByToken retrieves an invitation by its share token.
func (r *InvitationRepository) GetInvitationByToken(ctx context.Context, token string) (persistence.Invitation, error) {
	if token == "" {
		return persistence.Invitation{}, persistence.ErrNotFound
	}
	row := r.pool.db.QueryRowContext(ctx,
		"SELECT "+invitationColumns+" FROM invitations WHERE token = ?", token)
	return scanInvitation(row)
}

// UpdateInvitation rewrites the mutable invitation columns.
func (r *InvitationRepository) UpdateInvitation(ctx context.Context, invitation persistence.Invitation) error {
	if invitation.ID == "" {
		return persistence.ErrNotFound
	}

	result, err := r.pool.db.ExecContext(ctx, `
		UPDATE invitations SET
			expires_at = ?, max_uses = ?, uses = ?, status = ?,
			revoked_at = ?, connected_at = ?, connected_user_id = ?
		WHERE id = ?`,
		optionalString(invitation.ExpiresAt),
		optionalInt(invitation.MaxUses),
		invitation.Uses,
		invitation.Status,
		formatOptionalTime(invitation.RevokedAt),
		formatOptionalTime(invitation.ConnectedAt),
		optionalString(invitation.ConnectedUserID),
		invitation.ID,
	)
	if err != nil {
		return mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// ListInvitations returns the invitations issued for a venue, newest first.
func (r *InvitationRepository) ListInvitations(ctx context.Context, venueID string) ([]persistence.Invitation, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		"SELECT "+invitationColumns+` FROM invitations
		WHERE venue_id = ? ORDER BY created_at DESC, id DESC`, venueID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var invitations []persistence.Invitation
	for rows.Next() {
		invitation, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, invitation)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return invitations, nil
}

func scanInvitation(row rowScanner) (persistence.Invitation, error) {
	var (
		invitation             persistence.Invitation
		inviteeUserID          sql.NullString
		expiresAt              sql.NullString
		maxUses                sql.NullInt64
		revokedAt, connectedAt sql.NullString
		connectedUserID        sql.NullString
		createdAtStr           string
	)
	err := row.Scan(
		&invitation.ID,
		&invitation.VenueID,
		&invitation.VenueName,
		&invitation.Token,
		&invitation.CreatedByUserID,
		&inviteeUserID,
		&invitation.InviteeFirstName,
		&invitation.InviteeLastName,
		&invitation.InviteeEmail,
		&createdAtStr,
		&expiresAt,
		&maxUses,
		&invitation.Uses,
		&invitation.Status,
		&revokedAt,
		&connectedAt,
		&connectedUserID,
	)
	if err != nil {
		return persistence.Invitation{}, mapError(err)
	}

	invitation.InviteeUserID = stringPtr(inviteeUserID)
	invitation.ExpiresAt = stringPtr(expiresAt)
	invitation.MaxUses = intPtr(maxUses)
	invitation.ConnectedUserID = stringPtr(connectedUserID)
	if invitation.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return persistence.Invitation{}, err
	}
	if invitation.RevokedAt, err = parseOptionalTime(revokedAt); err != nil {
		return persistence.Invitation{}, err
	}
	if invitation.ConnectedAt, err = parseOptionalTime(connectedAt); err != nil {
		return persistence.Invitation{}, err
	}
	return invitation, nil
}
