package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shoplist-app/shoplist/internal/models"
)

// Invite creates a pending invitation from the list owner to targetID and
// bumps the list version so members observe that the invitee set changed.
func (s *SQLiteStore) Invite(ctx context.Context, actorID, targetID, listID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := requireOwner(ctx, tx, actorID, listID); err != nil {
			return err
		}
		ok, err := userExists(ctx, tx, targetID)
		if err != nil {
			return err
		}
		if !ok {
			return models.ErrNotFound
		}

		// The (list_id, user_id) primary key rejects a second invitation as
		// well as inviting an existing member, the owner included.
		_, err = tx.ExecContext(ctx,
			`INSERT INTO memberships (list_id, user_id, state) VALUES (?, ?, ?)`,
			listID, targetID, models.StateInvited,
		)
		if isUniqueViolation(err) {
			return models.ErrAlreadyExists
		}
		if err != nil {
			return fmt.Errorf("failed to insert invitation: %w", err)
		}
		return bumpList(ctx, tx, listID)
	})
}

// WithdrawInvitation deletes a pending invitation on behalf of the owner.
func (s *SQLiteStore) WithdrawInvitation(ctx context.Context, actorID, targetID, listID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := requireOwner(ctx, tx, actorID, listID); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`DELETE FROM memberships WHERE list_id = ? AND user_id = ? AND state = ?`,
			listID, targetID, models.StateInvited,
		)
		if err != nil {
			return fmt.Errorf("failed to withdraw invitation: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}
		if n == 0 {
			return models.ErrNotFound
		}
		return bumpList(ctx, tx, listID)
	})
}

// AcceptInvitation flips the caller's pending invitation to a membership. The
// guarded UPDATE keys on the invited state, so accepting twice, or accepting
// an invitation withdrawn in the meantime, loses the race cleanly.
func (s *SQLiteStore) AcceptInvitation(ctx context.Context, userID, listID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE memberships SET state = ? WHERE list_id = ? AND user_id = ? AND state = ?`,
			models.StateMember, listID, userID, models.StateInvited,
		)
		if err != nil {
			return fmt.Errorf("failed to accept invitation: %w", err)
		}
		if err := guarded(res); err != nil {
			return err
		}
		return bumpList(ctx, tx, listID)
	})
}

// RejectInvitation deletes the caller's own pending invitation. Owners never
// hold one on their own list and are refused outright.
func (s *SQLiteStore) RejectInvitation(ctx context.Context, userID, listID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		owner, err := listOwner(ctx, tx, listID)
		if err != nil {
			return err
		}
		if owner == userID {
			return models.ErrForbidden
		}
		res, err := tx.ExecContext(ctx,
			`DELETE FROM memberships WHERE list_id = ? AND user_id = ? AND state = ?`,
			listID, userID, models.StateInvited,
		)
		if err != nil {
			return fmt.Errorf("failed to reject invitation: %w", err)
		}
		if err := guarded(res); err != nil {
			return err
		}
		return bumpList(ctx, tx, listID)
	})
}

// Leave removes an accepted membership: either the member's own (self-leave)
// or, for the owner, somebody else's. The owner's membership is untouchable.
func (s *SQLiteStore) Leave(ctx context.Context, actorID, targetID, listID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		owner, err := listOwner(ctx, tx, listID)
		if err != nil {
			return err
		}
		if targetID == owner {
			return models.ErrForbidden
		}
		if actorID != targetID && actorID != owner {
			return models.ErrForbidden
		}
		res, err := tx.ExecContext(ctx,
			`DELETE FROM memberships WHERE list_id = ? AND user_id = ? AND state = ?`,
			listID, targetID, models.StateMember,
		)
		if err != nil {
			return fmt.Errorf("failed to remove membership: %w", err)
		}
		if err := guarded(res); err != nil {
			return err
		}
		return bumpList(ctx, tx, listID)
	})
}

// Members returns the accepted members of a list.
func (s *SQLiteStore) Members(ctx context.Context, listID string) ([]models.User, error) {
	var members []models.User
	err := s.inTx(ctx, func(tx *sql.Tx) (err error) {
		members, err = usersInState(ctx, tx, listID, models.StateMember)
		return err
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}

// Invitations returns the pending invitees of a list, visible to the owner
// only.
func (s *SQLiteStore) Invitations(ctx context.Context, ownerID, listID string) ([]models.User, error) {
	var invited []models.User
	err := s.inTx(ctx, func(tx *sql.Tx) (err error) {
		if err := requireOwner(ctx, tx, ownerID, listID); err != nil {
			return err
		}
		invited, err = usersInState(ctx, tx, listID, models.StateInvited)
		return err
	})
	if err != nil {
		return nil, err
	}
	return invited, nil
}

// IsMember reports whether userID holds an accepted membership on listID.
func (s *SQLiteStore) IsMember(ctx context.Context, userID, listID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM memberships
			WHERE list_id = ? AND user_id = ? AND state = ?
		)`, listID, userID, models.StateMember,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

// usersInState returns the users related to a list in the given membership
// state, ordered by display name.
func usersInState(ctx context.Context, tx *sql.Tx, listID string, state models.MembershipState) ([]models.User, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT u.id, u.version, u.display_name, u.normalized_name, u.password_hash, u.created_at
		 FROM users u
		 JOIN memberships m ON m.user_id = u.id
		 WHERE m.list_id = ? AND m.state = ?
		 ORDER BY u.display_name`,
		listID, state,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memberships: %w", err)
	}
	return users, nil
}
