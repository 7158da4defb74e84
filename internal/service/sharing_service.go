package service

import (
	"context"
	"log/slog"

	"github.com/shoplist-app/shoplist/internal/metrics"
	"github.com/shoplist-app/shoplist/internal/models"
	"github.com/shoplist-app/shoplist/internal/storage"
)

// SharingService drives the invitation state machine: a (list, user) pair
// moves from no relation to invited to member, and back to no relation on
// withdrawal, rejection, leave or removal.
type SharingService struct {
	store storage.Store
}

// NewSharingService creates a new SharingService with the given storage
// backend.
func NewSharingService(store storage.Store) *SharingService {
	return &SharingService{store: store}
}

// Invite offers list membership to targetID. Only the owner can invite, and
// only users with no existing relation to the list.
func (s *SharingService) Invite(ctx context.Context, actorID, targetID, listID string) (err error) {
	defer func() { metrics.Observe("invite", err) }()

	if err = s.store.Invite(ctx, actorID, targetID, listID); err != nil {
		slog.Warn("invite failed", "list_id", listID, "actor_id", actorID, "target_id", targetID, "error", err)
		return err
	}

	slog.Info("user invited", "list_id", listID, "actor_id", actorID, "target_id", targetID)
	return nil
}

// WithdrawInvitation revokes a pending invitation. Owner-only.
func (s *SharingService) WithdrawInvitation(ctx context.Context, actorID, targetID, listID string) (err error) {
	defer func() { metrics.Observe("invitation_withdraw", err) }()

	if err = s.store.WithdrawInvitation(ctx, actorID, targetID, listID); err != nil {
		slog.Warn("invitation withdraw failed", "list_id", listID, "actor_id", actorID, "target_id", targetID, "error", err)
		return err
	}

	slog.Info("invitation withdrawn", "list_id", listID, "actor_id", actorID, "target_id", targetID)
	return nil
}

// AcceptInvitation turns the caller's pending invitation into a membership.
func (s *SharingService) AcceptInvitation(ctx context.Context, userID, listID string) (err error) {
	defer func() { metrics.Observe("invitation_accept", err) }()

	if err = s.store.AcceptInvitation(ctx, userID, listID); err != nil {
		if err == models.ErrConflict {
			metrics.Conflicts.WithLabelValues("invitation_accept").Inc()
		}
		slog.Warn("invitation accept failed", "list_id", listID, "user_id", userID, "error", err)
		return err
	}

	slog.Info("invitation accepted", "list_id", listID, "user_id", userID)
	return nil
}

// RejectInvitation declines the caller's pending invitation.
func (s *SharingService) RejectInvitation(ctx context.Context, userID, listID string) (err error) {
	defer func() { metrics.Observe("invitation_reject", err) }()

	if err = s.store.RejectInvitation(ctx, userID, listID); err != nil {
		if err == models.ErrConflict {
			metrics.Conflicts.WithLabelValues("invitation_reject").Inc()
		}
		slog.Warn("invitation reject failed", "list_id", listID, "user_id", userID, "error", err)
		return err
	}

	slog.Info("invitation rejected", "list_id", listID, "user_id", userID)
	return nil
}

// Leave removes targetID's membership: members leave on their own behalf,
// owners remove other members. Owners can do neither to themselves.
func (s *SharingService) Leave(ctx context.Context, actorID, targetID, listID string) (err error) {
	defer func() { metrics.Observe("leave", err) }()

	if err = s.store.Leave(ctx, actorID, targetID, listID); err != nil {
		slog.Warn("leave failed", "list_id", listID, "actor_id", actorID, "target_id", targetID, "error", err)
		return err
	}

	slog.Info("membership removed", "list_id", listID, "actor_id", actorID, "target_id", targetID)
	return nil
}

// Members returns the accepted members of a list the caller can see.
func (s *SharingService) Members(ctx context.Context, userID, listID string) ([]models.User, error) {
	ok, err := s.store.IsMember(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.ErrNotFound
	}
	return s.store.Members(ctx, listID)
}

// Invitations returns the pending invitees of a list. Owner-only.
func (s *SharingService) Invitations(ctx context.Context, ownerID, listID string) ([]models.User, error) {
	return s.store.Invitations(ctx, ownerID, listID)
}

// InvitationsFor returns the lists the user holds a pending invitation to.
func (s *SharingService) InvitationsFor(ctx context.Context, userID string) ([]models.ShoppingList, error) {
	return s.store.InvitationsFor(ctx, userID)
}
