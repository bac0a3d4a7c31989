// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/hellogrowth/platform/internal/types"
)

const inviteColumns = "id, owner_id, email, name, role, token, status, expires_at, created_at"

func (s *Storage) scanInvite(row sq.RowScanner) (*types.Invite, error) {
	var i types.Invite

	err := row.Scan(&i.ID, &i.OwnerID, &i.Email, &i.Name, &i.Role, &i.Token, &i.Status, &i.ExpiresAt, &i.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan invite: %w", err)
	}

	return &i, nil
}

// CreateInvite relies on the unique index on token as the final uniqueness
// backstop; callers should treat ErrDuplicateKey as retryable.
func (s *Storage) CreateInvite(ctx context.Context, invite *types.Invite) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateInvite")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite ID: %w", err)
	}

	row := s.db.Statement(ctx).
		Insert("team_invites").
		Columns("id", "owner_id", "email", "name", "role", "token", "status", "expires_at").
		Values(id.String(), invite.OwnerID, invite.Email, invite.Name, invite.Role, invite.Token, invite.Status, invite.ExpiresAt).
		Suffix("RETURNING " + inviteColumns).
		QueryRowContext(ctx)

	created, err := s.scanInvite(row)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to insert invite: %w", err)
	}

	return created, nil
}

func (s *Storage) GetInviteByToken(ctx context.Context, token string) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetInviteByToken")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(inviteColumns).
		From("team_invites").
		Where(sq.Eq{"token": token}).
		QueryRowContext(ctx)

	return s.scanInvite(row)
}

// ListPendingInvitesByOwner returns invites still marked pending. Expiry is
// not evaluated here; consumers compare expires_at against their own clock.
func (s *Storage) ListPendingInvitesByOwner(ctx context.Context, ownerID string) ([]*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListPendingInvitesByOwner")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(inviteColumns).
		From("team_invites").
		Where(sq.Eq{"owner_id": ownerID, "status": types.InvitePending}).
		OrderBy("created_at DESC").
		QueryContext(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	defer rows.Close()

	var invites []*types.Invite
	for rows.Next() {
		var i types.Invite
		if err := rows.Scan(&i.ID, &i.OwnerID, &i.Email, &i.Name, &i.Role, &i.Token, &i.Status, &i.ExpiresAt, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan invite: %w", err)
		}
		invites = append(invites, &i)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return invites, nil
}

func (s *Storage) UpdateInviteStatus(ctx context.Context, id, status string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateInviteStatus")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("team_invites").
		Set("status", status).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update invite status: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// UpdateInviteRoleByEmail keeps the denormalized invite role in step with a
// member role change. Eventually consistent; callers log and move on when it
// fails.
func (s *Storage) UpdateInviteRoleByEmail(ctx context.Context, email, role string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateInviteRoleByEmail")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Update("team_invites").
		Set("role", role).
		Where(sq.Eq{"email": email}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update invite role: %w", err)
	}

	return nil
}
