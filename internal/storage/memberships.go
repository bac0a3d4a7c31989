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

const membershipColumns = "id, user_id, company_id, owner_id, email, name, role, is_default, status, accepted_at, created_at"

func (s *Storage) scanMembership(row sq.RowScanner) (*types.Membership, error) {
	var m types.Membership

	err := row.Scan(&m.ID, &m.UserID, &m.CompanyID, &m.OwnerID, &m.Email, &m.Name, &m.Role, &m.IsDefault, &m.Status, &m.AcceptedAt, &m.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan membership: %w", err)
	}

	return &m, nil
}

func (s *Storage) AddMember(ctx context.Context, m *types.Membership) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AddMember")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate membership ID: %w", err)
	}

	row := s.db.Statement(ctx).
		Insert("user_companies").
		Columns("id", "user_id", "company_id", "owner_id", "email", "name", "role", "is_default", "status", "accepted_at").
		Values(id.String(), m.UserID, m.CompanyID, m.OwnerID, m.Email, m.Name, m.Role, m.IsDefault, m.Status, m.AcceptedAt).
		Suffix("RETURNING " + membershipColumns).
		QueryRowContext(ctx)

	created, err := s.scanMembership(row)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return created, nil
}

func (s *Storage) GetMembershipByID(ctx context.Context, id string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetMembershipByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(membershipColumns).
		From("user_companies").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	return s.scanMembership(row)
}

// GetActiveTeamMembershipByEmail finds the active membership that makes the
// principal a team member of someone else's company. Rows where the user owns
// the company are excluded: owners are resolved through the admin fallback,
// not through their own membership.
func (s *Storage) GetActiveTeamMembershipByEmail(ctx context.Context, email string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetActiveTeamMembershipByEmail")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(membershipColumns).
		From("user_companies").
		Where(sq.Eq{"email": email, "status": types.MembershipActive}).
		Where(sq.Expr("owner_id <> user_id")).
		OrderBy("created_at ASC").
		Limit(1).
		QueryRowContext(ctx)

	return s.scanMembership(row)
}

func (s *Storage) ListMembersByOwner(ctx context.Context, ownerID string) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMembersByOwner")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(membershipColumns).
		From("user_companies").
		Where(sq.Eq{"owner_id": ownerID, "status": types.MembershipActive}).
		Where(sq.Expr("owner_id <> user_id")).
		OrderBy("created_at DESC").
		QueryContext(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*types.Membership
	for rows.Next() {
		var m types.Membership
		if err := rows.Scan(&m.ID, &m.UserID, &m.CompanyID, &m.OwnerID, &m.Email, &m.Name, &m.Role, &m.IsDefault, &m.Status, &m.AcceptedAt, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, nil
}

// RemoveMember deletes the membership row only. The underlying user record
// is left untouched, and removing an already removed member is a no-op.
func (s *Storage) RemoveMember(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.RemoveMember")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Delete("user_companies").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}

func (s *Storage) UpdateMemberRole(ctx context.Context, id, role string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateMemberRole")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("user_companies").
		Set("role", role).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
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
