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

const userColumns = "id, name, email, password, role, plan, is_owner, tenant_id, company_name, settings, created_at"

func (s *Storage) scanUser(row sq.RowScanner) (*types.User, error) {
	var u types.User
	var rawSettings []byte

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Plan, &u.IsOwner, &u.TenantID, &u.CompanyName, &rawSettings, &u.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	if u.Settings, err = unmarshalSettings(rawSettings); err != nil {
		return nil, fmt.Errorf("failed to decode user settings: %w", err)
	}

	return &u, nil
}

// GetUserByEmail expects an already normalized email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByEmail")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(userColumns).
		From("users").
		Where(sq.Eq{"email": email}).
		QueryRowContext(ctx)

	return s.scanUser(row)
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(userColumns).
		From("users").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	return s.scanUser(row)
}

func (s *Storage) CreateUser(ctx context.Context, user *types.User) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateUser")
	defer span.End()

	id := user.ID
	if id == "" {
		generated, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate user ID: %w", err)
		}
		id = generated.String()
	}

	settings, err := marshalSettings(user.Settings)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user settings: %w", err)
	}

	row := s.db.Statement(ctx).
		Insert("users").
		Columns("id", "name", "email", "password", "role", "plan", "is_owner", "tenant_id", "company_name", "settings").
		Values(id, user.Name, user.Email, user.Password, user.Role, user.Plan, user.IsOwner, user.TenantID, user.CompanyName, settings).
		Suffix("RETURNING " + userColumns).
		QueryRowContext(ctx)

	created, err := s.scanUser(row)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return created, nil
}

// UpsertUser inserts the user or, on an email conflict, refreshes the name
// and role of the existing row. Used by invite acceptance where the auth
// account may already exist.
func (s *Storage) UpsertUser(ctx context.Context, user *types.User) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpsertUser")
	defer span.End()

	settings, err := marshalSettings(user.Settings)
	if err != nil {
		return fmt.Errorf("failed to encode user settings: %w", err)
	}

	id := user.ID
	if id == "" {
		generated, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate user ID: %w", err)
		}
		id = generated.String()
	}

	_, err = s.db.Statement(ctx).
		Insert("users").
		Columns("id", "name", "email", "password", "role", "plan", "is_owner", "tenant_id", "company_name", "settings").
		Values(id, user.Name, user.Email, user.Password, user.Role, user.Plan, user.IsOwner, user.TenantID, user.CompanyName, settings).
		Suffix("ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, role = EXCLUDED.role").
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}

func (s *Storage) UpdateUserRole(ctx context.Context, userID, role string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateUserRole")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("users").
		Set("role", role).
		Where(sq.Eq{"id": userID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
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

// UpdateUserTenant sets the denormalized default company pointer on the user
// row. Called once per onboarding, when the first company is fully linked.
func (s *Storage) UpdateUserTenant(ctx context.Context, userID, tenantID, companyName string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateUserTenant")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Update("users").
		Set("tenant_id", tenantID).
		Set("company_name", companyName).
		Where(sq.Eq{"id": userID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update user tenant: %w", err)
	}

	return nil
}
