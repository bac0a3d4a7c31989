// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// ListPermissionsByRole reads the static role_permissions relation. A role
// with no configured rows yields an empty slice, not an error.
func (s *Storage) ListPermissionsByRole(ctx context.Context, role string) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListPermissionsByRole")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("permission").
		From("role_permissions").
		Where(sq.Eq{"role": role}).
		QueryContext(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list role permissions: %w", err)
	}
	defer rows.Close()

	var permissions []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan permission: %w", err)
		}
		permissions = append(permissions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return permissions, nil
}
