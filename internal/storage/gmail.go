// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/hellogrowth/platform/internal/types"
)

const gmailColumns = "user_id, email, access_token, refresh_token, expires_at"

func (s *Storage) UpsertGmailConnection(ctx context.Context, conn *types.GmailConnection) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpsertGmailConnection")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Insert("gmail_connections").
		Columns("user_id", "email", "access_token", "refresh_token", "expires_at").
		Values(conn.UserID, conn.Email, conn.AccessToken, conn.RefreshToken, conn.ExpiresAt).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET email = EXCLUDED.email, access_token = EXCLUDED.access_token, refresh_token = EXCLUDED.refresh_token, expires_at = EXCLUDED.expires_at").
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to upsert gmail connection: %w", err)
	}

	return nil
}

func (s *Storage) GetGmailConnection(ctx context.Context, userID string) (*types.GmailConnection, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetGmailConnection")
	defer span.End()

	var c types.GmailConnection
	err := s.db.Statement(ctx).
		Select(gmailColumns).
		From("gmail_connections").
		Where(sq.Eq{"user_id": userID}).
		QueryRowContext(ctx).
		Scan(&c.UserID, &c.Email, &c.AccessToken, &c.RefreshToken, &c.ExpiresAt)

	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get gmail connection: %w", err)
	}

	return &c, nil
}

func (s *Storage) UpdateGmailTokens(ctx context.Context, userID, accessToken string, expiresAt time.Time) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateGmailTokens")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Update("gmail_connections").
		Set("access_token", accessToken).
		Set("expires_at", expiresAt).
		Where(sq.Eq{"user_id": userID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update gmail tokens: %w", err)
	}

	return nil
}

func (s *Storage) DeleteGmailConnection(ctx context.Context, userID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteGmailConnection")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Delete("gmail_connections").
		Where(sq.Eq{"user_id": userID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete gmail connection: %w", err)
	}

	return nil
}
