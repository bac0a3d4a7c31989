// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package mailbox

import (
	"context"
	"time"

	"github.com/hellogrowth/platform/internal/google"
	"github.com/hellogrowth/platform/internal/types"
)

type ServiceInterface interface {
	AuthURL(ctx context.Context, userID string) (string, error)
	CompleteAuth(ctx context.Context, code, userID string) (*types.GmailConnection, error)
	Send(ctx context.Context, userID string, email *google.Email) (string, error)
	Disconnect(ctx context.Context, userID string) error
	Status(ctx context.Context, userID string) (*ConnectionStatus, error)
}

// StorageInterface is the subset of the storage layer mailbox handling uses.
type StorageInterface interface {
	UpsertGmailConnection(ctx context.Context, conn *types.GmailConnection) error
	GetGmailConnection(ctx context.Context, userID string) (*types.GmailConnection, error)
	UpdateGmailTokens(ctx context.Context, userID, accessToken string, expiresAt time.Time) error
	DeleteGmailConnection(ctx context.Context, userID string) error
}

// GoogleInterface is the OAuth and Gmail boundary.
type GoogleInterface interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*google.Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (*google.Tokens, error)
	UserEmail(ctx context.Context, accessToken string) (string, error)
	Send(ctx context.Context, accessToken string, email *google.Email) (string, error)
}
