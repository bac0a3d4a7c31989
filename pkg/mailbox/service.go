// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

// Package mailbox connects user Gmail accounts over OAuth and sends mail on
// their behalf.
package mailbox

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hellogrowth/platform/internal/google"
	"github.com/hellogrowth/platform/internal/logging"
	"github.com/hellogrowth/platform/internal/monitoring"
	"github.com/hellogrowth/platform/internal/storage"
	"github.com/hellogrowth/platform/internal/tracing"
	"github.com/hellogrowth/platform/internal/types"
)

// Tokens about to lapse are refreshed early so the send call does not race
// the expiry.
const tokenExpirySlack = time.Minute

var (
	ErrNotConnected = errors.New("gmail account not connected")
	ErrAuthExpired  = errors.New("gmail authorization expired")
)

// ConnectionStatus tells the frontend whether a mailbox is linked.
type ConnectionStatus struct {
	Connected bool   `json:"connected"`
	Email     string `json:"email,omitempty"`
}

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface
	google  GoogleInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(storage StorageInterface, googleClient GoogleInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	return &Service{
		storage: storage,
		google:  googleClient,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// AuthURL builds the consent URL. The user ID rides along as OAuth state and
// comes back on the callback.
func (s *Service) AuthURL(ctx context.Context, userID string) (string, error) {
	_, span := s.tracer.Start(ctx, "mailbox.Service.AuthURL")
	defer span.End()

	return s.google.AuthURL(userID), nil
}

// CompleteAuth exchanges the callback code and stores the connection keyed by
// the user from the OAuth state.
func (s *Service) CompleteAuth(ctx context.Context, code, userID string) (*types.GmailConnection, error) {
	ctx, span := s.tracer.Start(ctx, "mailbox.Service.CompleteAuth")
	defer span.End()

	tokens, err := s.google.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	email, err := s.google.UserEmail(ctx, tokens.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account email: %w", err)
	}

	conn := &types.GmailConnection{
		UserID:       userID,
		Email:        email,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
	}

	if err := s.storage.UpsertGmailConnection(ctx, conn); err != nil {
		return nil, fmt.Errorf("failed to store gmail connection: %w", err)
	}

	return conn, nil
}

// Send delivers mail through the user's connected account, refreshing and
// persisting rotated tokens when the stored one has lapsed.
func (s *Service) Send(ctx context.Context, userID string, email *google.Email) (string, error) {
	ctx, span := s.tracer.Start(ctx, "mailbox.Service.Send")
	defer span.End()

	conn, err := s.storage.GetGmailConnection(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrNotConnected
		}
		return "", fmt.Errorf("failed to load gmail connection: %w", err)
	}

	accessToken := conn.AccessToken
	if time.Now().UTC().Add(tokenExpirySlack).After(conn.ExpiresAt) {
		tokens, err := s.google.Refresh(ctx, conn.RefreshToken)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrAuthExpired, err)
		}

		accessToken = tokens.AccessToken
		if err := s.storage.UpdateGmailTokens(ctx, userID, tokens.AccessToken, tokens.ExpiresAt); err != nil {
			s.logger.Errorf("failed to persist refreshed tokens for user %s: %v", userID, err)
		}
	}

	messageID, err := s.google.Send(ctx, accessToken, email)
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return messageID, nil
}

func (s *Service) Disconnect(ctx context.Context, userID string) error {
	ctx, span := s.tracer.Start(ctx, "mailbox.Service.Disconnect")
	defer span.End()

	if err := s.storage.DeleteGmailConnection(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete gmail connection: %w", err)
	}

	return nil
}

func (s *Service) Status(ctx context.Context, userID string) (*ConnectionStatus, error) {
	ctx, span := s.tracer.Start(ctx, "mailbox.Service.Status")
	defer span.End()

	conn, err := s.storage.GetGmailConnection(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &ConnectionStatus{Connected: false}, nil
		}
		return nil, fmt.Errorf("failed to load gmail connection: %w", err)
	}

	return &ConnectionStatus{Connected: true, Email: conn.Email}, nil
}
