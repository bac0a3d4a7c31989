// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package mailbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/hellogrowth/platform/internal/google"
	"github.com/hellogrowth/platform/internal/storage"
	"github.com/hellogrowth/platform/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package mailbox -destination ./mock_mailbox.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package mailbox -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package mailbox -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package mailbox -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func newMailboxService(t *testing.T, span string) (*Service, *MockStorageInterface, *MockGoogleInterface, *MockLoggerInterface) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockStorage := NewMockStorageInterface(ctrl)
	mockGoogle := NewMockGoogleInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), span).Return(context.Background(), trace.SpanFromContext(context.Background())).AnyTimes()

	s := NewService(mockStorage, mockGoogle, mockTracer, mockMonitor, mockLogger)
	return s, mockStorage, mockGoogle, mockLogger
}

func TestService_CompleteAuth(t *testing.T) {
	s, mockStorage, mockGoogle, _ := newMailboxService(t, "mailbox.Service.CompleteAuth")

	expiry := time.Now().UTC().Add(time.Hour)
	mockGoogle.EXPECT().Exchange(gomock.Any(), "auth-code").Return(&google.Tokens{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    expiry,
	}, nil)
	mockGoogle.EXPECT().UserEmail(gomock.Any(), "access").Return("user@gmail.com", nil)
	mockStorage.EXPECT().UpsertGmailConnection(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, conn *types.GmailConnection) error {
			if conn.UserID != "user-1" || conn.Email != "user@gmail.com" {
				t.Errorf("unexpected connection %+v", conn)
			}
			if conn.RefreshToken != "refresh" {
				t.Error("refresh token must be persisted")
			}
			return nil
		})

	conn, err := s.CompleteAuth(context.Background(), "auth-code", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conn.Email != "user@gmail.com" {
		t.Errorf("unexpected email %q", conn.Email)
	}
}

func TestService_Send(t *testing.T) {
	email := &google.Email{To: "lead@example.com", Subject: "Oi", Body: "Olá"}

	t.Run("valid token", func(t *testing.T) {
		s, mockStorage, mockGoogle, _ := newMailboxService(t, "mailbox.Service.Send")

		mockStorage.EXPECT().GetGmailConnection(gomock.Any(), "user-1").Return(&types.GmailConnection{
			UserID:      "user-1",
			AccessToken: "access",
			ExpiresAt:   time.Now().UTC().Add(time.Hour),
		}, nil)
		mockGoogle.EXPECT().Send(gomock.Any(), "access", email).Return("msg-1", nil)

		messageID, err := s.Send(context.Background(), "user-1", email)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if messageID != "msg-1" {
			t.Errorf("unexpected message id %q", messageID)
		}
	})

	t.Run("expired token is refreshed and persisted", func(t *testing.T) {
		s, mockStorage, mockGoogle, _ := newMailboxService(t, "mailbox.Service.Send")

		newExpiry := time.Now().UTC().Add(time.Hour)
		mockStorage.EXPECT().GetGmailConnection(gomock.Any(), "user-1").Return(&types.GmailConnection{
			UserID:       "user-1",
			AccessToken:  "stale",
			RefreshToken: "refresh",
			ExpiresAt:    time.Now().UTC().Add(-time.Minute),
		}, nil)
		mockGoogle.EXPECT().Refresh(gomock.Any(), "refresh").Return(&google.Tokens{
			AccessToken:  "fresh",
			RefreshToken: "refresh",
			ExpiresAt:    newExpiry,
		}, nil)
		mockStorage.EXPECT().UpdateGmailTokens(gomock.Any(), "user-1", "fresh", newExpiry).Return(nil)
		mockGoogle.EXPECT().Send(gomock.Any(), "fresh", email).Return("msg-2", nil)

		if _, err := s.Send(context.Background(), "user-1", email); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("not connected", func(t *testing.T) {
		s, mockStorage, _, _ := newMailboxService(t, "mailbox.Service.Send")

		mockStorage.EXPECT().GetGmailConnection(gomock.Any(), "user-1").Return(nil, storage.ErrNotFound)

		_, err := s.Send(context.Background(), "user-1", email)
		if !errors.Is(err, ErrNotConnected) {
			t.Fatalf("expected ErrNotConnected, got %v", err)
		}
	})

	t.Run("refresh failure surfaces as expired auth", func(t *testing.T) {
		s, mockStorage, mockGoogle, _ := newMailboxService(t, "mailbox.Service.Send")

		mockStorage.EXPECT().GetGmailConnection(gomock.Any(), "user-1").Return(&types.GmailConnection{
			UserID:       "user-1",
			RefreshToken: "revoked",
			ExpiresAt:    time.Now().UTC().Add(-time.Minute),
		}, nil)
		mockGoogle.EXPECT().Refresh(gomock.Any(), "revoked").Return(nil, errors.New("invalid_grant"))

		_, err := s.Send(context.Background(), "user-1", email)
		if !errors.Is(err, ErrAuthExpired) {
			t.Fatalf("expected ErrAuthExpired, got %v", err)
		}
	})

	t.Run("token persistence failure is non fatal", func(t *testing.T) {
		s, mockStorage, mockGoogle, mockLogger := newMailboxService(t, "mailbox.Service.Send")

		mockStorage.EXPECT().GetGmailConnection(gomock.Any(), "user-1").Return(&types.GmailConnection{
			UserID:       "user-1",
			RefreshToken: "refresh",
			ExpiresAt:    time.Now().UTC().Add(-time.Minute),
		}, nil)
		mockGoogle.EXPECT().Refresh(gomock.Any(), "refresh").Return(&google.Tokens{
			AccessToken: "fresh",
			ExpiresAt:   time.Now().UTC().Add(time.Hour),
		}, nil)
		mockStorage.EXPECT().UpdateGmailTokens(gomock.Any(), "user-1", "fresh", gomock.Any()).Return(errors.New("db error"))
		mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any())
		mockGoogle.EXPECT().Send(gomock.Any(), "fresh", email).Return("msg-3", nil)

		if _, err := s.Send(context.Background(), "user-1", email); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestService_Status(t *testing.T) {
	t.Run("connected", func(t *testing.T) {
		s, mockStorage, _, _ := newMailboxService(t, "mailbox.Service.Status")

		mockStorage.EXPECT().GetGmailConnection(gomock.Any(), "user-1").Return(&types.GmailConnection{
			UserID: "user-1",
			Email:  "user@gmail.com",
		}, nil)

		status, err := s.Status(context.Background(), "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !status.Connected || status.Email != "user@gmail.com" {
			t.Errorf("unexpected status %+v", status)
		}
	})

	t.Run("not connected", func(t *testing.T) {
		s, mockStorage, _, _ := newMailboxService(t, "mailbox.Service.Status")

		mockStorage.EXPECT().GetGmailConnection(gomock.Any(), "user-1").Return(nil, storage.ErrNotFound)

		status, err := s.Status(context.Background(), "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if status.Connected {
			t.Error("expected disconnected status")
		}
	})
}

func TestService_Disconnect(t *testing.T) {
	s, mockStorage, _, _ := newMailboxService(t, "mailbox.Service.Disconnect")

	mockStorage.EXPECT().DeleteGmailConnection(gomock.Any(), "user-1").Return(nil)

	if err := s.Disconnect(context.Background(), "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
