// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/hellogrowth/platform/internal/storage"
	"github.com/hellogrowth/platform/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_authorization.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func newResolver(t *testing.T) (*Resolver, *MockStorageInterface) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockStorage := NewMockStorageInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().Start(gomock.Any(), "authorization.Resolver.Resolve").Return(context.Background(), trace.SpanFromContext(context.Background())).AnyTimes()

	r := NewResolver(mockStorage, mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))
	return r, mockStorage
}

func TestResolver_Resolve(t *testing.T) {
	t.Run("member of another team", func(t *testing.T) {
		r, mockStorage := newResolver(t)

		mockStorage.EXPECT().GetActiveTeamMembershipByEmail(gomock.Any(), "bruno@example.com").Return(&types.Membership{
			Role:    types.RoleViewer,
			OwnerID: "owner-1",
		}, nil)
		mockStorage.EXPECT().ListPermissionsByRole(gomock.Any(), types.RoleViewer).Return([]string{PermViewAnalytics}, nil)

		access, err := r.Resolve(context.Background(), "user-2", "bruno@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if access.Role != types.RoleViewer || access.IsOwner || access.OwnerID != "owner-1" {
			t.Errorf("unexpected access %+v", access)
		}
		if !access.HasPermission(PermViewAnalytics) {
			t.Error("expected view_analytics permission")
		}
		if access.HasPermission(PermManageTeam) {
			t.Error("viewer must not manage the team")
		}
	})

	t.Run("no membership falls back to self owner", func(t *testing.T) {
		r, mockStorage := newResolver(t)

		mockStorage.EXPECT().GetActiveTeamMembershipByEmail(gomock.Any(), "ana@example.com").Return(nil, storage.ErrNotFound)
		mockStorage.EXPECT().ListPermissionsByRole(gomock.Any(), types.RoleAdmin).Return([]string{
			PermManageTeam, PermManageForms, PermManageLeads, PermManageProducts,
			PermViewAnalytics, PermSendMessages, PermExportData, PermManageSettings,
		}, nil)

		access, err := r.Resolve(context.Background(), "user-1", "ana@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if access.Role != types.RoleAdmin || !access.IsOwner || access.OwnerID != "user-1" {
			t.Errorf("unexpected access %+v", access)
		}
		if !access.HasAll(PermManageTeam, PermManageSettings) {
			t.Error("self owners hold the full admin permission set")
		}
	})

	t.Run("unknown role resolves to empty permission set", func(t *testing.T) {
		r, mockStorage := newResolver(t)

		mockStorage.EXPECT().GetActiveTeamMembershipByEmail(gomock.Any(), "x@example.com").Return(&types.Membership{
			Role:    "auditor",
			OwnerID: "owner-1",
		}, nil)
		mockStorage.EXPECT().ListPermissionsByRole(gomock.Any(), "auditor").Return(nil, nil)

		access, err := r.Resolve(context.Background(), "user-3", "x@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if access.HasAny(PermManageTeam, PermViewAnalytics) {
			t.Error("expected no permissions for an unseeded role")
		}
		if len(access.Permissions()) != 0 {
			t.Errorf("expected empty permission list, got %v", access.Permissions())
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		r, mockStorage := newResolver(t)

		mockStorage.EXPECT().GetActiveTeamMembershipByEmail(gomock.Any(), "x@example.com").Return(nil, errors.New("db down"))

		if _, err := r.Resolve(context.Background(), "user-1", "x@example.com"); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestAPI_Permissions(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockResolver := NewMockResolverInterface(ctrl)
		mockResolver.EXPECT().Resolve(gomock.Any(), "user-1", "ana@example.com").Return(&Access{
			Role:        types.RoleAdmin,
			IsOwner:     true,
			OwnerID:     "user-1",
			permissions: map[string]struct{}{PermManageTeam: {}},
		}, nil)

		api := NewAPI(mockResolver, NewMockTracingInterface(ctrl), NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))
		mux := chi.NewMux()
		api.RegisterEndpoints(mux)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/permissions?userId=user-1&email=ana@example.com", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("missing query params", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		api := NewAPI(NewMockResolverInterface(ctrl), NewMockTracingInterface(ctrl), NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))
		mux := chi.NewMux()
		api.RegisterEndpoints(mux)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/permissions?userId=user-1", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
