// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package team

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/hellogrowth/platform/internal/storage"
	"github.com/hellogrowth/platform/internal/types"
	"github.com/hellogrowth/platform/pkg/authentication"
)

func newTestAPI(t *testing.T) (*API, *MockServiceInterface, *MockLoggerInterface) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockService := NewMockServiceInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	api := NewAPI(mockService, NewMockTracingInterface(ctrl), NewMockMonitorInterface(ctrl), mockLogger)
	return api, mockService, mockLogger
}

func serve(t *testing.T, api *API, method, target string, body any) *http.Response {
	t.Helper()

	mux := chi.NewMux()
	api.RegisterEndpoints(mux)
	api.RegisterProtectedEndpoints(mux)

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	return rec.Result()
}

func TestAPI_Invite(t *testing.T) {
	validBody := &InviteRequest{
		OwnerID: "owner-1",
		Name:    "Bruno",
		Email:   "bruno@example.com",
		Role:    types.RoleMember,
	}

	tests := []struct {
		name           string
		body           any
		setupMocks     func(*MockServiceInterface, *MockLoggerInterface)
		expectedStatus int
	}{
		{
			name: "success",
			body: validBody,
			setupMocks: func(mockSvc *MockServiceInterface, _ *MockLoggerInterface) {
				mockSvc.EXPECT().Invite(gomock.Any(), "owner-1", "Bruno", "bruno@example.com", types.RoleMember).
					Return(&types.Invite{ID: "invite-1", Token: "tok"}, "https://hellogrowth.online/accept-invite?token=tok", nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid body",
			body:           "nope",
			setupMocks:     func(*MockServiceInterface, *MockLoggerInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing email",
			body:           &InviteRequest{OwnerID: "owner-1", Name: "Bruno", Role: types.RoleMember},
			setupMocks:     func(*MockServiceInterface, *MockLoggerInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid role",
			body: validBody,
			setupMocks: func(mockSvc *MockServiceInterface, _ *MockLoggerInterface) {
				mockSvc.EXPECT().Invite(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, "", ErrInvalidRole)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "service error",
			body: validBody,
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockSvc.EXPECT().Invite(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, "", errors.New("db down"))
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, mockService, mockLogger := newTestAPI(t)
			tt.setupMocks(mockService, mockLogger)

			resp := serve(t, api, http.MethodPost, "/api/team/invite", tt.body)
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, resp.StatusCode)
			}
		})
	}
}

func TestAPI_InviteRequester(t *testing.T) {
	t.Run("authenticated subject wins over body", func(t *testing.T) {
		api, mockService, _ := newTestAPI(t)
		mockService.EXPECT().Invite(gomock.Any(), "auth-1", "Bruno", "bruno@example.com", types.RoleMember).
			Return(&types.Invite{ID: "invite-1", Token: "tok"}, "https://hellogrowth.online/accept-invite?token=tok", nil)

		mux := chi.NewMux()
		api.RegisterProtectedEndpoints(mux)

		body, err := json.Marshal(&InviteRequest{OwnerID: "body-1", Name: "Bruno", Email: "bruno@example.com", Role: types.RoleMember})
		if err != nil {
			t.Fatalf("failed to encode request: %v", err)
		}
		req := httptest.NewRequest(http.MethodPost, "/api/team/invite", bytes.NewReader(body))
		req = req.WithContext(authentication.WithUserID(req.Context(), "auth-1"))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
	})

	t.Run("no subject and no ownerId", func(t *testing.T) {
		api, _, _ := newTestAPI(t)

		resp := serve(t, api, http.MethodPost, "/api/team/invite", &InviteRequest{Name: "Bruno", Email: "bruno@example.com", Role: types.RoleMember})
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.StatusCode)
		}
	})
}

func TestAPI_ListMembers(t *testing.T) {
	t.Run("by userId", func(t *testing.T) {
		api, mockService, _ := newTestAPI(t)
		mockService.EXPECT().ListForOwner(gomock.Any(), "owner-1").Return(&Team{
			Members: []*types.Membership{{ID: "m-1"}},
			Invites: []*types.Invite{},
		}, nil)

		resp := serve(t, api, http.MethodGet, "/api/team/members?userId=owner-1", nil)
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var out MembersResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(out.Members) != 1 {
			t.Errorf("expected one member, got %d", len(out.Members))
		}
		if out.UserID != "owner-1" {
			t.Errorf("expected userId owner-1, got %q", out.UserID)
		}
	})

	t.Run("by email", func(t *testing.T) {
		api, mockService, _ := newTestAPI(t)
		mockService.EXPECT().ListForEmail(gomock.Any(), "owner@hellogrowth.online").Return(&Team{
			Members: []*types.Membership{},
			Invites: []*types.Invite{{ID: "i-1"}},
		}, "owner-1", nil)

		resp := serve(t, api, http.MethodGet, "/api/team/members?email=owner%40hellogrowth.online", nil)
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var out MembersResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if out.UserID != "owner-1" {
			t.Errorf("expected userId owner-1, got %q", out.UserID)
		}
		if len(out.Invites) != 1 {
			t.Errorf("expected one invite, got %d", len(out.Invites))
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		api, mockService, _ := newTestAPI(t)
		mockService.EXPECT().ListForEmail(gomock.Any(), "ghost@hellogrowth.online").
			Return(nil, "", storage.ErrNotFound)

		resp := serve(t, api, http.MethodGet, "/api/team/members?email=ghost%40hellogrowth.online", nil)
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("missing identifier", func(t *testing.T) {
		api, _, _ := newTestAPI(t)

		resp := serve(t, api, http.MethodGet, "/api/team/members", nil)
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.StatusCode)
		}
	})
}

func TestAPI_AcceptInvite(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "success", err: nil, expectedStatus: http.StatusOK},
		{name: "unknown token", err: ErrInviteNotFound, expectedStatus: http.StatusNotFound},
		{name: "expired token", err: ErrInviteExpired, expectedStatus: http.StatusGone},
		{name: "used token", err: ErrInviteUsed, expectedStatus: http.StatusConflict},
		{name: "already member", err: ErrAlreadyMember, expectedStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, mockService, _ := newTestAPI(t)

			var membership *types.Membership
			if tt.err == nil {
				membership = &types.Membership{ID: "m-1", Status: types.MembershipActive}
			}
			mockService.EXPECT().AcceptInvite(gomock.Any(), "tok", "pw").Return(membership, tt.err)

			resp := serve(t, api, http.MethodPost, "/api/team/accept", &AcceptRequest{Token: "tok", Password: "pw"})
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, resp.StatusCode)
			}
		})
	}
}

func TestAPI_UpdateRole(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "success", err: nil, expectedStatus: http.StatusOK},
		{name: "forbidden", err: ErrForbidden, expectedStatus: http.StatusForbidden},
		{name: "invalid role", err: ErrInvalidRole, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, mockService, _ := newTestAPI(t)
			mockService.EXPECT().UpdateRole(gomock.Any(), "m-1", types.RoleManager, "admin-1").Return(tt.err)

			resp := serve(t, api, http.MethodPatch, "/api/team/update-role", &UpdateRoleRequest{
				MemberID: "m-1",
				Role:     types.RoleManager,
				UserID:   "admin-1",
			})
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, resp.StatusCode)
			}
		})
	}

	t.Run("wire body uses newRole", func(t *testing.T) {
		api, mockService, _ := newTestAPI(t)
		mockService.EXPECT().UpdateRole(gomock.Any(), "m-1", types.RoleManager, "admin-1").Return(nil)

		resp := serve(t, api, http.MethodPatch, "/api/team/update-role",
			`{"memberId":"m-1","newRole":"manager","userId":"admin-1"}`)
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
	})
}

func TestAPI_RemoveMember(t *testing.T) {
	api, mockService, _ := newTestAPI(t)
	mockService.EXPECT().RemoveMember(gomock.Any(), "m-1").Return(nil)

	resp := serve(t, api, http.MethodDelete, "/api/team/remove", &RemoveRequest{MemberID: "m-1"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
