// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package team

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/hellogrowth/platform/internal/mail"
	"github.com/hellogrowth/platform/internal/storage"
	"github.com/hellogrowth/platform/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package team -destination ./mock_team.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package team -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package team -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package team -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

const testBaseURL = "https://hellogrowth.online"

type mocks struct {
	storage *MockStorageInterface
	mailer  *MockMailerInterface
	tracer  *MockTracingInterface
	logger  *MockLoggerInterface
	monitor *MockMonitorInterface
}

func newService(t *testing.T, span string) (*Service, *mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := &mocks{
		storage: NewMockStorageInterface(ctrl),
		mailer:  NewMockMailerInterface(ctrl),
		tracer:  NewMockTracingInterface(ctrl),
		logger:  NewMockLoggerInterface(ctrl),
		monitor: NewMockMonitorInterface(ctrl),
	}

	m.tracer.EXPECT().Start(gomock.Any(), span).Return(context.Background(), trace.SpanFromContext(context.Background())).AnyTimes()

	s := NewService(m.storage, m.mailer, testBaseURL, 168*time.Hour, m.tracer, m.monitor, m.logger)
	return s, m
}

func TestNewInviteToken(t *testing.T) {
	a, err := newInviteToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := newInviteToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Error("expected distinct tokens")
	}
	if len(a) <= 48 {
		t.Errorf("expected random prefix plus time component, got %q", a)
	}
}

func TestService_Invite(t *testing.T) {
	owner := &types.User{ID: "owner-1", Name: "Ana", TenantID: "company-1"}

	t.Run("success", func(t *testing.T) {
		s, m := newService(t, "team.Service.Invite")

		m.storage.EXPECT().GetUserByID(gomock.Any(), "owner-1").Return(owner, nil)
		m.storage.EXPECT().CreateInvite(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, invite *types.Invite) (*types.Invite, error) {
				if invite.Status != types.InvitePending {
					t.Errorf("expected pending invite, got %q", invite.Status)
				}
				if invite.Token == "" {
					t.Error("expected a generated token")
				}
				if until := time.Until(invite.ExpiresAt); until < 167*time.Hour || until > 169*time.Hour {
					t.Errorf("unexpected expiry window: %v", until)
				}
				invite.ID = "invite-1"
				return invite, nil
			})
		m.mailer.EXPECT().SendInvite(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, email *mail.InviteEmail) error {
				if email.InviterName != "Ana" {
					t.Errorf("expected inviter name Ana, got %q", email.InviterName)
				}
				if !strings.HasPrefix(email.InviteLink, testBaseURL+"/accept-invite?token=") {
					t.Errorf("unexpected invite link %q", email.InviteLink)
				}
				return nil
			})

		invite, link, err := s.Invite(context.Background(), "owner-1", "Bruno", "bruno@example.com", types.RoleMember)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if invite.ID != "invite-1" {
			t.Errorf("expected stored invite back, got %+v", invite)
		}
		if !strings.Contains(link, invite.Token) {
			t.Error("expected link to carry the token")
		}
	})

	t.Run("invalid role", func(t *testing.T) {
		s, _ := newService(t, "team.Service.Invite")

		_, _, err := s.Invite(context.Background(), "owner-1", "Bruno", "bruno@example.com", "super_admin")
		if !errors.Is(err, ErrInvalidRole) {
			t.Fatalf("expected ErrInvalidRole, got %v", err)
		}
	})

	t.Run("email failure is non fatal", func(t *testing.T) {
		s, m := newService(t, "team.Service.Invite")

		m.storage.EXPECT().GetUserByID(gomock.Any(), "owner-1").Return(owner, nil)
		m.storage.EXPECT().CreateInvite(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, invite *types.Invite) (*types.Invite, error) { return invite, nil })
		m.mailer.EXPECT().SendInvite(gomock.Any(), gomock.Any()).Return(errors.New("resend down"))
		m.logger.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any())

		_, link, err := s.Invite(context.Background(), "owner-1", "Bruno", "bruno@example.com", types.RoleViewer)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if link == "" {
			t.Error("expected a usable link despite email failure")
		}
	})
}

func TestService_AcceptInvite(t *testing.T) {
	owner := &types.User{ID: "owner-1", Name: "Ana", TenantID: "company-1", CompanyName: "Acme", Plan: types.PlanGrowth}

	pendingInvite := func() *types.Invite {
		return &types.Invite{
			ID:        "invite-1",
			OwnerID:   "owner-1",
			Email:     "bruno@example.com",
			Name:      "Bruno",
			Role:      types.RoleMember,
			Token:     "tok",
			Status:    types.InvitePending,
			ExpiresAt: time.Now().UTC().Add(24 * time.Hour),
		}
	}

	t.Run("success for new user", func(t *testing.T) {
		s, m := newService(t, "team.Service.AcceptInvite")

		m.storage.EXPECT().GetInviteByToken(gomock.Any(), "tok").Return(pendingInvite(), nil)
		m.storage.EXPECT().GetUserByID(gomock.Any(), "owner-1").Return(owner, nil)
		m.storage.EXPECT().UpsertUser(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u *types.User) error {
				if u.Role != types.RoleMember || u.Plan != types.PlanGrowth {
					t.Errorf("unexpected upserted user %+v", u)
				}
				return nil
			})
		m.storage.EXPECT().GetUserByEmail(gomock.Any(), "bruno@example.com").Return(&types.User{ID: "user-2", Email: "bruno@example.com"}, nil)
		m.storage.EXPECT().AddMember(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, membership *types.Membership) (*types.Membership, error) {
				if membership.CompanyID != "company-1" || membership.OwnerID != "owner-1" {
					t.Errorf("membership bound to wrong tenant: %+v", membership)
				}
				if !membership.IsDefault {
					t.Error("first team of a fresh user must become default")
				}
				if membership.AcceptedAt == nil {
					t.Error("expected acceptance timestamp")
				}
				return membership, nil
			})
		m.storage.EXPECT().UpdateUserTenant(gomock.Any(), "user-2", "company-1", "Acme").Return(nil)
		m.storage.EXPECT().UpdateInviteStatus(gomock.Any(), "invite-1", types.InviteAccepted).Return(nil)

		membership, err := s.AcceptInvite(context.Background(), "tok", "s3cret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if membership.Status != types.MembershipActive {
			t.Errorf("expected active membership, got %q", membership.Status)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		s, m := newService(t, "team.Service.AcceptInvite")

		m.storage.EXPECT().GetInviteByToken(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)

		_, err := s.AcceptInvite(context.Background(), "missing", "")
		if !errors.Is(err, ErrInviteNotFound) {
			t.Fatalf("expected ErrInviteNotFound, got %v", err)
		}
	})

	t.Run("expired token is marked and rejected", func(t *testing.T) {
		s, m := newService(t, "team.Service.AcceptInvite")

		invite := pendingInvite()
		invite.ExpiresAt = time.Now().UTC().Add(-time.Hour)
		m.storage.EXPECT().GetInviteByToken(gomock.Any(), "tok").Return(invite, nil)
		m.storage.EXPECT().UpdateInviteStatus(gomock.Any(), "invite-1", types.InviteExpired).Return(nil)

		_, err := s.AcceptInvite(context.Background(), "tok", "")
		if !errors.Is(err, ErrInviteExpired) {
			t.Fatalf("expected ErrInviteExpired, got %v", err)
		}
	})

	t.Run("already accepted token", func(t *testing.T) {
		s, m := newService(t, "team.Service.AcceptInvite")

		invite := pendingInvite()
		invite.Status = types.InviteAccepted
		m.storage.EXPECT().GetInviteByToken(gomock.Any(), "tok").Return(invite, nil)

		_, err := s.AcceptInvite(context.Background(), "tok", "")
		if !errors.Is(err, ErrInviteUsed) {
			t.Fatalf("expected ErrInviteUsed, got %v", err)
		}
	})

	t.Run("duplicate membership", func(t *testing.T) {
		s, m := newService(t, "team.Service.AcceptInvite")

		m.storage.EXPECT().GetInviteByToken(gomock.Any(), "tok").Return(pendingInvite(), nil)
		m.storage.EXPECT().GetUserByID(gomock.Any(), "owner-1").Return(owner, nil)
		m.storage.EXPECT().UpsertUser(gomock.Any(), gomock.Any()).Return(nil)
		m.storage.EXPECT().GetUserByEmail(gomock.Any(), "bruno@example.com").Return(&types.User{ID: "user-2", TenantID: "company-9"}, nil)
		m.storage.EXPECT().AddMember(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)

		_, err := s.AcceptInvite(context.Background(), "tok", "")
		if !errors.Is(err, ErrAlreadyMember) {
			t.Fatalf("expected ErrAlreadyMember, got %v", err)
		}
	})
}

func TestService_ListForOwner(t *testing.T) {
	s, m := newService(t, "team.Service.ListForOwner")

	members := []*types.Membership{{ID: "m-1", Email: "bruno@example.com"}}
	invites := []*types.Invite{
		{ID: "i-1", Status: types.InvitePending, ExpiresAt: time.Now().UTC().Add(time.Hour)},
		{ID: "i-2", Status: types.InvitePending, ExpiresAt: time.Now().UTC().Add(-time.Hour)},
	}

	m.storage.EXPECT().ListMembersByOwner(gomock.Any(), "owner-1").Return(members, nil)
	m.storage.EXPECT().ListPendingInvitesByOwner(gomock.Any(), "owner-1").Return(invites, nil)

	team, err := s.ListForOwner(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(team.Members) != 1 || len(team.Invites) != 2 {
		t.Fatalf("unexpected team view: %+v", team)
	}
	if team.Invites[0].Status != types.InvitePending {
		t.Errorf("fresh invite must stay pending, got %q", team.Invites[0].Status)
	}
	if team.Invites[1].Status != types.InviteExpired {
		t.Errorf("stale invite must present as expired, got %q", team.Invites[1].Status)
	}
}

func TestService_ListForEmail(t *testing.T) {
	t.Run("resolves owner account", func(t *testing.T) {
		s, m := newService(t, "team.Service.ListForEmail")
		m.tracer.EXPECT().Start(gomock.Any(), "team.Service.ListForOwner").Return(context.Background(), trace.SpanFromContext(context.Background()))

		m.storage.EXPECT().GetUserByEmail(gomock.Any(), "ana@hellogrowth.online").Return(&types.User{ID: "owner-1"}, nil)
		m.storage.EXPECT().ListMembersByOwner(gomock.Any(), "owner-1").Return([]*types.Membership{}, nil)
		m.storage.EXPECT().ListPendingInvitesByOwner(gomock.Any(), "owner-1").Return([]*types.Invite{}, nil)

		_, userID, err := s.ListForEmail(context.Background(), "ana@hellogrowth.online")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if userID != "owner-1" {
			t.Errorf("expected resolved user owner-1, got %q", userID)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		s, m := newService(t, "team.Service.ListForEmail")

		m.storage.EXPECT().GetUserByEmail(gomock.Any(), "ghost@hellogrowth.online").Return(nil, storage.ErrNotFound)

		_, _, err := s.ListForEmail(context.Background(), "ghost@hellogrowth.online")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestService_UpdateRole(t *testing.T) {
	t.Run("admin requester", func(t *testing.T) {
		s, m := newService(t, "team.Service.UpdateRole")

		m.storage.EXPECT().GetUserByID(gomock.Any(), "admin-1").Return(&types.User{ID: "admin-1", Role: types.RoleAdmin}, nil)
		m.storage.EXPECT().GetMembershipByID(gomock.Any(), "m-1").Return(&types.Membership{ID: "m-1", Email: "bruno@example.com"}, nil)
		m.storage.EXPECT().UpdateMemberRole(gomock.Any(), "m-1", types.RoleManager).Return(nil)
		m.storage.EXPECT().UpdateInviteRoleByEmail(gomock.Any(), "bruno@example.com", types.RoleManager).Return(nil)

		if err := s.UpdateRole(context.Background(), "m-1", types.RoleManager, "admin-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("non admin requester", func(t *testing.T) {
		s, m := newService(t, "team.Service.UpdateRole")

		m.storage.EXPECT().GetUserByID(gomock.Any(), "member-1").Return(&types.User{ID: "member-1", Role: types.RoleMember}, nil)
		security := NewMockSecurityLoggerInterface(gomock.NewController(t))
		security.EXPECT().AuthzFailure("member-1", "team.UpdateRole")
		m.logger.EXPECT().Security().Return(security)

		err := s.UpdateRole(context.Background(), "m-1", types.RoleManager, "member-1")
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("owner requester is not an admin", func(t *testing.T) {
		s, m := newService(t, "team.Service.UpdateRole")

		m.storage.EXPECT().GetUserByID(gomock.Any(), "owner-1").Return(&types.User{ID: "owner-1", Role: types.RoleOwner}, nil)
		security := NewMockSecurityLoggerInterface(gomock.NewController(t))
		security.EXPECT().AuthzFailure("owner-1", "team.UpdateRole")
		m.logger.EXPECT().Security().Return(security)

		err := s.UpdateRole(context.Background(), "m-1", types.RoleManager, "owner-1")
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("invite sync failure is non fatal", func(t *testing.T) {
		s, m := newService(t, "team.Service.UpdateRole")

		m.storage.EXPECT().GetMembershipByID(gomock.Any(), "m-1").Return(&types.Membership{ID: "m-1", Email: "bruno@example.com"}, nil)
		m.storage.EXPECT().UpdateMemberRole(gomock.Any(), "m-1", types.RoleViewer).Return(nil)
		m.storage.EXPECT().UpdateInviteRoleByEmail(gomock.Any(), "bruno@example.com", types.RoleViewer).Return(errors.New("db error"))
		m.logger.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any())

		if err := s.UpdateRole(context.Background(), "m-1", types.RoleViewer, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("invalid role", func(t *testing.T) {
		s, _ := newService(t, "team.Service.UpdateRole")

		err := s.UpdateRole(context.Background(), "m-1", "owner", "admin-1")
		if !errors.Is(err, ErrInvalidRole) {
			t.Fatalf("expected ErrInvalidRole, got %v", err)
		}
	})
}
