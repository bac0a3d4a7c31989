// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package team

import (
	"context"

	"github.com/hellogrowth/platform/internal/mail"
	"github.com/hellogrowth/platform/internal/types"
)

type ServiceInterface interface {
	Invite(ctx context.Context, ownerID, name, email, role string) (*types.Invite, string, error)
	ListForOwner(ctx context.Context, ownerID string) (*Team, error)
	ListForEmail(ctx context.Context, email string) (*Team, string, error)
	LookupInvite(ctx context.Context, token string) (*InvitePreview, error)
	AcceptInvite(ctx context.Context, token, password string) (*types.Membership, error)
	RemoveMember(ctx context.Context, memberID string) error
	UpdateRole(ctx context.Context, memberID, newRole, requestingUserID string) error
}

// StorageInterface is the subset of the storage layer team administration uses.
type StorageInterface interface {
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	UpsertUser(ctx context.Context, user *types.User) error

	AddMember(ctx context.Context, m *types.Membership) (*types.Membership, error)
	GetMembershipByID(ctx context.Context, id string) (*types.Membership, error)
	ListMembersByOwner(ctx context.Context, ownerID string) ([]*types.Membership, error)
	RemoveMember(ctx context.Context, id string) error
	UpdateMemberRole(ctx context.Context, id, role string) error
	UpdateUserTenant(ctx context.Context, userID, tenantID, companyName string) error

	CreateInvite(ctx context.Context, invite *types.Invite) (*types.Invite, error)
	GetInviteByToken(ctx context.Context, token string) (*types.Invite, error)
	ListPendingInvitesByOwner(ctx context.Context, ownerID string) ([]*types.Invite, error)
	UpdateInviteStatus(ctx context.Context, id, status string) error
	UpdateInviteRoleByEmail(ctx context.Context, email, role string) error
}

type MailerInterface interface {
	SendInvite(ctx context.Context, email *mail.InviteEmail) error
}
