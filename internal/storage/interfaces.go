// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"time"

	"github.com/hellogrowth/platform/internal/types"
)

type StorageInterface interface {
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	CreateUser(ctx context.Context, user *types.User) (*types.User, error)
	UpsertUser(ctx context.Context, user *types.User) error
	UpdateUserRole(ctx context.Context, userID, role string) error
	UpdateUserTenant(ctx context.Context, userID, tenantID, companyName string) error

	CreateCompany(ctx context.Context, company *types.Company) (*types.Company, error)
	GetCompanyByID(ctx context.Context, id string) (*types.Company, error)
	UpdateSubscriptionStatus(ctx context.Context, subscriptionID, status string) error

	AddMember(ctx context.Context, m *types.Membership) (*types.Membership, error)
	GetMembershipByID(ctx context.Context, id string) (*types.Membership, error)
	GetActiveTeamMembershipByEmail(ctx context.Context, email string) (*types.Membership, error)
	ListMembersByOwner(ctx context.Context, ownerID string) ([]*types.Membership, error)
	RemoveMember(ctx context.Context, id string) error
	UpdateMemberRole(ctx context.Context, id, role string) error

	CreateInvite(ctx context.Context, invite *types.Invite) (*types.Invite, error)
	GetInviteByToken(ctx context.Context, token string) (*types.Invite, error)
	ListPendingInvitesByOwner(ctx context.Context, ownerID string) ([]*types.Invite, error)
	UpdateInviteStatus(ctx context.Context, id, status string) error
	UpdateInviteRoleByEmail(ctx context.Context, email, role string) error

	ListPermissionsByRole(ctx context.Context, role string) ([]string, error)

	UpsertGmailConnection(ctx context.Context, conn *types.GmailConnection) error
	GetGmailConnection(ctx context.Context, userID string) (*types.GmailConnection, error)
	UpdateGmailTokens(ctx context.Context, userID, accessToken string, expiresAt time.Time) error
	DeleteGmailConnection(ctx context.Context, userID string) error
}
