// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import (
	"context"

	"github.com/hellogrowth/platform/internal/stripe"
	"github.com/hellogrowth/platform/internal/types"
)

type ServiceInterface interface {
	SetupTenants(ctx context.Context, req *SetupTenantsRequest) (*Result, error)
}

// StorageInterface is the subset of the storage layer used by provisioning.
type StorageInterface interface {
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	CreateUser(ctx context.Context, user *types.User) (*types.User, error)
	UpdateUserTenant(ctx context.Context, userID, tenantID, companyName string) error
	CreateCompany(ctx context.Context, company *types.Company) (*types.Company, error)
	AddMember(ctx context.Context, m *types.Membership) (*types.Membership, error)
}

// BillingInterface is the payment oracle: it only answers whether a checkout
// session was paid and what was bought.
type BillingInterface interface {
	GetCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error)
}
