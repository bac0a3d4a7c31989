// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	"github.com/hellogrowth/platform/internal/types"
)

// StorageInterface is the subset of the storage layer the resolver needs.
type StorageInterface interface {
	GetActiveTeamMembershipByEmail(ctx context.Context, email string) (*types.Membership, error)
	ListPermissionsByRole(ctx context.Context, role string) ([]string, error)
}

type ResolverInterface interface {
	Resolve(ctx context.Context, userID, email string) (*Access, error)
}
