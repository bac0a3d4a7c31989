// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"fmt"

	"github.com/hellogrowth/platform/internal/logging"
	"github.com/hellogrowth/platform/internal/monitoring"
	"github.com/hellogrowth/platform/internal/storage"
	"github.com/hellogrowth/platform/internal/tracing"
	"github.com/hellogrowth/platform/internal/types"
)

// The permissions the role_permissions relation can grant.
const (
	PermManageTeam     = "manage_team"
	PermManageForms    = "manage_forms"
	PermManageLeads    = "manage_leads"
	PermManageProducts = "manage_products"
	PermViewAnalytics  = "view_analytics"
	PermSendMessages   = "send_messages"
	PermExportData     = "export_data"
	PermManageSettings = "manage_settings"
)

// Access is the resolved view of what a principal may do. It is scoped to a
// single principal and must not be shared across requests for different
// users.
type Access struct {
	Role    string
	IsOwner bool
	OwnerID string

	permissions map[string]struct{}
}

func (a *Access) HasPermission(permission string) bool {
	_, ok := a.permissions[permission]
	return ok
}

func (a *Access) HasAny(permissions ...string) bool {
	for _, p := range permissions {
		if a.HasPermission(p) {
			return true
		}
	}
	return false
}

func (a *Access) HasAll(permissions ...string) bool {
	for _, p := range permissions {
		if !a.HasPermission(p) {
			return false
		}
	}
	return true
}

func (a *Access) Permissions() []string {
	out := make([]string, 0, len(a.permissions))
	for p := range a.permissions {
		out = append(out, p)
	}
	return out
}

var _ ResolverInterface = (*Resolver)(nil)

type Resolver struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewResolver(storage StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Resolver {
	return &Resolver{
		storage: storage,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// Resolve derives the effective role of a principal. A principal with an
// active membership in someone else's company inherits the membership role;
// everyone else is the admin owner of their own account, whatever the stored
// user role says.
func (r *Resolver) Resolve(ctx context.Context, userID, email string) (*Access, error) {
	ctx, span := r.tracer.Start(ctx, "authorization.Resolver.Resolve")
	defer span.End()

	access := &Access{
		Role:    types.RoleAdmin,
		IsOwner: true,
		OwnerID: userID,
	}

	membership, err := r.storage.GetActiveTeamMembershipByEmail(ctx, email)
	switch {
	case err == nil:
		access.Role = membership.Role
		access.IsOwner = false
		access.OwnerID = membership.OwnerID
	case errors.Is(err, storage.ErrNotFound):
		// No team membership, the principal owns their own account.
	default:
		return nil, fmt.Errorf("failed to look up membership: %w", err)
	}

	permissions, err := r.storage.ListPermissionsByRole(ctx, access.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to load role permissions: %w", err)
	}

	access.permissions = make(map[string]struct{}, len(permissions))
	for _, p := range permissions {
		access.permissions[p] = struct{}{}
	}

	return access, nil
}
