// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

// User is the root identity record. Email is unique after normalization
// (lowercased, trimmed).
type User struct {
	ID          string         `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Email       string         `db:"email" json:"email"`
	Password    string         `db:"password" json:"-"`
	Role        string         `db:"role" json:"role"`
	Plan        string         `db:"plan" json:"plan"`
	IsOwner     bool           `db:"is_owner" json:"is_owner"`
	TenantID    string         `db:"tenant_id" json:"tenant_id"`
	CompanyName string         `db:"company_name" json:"company_name"`
	Settings    map[string]any `db:"settings" json:"settings,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// Company is a billable tenant. IDs are generated application-side.
type Company struct {
	ID                   string         `db:"id" json:"id"`
	Name                 string         `db:"name" json:"name"`
	Plan                 string         `db:"plan" json:"plan"`
	PlanAddons           map[string]any `db:"plan_addons" json:"plan_addons,omitempty"`
	StripeCustomerID     string         `db:"stripe_customer_id" json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID string         `db:"stripe_subscription_id" json:"stripe_subscription_id,omitempty"`
	SubscriptionStatus   string         `db:"subscription_status" json:"subscription_status,omitempty"`
	CreatedBy            string         `db:"created_by" json:"created_by"`
	Settings             map[string]any `db:"settings" json:"settings,omitempty"`
	CreatedAt            time.Time      `db:"created_at" json:"created_at"`
}

// Membership links a User to a Company with a per-company role.
// A user has at most one membership with IsDefault set.
type Membership struct {
	ID         string     `db:"id" json:"id"`
	UserID     string     `db:"user_id" json:"user_id"`
	CompanyID  string     `db:"company_id" json:"company_id"`
	OwnerID    string     `db:"owner_id" json:"owner_id"`
	Email      string     `db:"email" json:"email"`
	Name       string     `db:"name" json:"name"`
	Role       string     `db:"role" json:"role"`
	IsDefault  bool       `db:"is_default" json:"is_default"`
	Status     string     `db:"status" json:"status"`
	AcceptedAt *time.Time `db:"accepted_at" json:"accepted_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// Invite is a pending team invitation. Tokens are unique and single use.
type Invite struct {
	ID        string    `db:"id" json:"id"`
	OwnerID   string    `db:"owner_id" json:"owner_id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	Role      string    `db:"role" json:"role"`
	Token     string    `db:"token" json:"token"`
	Status    string    `db:"status" json:"status"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// GmailConnection stores the OAuth tokens of a user's connected mailbox.
type GmailConnection struct {
	UserID       string    `db:"user_id" json:"user_id"`
	Email        string    `db:"email" json:"email"`
	AccessToken  string    `db:"access_token" json:"-"`
	RefreshToken string    `db:"refresh_token" json:"-"`
	ExpiresAt    time.Time `db:"expires_at" json:"expires_at"`
}

// Membership status values.
const (
	MembershipActive  = "active"
	MembershipPending = "pending"
)

// Invite status values.
const (
	InvitePending  = "pending"
	InviteAccepted = "accepted"
	InviteExpired  = "expired"
)

// Membership and user roles.
const (
	RoleOwner   = "owner"
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleMember  = "member"
	RoleViewer  = "viewer"
)

// Internal plan tiers.
const (
	PlanTrial          = "trial"
	PlanClient         = "client"
	PlanRating         = "rating"
	PlanGrowth         = "growth"
	PlanGrowthLifetime = "growth_lifetime"
)
