// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hellogrowth/platform/internal/logging"
	"github.com/hellogrowth/platform/internal/monitoring"
	"github.com/hellogrowth/platform/internal/storage"
	"github.com/hellogrowth/platform/internal/tracing"
	"github.com/hellogrowth/platform/internal/types"
)

// Default credential assigned at provisioning time. Known weakness carried
// over from the current account flow.
const defaultPassword = "12345"

var (
	ErrPaymentNotCompleted = errors.New("payment not completed")
	ErrEmailExists         = errors.New("email already registered")
)

// SetupTenantsRequest is the payload of a post-checkout provisioning call.
type SetupTenantsRequest struct {
	SessionID string         `json:"sessionId" validate:"required"`
	Email     string         `json:"email" validate:"required,email"`
	Companies []string       `json:"companies" validate:"required,min=1,dive,required"`
	Plan      string         `json:"plan"`
	Addons    map[string]any `json:"addons"`
}

// Result reports how many of the requested companies were provisioned.
// Count below the requested number signals partial failure, not an error.
type Result struct {
	Count   int    `json:"count"`
	Message string `json:"message"`
}

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface
	billing BillingInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(storage StorageInterface, billing BillingInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	return &Service{
		storage: storage,
		billing: billing,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// NormalizeEmail is the form used for the uniqueness check and the stored
// row.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetupTenants turns a paid checkout into user, company and membership rows.
// Not idempotent: a retry after partial success creates duplicate companies,
// so callers must confirm the previous attempt failed outright first.
func (s *Service) SetupTenants(ctx context.Context, req *SetupTenantsRequest) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "onboarding.Service.SetupTenants")
	defer span.End()

	// 1. Re-verify the payment; the session id alone proves nothing.
	session, err := s.billing.GetCheckoutSession(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify checkout session: %w", err)
	}

	if session.PaymentStatus != "paid" && session.AmountTotal > 0 {
		return nil, ErrPaymentNotCompleted
	}

	// 2. One account per normalized email. The lookup is an optimization;
	// the unique index on users.email is what actually guarantees it.
	email := NormalizeEmail(req.Email)

	if _, err := s.storage.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing account: %w", err)
	}

	plan := mapPlan(req.Plan)
	name, _, _ := strings.Cut(email, "@")

	user, err := s.storage.CreateUser(ctx, &types.User{
		Name:     name,
		Email:    email,
		Password: defaultPassword,
		Role:     types.RoleAdmin,
		Plan:     plan,
		IsOwner:  true,
		Settings: map[string]any{
			"adminEmail":   email,
			"autoRedirect": true,
			"addons":       req.Addons,
		},
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			// Lost the race to a concurrent provisioning call.
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// 3. One company per purchased name, in input order. A failed company is
	// logged and skipped; the account as a whole still comes up.
	count := 0
	now := time.Now().UTC()

	for i, companyName := range req.Companies {
		companyID, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate company ID: %w", err)
		}

		company, err := s.storage.CreateCompany(ctx, &types.Company{
			ID:                   companyID.String(),
			Name:                 companyName,
			Plan:                 plan,
			PlanAddons:           req.Addons,
			StripeCustomerID:     session.CustomerID,
			StripeSubscriptionID: session.SubscriptionID,
			SubscriptionStatus:   "active",
			CreatedBy:            user.ID,
			Settings: map[string]any{
				"companyName": companyName,
				"adminEmail":  email,
			},
		})
		if err != nil {
			s.logger.Errorf("failed to create company %q: %v", companyName, err)
			continue
		}

		count++

		if _, err := s.storage.AddMember(ctx, &types.Membership{
			UserID:     user.ID,
			CompanyID:  company.ID,
			OwnerID:    user.ID,
			Email:      email,
			Name:       user.Name,
			Role:       types.RoleOwner,
			IsDefault:  i == 0,
			Status:     types.MembershipActive,
			AcceptedAt: &now,
		}); err != nil {
			s.logger.Errorf("failed to link company %q to user %s: %v", companyName, user.ID, err)
			continue
		}

		// The first fully linked company becomes the user's default tenant.
		if i == 0 {
			if err := s.storage.UpdateUserTenant(ctx, user.ID, company.ID, company.Name); err != nil {
				s.logger.Errorf("failed to set default tenant for user %s: %v", user.ID, err)
			}
		}
	}

	return &Result{
		Count:   count,
		Message: fmt.Sprintf("%d empresas configuradas com sucesso.", count),
	}, nil
}
