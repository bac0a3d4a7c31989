// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/hellogrowth/platform/internal/types"
)

const companyColumns = "id, name, plan, plan_addons, stripe_customer_id, stripe_subscription_id, subscription_status, created_by, settings, created_at"

func (s *Storage) scanCompany(row sq.RowScanner) (*types.Company, error) {
	var c types.Company
	var rawAddons, rawSettings []byte

	err := row.Scan(&c.ID, &c.Name, &c.Plan, &rawAddons, &c.StripeCustomerID, &c.StripeSubscriptionID, &c.SubscriptionStatus, &c.CreatedBy, &rawSettings, &c.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan company: %w", err)
	}

	if c.PlanAddons, err = unmarshalSettings(rawAddons); err != nil {
		return nil, fmt.Errorf("failed to decode plan addons: %w", err)
	}
	if c.Settings, err = unmarshalSettings(rawSettings); err != nil {
		return nil, fmt.Errorf("failed to decode company settings: %w", err)
	}

	return &c, nil
}

// CreateCompany inserts the company under the caller-supplied ID. The
// provisioning workflow generates IDs itself so the denormalized tenant
// pointer on the user row can be written without a round trip.
func (s *Storage) CreateCompany(ctx context.Context, company *types.Company) (*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateCompany")
	defer span.End()

	addons, err := marshalSettings(company.PlanAddons)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan addons: %w", err)
	}

	settings, err := marshalSettings(company.Settings)
	if err != nil {
		return nil, fmt.Errorf("failed to encode company settings: %w", err)
	}

	row := s.db.Statement(ctx).
		Insert("companies").
		Columns("id", "name", "plan", "plan_addons", "stripe_customer_id", "stripe_subscription_id", "subscription_status", "created_by", "settings").
		Values(company.ID, company.Name, company.Plan, addons, company.StripeCustomerID, company.StripeSubscriptionID, company.SubscriptionStatus, company.CreatedBy, settings).
		Suffix("RETURNING " + companyColumns).
		QueryRowContext(ctx)

	created, err := s.scanCompany(row)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to insert company: %w", err)
	}

	return created, nil
}

func (s *Storage) GetCompanyByID(ctx context.Context, id string) (*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetCompanyByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(companyColumns).
		From("companies").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	return s.scanCompany(row)
}

// UpdateSubscriptionStatus updates every company attached to the given
// Stripe subscription. Driven by billing webhooks.
func (s *Storage) UpdateSubscriptionStatus(ctx context.Context, subscriptionID, status string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateSubscriptionStatus")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("companies").
		Set("subscription_status", status).
		Where(sq.Eq{"stripe_subscription_id": subscriptionID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update subscription status: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
