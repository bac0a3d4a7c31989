// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"context"

	stripesdk "github.com/stripe/stripe-go/v82"

	"github.com/hellogrowth/platform/internal/stripe"
)

type ServiceInterface interface {
	CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutResponse, error)
	VerifySession(ctx context.Context, sessionID string) (*SessionStatus, error)
	HandleWebhookEvent(ctx context.Context, payload []byte, signature string) error
	GetCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error)
}

// StripeInterface is the payment-provider boundary.
type StripeInterface interface {
	GetCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error)
	CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutParams) (*stripe.CheckoutSession, error)
	ConstructEvent(payload []byte, signature string) (stripesdk.Event, error)
}

// StorageInterface is the subset of the storage layer webhook handling uses.
type StorageInterface interface {
	UpdateSubscriptionStatus(ctx context.Context, subscriptionID, status string) error
}
