// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

// Package billing drives Stripe checkout and keeps subscription state in sync
// through webhooks.
package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	stripesdk "github.com/stripe/stripe-go/v82"

	"github.com/hellogrowth/platform/internal/logging"
	"github.com/hellogrowth/platform/internal/monitoring"
	"github.com/hellogrowth/platform/internal/storage"
	"github.com/hellogrowth/platform/internal/stripe"
	"github.com/hellogrowth/platform/internal/tracing"
)

var (
	ErrInvalidPricing   = errors.New("invalid price configuration")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

type CheckoutRequest struct {
	Plan      string `json:"plan" validate:"required"`
	UserCount int    `json:"userCount" validate:"required,min=1,max=10"`
	Addons    Addons `json:"addons"`
}

type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// SessionStatus is the post-checkout verification payload the frontend polls.
type SessionStatus struct {
	Status        string            `json:"status"`
	CustomerEmail string            `json:"customerEmail"`
	Metadata      map[string]string `json:"metadata"`
}

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	stripe  StripeInterface
	storage StorageInterface

	baseURL string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(stripeClient StripeInterface, storage StorageInterface, baseURL string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	return &Service{
		stripe:  stripeClient,
		storage: storage,
		baseURL: baseURL,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// CreateCheckoutSession prices the plan/seat/addon combination and opens a
// subscription-mode checkout with the purchase encoded in metadata.
func (s *Service) CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutResponse, error) {
	ctx, span := s.tracer.Start(ctx, "billing.Service.CreateCheckoutSession")
	defer span.End()

	price, err := priceFor(req.Plan, req.UserCount, req.Addons)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPricing, err)
	}

	name := planName(req.Plan, req.Addons)
	description := fmt.Sprintf("%s - %d usuário", name, req.UserCount)
	if req.UserCount > 1 {
		description += "s"
	}

	addonsJSON, err := json.Marshal(req.Addons)
	if err != nil {
		return nil, fmt.Errorf("failed to encode addons: %w", err)
	}

	session, err := s.stripe.CreateCheckoutSession(ctx, &stripe.CheckoutParams{
		ProductName: name,
		Description: description,
		Currency:    "brl",
		UnitAmount:  price,
		SuccessURL:  s.baseURL + "/pricing/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   s.baseURL + "/pricing?canceled=true",
		Metadata: map[string]string{
			"plan":      req.Plan,
			"userCount": strconv.Itoa(req.UserCount),
			"addons":    string(addonsJSON),
			"priceKey":  priceKey(req.Plan, req.Addons),
			"priceBRL":  strconv.FormatInt(price, 10),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &CheckoutResponse{SessionID: session.ID, URL: session.URL}, nil
}

func (s *Service) VerifySession(ctx context.Context, sessionID string) (*SessionStatus, error) {
	ctx, span := s.tracer.Start(ctx, "billing.Service.VerifySession")
	defer span.End()

	session, err := s.stripe.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify session: %w", err)
	}

	return &SessionStatus{
		Status:        session.PaymentStatus,
		CustomerEmail: session.CustomerEmail,
		Metadata:      session.Metadata,
	}, nil
}

// GetCheckoutSession exposes the raw session to the provisioning workflow.
func (s *Service) GetCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error) {
	return s.stripe.GetCheckoutSession(ctx, sessionID)
}

// HandleWebhookEvent verifies and dispatches a Stripe event. Unknown event
// types are acknowledged and ignored.
func (s *Service) HandleWebhookEvent(ctx context.Context, payload []byte, signature string) error {
	ctx, span := s.tracer.Start(ctx, "billing.Service.HandleWebhookEvent")
	defer span.End()

	event, err := s.stripe.ConstructEvent(payload, signature)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripesdk.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return fmt.Errorf("failed to decode checkout session: %w", err)
		}
		// Account provisioning happens on the setup-tenants call, the
		// webhook only records the completion.
		s.logger.Infof("checkout session completed: %s (plan=%s)", session.ID, session.Metadata["plan"])

	case "customer.subscription.updated":
		sub, err := decodeSubscription(event.Data.Raw)
		if err != nil {
			return err
		}
		return s.updateSubscription(ctx, sub.ID, string(sub.Status))

	case "customer.subscription.deleted":
		sub, err := decodeSubscription(event.Data.Raw)
		if err != nil {
			return err
		}
		return s.updateSubscription(ctx, sub.ID, "canceled")

	case "invoice.payment_succeeded":
		if subID := invoiceSubscriptionID(event.Data.Object); subID != "" {
			return s.updateSubscription(ctx, subID, "active")
		}

	case "invoice.payment_failed":
		if subID := invoiceSubscriptionID(event.Data.Object); subID != "" {
			return s.updateSubscription(ctx, subID, "past_due")
		}

	default:
		s.logger.Debugf("unhandled stripe event type: %s", event.Type)
	}

	return nil
}

func (s *Service) updateSubscription(ctx context.Context, subscriptionID, status string) error {
	err := s.storage.UpdateSubscriptionStatus(ctx, subscriptionID, status)
	if errors.Is(err, storage.ErrNotFound) {
		// Subscription not tied to any company yet, nothing to sync.
		s.logger.Debugf("no company for subscription %s", subscriptionID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to update subscription %s: %w", subscriptionID, err)
	}

	return nil
}

func decodeSubscription(raw json.RawMessage) (*stripesdk.Subscription, error) {
	sub := new(stripesdk.Subscription)
	if err := json.Unmarshal(raw, sub); err != nil {
		return nil, fmt.Errorf("failed to decode subscription: %w", err)
	}

	return sub, nil
}

// invoiceSubscriptionID digs the subscription reference out of an invoice
// payload. The field moved between Stripe API versions, so both shapes are
// checked.
func invoiceSubscriptionID(object map[string]any) string {
	switch sub := object["subscription"].(type) {
	case string:
		return sub
	case map[string]any:
		if id, ok := sub["id"].(string); ok {
			return id
		}
	}

	if parent, ok := object["parent"].(map[string]any); ok {
		if details, ok := parent["subscription_details"].(map[string]any); ok {
			if id, ok := details["subscription"].(string); ok {
				return id
			}
		}
	}

	return ""
}
