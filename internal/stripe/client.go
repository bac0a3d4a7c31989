// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package stripe

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/hellogrowth/platform/internal/logging"
	"github.com/hellogrowth/platform/internal/monitoring"
	"github.com/hellogrowth/platform/internal/tracing"
)

// CheckoutSession is the subset of a Stripe checkout session the platform
// cares about.
type CheckoutSession struct {
	ID             string
	URL            string
	PaymentStatus  string
	AmountTotal    int64
	CustomerID     string
	SubscriptionID string
	CustomerEmail  string
	Metadata       map[string]string
}

// CheckoutParams describes a dynamic-price subscription checkout.
type CheckoutParams struct {
	ProductName string
	Description string
	Currency    string
	UnitAmount  int64
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

type ClientInterface interface {
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
	CreateCheckoutSession(ctx context.Context, params *CheckoutParams) (*CheckoutSession, error)
	ConstructEvent(payload []byte, signature string) (stripe.Event, error)
}

type Client struct {
	api           *client.API
	webhookSecret string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(secretKey, webhookSecret string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &Client{
		api:           api,
		webhookSecret: webhookSecret,
		tracer:        tracer,
		monitor:       monitor,
		logger:        logger,
	}
}

func (c *Client) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	ctx, span := c.tracer.Start(ctx, "stripe.Client.GetCheckoutSession")
	defer span.End()

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := c.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve checkout session: %w", err)
	}

	return fromStripeSession(sess), nil
}

func (c *Client) CreateCheckoutSession(ctx context.Context, p *CheckoutParams) (*CheckoutSession, error) {
	ctx, span := c.tracer.Start(ctx, "stripe.Client.CreateCheckoutSession")
	defer span.End()

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(p.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(p.ProductName),
						Description: stripe.String(p.Description),
					},
					UnitAmount: stripe.Int64(p.UnitAmount),
					Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
						Interval: stripe.String("month"),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
	}
	params.Context = ctx

	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return fromStripeSession(sess), nil
}

// ConstructEvent verifies the webhook signature and parses the event.
func (c *Client) ConstructEvent(payload []byte, signature string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, signature, c.webhookSecret)
}

func fromStripeSession(sess *stripe.CheckoutSession) *CheckoutSession {
	out := &CheckoutSession{
		ID:            sess.ID,
		URL:           sess.URL,
		PaymentStatus: string(sess.PaymentStatus),
		AmountTotal:   sess.AmountTotal,
		Metadata:      sess.Metadata,
	}

	if sess.Customer != nil {
		out.CustomerID = sess.Customer.ID
	}
	if sess.Subscription != nil {
		out.SubscriptionID = sess.Subscription.ID
	}
	if sess.CustomerDetails != nil {
		out.CustomerEmail = sess.CustomerDetails.Email
	}

	return out
}
