// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	stripesdk "github.com/stripe/stripe-go/v82"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/hellogrowth/platform/internal/storage"
	"github.com/hellogrowth/platform/internal/stripe"
)

//go:generate mockgen -build_flags=--mod=mod -package billing -destination ./mock_billing.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package billing -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package billing -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package billing -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func newBillingService(t *testing.T, span string) (*Service, *MockStripeInterface, *MockStorageInterface, *MockLoggerInterface) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockStripe := NewMockStripeInterface(ctrl)
	mockStorage := NewMockStorageInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), span).Return(context.Background(), trace.SpanFromContext(context.Background())).AnyTimes()

	s := NewService(mockStripe, mockStorage, "https://hellogrowth.online", mockTracer, mockMonitor, mockLogger)
	return s, mockStripe, mockStorage, mockLogger
}

func TestService_CreateCheckoutSession(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s, mockStripe, _, _ := newBillingService(t, "billing.Service.CreateCheckoutSession")

		mockStripe.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p *stripe.CheckoutParams) (*stripe.CheckoutSession, error) {
				if p.UnitAmount != 12990 {
					t.Errorf("expected 12990 cents for 5-seat growth, got %d", p.UnitAmount)
				}
				if p.Currency != "brl" {
					t.Errorf("expected BRL, got %q", p.Currency)
				}
				if p.ProductName != "Hello Growth" {
					t.Errorf("unexpected product name %q", p.ProductName)
				}
				if p.Description != "Hello Growth - 5 usuários" {
					t.Errorf("unexpected description %q", p.Description)
				}
				if p.Metadata["userCount"] != "5" || p.Metadata["priceKey"] != "hello_growth" {
					t.Errorf("unexpected metadata %v", p.Metadata)
				}
				return &stripe.CheckoutSession{ID: "cs_123", URL: "https://checkout.stripe.com/cs_123"}, nil
			})

		resp, err := s.CreateCheckoutSession(context.Background(), &CheckoutRequest{
			Plan:      "hello_growth",
			UserCount: 5,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.SessionID != "cs_123" || resp.URL == "" {
			t.Errorf("unexpected response %+v", resp)
		}
	})

	t.Run("invalid pricing", func(t *testing.T) {
		s, _, _, _ := newBillingService(t, "billing.Service.CreateCheckoutSession")

		_, err := s.CreateCheckoutSession(context.Background(), &CheckoutRequest{
			Plan:      "hello_mystery",
			UserCount: 3,
		})
		if !errors.Is(err, ErrInvalidPricing) {
			t.Fatalf("expected ErrInvalidPricing, got %v", err)
		}
	})

	t.Run("stripe failure", func(t *testing.T) {
		s, mockStripe, _, _ := newBillingService(t, "billing.Service.CreateCheckoutSession")

		mockStripe.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).Return(nil, errors.New("stripe down"))

		if _, err := s.CreateCheckoutSession(context.Background(), &CheckoutRequest{Plan: "hello_client", UserCount: 1}); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestService_VerifySession(t *testing.T) {
	s, mockStripe, _, _ := newBillingService(t, "billing.Service.VerifySession")

	mockStripe.EXPECT().GetCheckoutSession(gomock.Any(), "cs_123").Return(&stripe.CheckoutSession{
		ID:            "cs_123",
		PaymentStatus: "paid",
		CustomerEmail: "owner@example.com",
		Metadata:      map[string]string{"plan": "hello_growth"},
	}, nil)

	status, err := s.VerifySession(context.Background(), "cs_123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Status != "paid" || status.CustomerEmail != "owner@example.com" {
		t.Errorf("unexpected status %+v", status)
	}
}

func TestService_HandleWebhookEvent(t *testing.T) {
	payload := []byte(`{}`)
	signature := "t=1,v1=abc"

	t.Run("invalid signature", func(t *testing.T) {
		s, mockStripe, _, _ := newBillingService(t, "billing.Service.HandleWebhookEvent")

		mockStripe.EXPECT().ConstructEvent(payload, signature).Return(stripesdk.Event{}, errors.New("bad signature"))

		err := s.HandleWebhookEvent(context.Background(), payload, signature)
		if !errors.Is(err, ErrInvalidSignature) {
			t.Fatalf("expected ErrInvalidSignature, got %v", err)
		}
	})

	t.Run("subscription updated", func(t *testing.T) {
		s, mockStripe, mockStorage, _ := newBillingService(t, "billing.Service.HandleWebhookEvent")

		raw, _ := json.Marshal(map[string]any{"id": "sub_123", "status": "past_due"})
		mockStripe.EXPECT().ConstructEvent(payload, signature).Return(stripesdk.Event{
			Type: "customer.subscription.updated",
			Data: &stripesdk.EventData{Raw: raw},
		}, nil)
		mockStorage.EXPECT().UpdateSubscriptionStatus(gomock.Any(), "sub_123", "past_due").Return(nil)

		if err := s.HandleWebhookEvent(context.Background(), payload, signature); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("subscription deleted", func(t *testing.T) {
		s, mockStripe, mockStorage, _ := newBillingService(t, "billing.Service.HandleWebhookEvent")

		raw, _ := json.Marshal(map[string]any{"id": "sub_123", "status": "canceled"})
		mockStripe.EXPECT().ConstructEvent(payload, signature).Return(stripesdk.Event{
			Type: "customer.subscription.deleted",
			Data: &stripesdk.EventData{Raw: raw},
		}, nil)
		mockStorage.EXPECT().UpdateSubscriptionStatus(gomock.Any(), "sub_123", "canceled").Return(nil)

		if err := s.HandleWebhookEvent(context.Background(), payload, signature); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("invoice payment failed", func(t *testing.T) {
		s, mockStripe, mockStorage, _ := newBillingService(t, "billing.Service.HandleWebhookEvent")

		mockStripe.EXPECT().ConstructEvent(payload, signature).Return(stripesdk.Event{
			Type: "invoice.payment_failed",
			Data: &stripesdk.EventData{
				Object: map[string]any{"id": "in_123", "subscription": "sub_123"},
			},
		}, nil)
		mockStorage.EXPECT().UpdateSubscriptionStatus(gomock.Any(), "sub_123", "past_due").Return(nil)

		if err := s.HandleWebhookEvent(context.Background(), payload, signature); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown subscription is ignored", func(t *testing.T) {
		s, mockStripe, mockStorage, mockLogger := newBillingService(t, "billing.Service.HandleWebhookEvent")

		raw, _ := json.Marshal(map[string]any{"id": "sub_unknown", "status": "active"})
		mockStripe.EXPECT().ConstructEvent(payload, signature).Return(stripesdk.Event{
			Type: "customer.subscription.updated",
			Data: &stripesdk.EventData{Raw: raw},
		}, nil)
		mockStorage.EXPECT().UpdateSubscriptionStatus(gomock.Any(), "sub_unknown", "active").Return(storage.ErrNotFound)
		mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any())

		if err := s.HandleWebhookEvent(context.Background(), payload, signature); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unhandled event type", func(t *testing.T) {
		s, mockStripe, _, mockLogger := newBillingService(t, "billing.Service.HandleWebhookEvent")

		mockStripe.EXPECT().ConstructEvent(payload, signature).Return(stripesdk.Event{
			Type: "charge.refunded",
			Data: &stripesdk.EventData{},
		}, nil)
		mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any())

		if err := s.HandleWebhookEvent(context.Background(), payload, signature); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestInvoiceSubscriptionID(t *testing.T) {
	testCases := []struct {
		name     string
		object   map[string]any
		expected string
	}{
		{name: "top level string", object: map[string]any{"subscription": "sub_1"}, expected: "sub_1"},
		{name: "top level expanded", object: map[string]any{"subscription": map[string]any{"id": "sub_2"}}, expected: "sub_2"},
		{name: "nested under parent", object: map[string]any{
			"parent": map[string]any{"subscription_details": map[string]any{"subscription": "sub_3"}},
		}, expected: "sub_3"},
		{name: "absent", object: map[string]any{"id": "in_1"}, expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := invoiceSubscriptionID(tc.object); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}
