// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/hellogrowth/platform/internal/stripe"
	"github.com/hellogrowth/platform/internal/storage"
	"github.com/hellogrowth/platform/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package onboarding -destination ./mock_onboarding.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package onboarding -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package onboarding -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package onboarding -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func paidSession() *stripe.CheckoutSession {
	return &stripe.CheckoutSession{
		ID:             "cs_test_123",
		PaymentStatus:  "paid",
		AmountTotal:    9900,
		CustomerID:     "cus_123",
		SubscriptionID: "sub_123",
	}
}

func TestService_SetupTenants(t *testing.T) {
	dbErr := errors.New("db error")

	testCases := []struct {
		name          string
		req           *SetupTenantsRequest
		setupMocks    func(*MockStorageInterface, *MockBillingInterface, *MockLoggerInterface)
		expectedCount int
		expectedErr   error
	}{
		{
			name: "success single company",
			req: &SetupTenantsRequest{
				SessionID: "cs_test_123",
				Email:     "Owner@Example.com",
				Companies: []string{"Acme"},
				Plan:      "hello_growth",
			},
			setupMocks: func(mockStorage *MockStorageInterface, mockBilling *MockBillingInterface, _ *MockLoggerInterface) {
				mockBilling.EXPECT().GetCheckoutSession(gomock.Any(), "cs_test_123").Return(paidSession(), nil)
				mockStorage.EXPECT().GetUserByEmail(gomock.Any(), "owner@example.com").Return(nil, storage.ErrNotFound)
				mockStorage.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, u *types.User) (*types.User, error) {
						if u.Email != "owner@example.com" {
							t.Errorf("expected normalized email, got %q", u.Email)
						}
						if u.Plan != types.PlanGrowth {
							t.Errorf("expected plan %q, got %q", types.PlanGrowth, u.Plan)
						}
						if !u.IsOwner || u.Role != types.RoleAdmin {
							t.Error("expected provisioned user to be an owner admin")
						}
						u.ID = "user-1"
						return u, nil
					})
				mockStorage.EXPECT().CreateCompany(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, c *types.Company) (*types.Company, error) {
						if c.Name != "Acme" {
							t.Errorf("expected company name Acme, got %q", c.Name)
						}
						if c.StripeCustomerID != "cus_123" {
							t.Errorf("expected stripe customer from session, got %q", c.StripeCustomerID)
						}
						return c, nil
					})
				mockStorage.EXPECT().AddMember(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, m *types.Membership) (*types.Membership, error) {
						if m.Role != types.RoleOwner || !m.IsDefault {
							t.Error("expected default owner membership for first company")
						}
						return m, nil
					})
				mockStorage.EXPECT().UpdateUserTenant(gomock.Any(), "user-1", gomock.Any(), "Acme").Return(nil)
			},
			expectedCount: 1,
		},
		{
			name: "free session is accepted",
			req: &SetupTenantsRequest{
				SessionID: "cs_free",
				Email:     "free@example.com",
				Companies: []string{"Free Co"},
			},
			setupMocks: func(mockStorage *MockStorageInterface, mockBilling *MockBillingInterface, _ *MockLoggerInterface) {
				mockBilling.EXPECT().GetCheckoutSession(gomock.Any(), "cs_free").Return(&stripe.CheckoutSession{
					ID:            "cs_free",
					PaymentStatus: "unpaid",
					AmountTotal:   0,
				}, nil)
				mockStorage.EXPECT().GetUserByEmail(gomock.Any(), "free@example.com").Return(nil, storage.ErrNotFound)
				mockStorage.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, u *types.User) (*types.User, error) {
						u.ID = "user-free"
						return u, nil
					})
				mockStorage.EXPECT().CreateCompany(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, c *types.Company) (*types.Company, error) { return c, nil })
				mockStorage.EXPECT().AddMember(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, m *types.Membership) (*types.Membership, error) { return m, nil })
				mockStorage.EXPECT().UpdateUserTenant(gomock.Any(), "user-free", gomock.Any(), "Free Co").Return(nil)
			},
			expectedCount: 1,
		},
		{
			name: "unpaid session",
			req: &SetupTenantsRequest{
				SessionID: "cs_unpaid",
				Email:     "owner@example.com",
				Companies: []string{"Acme"},
			},
			setupMocks: func(_ *MockStorageInterface, mockBilling *MockBillingInterface, _ *MockLoggerInterface) {
				mockBilling.EXPECT().GetCheckoutSession(gomock.Any(), "cs_unpaid").Return(&stripe.CheckoutSession{
					ID:            "cs_unpaid",
					PaymentStatus: "unpaid",
					AmountTotal:   9900,
				}, nil)
			},
			expectedErr: ErrPaymentNotCompleted,
		},
		{
			name: "email already registered",
			req: &SetupTenantsRequest{
				SessionID: "cs_test_123",
				Email:     "owner@example.com",
				Companies: []string{"Acme"},
			},
			setupMocks: func(mockStorage *MockStorageInterface, mockBilling *MockBillingInterface, _ *MockLoggerInterface) {
				mockBilling.EXPECT().GetCheckoutSession(gomock.Any(), "cs_test_123").Return(paidSession(), nil)
				mockStorage.EXPECT().GetUserByEmail(gomock.Any(), "owner@example.com").Return(&types.User{ID: "existing"}, nil)
			},
			expectedErr: ErrEmailExists,
		},
		{
			name: "duplicate key on insert maps to email exists",
			req: &SetupTenantsRequest{
				SessionID: "cs_test_123",
				Email:     "owner@example.com",
				Companies: []string{"Acme"},
			},
			setupMocks: func(mockStorage *MockStorageInterface, mockBilling *MockBillingInterface, _ *MockLoggerInterface) {
				mockBilling.EXPECT().GetCheckoutSession(gomock.Any(), "cs_test_123").Return(paidSession(), nil)
				mockStorage.EXPECT().GetUserByEmail(gomock.Any(), "owner@example.com").Return(nil, storage.ErrNotFound)
				mockStorage.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)
			},
			expectedErr: ErrEmailExists,
		},
		{
			name: "partial company failure still counts the rest",
			req: &SetupTenantsRequest{
				SessionID: "cs_test_123",
				Email:     "owner@example.com",
				Companies: []string{"Broken Co", "Acme"},
			},
			setupMocks: func(mockStorage *MockStorageInterface, mockBilling *MockBillingInterface, mockLogger *MockLoggerInterface) {
				mockBilling.EXPECT().GetCheckoutSession(gomock.Any(), "cs_test_123").Return(paidSession(), nil)
				mockStorage.EXPECT().GetUserByEmail(gomock.Any(), "owner@example.com").Return(nil, storage.ErrNotFound)
				mockStorage.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, u *types.User) (*types.User, error) {
						u.ID = "user-1"
						return u, nil
					})
				first := mockStorage.EXPECT().CreateCompany(gomock.Any(), gomock.Any()).Return(nil, dbErr)
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any())
				mockStorage.EXPECT().CreateCompany(gomock.Any(), gomock.Any()).After(first).DoAndReturn(
					func(_ context.Context, c *types.Company) (*types.Company, error) { return c, nil })
				mockStorage.EXPECT().AddMember(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, m *types.Membership) (*types.Membership, error) {
						if m.IsDefault {
							t.Error("second company must not become the default membership")
						}
						return m, nil
					})
			},
			expectedCount: 1,
		},
		{
			name: "billing lookup failure",
			req: &SetupTenantsRequest{
				SessionID: "cs_test_123",
				Email:     "owner@example.com",
				Companies: []string{"Acme"},
			},
			setupMocks: func(_ *MockStorageInterface, mockBilling *MockBillingInterface, _ *MockLoggerInterface) {
				mockBilling.EXPECT().GetCheckoutSession(gomock.Any(), "cs_test_123").Return(nil, errors.New("stripe down"))
			},
			expectedErr: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockBilling := NewMockBillingInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "onboarding.Service.SetupTenants").Return(context.Background(), trace.SpanFromContext(context.Background()))
			tc.setupMocks(mockStorage, mockBilling, mockLogger)

			s := NewService(mockStorage, mockBilling, mockTracer, mockMonitor, mockLogger)

			result, err := s.SetupTenants(context.Background(), tc.req)

			if tc.name == "billing lookup failure" {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Fatalf("expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Count != tc.expectedCount {
				t.Errorf("expected count %d, got %d", tc.expectedCount, result.Count)
			}
		})
	}
}

func TestMapPlan(t *testing.T) {
	cases := map[string]string{
		"hello_client":    types.PlanClient,
		"hello_rating":    types.PlanRating,
		"hello_growth":    types.PlanGrowth,
		"growth_lifetime": types.PlanGrowthLifetime,
		"client":          types.PlanClient,
		"":                types.PlanGrowth,
		"something_else":  types.PlanTrial,
	}

	for input, expected := range cases {
		if got := mapPlan(input); got != expected {
			t.Errorf("mapPlan(%q) = %q, expected %q", input, got, expected)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Owner@Example.COM "); got != "owner@example.com" {
		t.Errorf("unexpected normalized email %q", got)
	}
}
