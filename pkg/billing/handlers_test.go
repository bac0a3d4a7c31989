// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"
)

func newBillingAPI(t *testing.T) (*chi.Mux, *MockServiceInterface, *MockLoggerInterface) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockService := NewMockServiceInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	api := NewAPI(mockService, NewMockTracingInterface(ctrl), NewMockMonitorInterface(ctrl), mockLogger)
	mux := chi.NewMux()
	api.RegisterEndpoints(mux)

	return mux, mockService, mockLogger
}

func TestAPI_CreateCheckoutSession(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		setupMocks     func(*MockServiceInterface, *MockLoggerInterface)
		expectedStatus int
	}{
		{
			name: "success",
			body: &CheckoutRequest{Plan: "hello_growth", UserCount: 3},
			setupMocks: func(mockSvc *MockServiceInterface, _ *MockLoggerInterface) {
				mockSvc.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).
					Return(&CheckoutResponse{SessionID: "cs_123", URL: "https://checkout.stripe.com/cs_123"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "user count out of range",
			body:           &CheckoutRequest{Plan: "hello_growth", UserCount: 11},
			setupMocks:     func(*MockServiceInterface, *MockLoggerInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing plan",
			body:           &CheckoutRequest{UserCount: 3},
			setupMocks:     func(*MockServiceInterface, *MockLoggerInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid pricing",
			body: &CheckoutRequest{Plan: "hello_mystery", UserCount: 3},
			setupMocks: func(mockSvc *MockServiceInterface, _ *MockLoggerInterface) {
				mockSvc.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).Return(nil, ErrInvalidPricing)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "service error",
			body: &CheckoutRequest{Plan: "hello_growth", UserCount: 3},
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockSvc.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).Return(nil, errors.New("stripe down"))
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, mockService, mockLogger := newBillingAPI(t)
			tt.setupMocks(mockService, mockLogger)

			var body bytes.Buffer
			if err := json.NewEncoder(&body).Encode(tt.body); err != nil {
				t.Fatalf("failed to encode request: %v", err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/stripe/create-checkout-session", &body)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

func TestAPI_VerifySession(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mux, mockService, _ := newBillingAPI(t)
		mockService.EXPECT().VerifySession(gomock.Any(), "cs_123").Return(&SessionStatus{
			Status:        "paid",
			CustomerEmail: "owner@example.com",
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/stripe/verify-session?session_id=cs_123", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var status SessionStatus
		if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if status.Status != "paid" {
			t.Errorf("expected paid, got %q", status.Status)
		}
	})

	t.Run("missing session_id", func(t *testing.T) {
		mux, _, _ := newBillingAPI(t)

		req := httptest.NewRequest(http.MethodGet, "/api/stripe/verify-session", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAPI_Webhook(t *testing.T) {
	tests := []struct {
		name           string
		signature      string
		err            error
		expectedStatus int
	}{
		{name: "success", signature: "t=1,v1=abc", err: nil, expectedStatus: http.StatusOK},
		{name: "bad signature", signature: "t=1,v1=bad", err: ErrInvalidSignature, expectedStatus: http.StatusBadRequest},
		{name: "missing signature", signature: "", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, mockService, _ := newBillingAPI(t)

			if tt.signature != "" {
				mockService.EXPECT().HandleWebhookEvent(gomock.Any(), gomock.Any(), tt.signature).Return(tt.err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", bytes.NewBufferString(`{}`))
			if tt.signature != "" {
				req.Header.Set("Stripe-Signature", tt.signature)
			}
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}
