// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

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

func TestAPI_SetupTenants(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		setupMocks     func(*MockServiceInterface, *MockLoggerInterface)
		expectedStatus int
		validateResp   func(*testing.T, *http.Response)
	}{
		{
			name: "success",
			requestBody: &SetupTenantsRequest{
				SessionID: "cs_test_123",
				Email:     "owner@example.com",
				Companies: []string{"Acme", "Beta"},
			},
			setupMocks: func(mockSvc *MockServiceInterface, _ *MockLoggerInterface) {
				mockSvc.EXPECT().SetupTenants(gomock.Any(), gomock.Any()).Return(&Result{
					Count:   2,
					Message: "2 empresas configuradas com sucesso.",
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, resp *http.Response) {
				var result Result
				if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if result.Count != 2 {
					t.Errorf("expected count 2, got %d", result.Count)
				}
			},
		},
		{
			name:           "invalid body",
			requestBody:    "not-json",
			setupMocks:     func(*MockServiceInterface, *MockLoggerInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing fields",
			requestBody: &SetupTenantsRequest{
				Email: "owner@example.com",
			},
			setupMocks:     func(*MockServiceInterface, *MockLoggerInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "empty companies",
			requestBody: &SetupTenantsRequest{
				SessionID: "cs_test_123",
				Email:     "owner@example.com",
				Companies: []string{},
			},
			setupMocks:     func(*MockServiceInterface, *MockLoggerInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			requestBody: &SetupTenantsRequest{
				SessionID: "cs_test_123",
				Email:     "owner@example.com",
				Companies: []string{"Acme"},
			},
			setupMocks: func(mockSvc *MockServiceInterface, _ *MockLoggerInterface) {
				mockSvc.EXPECT().SetupTenants(gomock.Any(), gomock.Any()).Return(nil, ErrEmailExists)
			},
			expectedStatus: http.StatusConflict,
			validateResp: func(t *testing.T, resp *http.Response) {
				var result map[string]string
				if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if result["error"] != "EMAIL_EXISTS" {
					t.Errorf("expected EMAIL_EXISTS error code, got %q", result["error"])
				}
			},
		},
		{
			name: "payment not completed",
			requestBody: &SetupTenantsRequest{
				SessionID: "cs_test_123",
				Email:     "owner@example.com",
				Companies: []string{"Acme"},
			},
			setupMocks: func(mockSvc *MockServiceInterface, _ *MockLoggerInterface) {
				mockSvc.EXPECT().SetupTenants(gomock.Any(), gomock.Any()).Return(nil, ErrPaymentNotCompleted)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "service error",
			requestBody: &SetupTenantsRequest{
				SessionID: "cs_test_123",
				Email:     "owner@example.com",
				Companies: []string{"Acme"},
			},
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockSvc.EXPECT().SetupTenants(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			tt.setupMocks(mockService, mockLogger)

			api := NewAPI(mockService, mockTracer, mockMonitor, mockLogger)
			mux := chi.NewMux()
			api.RegisterEndpoints(mux)

			var body bytes.Buffer
			if s, ok := tt.requestBody.(string); ok {
				body.WriteString(s)
			} else if err := json.NewEncoder(&body).Encode(tt.requestBody); err != nil {
				t.Fatalf("failed to encode request: %v", err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/onboarding/setup-tenants", &body)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			resp := rec.Result()
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, resp.StatusCode)
			}
			if tt.validateResp != nil {
				tt.validateResp(t, resp)
			}
		})
	}
}
