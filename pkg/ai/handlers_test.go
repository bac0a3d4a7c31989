// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/hellogrowth/platform/internal/gemini"
)

//go:generate mockgen -build_flags=--mod=mod -package ai -destination ./mock_ai.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package ai -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package ai -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package ai -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func TestAPI_Generate(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		setupMocks     func(*MockServiceInterface, *MockLoggerInterface)
		expectedStatus int
	}{
		{
			name: "success",
			body: &GenerateRequest{Prompt: "summarize my NPS feedback", SystemInstruction: "be concise"},
			setupMocks: func(mockSvc *MockServiceInterface, _ *MockLoggerInterface) {
				mockSvc.EXPECT().Generate(gomock.Any(), "summarize my NPS feedback", "be concise").
					Return("Customers are happy.", nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing prompt",
			body:           &GenerateRequest{SystemInstruction: "be concise"},
			setupMocks:     func(*MockServiceInterface, *MockLoggerInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "quota exceeded",
			body: &GenerateRequest{Prompt: "hello"},
			setupMocks: func(mockSvc *MockServiceInterface, _ *MockLoggerInterface) {
				mockSvc.EXPECT().Generate(gomock.Any(), "hello", "").Return("", gemini.ErrQuotaExceeded)
			},
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			name: "timeout",
			body: &GenerateRequest{Prompt: "hello"},
			setupMocks: func(mockSvc *MockServiceInterface, _ *MockLoggerInterface) {
				mockSvc.EXPECT().Generate(gomock.Any(), "hello", "").Return("", gemini.ErrTimeout)
			},
			expectedStatus: http.StatusGatewayTimeout,
		},
		{
			name: "model failure",
			body: &GenerateRequest{Prompt: "hello"},
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockSvc.EXPECT().Generate(gomock.Any(), "hello", "").Return("", errors.New("model unavailable"))
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
			mockLogger := NewMockLoggerInterface(ctrl)
			tt.setupMocks(mockService, mockLogger)

			api := NewAPI(mockService, NewMockTracingInterface(ctrl), NewMockMonitorInterface(ctrl), mockLogger)
			mux := chi.NewMux()
			api.RegisterEndpoints(mux)

			var body bytes.Buffer
			if err := json.NewEncoder(&body).Encode(tt.body); err != nil {
				t.Fatalf("failed to encode request: %v", err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/ai/generate", &body)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

func TestService_Generate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockModel := NewMockModelInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().Start(gomock.Any(), "ai.Service.Generate").Return(context.Background(), trace.SpanFromContext(context.Background())).AnyTimes()

	s := NewService(mockModel, mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))

	mockModel.EXPECT().Complete(gomock.Any(), "prompt", "system").Return("text", nil)
	text, err := s.Generate(context.Background(), "prompt", "system")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "text" {
		t.Errorf("unexpected response %q", text)
	}

	mockModel.EXPECT().Complete(gomock.Any(), "prompt", "").Return("", gemini.ErrQuotaExceeded)
	if _, err := s.Generate(context.Background(), "prompt", ""); !errors.Is(err, gemini.ErrQuotaExceeded) {
		t.Fatalf("expected quota error to pass through, got %v", err)
	}
}
