// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/hellogrowth/platform/internal/logging"
	"github.com/hellogrowth/platform/internal/monitoring"
	"github.com/hellogrowth/platform/internal/tracing"
)

const modelName = "gemini-2.0-flash"

// Sentinel errors used by handlers to pick the right status code.
var (
	ErrQuotaExceeded = errors.New("gemini quota exceeded")
	ErrTimeout       = errors.New("gemini request timed out")
)

type ClientInterface interface {
	Complete(ctx context.Context, prompt, systemInstruction string) (string, error)
}

type Client struct {
	client *genai.Client

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(ctx context.Context, apiKey string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{
		client:  client,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}, nil
}

func (c *Client) Complete(ctx context.Context, prompt, systemInstruction string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "gemini.Client.Complete")
	defer span.End()

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.SetTopK(40)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(2048)

	if systemInstruction != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemInstruction)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", c.classifyError(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty completion response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	return sb.String(), nil
}

// classifyError maps upstream failures onto the sentinel errors so callers
// can answer 429 on quota exhaustion and 504 on deadline overruns.
func (c *Client) classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests:
			return ErrQuotaExceeded
		case http.StatusGatewayTimeout:
			return ErrTimeout
		}
	}

	if strings.Contains(err.Error(), "quota") {
		return ErrQuotaExceeded
	}

	return fmt.Errorf("gemini completion failed: %w", err)
}

func (c *Client) Close() error {
	return c.client.Close()
}
