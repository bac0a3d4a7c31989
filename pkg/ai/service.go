// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

// Package ai exposes the text-generation endpoint backing the in-app
// assistants.
package ai

import (
	"context"
	"fmt"

	"github.com/hellogrowth/platform/internal/logging"
	"github.com/hellogrowth/platform/internal/monitoring"
	"github.com/hellogrowth/platform/internal/tracing"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	model ModelInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(model ModelInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	return &Service{
		model:   model,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (s *Service) Generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "ai.Service.Generate")
	defer span.End()

	text, err := s.model.Complete(ctx, prompt, systemInstruction)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	return text, nil
}
