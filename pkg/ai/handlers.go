// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package ai

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/hellogrowth/platform/internal/gemini"
	"github.com/hellogrowth/platform/internal/logging"
	"github.com/hellogrowth/platform/internal/monitoring"
	"github.com/hellogrowth/platform/internal/tracing"
	"github.com/hellogrowth/platform/internal/web"
)

type GenerateRequest struct {
	Prompt            string `json:"prompt" validate:"required"`
	SystemInstruction string `json:"systemInstruction"`
}

type GenerateResponse struct {
	Response string `json:"response"`
}

type API struct {
	service  ServiceInterface
	validate *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Post("/api/ai/generate", a.generate)
}

func (a *API) generate(w http.ResponseWriter, r *http.Request) {
	req := new(GenerateRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := a.validate.Struct(req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	text, err := a.service.Generate(r.Context(), req.Prompt, req.SystemInstruction)
	if err != nil {
		switch {
		case errors.Is(err, gemini.ErrQuotaExceeded):
			web.WriteError(w, http.StatusTooManyRequests, "AI quota exceeded, try again later")
		case errors.Is(err, gemini.ErrTimeout):
			web.WriteError(w, http.StatusGatewayTimeout, "AI request timed out")
		default:
			a.logger.Errorf("text generation failed: %v", err)
			web.WriteError(w, http.StatusInternalServerError, "Failed to generate text")
		}
		return
	}

	web.WriteJSON(w, http.StatusOK, &GenerateResponse{Response: text})
}
