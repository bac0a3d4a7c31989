// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/hellogrowth/platform/internal/logging"
	"github.com/hellogrowth/platform/internal/monitoring"
	"github.com/hellogrowth/platform/internal/tracing"
	"github.com/hellogrowth/platform/internal/web"
)

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
	mux.Post("/api/onboarding/setup-tenants", a.setupTenants)
}

func (a *API) setupTenants(w http.ResponseWriter, r *http.Request) {
	req := new(SetupTenantsRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := a.validate.Struct(req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	result, err := a.service.SetupTenants(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailExists):
			web.WriteError(w, http.StatusConflict, "EMAIL_EXISTS")
		case errors.Is(err, ErrPaymentNotCompleted):
			web.WriteError(w, http.StatusBadRequest, "Payment not completed")
		default:
			a.logger.Errorf("setup tenants failed: %v", err)
			web.WriteError(w, http.StatusInternalServerError, "Failed to set up account")
		}
		return
	}

	web.WriteJSON(w, http.StatusCreated, result)
}
