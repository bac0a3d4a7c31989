// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/hellogrowth/platform/internal/logging"
	"github.com/hellogrowth/platform/internal/monitoring"
	"github.com/hellogrowth/platform/internal/tracing"
	"github.com/hellogrowth/platform/internal/web"
)

// Stripe caps event payloads at 64KB; anything larger is not a real webhook.
const maxWebhookBody = 65536

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
	mux.Post("/api/stripe/create-checkout-session", a.createCheckoutSession)
	mux.Get("/api/stripe/verify-session", a.verifySession)
	mux.Post("/api/stripe/webhook", a.webhook)
}

func (a *API) createCheckoutSession(w http.ResponseWriter, r *http.Request) {
	req := new(CheckoutRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := a.validate.Struct(req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "User count must be between 1 and 10")
		return
	}

	resp, err := a.service.CreateCheckoutSession(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidPricing) {
			web.WriteError(w, http.StatusBadRequest, "Invalid price configuration")
			return
		}
		a.logger.Errorf("create checkout session failed: %v", err)
		web.WriteError(w, http.StatusInternalServerError, "Failed to create checkout session")
		return
	}

	web.WriteJSON(w, http.StatusOK, resp)
}

func (a *API) verifySession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		web.WriteError(w, http.StatusBadRequest, "Missing session_id parameter")
		return
	}

	status, err := a.service.VerifySession(r.Context(), sessionID)
	if err != nil {
		a.logger.Errorf("verify session failed: %v", err)
		web.WriteError(w, http.StatusInternalServerError, "Failed to verify session")
		return
	}

	web.WriteJSON(w, http.StatusOK, status)
}

func (a *API) webhook(w http.ResponseWriter, r *http.Request) {
	signature := r.Header.Get("Stripe-Signature")
	if signature == "" {
		web.WriteError(w, http.StatusBadRequest, "Missing stripe-signature header")
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := a.service.HandleWebhookEvent(r.Context(), payload, signature); err != nil {
		if errors.Is(err, ErrInvalidSignature) {
			web.WriteError(w, http.StatusBadRequest, "Invalid signature")
			return
		}
		a.logger.Errorf("webhook handling failed: %v", err)
		web.WriteError(w, http.StatusInternalServerError, "Failed to process event")
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]bool{"received": true})
}
