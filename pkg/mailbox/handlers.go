// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package mailbox

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/hellogrowth/platform/internal/google"
	"github.com/hellogrowth/platform/internal/logging"
	"github.com/hellogrowth/platform/internal/monitoring"
	"github.com/hellogrowth/platform/internal/tracing"
	"github.com/hellogrowth/platform/internal/web"
)

type SendRequest struct {
	UserID  string `json:"userId" validate:"required"`
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

type SendResponse struct {
	MessageID string `json:"messageId"`
}

type DisconnectRequest struct {
	UserID string `json:"userId" validate:"required"`
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
	mux.Get("/api/gmail/auth", a.auth)
	mux.Get("/api/gmail/callback", a.callback)
	mux.Get("/api/gmail/status", a.status)
	mux.Post("/api/gmail/send", a.send)
	mux.Post("/api/gmail/disconnect", a.disconnect)
}

func (a *API) auth(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		web.WriteError(w, http.StatusBadRequest, "userId is required")
		return
	}

	url, err := a.service.AuthURL(r.Context(), userID)
	if err != nil {
		a.logger.Errorf("auth url generation failed: %v", err)
		web.WriteError(w, http.StatusInternalServerError, "Failed to start authorization")
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (a *API) callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" || state == "" {
		web.WriteError(w, http.StatusBadRequest, "code and state are required")
		return
	}

	conn, err := a.service.CompleteAuth(r.Context(), code, state)
	if err != nil {
		a.logger.Errorf("gmail authorization failed: %v", err)
		web.WriteError(w, http.StatusInternalServerError, "Failed to complete authorization")
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "connected",
		"email":  conn.Email,
	})
}

func (a *API) status(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		web.WriteError(w, http.StatusBadRequest, "userId is required")
		return
	}

	status, err := a.service.Status(r.Context(), userID)
	if err != nil {
		a.logger.Errorf("gmail status lookup failed: %v", err)
		web.WriteError(w, http.StatusInternalServerError, "Failed to check connection")
		return
	}

	web.WriteJSON(w, http.StatusOK, status)
}

func (a *API) send(w http.ResponseWriter, r *http.Request) {
	req := new(SendRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := a.validate.Struct(req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	messageID, err := a.service.Send(r.Context(), req.UserID, &google.Email{
		To:      req.To,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotConnected):
			web.WriteError(w, http.StatusNotFound, "Gmail account not connected")
		case errors.Is(err, ErrAuthExpired):
			web.WriteError(w, http.StatusUnauthorized, "Gmail authorization expired, reconnect the account")
		default:
			a.logger.Errorf("gmail send failed: %v", err)
			web.WriteError(w, http.StatusInternalServerError, "Failed to send email")
		}
		return
	}

	web.WriteJSON(w, http.StatusOK, &SendResponse{MessageID: messageID})
}

func (a *API) disconnect(w http.ResponseWriter, r *http.Request) {
	req := new(DisconnectRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := a.validate.Struct(req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if err := a.service.Disconnect(r.Context(), req.UserID); err != nil {
		a.logger.Errorf("gmail disconnect failed: %v", err)
		web.WriteError(w, http.StatusInternalServerError, "Failed to disconnect")
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
