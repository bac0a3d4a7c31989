// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hellogrowth/platform/internal/logging"
	"github.com/hellogrowth/platform/internal/monitoring"
	"github.com/hellogrowth/platform/internal/tracing"
	"github.com/hellogrowth/platform/internal/web"
)

// AccessResponse is the frontend-facing shape of a resolved Access.
type AccessResponse struct {
	Role        string   `json:"role"`
	IsOwner     bool     `json:"isOwner"`
	OwnerID     string   `json:"ownerId"`
	Permissions []string `json:"permissions"`
}

type API struct {
	resolver ResolverInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(resolver ResolverInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		resolver: resolver,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/auth/permissions", a.permissions)
}

func (a *API) permissions(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	email := r.URL.Query().Get("email")
	if userID == "" || email == "" {
		web.WriteError(w, http.StatusBadRequest, "userId and email are required")
		return
	}

	access, err := a.resolver.Resolve(r.Context(), userID, email)
	if err != nil {
		a.logger.Errorf("permission resolution failed: %v", err)
		web.WriteError(w, http.StatusInternalServerError, "Failed to resolve permissions")
		return
	}

	web.WriteJSON(w, http.StatusOK, &AccessResponse{
		Role:        access.Role,
		IsOwner:     access.IsOwner,
		OwnerID:     access.OwnerID,
		Permissions: access.Permissions(),
	})
}
