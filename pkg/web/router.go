// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

// Package web assembles the HTTP surface of the platform.
package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hellogrowth/platform/internal/db"
	"github.com/hellogrowth/platform/internal/logging"
	"github.com/hellogrowth/platform/internal/monitoring"
	"github.com/hellogrowth/platform/internal/tracing"
	"github.com/hellogrowth/platform/pkg/ai"
	"github.com/hellogrowth/platform/pkg/authentication"
	"github.com/hellogrowth/platform/pkg/authorization"
	"github.com/hellogrowth/platform/pkg/billing"
	"github.com/hellogrowth/platform/pkg/mailbox"
	"github.com/hellogrowth/platform/pkg/metrics"
	"github.com/hellogrowth/platform/pkg/onboarding"
	"github.com/hellogrowth/platform/pkg/status"
	"github.com/hellogrowth/platform/pkg/team"
)

// RouterConfig carries the wired feature services and the cross-cutting
// dependencies the router needs.
type RouterConfig struct {
	Onboarding onboarding.ServiceInterface
	Team       team.ServiceInterface
	Billing    billing.ServiceInterface
	AI         ai.ServiceInterface
	Mailbox    mailbox.ServiceInterface
	Resolver   authorization.ResolverInterface

	AuthMiddleware *authentication.Middleware
	DBClient       db.DBClientInterface
}

func NewRouter(
	c *RouterConfig,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	router.Use(
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
	)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)

	// Provisioning runs outside the transaction middleware on purpose: a
	// failed company must not roll back its siblings.
	onboarding.NewAPI(c.Onboarding, tracer, monitor, logger).RegisterEndpoints(router)

	billing.NewAPI(c.Billing, tracer, monitor, logger).RegisterEndpoints(router)
	ai.NewAPI(c.AI, tracer, monitor, logger).RegisterEndpoints(router)
	mailbox.NewAPI(c.Mailbox, tracer, monitor, logger).RegisterEndpoints(router)
	authorization.NewAPI(c.Resolver, tracer, monitor, logger).RegisterEndpoints(router)

	// Team mutations run inside a request-scoped transaction; provisioning
	// and acceptance stay out so partial success remains possible.
	teamMiddlewares := []func(http.Handler) http.Handler{
		db.TransactionMiddleware(c.DBClient, logger),
	}
	if c.AuthMiddleware != nil {
		teamMiddlewares = append(teamMiddlewares, c.AuthMiddleware.Authenticate())
	}

	teamAPI := team.NewAPI(c.Team, tracer, monitor, logger)
	teamAPI.RegisterEndpoints(router)
	teamAPI.RegisterProtectedEndpoints(router, teamMiddlewares...)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}

func middlewareCORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(
		cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Stripe-Signature"},
			MaxAge:         300,
		},
	)
}
