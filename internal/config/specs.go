// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	// BaseURL is the public address links (invites, checkout redirects) are
	// built against.
	BaseURL string `envconfig:"base_url" default:"https://hellogrowth.online"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	InvitationLifetime time.Duration `envconfig:"invitation_lifetime" default:"168h"`

	StripeSecretKey     string `envconfig:"stripe_secret_key" required:"true"`
	StripeWebhookSecret string `envconfig:"stripe_webhook_secret"`

	GeminiAPIKey string `envconfig:"gemini_api_key"`

	GoogleClientID     string `envconfig:"google_client_id"`
	GoogleClientSecret string `envconfig:"google_client_secret"`
	GoogleRedirectURI  string `envconfig:"google_redirect_uri"`

	ResendAPIKey    string `envconfig:"resend_api_key"`
	InviteFromEmail string `envconfig:"invite_from_email" default:"HelloGrowth <convites@hellogrowth.online>"`

	AuthenticationEnabled bool     `envconfig:"authentication_enabled" default:"false"`
	OIDCIssuer            string   `envconfig:"oidc_issuer"`
	JWKSURL               string   `envconfig:"jwks_url"`
	AllowedSubjects       []string `envconfig:"allowed_subjects"`
	RequiredScope         string   `envconfig:"required_scope"`
}
