// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/hellogrowth/platform/internal/config"
	"github.com/hellogrowth/platform/internal/db"
	"github.com/hellogrowth/platform/internal/gemini"
	"github.com/hellogrowth/platform/internal/google"
	"github.com/hellogrowth/platform/internal/logging"
	"github.com/hellogrowth/platform/internal/mail"
	"github.com/hellogrowth/platform/internal/monitoring/prometheus"
	"github.com/hellogrowth/platform/internal/storage"
	"github.com/hellogrowth/platform/internal/stripe"
	"github.com/hellogrowth/platform/internal/tracing"
	"github.com/hellogrowth/platform/pkg/ai"
	"github.com/hellogrowth/platform/pkg/authentication"
	"github.com/hellogrowth/platform/pkg/authorization"
	"github.com/hellogrowth/platform/pkg/billing"
	"github.com/hellogrowth/platform/pkg/mailbox"
	"github.com/hellogrowth/platform/pkg/onboarding"
	"github.com/hellogrowth/platform/pkg/team"
	"github.com/hellogrowth/platform/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("platform", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	stripeClient := stripe.NewClient(specs.StripeSecretKey, specs.StripeWebhookSecret, tracer, monitor, logger)
	billingService := billing.NewService(stripeClient, s, specs.BaseURL, tracer, monitor, logger)
	onboardingService := onboarding.NewService(s, billingService, tracer, monitor, logger)

	mailer := mail.NewClient(specs.ResendAPIKey, specs.InviteFromEmail, tracer, monitor, logger)
	teamService := team.NewService(s, mailer, specs.BaseURL, specs.InvitationLifetime, tracer, monitor, logger)

	resolver := authorization.NewResolver(s, tracer, monitor, logger)

	geminiClient, err := gemini.NewClient(context.Background(), specs.GeminiAPIKey, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create gemini client: %v", err)
	}
	defer geminiClient.Close()
	aiService := ai.NewService(geminiClient, tracer, monitor, logger)

	googleClient := google.NewClient(specs.GoogleClientID, specs.GoogleClientSecret, specs.GoogleRedirectURI, tracer, monitor, logger)
	mailboxService := mailbox.NewService(s, googleClient, tracer, monitor, logger)

	var authMiddleware *authentication.Middleware
	if specs.AuthenticationEnabled {
		verifier, err := authentication.NewJWTAuthenticator(
			context.Background(),
			specs.OIDCIssuer,
			specs.JWKSURL,
			specs.AllowedSubjects,
			specs.RequiredScope,
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return fmt.Errorf("failed to set up authentication: %v", err)
		}
		authMiddleware = authentication.NewMiddleware(verifier, tracer, monitor, logger)
		logger.Info("Authentication is enabled")
	} else {
		logger.Info("Authentication is disabled, mutating team routes are open")
	}

	router := web.NewRouter(
		&web.RouterConfig{
			Onboarding:     onboardingService,
			Team:           teamService,
			Billing:        billingService,
			AI:             aiService,
			Mailbox:        mailboxService,
			Resolver:       resolver,
			AuthMiddleware: authMiddleware,
			DBClient:       dbClient,
		},
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}
