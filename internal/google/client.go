// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package google

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/hellogrowth/platform/internal/logging"
	"github.com/hellogrowth/platform/internal/monitoring"
	"github.com/hellogrowth/platform/internal/tracing"
)

var scopes = []string{
	gmail.GmailSendScope,
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
}

// Tokens is the OAuth credential set persisted per user.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Email is an outbound message sent through the user's Gmail account.
type Email struct {
	To      string
	Subject string
	Body    string
}

type ClientInterface interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (*Tokens, error)
	UserEmail(ctx context.Context, accessToken string) (string, error)
	Send(ctx context.Context, accessToken string, email *Email) (string, error)
}

type Client struct {
	config *oauth2.Config

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(clientID, clientSecret, redirectURI string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	return &Client{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       scopes,
			Endpoint:     google.Endpoint,
		},
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// AuthURL builds the consent URL. Offline access with forced consent is
// required so Google returns a refresh token on every connect.
func (c *Client) AuthURL(state string) string {
	return c.config.AuthCodeURL(
		state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

func (c *Client) Exchange(ctx context.Context, code string) (*Tokens, error) {
	ctx, span := c.tracer.Start(ctx, "google.Client.Exchange")
	defer span.End()

	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	return fromOauth2Token(token), nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Tokens, error) {
	ctx, span := c.tracer.Start(ctx, "google.Client.Refresh")
	defer span.End()

	source := c.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh access token: %w", err)
	}

	tokens := fromOauth2Token(token)
	if tokens.RefreshToken == "" {
		// Google omits the refresh token on renewal, keep the one we had.
		tokens.RefreshToken = refreshToken
	}

	return tokens, nil
}

func (c *Client) UserEmail(ctx context.Context, accessToken string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "google.Client.UserEmail")
	defer span.End()

	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(staticToken(accessToken)))
	if err != nil {
		return "", fmt.Errorf("failed to create userinfo service: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to fetch user info: %w", err)
	}

	return info.Email, nil
}

// Send delivers the email as the connected account and returns the Gmail
// message id.
func (c *Client) Send(ctx context.Context, accessToken string, email *Email) (string, error) {
	ctx, span := c.tracer.Start(ctx, "google.Client.Send")
	defer span.End()

	svc, err := gmail.NewService(ctx, option.WithTokenSource(staticToken(accessToken)))
	if err != nil {
		return "", fmt.Errorf("failed to create gmail service: %w", err)
	}

	msg := &gmail.Message{Raw: encodeRFC2822(email)}
	sent, err := svc.Users.Messages.Send("me", msg).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return sent.Id, nil
}

// encodeRFC2822 builds a base64url encoded RFC 2822 HTML message, the raw
// format the Gmail API expects.
func encodeRFC2822(email *Email) string {
	subject := fmt.Sprintf("=?utf-8?B?%s?=", base64.StdEncoding.EncodeToString([]byte(email.Subject)))

	message := fmt.Sprintf(
		"To: %s\nContent-Type: text/html; charset=utf-8\nMIME-Version: 1.0\nSubject: %s\n\n%s",
		email.To, subject, email.Body,
	)

	return base64.RawURLEncoding.EncodeToString([]byte(message))
}

func staticToken(accessToken string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
}

func fromOauth2Token(token *oauth2.Token) *Tokens {
	return &Tokens{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
	}
}
