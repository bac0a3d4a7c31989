// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package mail

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/hellogrowth/platform/internal/logging"
	"github.com/hellogrowth/platform/internal/monitoring"
	"github.com/hellogrowth/platform/internal/tracing"
)

const resendBaseURL = "https://api.resend.com"

// InviteEmail carries everything the invitation template needs.
type InviteEmail struct {
	To          string
	Name        string
	InviterName string
	Role        string
	InviteLink  string
}

type ClientInterface interface {
	SendInvite(ctx context.Context, email *InviteEmail) error
}

type Client struct {
	http *resty.Client
	from string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(apiKey, from string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	http := resty.New().
		SetBaseURL(resendBaseURL).
		SetAuthToken(apiKey)

	return &Client{
		http:    http,
		from:    from,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

var roleLabels = map[string]string{
	"manager": "Gerente",
	"member":  "Membro",
	"viewer":  "Visualizador",
}

func (c *Client) SendInvite(ctx context.Context, email *InviteEmail) error {
	ctx, span := c.tracer.Start(ctx, "mail.Client.SendInvite")
	defer span.End()

	roleLabel := email.Role
	if label, ok := roleLabels[email.Role]; ok {
		roleLabel = label
	}

	body := fmt.Sprintf(
		`<p>Olá <strong>%s</strong>,</p>
<p><strong>%s</strong> convidou você para fazer parte da equipe no <strong>HelloGrowth</strong> como <strong>%s</strong>.</p>
<p><a href="%s">Aceitar convite</a></p>
<p>Este convite expira em 7 dias.</p>`,
		email.Name, email.InviterName, roleLabel, email.InviteLink,
	)

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"from":    c.from,
			"to":      []string{email.To},
			"subject": "Você foi convidado para o HelloGrowth",
			"html":    body,
		}).
		Post("/emails")

	if err != nil {
		return fmt.Errorf("failed to call resend: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("resend returned %s: %s", resp.Status(), resp.String())
	}

	return nil
}
