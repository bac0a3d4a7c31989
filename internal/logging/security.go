// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
)

// SecurityLogger emits audit events in a fixed shape so they can be
// filtered out of the regular application stream.
type SecurityLogger struct {
	l *zap.Logger
}

func NewSecurityLogger(l *zap.Logger) *SecurityLogger {
	return &SecurityLogger{l: l}
}

func (s *SecurityLogger) event(name string, fields ...zap.Field) {
	fields = append([]zap.Field{zap.String("event", name)}, fields...)
	s.l.Info("security", fields...)
}

func (s *SecurityLogger) SystemStartup() {
	s.event("system_startup")
}

func (s *SecurityLogger) SystemShutdown() {
	s.event("system_shutdown")
}

func (s *SecurityLogger) AuthnSuccess(subject string) {
	s.event("authn_success", zap.String("subject", subject))
}

func (s *SecurityLogger) AuthnFailure(subject string) {
	s.event("authn_failure", zap.String("subject", subject))
}

func (s *SecurityLogger) AuthzFailure(subject, action string) {
	s.event("authz_failure", zap.String("subject", subject), zap.String("action", action))
}
