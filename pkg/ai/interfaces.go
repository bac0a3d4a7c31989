// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package ai

import "context"

type ServiceInterface interface {
	Generate(ctx context.Context, prompt, systemInstruction string) (string, error)
}

// ModelInterface is the language-model boundary.
type ModelInterface interface {
	Complete(ctx context.Context, prompt, systemInstruction string) (string, error)
}
