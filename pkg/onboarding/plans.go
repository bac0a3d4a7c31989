// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import (
	"github.com/hellogrowth/platform/internal/types"
)

// planCodes maps checkout plan codes onto internal plan tiers.
var planCodes = map[string]string{
	"hello_client": types.PlanClient,
	"hello_rating": types.PlanRating,
	"hello_growth": types.PlanGrowth,
}

var internalPlans = map[string]struct{}{
	types.PlanTrial:          {},
	types.PlanClient:         {},
	types.PlanRating:         {},
	types.PlanGrowth:         {},
	types.PlanGrowthLifetime: {},
}

// mapPlan resolves the internal plan for a checkout plan code. Codes that
// already name an internal plan pass through; anything unrecognized lands on
// the lowest tier. An absent code keeps the historical hello_growth default.
func mapPlan(code string) string {
	if code == "" {
		code = "hello_growth"
	}

	if plan, ok := planCodes[code]; ok {
		return plan
	}

	if _, ok := internalPlans[code]; ok {
		return code
	}

	return types.PlanTrial
}
