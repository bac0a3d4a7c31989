// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"fmt"
	"strings"
)

// Addons are the optional product modules sold on top of a base plan.
type Addons struct {
	Game bool `json:"game"`
	MPD  bool `json:"mpd"`
}

// Monthly per-user prices in BRL cents, keyed by seat count (1..10) and price
// key. Mirrors the published pricing table, larger teams pay less per seat.
var pricingTable = map[int]map[string]int64{
	1: {
		"hello_client": 9990, "hello_rating": 9990, "hello_growth": 14990,
		"hc_mpd": 12990, "hr_game": 12990, "hr_mpd": 12990, "hr_game_mpd": 14990,
		"hg_game": 18990, "hg_mpd": 18990, "hg_game_mpd": 19990,
	},
	2: {
		"hello_client": 9490, "hello_rating": 9490, "hello_growth": 14490,
		"hc_mpd": 12490, "hr_game": 12490, "hr_mpd": 12490, "hr_game_mpd": 14490,
		"hg_game": 18490, "hg_mpd": 18490, "hg_game_mpd": 19490,
	},
	3: {
		"hello_client": 8990, "hello_rating": 8990, "hello_growth": 13990,
		"hc_mpd": 11990, "hr_game": 11990, "hr_mpd": 11990, "hr_game_mpd": 13990,
		"hg_game": 17990, "hg_mpd": 17990, "hg_game_mpd": 18990,
	},
	4: {
		"hello_client": 8490, "hello_rating": 8490, "hello_growth": 13490,
		"hc_mpd": 11490, "hr_game": 11490, "hr_mpd": 11490, "hr_game_mpd": 13490,
		"hg_game": 17490, "hg_mpd": 17490, "hg_game_mpd": 18490,
	},
	5: {
		"hello_client": 7990, "hello_rating": 7990, "hello_growth": 12990,
		"hc_mpd": 10990, "hr_game": 10990, "hr_mpd": 10990, "hr_game_mpd": 12990,
		"hg_game": 16990, "hg_mpd": 16990, "hg_game_mpd": 17990,
	},
	6: {
		"hello_client": 7490, "hello_rating": 7490, "hello_growth": 12490,
		"hc_mpd": 10490, "hr_game": 10490, "hr_mpd": 10490, "hr_game_mpd": 12490,
		"hg_game": 16490, "hg_mpd": 16490, "hg_game_mpd": 17490,
	},
	7: {
		"hello_client": 6990, "hello_rating": 6990, "hello_growth": 11990,
		"hc_mpd": 9990, "hr_game": 9990, "hr_mpd": 9990, "hr_game_mpd": 11990,
		"hg_game": 15990, "hg_mpd": 15990, "hg_game_mpd": 16990,
	},
	8: {
		"hello_client": 6490, "hello_rating": 6490, "hello_growth": 11490,
		"hc_mpd": 9490, "hr_game": 9490, "hr_mpd": 9490, "hr_game_mpd": 11490,
		"hg_game": 15490, "hg_mpd": 15490, "hg_game_mpd": 16490,
	},
	9: {
		"hello_client": 5990, "hello_rating": 5990, "hello_growth": 10990,
		"hc_mpd": 8990, "hr_game": 8990, "hr_mpd": 8990, "hr_game_mpd": 10990,
		"hg_game": 14990, "hg_mpd": 14990, "hg_game_mpd": 15990,
	},
	10: {
		"hello_client": 5490, "hello_rating": 5490, "hello_growth": 10490,
		"hc_mpd": 8490, "hr_game": 8490, "hr_mpd": 8490, "hr_game_mpd": 10490,
		"hg_game": 14490, "hg_mpd": 14490, "hg_game_mpd": 15490,
	},
}

// priceKey derives the pricing table column. Plans without addons price under
// their full code; with addons the abbreviated plan code (hc, hr, hg) is
// combined with the addon suffix.
func priceKey(plan string, addons Addons) string {
	code := plan
	if rest := strings.TrimPrefix(plan, "hello_"); rest != "" && rest != plan {
		code = "h" + rest[:1]
	}

	switch {
	case addons.Game && addons.MPD:
		return code + "_game_mpd"
	case addons.Game:
		return code + "_game"
	case addons.MPD:
		return code + "_mpd"
	default:
		return plan
	}
}

// priceFor resolves the monthly price in BRL cents for the given combination.
func priceFor(plan string, userCount int, addons Addons) (int64, error) {
	column, ok := pricingTable[userCount]
	if !ok {
		return 0, fmt.Errorf("no pricing for %d users", userCount)
	}

	price, ok := column[priceKey(plan, addons)]
	if !ok {
		return 0, fmt.Errorf("no pricing for plan %q", plan)
	}

	return price, nil
}

var planDisplayNames = map[string]string{
	"hello_client": "Hello Client",
	"hello_rating": "Hello Rating",
	"hello_growth": "Hello Growth",
}

// planName builds the customer-facing product name, addons appended.
func planName(plan string, addons Addons) string {
	name, ok := planDisplayNames[plan]
	if !ok {
		name = plan
	}

	var suffixes []string
	if addons.Game {
		suffixes = append(suffixes, "Game")
	}
	if addons.MPD {
		suffixes = append(suffixes, "MPD")
	}

	if len(suffixes) > 0 {
		name += " + " + strings.Join(suffixes, " + ")
	}

	return name
}
