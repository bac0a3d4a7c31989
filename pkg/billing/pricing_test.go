// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package billing

import "testing"

func TestPriceKey(t *testing.T) {
	testCases := []struct {
		plan     string
		addons   Addons
		expected string
	}{
		{"hello_growth", Addons{}, "hello_growth"},
		{"hello_growth", Addons{Game: true}, "hg_game"},
		{"hello_growth", Addons{MPD: true}, "hg_mpd"},
		{"hello_growth", Addons{Game: true, MPD: true}, "hg_game_mpd"},
		{"hello_client", Addons{MPD: true}, "hc_mpd"},
		{"hello_rating", Addons{Game: true}, "hr_game"},
	}

	for _, tc := range testCases {
		if got := priceKey(tc.plan, tc.addons); got != tc.expected {
			t.Errorf("priceKey(%q, %+v) = %q, expected %q", tc.plan, tc.addons, got, tc.expected)
		}
	}
}

func TestPriceFor(t *testing.T) {
	testCases := []struct {
		name      string
		plan      string
		userCount int
		addons    Addons
		expected  int64
		wantErr   bool
	}{
		{name: "single seat base growth", plan: "hello_growth", userCount: 1, expected: 14990},
		{name: "max seats full bundle", plan: "hello_growth", userCount: 10, addons: Addons{Game: true, MPD: true}, expected: 15490},
		{name: "mid tier client with mpd", plan: "hello_client", userCount: 5, addons: Addons{MPD: true}, expected: 10990},
		{name: "seat count out of range", plan: "hello_growth", userCount: 11, wantErr: true},
		{name: "zero seats", plan: "hello_growth", userCount: 0, wantErr: true},
		{name: "unknown plan", plan: "hello_mystery", userCount: 1, wantErr: true},
		{name: "client has no game addon", plan: "hello_client", userCount: 1, addons: Addons{Game: true}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			price, err := priceFor(tc.plan, tc.userCount, tc.addons)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if price != tc.expected {
				t.Errorf("expected %d cents, got %d", tc.expected, price)
			}
		})
	}
}

func TestPricingTableMonotonicPerSeat(t *testing.T) {
	// Per-seat price must never rise as the team grows.
	for seats := 2; seats <= 10; seats++ {
		for key, price := range pricingTable[seats] {
			prev, ok := pricingTable[seats-1][key]
			if !ok {
				t.Fatalf("key %q missing for %d seats", key, seats-1)
			}
			if price > prev {
				t.Errorf("%s: %d seats costs %d, more than %d at %d seats", key, seats, price, prev, seats-1)
			}
		}
	}
}

func TestPlanName(t *testing.T) {
	testCases := []struct {
		plan     string
		addons   Addons
		expected string
	}{
		{"hello_growth", Addons{}, "Hello Growth"},
		{"hello_growth", Addons{Game: true}, "Hello Growth + Game"},
		{"hello_client", Addons{Game: true, MPD: true}, "Hello Client + Game + MPD"},
		{"custom_plan", Addons{}, "custom_plan"},
	}

	for _, tc := range testCases {
		if got := planName(tc.plan, tc.addons); got != tc.expected {
			t.Errorf("planName(%q, %+v) = %q, expected %q", tc.plan, tc.addons, got, tc.expected)
		}
	}
}
