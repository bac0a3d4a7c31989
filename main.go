// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package main

import "github.com/hellogrowth/platform/cmd"

func main() {
	cmd.Execute()
}
