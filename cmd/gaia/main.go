// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package main is the gaia CLI, a terminal client for the Gaia
// conversational API.
//
// Architecture:
//
//	cmd_*.go → Client (pkg/gaia) → HTTP/SSE → Gaia server
//	              ↓
//	    StreamingChatSession → terminal rendering (styles.go)
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
