// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Terminal styles, initialized once per invocation. When stdout is not
// a TTY (pipes, CI), styling is disabled and output stays plain.
var (
	stylePrompt  lipgloss.Style
	styleSpeaker lipgloss.Style
	styleMeta    lipgloss.Style
	styleError   lipgloss.Style
)

func initStyles() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		stylePrompt = lipgloss.NewStyle()
		styleSpeaker = lipgloss.NewStyle()
		styleMeta = lipgloss.NewStyle()
		styleError = lipgloss.NewStyle()
		return
	}

	stylePrompt = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	styleSpeaker = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	styleMeta = lipgloss.NewStyle().Faint(true)
	styleError = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
}
