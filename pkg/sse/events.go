// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package sse decodes Server-Sent Event streams produced by the Gaia API.
//
// The package is split into two layers, each with a single responsibility:
//
//   - FrameScanner reassembles raw bytes into complete frame payloads
//     (everything between blank-line delimiters). It performs I/O but
//     never interprets payload contents.
//   - Decoder classifies a frame's JSON payload into a StreamEvent.
//     It never performs I/O.
//
// Session-level concerns (state transitions, accumulation, cancellation)
// live in pkg/gaia, which composes both layers.
package sse

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of a decoded stream event.
type EventType string

const (
	// EventToken carries an incremental fragment of the response text.
	EventToken EventType = "token"

	// EventOutcome carries structured roleplay outcome data. Persona
	// streams emit it once, before the first token. Not terminal.
	EventOutcome EventType = "outcome"

	// EventDone signals normal stream completion. Terminal.
	EventDone EventType = "done"

	// EventError signals the stream was aborted by the server. Terminal.
	EventError EventType = "error"
)

// StreamEvent is a single decoded event from a Gaia SSE stream.
//
// Exactly one of Token, Outcome, or Error is meaningful, selected by
// Type. Id and CreatedAt are assigned at decode time; Index is assigned
// by the consuming session in arrival order.
type StreamEvent struct {
	Id        string         `json:"id"`
	CreatedAt int64          `json:"created_at"` // Unix ms
	Index     int            `json:"index"`
	Type      EventType      `json:"type"`
	Token     string         `json:"token,omitempty"`
	Outcome   map[string]any `json:"outcome,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// IsTerminal reports whether no further events can follow this one.
func (e *StreamEvent) IsTerminal() bool {
	return e.Type == EventDone || e.Type == EventError
}

// newEvent creates an event with fresh Id and CreatedAt.
func newEvent(t EventType) *StreamEvent {
	return &StreamEvent{
		Id:        uuid.New().String(),
		CreatedAt: time.Now().UnixMilli(),
		Type:      t,
	}
}

// SynthesizeDone creates a done event that did not come off the wire.
// Consumers use it to close out streams that dropped after producing
// usable content.
func SynthesizeDone() *StreamEvent {
	return newEvent(EventDone)
}

// SynthesizeError creates an error event that did not come off the
// wire, carrying a locally generated message.
func SynthesizeError(message string) *StreamEvent {
	event := newEvent(EventError)
	event.Error = message
	return event
}
