// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package sse

import (
	"errors"
	"testing"
)

func TestDecoder_TokenFrame(t *testing.T) {
	decoder := NewDecoder()

	event, err := decoder.Decode(`{"token":"Hello"}`)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event == nil {
		t.Fatal("expected event, got nil")
	}
	if event.Id == "" {
		t.Error("expected Id to be set")
	}
	if event.CreatedAt == 0 {
		t.Error("expected CreatedAt to be set")
	}
	if event.Type != EventToken {
		t.Errorf("expected Type %v, got %v", EventToken, event.Type)
	}
	if event.Token != "Hello" {
		t.Errorf("expected Token 'Hello', got %q", event.Token)
	}
	if event.IsTerminal() {
		t.Error("token event must not be terminal")
	}
}

func TestDecoder_EmptyToken(t *testing.T) {
	decoder := NewDecoder()

	event, err := decoder.Decode(`{"token":""}`)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event == nil || event.Type != EventToken {
		t.Fatal("expected token event for explicit empty token")
	}
}

func TestDecoder_DoneFrame(t *testing.T) {
	decoder := NewDecoder()

	event, err := decoder.Decode(`{"done":true}`)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Type != EventDone {
		t.Errorf("expected Type %v, got %v", EventDone, event.Type)
	}
	if !event.IsTerminal() {
		t.Error("done event must be terminal")
	}
}

func TestDecoder_DoneFalseIsNotTerminal(t *testing.T) {
	decoder := NewDecoder()

	event, err := decoder.Decode(`{"done":false}`)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event != nil {
		t.Errorf("expected nil event for done:false, got %v", event.Type)
	}
}

func TestDecoder_ErrorFrame(t *testing.T) {
	decoder := NewDecoder()

	event, err := decoder.Decode(`{"error":"model unavailable"}`)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Type != EventError {
		t.Errorf("expected Type %v, got %v", EventError, event.Type)
	}
	if event.Error != "model unavailable" {
		t.Errorf("expected Error 'model unavailable', got %q", event.Error)
	}
	if !event.IsTerminal() {
		t.Error("error event must be terminal")
	}
}

func TestDecoder_OutcomeFrame(t *testing.T) {
	decoder := NewDecoder()

	event, err := decoder.Decode(`{"type":"outcome","data":{"roll":17,"success":true}}`)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Type != EventOutcome {
		t.Errorf("expected Type %v, got %v", EventOutcome, event.Type)
	}
	if event.Outcome["roll"] != float64(17) {
		t.Errorf("expected roll 17, got %v", event.Outcome["roll"])
	}
	if event.IsTerminal() {
		t.Error("outcome event must not be terminal")
	}
}

// Precedence: error over done over token, so terminal signals are never
// missed in favor of a trailing token.
func TestDecoder_Precedence(t *testing.T) {
	decoder := NewDecoder()

	t.Run("error beats token", func(t *testing.T) {
		event, err := decoder.Decode(`{"token":"tail","error":"aborted"}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if event.Type != EventError {
			t.Errorf("expected error event, got %v", event.Type)
		}
	})

	t.Run("error beats done", func(t *testing.T) {
		event, err := decoder.Decode(`{"done":true,"error":"aborted"}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if event.Type != EventError {
			t.Errorf("expected error event, got %v", event.Type)
		}
	})

	t.Run("done beats token", func(t *testing.T) {
		event, err := decoder.Decode(`{"token":"tail","done":true}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if event.Type != EventDone {
			t.Errorf("expected done event, got %v", event.Type)
		}
	})

	t.Run("all three yields error", func(t *testing.T) {
		event, err := decoder.Decode(`{"token":"tail","done":true,"error":"aborted"}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if event.Type != EventError {
			t.Errorf("expected error event, got %v", event.Type)
		}
	})
}

func TestDecoder_MalformedPayload(t *testing.T) {
	decoder := NewDecoder()

	event, err := decoder.Decode(`{"token": "unterminated`)

	if event != nil {
		t.Errorf("expected nil event, got %v", event)
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %T: %v", err, err)
	}
	if decodeErr.Payload != `{"token": "unterminated` {
		t.Errorf("expected payload to be preserved, got %q", decodeErr.Payload)
	}
}

func TestDecoder_UnrecognizedPayloadSkipped(t *testing.T) {
	decoder := NewDecoder()

	event, err := decoder.Decode(`{"type":"heartbeat","ts":123}`)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event != nil {
		t.Errorf("expected nil event for unrecognized payload, got %v", event.Type)
	}
}
