// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package sse

import (
	"encoding/json"
	"fmt"
)

// DecodeError reports a frame payload that could not be parsed.
//
// The session layer treats a DecodeError as recoverable: the frame is
// skipped and the stream continues, up to a bounded count per session.
type DecodeError struct {
	Payload string
	Err     error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode stream frame: %v", e.Err)
}

// Unwrap returns the underlying parse error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decoder classifies frame payloads into StreamEvents.
//
// The Gaia streaming endpoints emit JSON payloads with optional
// indicator fields:
//
//	{"token":"Hel"}                         incremental content
//	{"done":true}                           normal completion
//	{"error":"model unavailable"}           stream aborted
//	{"type":"outcome","data":{...}}         persona roleplay outcome
//
// When a payload carries more than one indicator, classification
// follows a strict precedence: error over done over token. The server
// convention is that terminal signals must never be missed in favor of
// a trailing token.
//
// The decoder is stateless and safe for concurrent use.
type Decoder struct{}

// NewDecoder creates a Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode parses a frame payload into a StreamEvent.
//
// Returns (nil, nil) for payloads that parse as JSON but carry no
// recognized indicator; callers should skip these for forward
// compatibility. Returns a *DecodeError when the payload is not valid
// JSON.
func (d *Decoder) Decode(payload string) (*StreamEvent, error) {
	var raw struct {
		Type  string         `json:"type"`
		Token *string        `json:"token"`
		Done  *bool          `json:"done"`
		Error *string        `json:"error"`
		Data  map[string]any `json:"data"`
	}

	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, &DecodeError{Payload: payload, Err: err}
	}

	switch {
	case raw.Error != nil:
		event := newEvent(EventError)
		event.Error = *raw.Error
		return event, nil

	case raw.Done != nil && *raw.Done:
		return newEvent(EventDone), nil

	case raw.Token != nil:
		event := newEvent(EventToken)
		event.Token = *raw.Token
		return event, nil

	case raw.Type == string(EventOutcome):
		event := newEvent(EventOutcome)
		event.Outcome = raw.Data
		return event, nil
	}

	return nil, nil
}
