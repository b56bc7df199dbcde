// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package gaia

import (
	"errors"
	"fmt"
)

// ErrSessionCanceled is returned by StreamingChatSession.Recv after the
// session has been canceled locally. Use errors.Is to detect it.
var ErrSessionCanceled = errors.New("gaia: session canceled")

// ConnectionError indicates the API could not be reached or refused the
// connection before any response body was obtained. It also covers
// non-2xx responses when opening a stream, since no event stream exists
// in that case.
type ConnectionError struct {
	// Endpoint is the path of the failed request, e.g. "/llm/stream".
	Endpoint string

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// Err is the underlying transport error, if any.
	Err error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gaia: connect to %s: status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("gaia: connect to %s: %v", e.Endpoint, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// RequestError indicates the API answered a non-streaming request with a
// non-2xx status. Message carries the server's explanation when the body
// followed the API's error envelope.
type RequestError struct {
	Endpoint   string
	StatusCode int

	// Message is the server-provided reason, or "" when the body did not
	// carry one.
	Message string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gaia: %s returned %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gaia: %s returned %d", e.Endpoint, e.StatusCode)
}

// ResponseShapeError indicates a 2xx response whose body did not match
// the documented shape for the endpoint.
type ResponseShapeError struct {
	Endpoint string
	Err      error
}

// Error implements the error interface.
func (e *ResponseShapeError) Error() string {
	return fmt.Sprintf("gaia: unexpected response from %s: %v", e.Endpoint, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *ResponseShapeError) Unwrap() error {
	return e.Err
}

// StreamCorruptedError indicates a stream produced too many
// undecodable frames over its lifetime and the session gave up on it.
type StreamCorruptedError struct {
	// MalformedCount is the number of malformed frames seen.
	MalformedCount int

	// LastErr is the decode failure that tripped the threshold.
	LastErr error
}

// Error implements the error interface.
func (e *StreamCorruptedError) Error() string {
	return fmt.Sprintf("gaia: stream corrupted after %d malformed frames: %v",
		e.MalformedCount, e.LastErr)
}

// Unwrap returns the decode failure that tripped the threshold.
func (e *StreamCorruptedError) Unwrap() error {
	return e.LastErr
}
