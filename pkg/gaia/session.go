// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package gaia

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/AleutianAI/gaia-go/pkg/logging"
	"github.com/AleutianAI/gaia-go/pkg/sse"
)

// SessionState is the lifecycle state of a StreamingChatSession.
type SessionState int

const (
	// StateIdle means the stream is open but no event has been read.
	StateIdle SessionState = iota

	// StateStreaming means at least one Recv has been issued and no
	// terminal event has arrived.
	StateStreaming

	// StateCompleted means the stream ended with a done event.
	StateCompleted

	// StateFailed means the stream ended with an error event, was
	// corrupted, or was canceled.
	StateFailed
)

// String returns the human-readable name of the state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStreaming:
		return "streaming"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// maxMalformedFrames is the number of undecodable frames tolerated
// before a session declares the stream corrupted.
const maxMalformedFrames = 5

// StreamingChatSession consumes one server-sent event stream from a
// Gaia streaming endpoint.
//
// # Description
//
// The session pulls frames off the wire lazily: each Recv call reads
// exactly as far as the next decodable event. Token text accumulates
// internally so callers can render incrementally and still obtain the
// full reply at the end.
//
// Lifecycle: a session starts Idle, moves to Streaming on the first
// Recv, and ends Completed (done event) or Failed (error event,
// corruption, or cancellation). Terminal states are absorbing; a done
// or error frame arriving after the first terminal event is never
// surfaced.
//
// Degraded streams are handled without losing data already received:
//
//   - Malformed frames are skipped, up to maxMalformedFrames per
//     session; past that, Recv returns a *StreamCorruptedError.
//   - A connection that drops after producing tokens yields a
//     synthesized done event, so partial replies remain usable.
//   - A connection that drops before producing anything yields a
//     synthesized error event.
//
// # Thread Safety
//
// Recv and Consume must be called from a single goroutine. Cancel,
// AccumulatedText, Outcome, and State may be called from any
// goroutine.
type StreamingChatSession struct {
	scanner *sse.FrameScanner
	decoder *sse.Decoder
	body    io.ReadCloser
	logger  *logging.Logger

	canceled  atomic.Bool
	closeOnce sync.Once

	// onDone, when set, runs once after a successful completion with
	// the accumulated text. Used to commit conversation history.
	onDone func(text string)

	mu        sync.Mutex
	state     SessionState
	text      strings.Builder
	outcome   map[string]any
	nextIndex int
	malformed int
	tokens    int
	err       error // sticky failure returned by subsequent Recv calls
}

// newStreamingChatSession wraps an open SSE response body.
func newStreamingChatSession(body io.ReadCloser, logger *logging.Logger) *StreamingChatSession {
	return &StreamingChatSession{
		scanner: sse.NewFrameScanner(body),
		decoder: sse.NewDecoder(),
		body:    body,
		logger:  logger,
	}
}

// Recv returns the next event from the stream, blocking until one is
// available.
//
// # Outputs
//
//   - The next StreamEvent, with Index assigned in arrival order.
//   - io.EOF once the terminal event has already been delivered.
//   - ErrSessionCanceled after Cancel.
//   - *StreamCorruptedError when too many frames failed to decode.
func (s *StreamingChatSession) Recv() (*sse.StreamEvent, error) {
	s.mu.Lock()
	switch s.state {
	case StateCompleted, StateFailed:
		err := s.err
		s.mu.Unlock()
		if err != nil {
			return nil, err
		}
		return nil, io.EOF
	case StateIdle:
		if s.canceled.Load() {
			s.state = StateFailed
			s.err = ErrSessionCanceled
			s.mu.Unlock()
			return nil, ErrSessionCanceled
		}
		s.state = StateStreaming
	}
	s.mu.Unlock()

	for {
		// The read must not hold s.mu: Cancel unblocks it by closing
		// the body, and would deadlock behind a held lock.
		payload, err := s.scanner.Next()

		if s.canceled.Load() {
			s.fail(ErrSessionCanceled)
			return nil, ErrSessionCanceled
		}

		if err == io.EOF {
			return s.deliver(s.eventForEarlyEOF())
		}
		if err != nil {
			event := sse.SynthesizeError(fmt.Sprintf("stream read failed: %v", err))
			return s.deliver(event)
		}

		event, decodeErr := s.decoder.Decode(payload)
		if decodeErr != nil {
			s.mu.Lock()
			s.malformed++
			count := s.malformed
			s.mu.Unlock()

			s.logger.Warn("skipping malformed frame",
				"error", decodeErr,
				"malformed_count", count,
			)
			if count >= maxMalformedFrames {
				corrupted := &StreamCorruptedError{
					MalformedCount: count,
					LastErr:        decodeErr,
				}
				s.fail(corrupted)
				return nil, corrupted
			}
			continue
		}
		if event == nil {
			// Decodable but unrecognized; skip for forward compatibility.
			continue
		}
		return s.deliver(event)
	}
}

// eventForEarlyEOF synthesizes the terminal event for a stream that
// closed without one. A stream that produced tokens is treated as
// complete so the partial reply is not lost; an empty stream is a
// failure.
func (s *StreamingChatSession) eventForEarlyEOF() *sse.StreamEvent {
	s.mu.Lock()
	tokens := s.tokens
	s.mu.Unlock()

	if tokens > 0 {
		s.logger.Warn("stream closed without terminal event, treating as done",
			"tokens", tokens,
		)
		return sse.SynthesizeDone()
	}
	return sse.SynthesizeError("stream closed without data")
}

// deliver records an event's effects and hands it to the caller.
func (s *StreamingChatSession) deliver(event *sse.StreamEvent) (*sse.StreamEvent, error) {
	var doneFn func(string)
	var doneText string

	s.mu.Lock()
	event.Index = s.nextIndex
	s.nextIndex++

	switch event.Type {
	case sse.EventToken:
		s.text.WriteString(event.Token)
		s.tokens++

	case sse.EventOutcome:
		s.outcome = event.Outcome

	case sse.EventDone:
		s.state = StateCompleted
		if s.onDone != nil {
			doneFn = s.onDone
			doneText = s.text.String()
		}

	case sse.EventError:
		s.state = StateFailed
	}
	s.mu.Unlock()

	if event.IsTerminal() {
		s.closeBody()
	}
	if doneFn != nil {
		doneFn(doneText)
	}
	return event, nil
}

// fail moves the session to StateFailed with a sticky error.
func (s *StreamingChatSession) fail(err error) {
	s.mu.Lock()
	if s.state != StateCompleted {
		s.state = StateFailed
		s.err = err
	}
	s.mu.Unlock()
	s.closeBody()
}

// Cancel abandons the stream and releases the connection. It is
// idempotent and safe to call from any goroutine, including while Recv
// is blocked on a read. Canceling a session that already completed has
// no effect on its state.
func (s *StreamingChatSession) Cancel() {
	s.canceled.Store(true)
	s.closeBody()
}

func (s *StreamingChatSession) closeBody() {
	s.closeOnce.Do(func() {
		if err := s.body.Close(); err != nil {
			s.logger.Debug("closing stream body", "error", err)
		}
	})
}

// AccumulatedText returns the concatenation of all token fragments
// received so far. Safe to call at any time, including after a failure,
// where it returns the partial reply.
func (s *StreamingChatSession) AccumulatedText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text.String()
}

// Outcome returns the roleplay outcome data announced by a persona
// stream, or nil if none has arrived. Only persona streams emit one.
func (s *StreamingChatSession) Outcome() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// State returns the session's current lifecycle state.
func (s *StreamingChatSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Consume drains the stream, invoking fn for each event, and returns
// the accumulated text. A nil fn is allowed.
//
// A stream that ends with a server error event returns the partial
// text alongside an error carrying the server's message.
func (s *StreamingChatSession) Consume(fn func(event *sse.StreamEvent)) (string, error) {
	for {
		event, err := s.Recv()
		if err == io.EOF {
			return s.AccumulatedText(), nil
		}
		if err != nil {
			return s.AccumulatedText(), err
		}
		if fn != nil {
			fn(event)
		}
		if event.Type == sse.EventError {
			return s.AccumulatedText(), fmt.Errorf("gaia: stream error: %s", event.Error)
		}
	}
}
