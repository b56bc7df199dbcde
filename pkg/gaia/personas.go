// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package gaia

import (
	"context"
	"fmt"
	"net/url"
)

// PersonaAttributes are the RPG-style behavioral dials of a persona,
// each on a 1-10 scale. The server rolls against them per turn to
// shape tone, assertiveness, and question depth.
type PersonaAttributes struct {
	Initiative    int `json:"initiative,omitempty"`
	Talkativeness int `json:"talkativeness,omitempty"`
	Confidence    int `json:"confidence,omitempty"`
	Curiosity     int `json:"curiosity,omitempty"`
	Empathy       int `json:"empathy,omitempty"`
	Creativity    int `json:"creativity,omitempty"`
	Humor         int `json:"humor,omitempty"`
	Adaptability  int `json:"adaptability,omitempty"`
	Patience      int `json:"patience,omitempty"`
	Skepticism    int `json:"skepticism,omitempty"`
	Optimism      int `json:"optimism,omitempty"`
}

// Persona is a named character definition held by the server. The wire
// shape is flat: attributes sit alongside the identity fields.
type Persona struct {
	Id           string `json:"id"`
	Name         string `json:"name"`
	SystemPrompt string `json:"systemPrompt"`
	Model        string `json:"model"`
	PersonaAttributes
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// PersonaSpec describes a persona to create. Name, SystemPrompt, and
// Model are required by the server; attributes are optional.
type PersonaSpec struct {
	Name         string `json:"name"`
	SystemPrompt string `json:"systemPrompt"`
	Model        string `json:"model"`
	PersonaAttributes
}

// ChatOutcome is the per-turn RPG roll result that shaped the reply.
// Its keys are server-defined (assertiveness, emotionalTone,
// questionDepth, and friends), so it is kept schemaless.
type ChatOutcome map[string]any

// TurnResult is the reply to a completed persona turn.
type TurnResult struct {
	// Response is the persona's reply text.
	Response string

	// Outcome is the RPG roll that shaped the reply.
	Outcome ChatOutcome

	// PersonaId and PersonaName identify the responding persona.
	PersonaId   string
	PersonaName string
}

// personaPath builds a persona endpoint path with the id escaped.
func personaPath(id, suffix string) string {
	return "/personas/" + url.PathEscape(id) + suffix
}

// ListPersonas returns all personas known to the server.
func (c *Client) ListPersonas(ctx context.Context) ([]Persona, error) {
	var body struct {
		Personas []Persona `json:"personas"`
	}
	if err := c.getJSON(ctx, "/personas", &body); err != nil {
		return nil, err
	}
	return body.Personas, nil
}

// GetPersona returns a single persona by id.
func (c *Client) GetPersona(ctx context.Context, id string) (*Persona, error) {
	if id == "" {
		return nil, fmt.Errorf("gaia: persona id must not be empty")
	}
	var body struct {
		Persona Persona `json:"persona"`
	}
	if err := c.getJSON(ctx, personaPath(id, ""), &body); err != nil {
		return nil, err
	}
	return &body.Persona, nil
}

// CreatePersona registers a new persona and returns the server's copy,
// which includes the assigned id and timestamps.
func (c *Client) CreatePersona(ctx context.Context, spec PersonaSpec) (*Persona, error) {
	if spec.Name == "" || spec.SystemPrompt == "" || spec.Model == "" {
		return nil, fmt.Errorf("gaia: persona spec requires name, systemPrompt, and model")
	}
	var body struct {
		Persona Persona `json:"persona"`
		Message string  `json:"message"`
	}
	if err := c.postJSON(ctx, "/personas", spec, &body); err != nil {
		return nil, err
	}
	return &body.Persona, nil
}

// personaTurnRequest is the wire shape for persona chat and stream.
type personaTurnRequest struct {
	Message string    `json:"message"`
	History []Message `json:"history"`
}

// SendTurn sends one user message to a persona and records the
// completed exchange in history.
//
// # Description
//
// The persona receives the message together with the history snapshot
// taken at call time. On success, the user message and the persona's
// reply are appended to history atomically. On any failure the history
// is untouched, so the caller can retry with identical context.
func (c *Client) SendTurn(ctx context.Context, personaId, message string, history *ConversationHistory) (*TurnResult, error) {
	if personaId == "" {
		return nil, fmt.Errorf("gaia: persona id must not be empty")
	}
	if message == "" {
		return nil, fmt.Errorf("gaia: turn message must not be empty")
	}

	req := personaTurnRequest{Message: message, History: history.AsRequestContext()}
	var body struct {
		Response string      `json:"response"`
		Outcome  ChatOutcome `json:"outcome"`
		Persona  struct {
			Id   string `json:"id"`
			Name string `json:"name"`
		} `json:"persona"`
	}
	endpoint := personaPath(personaId, "/chat")
	if err := c.postJSON(ctx, endpoint, req, &body); err != nil {
		return nil, err
	}
	if body.Response == "" {
		return nil, &ResponseShapeError{
			Endpoint: endpoint,
			Err:      fmt.Errorf("missing response field"),
		}
	}
	// The server always sends the outcome alongside the reply; its
	// absence means the body is not a persona-chat response.
	if body.Outcome == nil {
		return nil, &ResponseShapeError{
			Endpoint: endpoint,
			Err:      fmt.Errorf("missing outcome field"),
		}
	}

	history.AppendTurn(message, body.Response)
	c.logger.Debug("persona turn complete",
		"persona_id", body.Persona.Id,
		"history_len", history.Len(),
	)
	return &TurnResult{
		Response:    body.Response,
		Outcome:     body.Outcome,
		PersonaId:   body.Persona.Id,
		PersonaName: body.Persona.Name,
	}, nil
}

// StreamPersonaTurn opens a token stream for one persona turn.
//
// The stream announces the turn's RPG outcome before the first token;
// it is available from the session's Outcome method once received.
// When the stream completes normally, the exchange is appended to
// history with the accumulated text as the reply. A canceled or failed
// stream leaves the history untouched.
func (c *Client) StreamPersonaTurn(ctx context.Context, personaId, message string, history *ConversationHistory) (*StreamingChatSession, error) {
	if personaId == "" {
		return nil, fmt.Errorf("gaia: persona id must not be empty")
	}
	if message == "" {
		return nil, fmt.Errorf("gaia: turn message must not be empty")
	}

	req := personaTurnRequest{Message: message, History: history.AsRequestContext()}
	endpoint := personaPath(personaId, "/stream")
	body, err := c.openStream(ctx, endpoint, req)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("persona stream opened",
		"persona_id", personaId,
		"history_len", history.Len(),
	)
	session := newStreamingChatSession(body, c.logger)
	session.onDone = func(text string) {
		history.AppendTurn(message, text)
	}
	return session, nil
}
