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
)

// Sampling defaults applied when a request leaves the field zero.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 800
)

// ModelInfo describes a model available through the API.
type ModelInfo struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// ChatRequest is a stateless multi-turn chat request. The caller owns
// the history; the server holds no session state between calls.
type ChatRequest struct {
	// Model selects the backing model. Empty lets the server choose
	// its default.
	Model string `json:"model,omitempty"`

	// Messages is the full conversation context, oldest first.
	Messages []Message `json:"messages"`

	// Temperature controls sampling randomness. Zero means
	// DefaultTemperature.
	Temperature float64 `json:"temperature"`

	// MaxTokens bounds the reply length. Zero means DefaultMaxTokens.
	MaxTokens int `json:"max_tokens"`
}

// withDefaults fills zero-valued sampling fields.
func (r ChatRequest) withDefaults() ChatRequest {
	if r.Temperature == 0 {
		r.Temperature = DefaultTemperature
	}
	if r.MaxTokens == 0 {
		r.MaxTokens = DefaultMaxTokens
	}
	return r
}

// ChatResult is the reply to a Chat call.
type ChatResult struct {
	// Message is the assistant's reply text.
	Message string

	// Model is the model that produced the reply.
	Model string
}

// CompletionRequest is a one-shot prompt completion request.
type CompletionRequest struct {
	Model       string  `json:"model,omitempty"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// CompletionResult is the reply to a Complete call.
type CompletionResult struct {
	Completion string
	Model      string
}

// ListModels returns the models the server can route to.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var body struct {
		Models []ModelInfo `json:"models"`
	}
	if err := c.getJSON(ctx, "/llm/models", &body); err != nil {
		return nil, err
	}
	return body.Models, nil
}

// Complete sends a one-shot prompt and returns the completion.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error) {
	if req.Prompt == "" {
		return nil, fmt.Errorf("gaia: completion prompt must not be empty")
	}
	if req.Temperature == 0 {
		req.Temperature = DefaultTemperature
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = DefaultMaxTokens
	}

	var body struct {
		Completion string `json:"completion"`
		Model      string `json:"model"`
	}
	if err := c.postJSON(ctx, "/llm/completion", req, &body); err != nil {
		return nil, err
	}
	return &CompletionResult{Completion: body.Completion, Model: body.Model}, nil
}

// Chat sends a full conversation context and returns the assistant's
// reply. The server is stateless; callers maintain history between
// calls, typically via ConversationHistory.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResult, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("gaia: chat request must contain at least one message")
	}

	var body struct {
		Message string `json:"message"`
		Model   string `json:"model"`
	}
	if err := c.postJSON(ctx, "/llm/chat", req.withDefaults(), &body); err != nil {
		return nil, err
	}
	return &ChatResult{Message: body.Message, Model: body.Model}, nil
}

// StreamChat opens a token stream for a conversation context. The
// returned session yields events as the server produces them; the
// caller must drain it or call Cancel to release the connection.
//
// The ctx governs the life of the whole stream, not just the dial.
func (c *Client) StreamChat(ctx context.Context, req ChatRequest) (*StreamingChatSession, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("gaia: chat request must contain at least one message")
	}

	body, err := c.openStream(ctx, "/llm/stream", req.withDefaults())
	if err != nil {
		return nil, err
	}

	c.logger.Debug("stream opened",
		"endpoint", "/llm/stream",
		"model", req.Model,
		"messages", len(req.Messages),
	)
	return newStreamingChatSession(body, c.logger), nil
}
