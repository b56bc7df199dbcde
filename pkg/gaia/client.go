// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package gaia is a Go client for the Gaia conversational API.
//
// The client covers the three API surfaces:
//
//   - Raw LLM access: model listing, one-shot completion, stateless
//     multi-turn chat (Chat, Complete, ListModels).
//   - Token streaming: StreamChat and StreamPersonaTurn return a
//     StreamingChatSession that yields events as the server produces
//     them.
//   - Personas: named characters with RPG-style behavioral attributes
//     (ListPersonas, CreatePersona, SendTurn).
//
// # Basic Usage
//
//	client := gaia.New(gaia.Config{BaseURL: "http://localhost:5000/api"})
//	history := gaia.NewConversationHistory()
//	result, err := client.SendTurn(ctx, personaID, "Hello there", history)
//
// # Streaming
//
//	session, err := client.StreamChat(ctx, gaia.ChatRequest{
//	    Model:    "llama3",
//	    Messages: history.Snapshot(),
//	})
//	if err != nil { ... }
//	defer session.Cancel()
//	for {
//	    event, err := session.Recv()
//	    if err == io.EOF {
//	        break
//	    }
//	    ...
//	}
//
// # Thread Safety
//
// Client is safe for concurrent use. Each StreamingChatSession is owned
// by a single consuming goroutine, except Cancel, AccumulatedText, and
// State, which may be called from any goroutine.
package gaia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/AleutianAI/gaia-go/pkg/logging"
)

// DefaultTimeout bounds non-streaming requests when Config.Timeout is
// zero. Streaming requests are not subject to a client timeout; they
// end when the server closes the stream or the session is canceled.
const DefaultTimeout = 2 * time.Minute

// Config configures a Client.
type Config struct {
	// BaseURL is the root of the Gaia API, including the "/api"
	// segment, e.g. "http://localhost:5000/api". A trailing slash is
	// tolerated.
	BaseURL string

	// APIKey, when set, is sent as a bearer token on every request.
	APIKey string

	// Timeout bounds non-streaming requests. Default: DefaultTimeout.
	Timeout time.Duration

	// Logger receives operational logs. Default: logging.Default().
	Logger *logging.Logger
}

// Client talks to a Gaia API server.
type Client struct {
	baseURL   string
	transport HTTPClient // for non-streaming requests
	streaming HTTPClient // no client-side timeout
	logger    *logging.Logger
}

// New creates a Client backed by http.Client.
func New(config Config) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return newClient(
		config,
		&defaultHTTPClient{
			client: &http.Client{Timeout: timeout},
			apiKey: config.APIKey,
		},
		&defaultHTTPClient{
			client: &http.Client{},
			apiKey: config.APIKey,
		},
	)
}

// NewWithHTTPClient creates a Client with an injected transport, used
// by tests to serve canned responses. The same transport handles both
// streaming and non-streaming requests.
func NewWithHTTPClient(config Config, client HTTPClient) *Client {
	return newClient(config, client, client)
}

func newClient(config Config, transport, streaming HTTPClient) *Client {
	logger := config.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		baseURL:   strings.TrimRight(config.BaseURL, "/"),
		transport: transport,
		streaming: streaming,
		logger:    logger,
	}
}

// url joins the base URL with an endpoint path.
func (c *Client) url(endpoint string) string {
	return c.baseURL + endpoint
}

// errorEnvelope is the API's error body shape: {"error":true,"message":"..."}.
type errorEnvelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// getJSON performs a GET and decodes a 2xx body into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	resp, err := c.transport.Get(ctx, c.url(endpoint))
	if err != nil {
		return &ConnectionError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()
	return c.decodeResponse(endpoint, resp, out)
}

// postJSON performs a POST with a JSON body and decodes a 2xx response
// body into out.
func (c *Client) postJSON(ctx context.Context, endpoint string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("gaia: encode request for %s: %w", endpoint, err)
	}

	resp, err := c.transport.Post(ctx, c.url(endpoint), "application/json", bytes.NewReader(payload))
	if err != nil {
		return &ConnectionError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()
	return c.decodeResponse(endpoint, resp, out)
}

// decodeResponse maps a response to the error taxonomy and decodes
// success bodies into out.
func (c *Client) decodeResponse(endpoint string, resp *http.Response, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.requestError(endpoint, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ResponseShapeError{Endpoint: endpoint, Err: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &ResponseShapeError{Endpoint: endpoint, Err: err}
	}
	return nil
}

// requestError builds a RequestError from a non-2xx response,
// extracting the server's message when the body follows the error
// envelope. A malformed error body is not an additional failure.
func (c *Client) requestError(endpoint string, resp *http.Response) error {
	var envelope errorEnvelope
	if body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024)); err == nil {
		_ = json.Unmarshal(body, &envelope)
	}

	c.logger.Warn("request failed",
		"endpoint", endpoint,
		"status", resp.StatusCode,
	)
	return &RequestError{
		Endpoint:   endpoint,
		StatusCode: resp.StatusCode,
		Message:    envelope.Message,
	}
}

// openStream POSTs a JSON body to a streaming endpoint and returns the
// open response body. A non-2xx status means no event stream exists, so
// it is reported as a ConnectionError.
func (c *Client) openStream(ctx context.Context, endpoint string, in any) (io.ReadCloser, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("gaia: encode request for %s: %w", endpoint, err)
	}

	resp, err := c.streaming.Post(ctx, c.url(endpoint), "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, &ConnectionError{Endpoint: endpoint, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &ConnectionError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}
