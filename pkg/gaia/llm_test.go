// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package gaia

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
)

func TestListModels(t *testing.T) {
	mock := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{
				"models": [
					{"id": "llama3-70b", "name": "Llama 3 70B", "provider": "deepinfra"},
					{"id": "mixtral", "name": "Mixtral 8x7B", "provider": "deepinfra"}
				]
			}`), nil
		},
	}
	client := newTestClient(mock)

	models, err := client.ListModels(context.Background())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(models))
	}
	if models[0].Id != "llama3-70b" || models[0].Provider != "deepinfra" {
		t.Errorf("unexpected model: %+v", models[0])
	}
	if mock.lastURL != "http://gaia.test/llm/models" {
		t.Errorf("unexpected URL: %q", mock.lastURL)
	}
}

func TestChat_AppliesSamplingDefaults(t *testing.T) {
	mock := &mockHTTPClient{
		postFunc: func(ctx context.Context, url, contentType string, body io.Reader) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"message":"hi","model":"llama3"}`), nil
		},
	}
	client := newTestClient(mock)

	result, err := client.Chat(context.Background(), ChatRequest{
		Model:    "llama3",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Message != "hi" || result.Model != "llama3" {
		t.Errorf("unexpected result: %+v", result)
	}

	var sent map[string]any
	if err := json.Unmarshal(mock.lastBody, &sent); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if sent["temperature"] != DefaultTemperature {
		t.Errorf("expected default temperature %v, got %v", DefaultTemperature, sent["temperature"])
	}
	if sent["max_tokens"] != float64(DefaultMaxTokens) {
		t.Errorf("expected default max_tokens %v, got %v", DefaultMaxTokens, sent["max_tokens"])
	}
}

func TestChat_ExplicitSamplingPreserved(t *testing.T) {
	mock := &mockHTTPClient{
		postFunc: func(ctx context.Context, url, contentType string, body io.Reader) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"message":"hi","model":"llama3"}`), nil
		},
	}
	client := newTestClient(mock)

	_, err := client.Chat(context.Background(), ChatRequest{
		Messages:    []Message{{Role: RoleUser, Content: "hello"}},
		Temperature: 1.2,
		MaxTokens:   50,
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sent map[string]any
	if err := json.Unmarshal(mock.lastBody, &sent); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if sent["temperature"] != 1.2 {
		t.Errorf("expected temperature 1.2, got %v", sent["temperature"])
	}
	if sent["max_tokens"] != float64(50) {
		t.Errorf("expected max_tokens 50, got %v", sent["max_tokens"])
	}
}

func TestChat_RequiresMessages(t *testing.T) {
	client := newTestClient(&mockHTTPClient{})

	if _, err := client.Chat(context.Background(), ChatRequest{}); err == nil {
		t.Fatal("expected error for empty messages")
	}
}

func TestComplete(t *testing.T) {
	mock := &mockHTTPClient{
		postFunc: func(ctx context.Context, url, contentType string, body io.Reader) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"completion":"four","model":"llama3"}`), nil
		},
	}
	client := newTestClient(mock)

	result, err := client.Complete(context.Background(), CompletionRequest{Prompt: "2+2?"})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Completion != "four" {
		t.Errorf("unexpected completion: %q", result.Completion)
	}
	if mock.lastURL != "http://gaia.test/llm/completion" {
		t.Errorf("unexpected URL: %q", mock.lastURL)
	}
}

func TestComplete_RequiresPrompt(t *testing.T) {
	client := newTestClient(&mockHTTPClient{})

	if _, err := client.Complete(context.Background(), CompletionRequest{}); err == nil {
		t.Fatal("expected error for empty prompt")
	}
}

func TestStreamChat(t *testing.T) {
	mock := &mockHTTPClient{
		postFunc: func(ctx context.Context, url, contentType string, body io.Reader) (*http.Response, error) {
			return sseResponse(sseStream(
				`{"token":"str"}`,
				`{"token":"eam"}`,
				`{"done":true}`,
			)), nil
		},
	}
	client := newTestClient(mock)

	session, err := client.StreamChat(context.Background(), ChatRequest{
		Model:    "llama3",
		Messages: []Message{{Role: RoleUser, Content: "go"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, err := session.Consume(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "stream" {
		t.Errorf("expected %q, got %q", "stream", text)
	}
	if mock.lastURL != "http://gaia.test/llm/stream" {
		t.Errorf("unexpected URL: %q", mock.lastURL)
	}
}

func TestStreamChat_NonSuccessStatusYieldsConnectionError(t *testing.T) {
	mock := &mockHTTPClient{
		postFunc: func(ctx context.Context, url, contentType string, body io.Reader) (*http.Response, error) {
			return jsonResponse(http.StatusServiceUnavailable, `{"error":true,"message":"no backend"}`), nil
		},
	}
	client := newTestClient(mock)

	_, err := client.StreamChat(context.Background(), ChatRequest{
		Messages: []Message{{Role: RoleUser, Content: "go"}},
	})

	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected *ConnectionError, got %T: %v", err, err)
	}
	if connErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", connErr.StatusCode)
	}
}
