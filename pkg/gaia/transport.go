// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package gaia

import (
	"context"
	"io"
	"net/http"
)

// HTTPClient abstracts HTTP operations so tests can inject mock
// responses without a live server.
//
// # Description
//
// Implementations must honor context cancellation and return responses
// whose Body the caller is responsible for closing. The production
// implementation wraps http.Client; tests provide canned responses.
type HTTPClient interface {
	// Get performs a GET request to the given URL.
	Get(ctx context.Context, url string) (*http.Response, error)

	// Post performs a POST request with the given content type and body.
	Post(ctx context.Context, url, contentType string, body io.Reader) (*http.Response, error)
}

// defaultHTTPClient adapts http.Client to the HTTPClient interface and
// attaches the API key as a bearer token when one is configured.
type defaultHTTPClient struct {
	client *http.Client
	apiKey string
}

var _ HTTPClient = (*defaultHTTPClient)(nil)

func (c *defaultHTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.setAuth(req)
	return c.client.Do(req)
}

func (c *defaultHTTPClient) Post(ctx context.Context, url, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	c.setAuth(req)
	return c.client.Do(req)
}

func (c *defaultHTTPClient) setAuth(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
