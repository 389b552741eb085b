// Package client is a thin consumer of the HTTP API. Requests are retried
// with exponential backoff on transport failures and server errors; client
// errors surface immediately as an APIError.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/advisordesk/advisordesk/internal/retry"
)

// APIError is a non-success envelope returned by the server.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type errorBody struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Value   string `json:"value"`
	Details string `json:"details"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *errorBody      `json:"error"`
}

type Client struct {
	base  string
	http  *http.Client
	retry retry.Config
}

// New builds a client for the API at base, e.g. "http://localhost:8080".
func New(base string, timeout time.Duration, cfg retry.Config) *Client {
	return &Client{
		base:  strings.TrimRight(base, "/"),
		http:  &http.Client{Timeout: timeout},
		retry: cfg,
	}
}

type response struct {
	status int
	body   []byte
}

// get performs one API request. The retry loop covers transport failures
// and 5xx responses; a 4xx is final and short-circuits the loop.
func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	target := c.base + path
	if encoded := params.Encode(); encoded != "" {
		target += "?" + encoded
	}

	res, err := retry.Do(ctx, c.retry, func(ctx context.Context) (response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return response{}, err
		}

		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return response{}, fmt.Errorf("requesting %s: %w", path, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return response{}, fmt.Errorf("reading %s response: %w", path, err)
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			return response{}, fmt.Errorf("server error %d from %s", resp.StatusCode, path)
		}

		return response{status: resp.StatusCode, body: body}, nil
	})
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(res.body, &env); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", path, err)
	}

	if !env.Success {
		apiErr := &APIError{Status: res.status, Message: env.Message}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Details = env.Error.Details
		}

		return nil, apiErr
	}

	return env.Data, nil
}

func getJSON[T any](ctx context.Context, c *Client, path string, params url.Values) (T, error) {
	var out T

	data, err := c.get(ctx, path, params)
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decoding %s data: %w", path, err)
	}

	return out, nil
}

func setIfPresent(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
