package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/metrics"
	"github.com/rs/zerolog/log"
)

const (
	locationsService = "locations API"
	projectsService  = "projects API"
	usersService     = "users API"

	defaultTimeout = 15 * time.Second
)

type tokenKey struct{}

// WithToken attaches the caller's session token to ctx. Client forwards it
// as a bearer token on every remote call made with that context.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Client talks to the remote REST API that owns locations, projects and users.
// Calls are never retried.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for baseURL. A nil httpClient gets a default
// with a 15 second timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    httpClient,
	}
}

// Configured reports whether a remote base URL was provided.
func (c *Client) Configured() bool {
	return c != nil && c.baseURL != ""
}

// remoteError is the error body shape of the remote API
type remoteError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do sends one request and returns the raw response body of a 2xx reply.
func (c *Client) do(ctx context.Context, service, method, path string, body any) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, errs.NewUpstreamUnavailableError(service, fmt.Errorf("remote API base URL not configured"))
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errs.NewInternalErrorWithCause("failed to encode request for "+service, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("failed to build request for "+service, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordUpstreamCall(service, method, "unavailable", time.Since(start))
		log.Error().Err(err).Str("service", service).Str("method", method).Str("path", path).Msg("Remote API unreachable")
		return nil, errs.NewUpstreamUnavailableError(service, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordUpstreamCall(service, method, "unavailable", time.Since(start))
		return nil, errs.NewUpstreamUnavailableError(service, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		metrics.RecordUpstreamCall(service, method, "unauthorized", time.Since(start))
		return nil, errs.NewUpstreamUnauthorizedError(service)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		metrics.RecordUpstreamCall(service, method, "error", time.Since(start))
		var remote remoteError
		message := ""
		if json.Unmarshal(raw, &remote) == nil {
			message = remote.Message
			if message == "" {
				message = remote.Error
			}
		}
		log.Warn().Str("service", service).Str("method", method).Str("path", path).Int("status", resp.StatusCode).Str("message", message).Msg("Remote API returned an error")
		return nil, errs.NewUpstreamError(service, resp.StatusCode, message)
	}

	metrics.RecordUpstreamCall(service, method, "ok", time.Since(start))
	return raw, nil
}

// invalidBody wraps a decode failure of a 2xx reply.
func invalidBody(service string, err error) error {
	apiErr := errs.NewUpstreamError(service, http.StatusOK, "unexpected response body")
	apiErr.Cause = err
	return apiErr
}

// decodeList accepts both a bare JSON array and an object whose "data"
// field holds the array. An empty or null body is an empty list.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []T{}, nil
	}
	if raw[0] == '{' {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, err
		}
		return decodeList[T](envelope.Data)
	}
	out := []T{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeOne accepts a bare object or one wrapped as {"data": {...}}.
func decodeOne[T any](raw json.RawMessage) (T, error) {
	var out T
	raw = bytes.TrimSpace(raw)
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return out, err
	}
	if data, ok := probe["data"]; ok {
		if _, hasID := probe["id"]; !hasID {
			if _, hasMongoID := probe["_id"]; !hasMongoID {
				raw = data
			}
		}
	}
	err := json.Unmarshal(raw, &out)
	return out, err
}

func escape(id string) string {
	return url.PathEscape(id)
}
