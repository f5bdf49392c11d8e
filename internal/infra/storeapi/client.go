// Package storeapi implements the domain gateway interfaces as JSON-over-HTTP
// clients for the upstream storefront services.
package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/sony/gobreaker"
)

// StatusError is a non-2xx answer from an upstream service, carrying the
// server-supplied message when the body had one.
type StatusError struct {
	Service string
	Status  int
	Message string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Service + " answered " + http.StatusText(e.Status) + ": " + e.Message
	}

	return e.Service + " answered " + http.StatusText(e.Status)
}

// client is the shared transport for all upstream service clients: one base
// URL, one circuit breaker, uniform error mapping.
type client struct {
	service    string
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

func newClient(service, baseURL string, cfg *config.UpstreamConfig, logger *slog.Logger) *client {
	breakerCfg := cfg.Breaker

	return &client{
		service: service,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        service,
			MaxRequests: breakerCfg.MaxRequests,
			Interval:    breakerCfg.Interval,
			Timeout:     breakerCfg.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				if counts.Requests < breakerCfg.MinRequests {
					return false
				}

				return float64(counts.TotalFailures)/float64(counts.Requests) >= breakerCfg.FailureRate
			},
		}),
		logger: logger,
	}
}

// call issues one JSON request through the breaker. query and headers may be
// nil; body is marshalled when non-nil; a non-nil out receives the decoded
// response body. Non-2xx answers come back as *StatusError; transport
// failures and an open breaker as UnavailableError.
func (c *client) call(ctx context.Context, method, path string, query url.Values, headers map[string]string, body, out any) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to encode request body")
		}
		payload = bytes.NewReader(encoded)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	result, err := c.breaker.Execute(func() (any, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			statusErr := &StatusError{
				Service: c.service,
				Status:  resp.StatusCode,
				Message: extractMessage(raw),
			}
			// 4xx answers are the service doing its job; only 5xx count
			// against the breaker.
			if resp.StatusCode < 500 {
				return statusErr, nil
			}

			return nil, statusErr
		}

		return raw, nil
	})
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			return statusErr
		}
		c.logger.Warn("Upstream call failed",
			slog.String("service", c.service),
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err))

		return domainerrors.NewUnavailableError(c.service, err)
	}

	if statusErr, ok := result.(*StatusError); ok {
		return statusErr
	}

	if out != nil {
		raw, _ := result.([]byte)
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, out); err != nil {
				return errors.Wrapf(err, "failed to decode %s response", c.service)
			}
		}
	}

	return nil
}

// mapError converts the generic call errors into AppErrors. Clients handle
// their own sentinel statuses (404 and friends) before falling through here.
func (c *client) mapError(err error) error {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return domainerrors.NewUpstreamError(c.service, statusErr.Status, statusErr.Message, "")
	}

	return err
}

// extractMessage pulls the human-readable message out of the common error
// body shapes the services use.
func extractMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}

	return body.Error
}

// statusOf returns the HTTP status of a *StatusError, or 0.
func statusOf(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status
	}

	return 0
}
