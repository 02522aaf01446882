package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/dparedesb/avicola-console/internal/config"
	"github.com/dparedesb/avicola-console/pkg/apperror"
)

// Client talks to the management backend's REST API. All collaborator
// services (catalog, customers, inventory, sales, payments, reports) hang
// off the same base URL and error contract.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	log        *logrus.Logger
}

// NewClient creates a new API client from configuration.
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.API.Timeout,
		},
		baseURL: strings.TrimRight(cfg.API.BaseURL, "/") + cfg.API.Prefix,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst),
		log:     log,
	}
}

// do executes one JSON request. A non-2xx response is decoded into an
// AppError via the normalized error contract; out may be nil for requests
// whose body the caller discards.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, headers map[string]string) error {
	respBody, _, err := c.raw(ctx, method, path, query, body, headers)
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("error unmarshalling %s %s response: %w", method, path, err)
	}
	return nil
}

// raw executes one request and returns the response body and content type.
// Used directly for the spreadsheet export, which streams opaque bytes.
func (c *Client) raw(ctx context.Context, method, path string, query url.Values, body interface{}, headers map[string]string) ([]byte, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("error marshalling request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{
			"method": method,
			"path":   path,
		}).Error("request failed")
		return nil, "", fmt.Errorf("error calling backend: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		appErr := apperror.FromResponse(resp.StatusCode, respBody)
		c.log.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Warn(appErr.Message)
		return nil, "", appErr
	}

	return respBody, resp.Header.Get("Content-Type"), nil
}
