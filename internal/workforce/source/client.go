// Package source downloads the CSV exports the service synchronizes from.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
	"github.com/shiftboard/shiftboard-backend/pkg/config"
	"github.com/shiftboard/shiftboard-backend/pkg/logger"
)

var (
	// ErrUnexpectedStatus is wrapped by StatusError for non-2xx responses
	ErrUnexpectedStatus = errors.New("unexpected upstream status")
	// ErrNotConfigured is returned when no export URL is set for an entity
	ErrNotConfigured = errors.New("export url not configured")
)

// StatusError reports a non-2xx response from an export endpoint
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch data: %s from %s", e.Status, e.URL)
}

// Is matches ErrUnexpectedStatus
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// Client fetches CSV exports over HTTP
type Client struct {
	urls       map[domain.Entity]string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a new export client
func NewClient(cfg config.SourceConfig, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return NewClientWithHTTP(cfg, &http.Client{Timeout: timeout}, log)
}

// NewClientWithHTTP creates an export client with a caller-supplied http.Client
func NewClientWithHTTP(cfg config.SourceConfig, httpClient *http.Client, log *logger.Logger) *Client {
	return &Client{
		urls: map[domain.Entity]string{
			domain.EntityShifts: cfg.ShiftsURL,
			domain.EntityUsers:  cfg.UsersURL,
		},
		httpClient: httpClient,
		logger:     log,
	}
}

// Fetch downloads the export for an entity and returns it as text
func (c *Client) Fetch(ctx context.Context, entity domain.Entity) (string, error) {
	url := c.urls[entity]
	if url == "" {
		return "", fmt.Errorf("%s: %w", entity, ErrNotConfigured)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, */*")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s export: %w", entity, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return "", &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read %s export: %w", entity, err)
	}

	c.logger.Info().
		Str("entity", string(entity)).
		Int("bytes", len(body)).
		Dur("duration", time.Since(start)).
		Msg("export fetched")

	return string(body), nil
}
