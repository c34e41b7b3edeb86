// Package notify delivers notifications to the desktop bridge over
// HTTP. The dispatcher is a pure collaborator: it never reads from or
// writes to the store.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/mosaic/internal/apperr"
)

// Notification is one message for the bridge.
type Notification struct {
	Title    string         `json:"title"`
	Message  string         `json:"message"`
	Sound    string         `json:"sound,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Result reports a dispatch outcome. Attempts counts requests actually
// sent, so a disabled dispatcher reports zero.
type Result struct {
	Delivered bool
	Attempts  int
}

// Dispatcher sends notifications. The reminder scheduler and the
// trigger_notification tool both talk through it.
type Dispatcher interface {
	Send(ctx context.Context, n Notification) (Result, error)
}

// Config tunes the HTTP dispatcher.
type Config struct {
	// BridgeURL is the bridge endpoint. Empty disables dispatch.
	BridgeURL string
	// Enabled gates dispatch independently of the URL.
	Enabled bool
	// DefaultSound fills Notification.Sound when the caller sets none.
	DefaultSound string
	// AttemptTimeout bounds each request. 5s when zero.
	AttemptTimeout time.Duration
	// MaxAttempts caps requests per Send. 3 when zero.
	MaxAttempts int
	// RetryDelay is the wait before the second attempt, doubling per
	// retry. 1s when zero.
	RetryDelay time.Duration
}

// HTTPDispatcher posts notifications to the bridge with bounded retry:
// network errors, timeouts, and 5xx responses retry with exponential
// backoff, a 4xx response fails immediately.
type HTTPDispatcher struct {
	cfg    Config
	client *http.Client
	logger zerolog.Logger
}

// NewHTTPDispatcher creates a dispatcher with a shared HTTP client so
// connections to the bridge are reused across reminders.
func NewHTTPDispatcher(cfg Config, logger zerolog.Logger) *HTTPDispatcher {
	if cfg.AttemptTimeout <= 0 {
		cfg.AttemptTimeout = 5 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	return &HTTPDispatcher{
		cfg: cfg,
		client: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		logger: logger.With().Str("component", "notify").Logger(),
	}
}

// Send posts n to the bridge. When dispatch is disabled it returns
// {false, 0} without error. After the final failed attempt it logs and
// returns an error matching apperr.ErrDeliveryFailed; cancellation of
// ctx aborts any remaining attempts.
func (d *HTTPDispatcher) Send(ctx context.Context, n Notification) (Result, error) {
	if !d.cfg.Enabled || d.cfg.BridgeURL == "" {
		d.logger.Debug().Str("title", n.Title).Msg("dispatch disabled, dropping notification")
		return Result{}, nil
	}
	if n.Sound == "" {
		n.Sound = d.cfg.DefaultSound
	}

	body, err := json.Marshal(n)
	if err != nil {
		return Result{}, fmt.Errorf("%w: encoding notification: %v", apperr.ErrInternal, err)
	}

	var lastErr error
	delay := d.cfg.RetryDelay
	attempts := 0
	for attempts < d.cfg.MaxAttempts {
		attempts++
		retryable, err := d.post(ctx, body)
		if err == nil {
			d.logger.Info().
				Str("title", n.Title).
				Int("attempts", attempts).
				Msg("notification delivered")
			return Result{Delivered: true, Attempts: attempts}, nil
		}
		lastErr = err
		if !retryable || attempts == d.cfg.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			d.logger.Warn().
				Str("title", n.Title).
				Int("attempts", attempts).
				Msg("dispatch canceled before retry")
			return Result{Attempts: attempts},
				fmt.Errorf("%w: %v", apperr.ErrDeliveryFailed, ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	d.logger.Error().
		Err(lastErr).
		Str("title", n.Title).
		Int("attempts", attempts).
		Msg("notification delivery failed")
	return Result{Attempts: attempts}, fmt.Errorf("%w: %v", apperr.ErrDeliveryFailed, lastErr)
}

// post sends one request and reports whether a failure may be retried.
func (d *HTTPDispatcher) post(ctx context.Context, body []byte) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.AttemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.BridgeURL, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return true, err
	}
	defer resp.Body.Close()

	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return false, nil
	}
	return resp.StatusCode >= 500,
		fmt.Errorf("bridge returned status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
}

// Close releases pooled connections. Call on shutdown.
func (d *HTTPDispatcher) Close() {
	d.client.CloseIdleConnections()
}
