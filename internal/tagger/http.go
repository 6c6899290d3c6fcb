package tagger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout    = 30 * time.Second
	defaultRetryBaseDelay = 500 * time.Millisecond
	defaultRetryMaxDelay  = 10 * time.Second
	defaultRetryAttempts  = 3
	maxResponseBytes      = 16 << 20
)

// Config captures the settings required to reach a tagging service.
type Config struct {
	URL            string
	Token          string
	Model          string
	TimeoutSeconds int
}

// HTTP tags text through a remote service.
type HTTP struct {
	cfg        Config
	httpClient *http.Client

	retryMaxAttempts int
	retryBaseDelay   time.Duration
	retryMaxDelay    time.Duration
	sleeper          func(time.Duration)
}

// Option customizes the HTTP tagger.
type Option func(*HTTP)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(h *HTTP) {
		if client != nil {
			h.httpClient = client
		}
	}
}

// WithRetryMaxAttempts overrides the retry count (defaults to 3).
func WithRetryMaxAttempts(attempts int) Option {
	return func(h *HTTP) {
		h.retryMaxAttempts = attempts
	}
}

// WithRetryBackoff overrides the retry backoff delays.
func WithRetryBackoff(baseDelay, maxDelay time.Duration) Option {
	return func(h *HTTP) {
		h.retryBaseDelay = baseDelay
		h.retryMaxDelay = maxDelay
	}
}

// WithSleeper overrides how retry sleeps are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(h *HTTP) {
		h.sleeper = sleeper
	}
}

// NewHTTP constructs an HTTP tagger for one model.
func NewHTTP(cfg Config, opts ...Option) *HTTP {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	h := &HTTP{
		cfg: Config{
			URL:            strings.TrimRight(strings.TrimSpace(cfg.URL), "/"),
			Token:          strings.TrimSpace(cfg.Token),
			Model:          strings.TrimSpace(cfg.Model),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient:       &http.Client{Timeout: timeout},
		retryMaxAttempts: defaultRetryAttempts,
		retryBaseDelay:   defaultRetryBaseDelay,
		retryMaxDelay:    defaultRetryMaxDelay,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type tagRequest struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

type tagResponse struct {
	Tokens []Token `json:"tokens"`
	Error  string  `json:"error,omitempty"`
}

type httpStatusError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("tagger request: http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// Tag implements Tagger.
func (h *HTTP) Tag(ctx context.Context, text string) ([]Token, error) {
	if h.cfg.URL == "" {
		return nil, errors.New("tagger: service url required")
	}
	encoded, err := json.Marshal(tagRequest{Text: text, Model: h.cfg.Model})
	if err != nil {
		return nil, fmt.Errorf("tagger request: encode body: %w", err)
	}

	attempts := h.retryAttempts()
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		tokens, err := h.tagOnce(ctx, encoded)
		if err == nil {
			return tokens, nil
		}
		delay, retry := h.retryDelay(ctx, err, attempt, attempts)
		if !retry {
			return nil, err
		}
		if err := h.sleep(ctx, delay); err != nil {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("tagger: failed after %d attempts: %w", attempts, lastErr)
}

func (h *HTTP) tagOnce(ctx context.Context, body []byte) ([]Token, error) {
	endpoint, err := url.JoinPath(h.cfg.URL, "tag")
	if err != nil {
		return nil, fmt.Errorf("tagger request: build url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("tagger request: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	h.authorize(req)

	payload, err := h.do(req)
	if err != nil {
		return nil, err
	}
	var decoded tagResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("tagger request: decode response: %w", err)
	}
	if decoded.Error != "" {
		return nil, fmt.Errorf("tagger request: service error: %s", strings.TrimSpace(decoded.Error))
	}
	return decoded.Tokens, nil
}

// HealthCheck issues GET <url>/health and expects a 2xx status.
func (h *HTTP) HealthCheck(ctx context.Context) error {
	if h.cfg.URL == "" {
		return errors.New("tagger health: service url required")
	}
	endpoint, err := url.JoinPath(h.cfg.URL, "health")
	if err != nil {
		return fmt.Errorf("tagger health: build url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("tagger health: new request: %w", err)
	}
	h.authorize(req)
	if _, err := h.do(req); err != nil {
		return fmt.Errorf("tagger health: %w", err)
	}
	return nil
}

func (h *HTTP) authorize(req *http.Request) {
	if h.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+h.cfg.Token)
	}
}

func (h *HTTP) do(req *http.Request) ([]byte, error) {
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tagger request: http error (timeout=%s): %w", h.httpClient.Timeout, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("tagger request: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		retryAfter, _ := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, &httpStatusError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			RetryAfter: retryAfter,
		}
	}
	return body, nil
}

func (h *HTTP) retryAttempts() int {
	if h.retryMaxAttempts <= 0 {
		return 1
	}
	return h.retryMaxAttempts
}

func (h *HTTP) retryDelay(ctx context.Context, err error, attempt, maxAttempts int) (time.Duration, bool) {
	if attempt >= maxAttempts || err == nil || ctx.Err() != nil {
		return 0, false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return 0, false
	}

	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusRequestTimeout,
			statusErr.StatusCode == http.StatusTooManyRequests,
			statusErr.StatusCode >= http.StatusInternalServerError:
			if statusErr.RetryAfter > 0 {
				return h.capDelay(statusErr.RetryAfter), true
			}
			return h.backoffDelay(attempt), true
		default:
			return 0, false
		}
	}

	// Connection refused, resets and timeouts all surface as net.Error.
	var netErr net.Error
	if errors.As(err, &netErr) {
		return h.backoffDelay(attempt), true
	}
	return 0, false
}

func (h *HTTP) backoffDelay(attempt int) time.Duration {
	base := h.retryBaseDelay
	if base <= 0 {
		return 0
	}
	if attempt <= 0 {
		attempt = 1
	}
	delay := base
	for i := 1; i < attempt; i++ {
		if delay > h.maxDelay()/2 {
			delay = h.maxDelay()
			break
		}
		delay *= 2
	}
	return h.capDelay(delay)
}

func (h *HTTP) maxDelay() time.Duration {
	if h.retryMaxDelay > 0 {
		return h.retryMaxDelay
	}
	return defaultRetryMaxDelay
}

func (h *HTTP) capDelay(delay time.Duration) time.Duration {
	if delay < 0 {
		return 0
	}
	if limit := h.maxDelay(); delay > limit {
		return limit
	}
	return delay
}

func (h *HTTP) sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	if h.sleeper != nil {
		h.sleeper(delay)
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func parseRetryAfter(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second, true
	}
	if when, err := http.ParseTime(value); err == nil {
		if d := time.Until(when); d > 0 {
			return d, true
		}
		return 0, true
	}
	return 0, false
}
