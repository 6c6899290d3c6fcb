package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"nounmap/internal/config"
)

const userAgent = "nounmap/0.1"

// RunSummary is the part of a finished run worth a push message.
type RunSummary struct {
	RunID    string
	Source   string
	Target   string
	Pairs    int
	Flagged  int
	PairPath string
	Duration time.Duration
}

// Service defines the notification surface used by the CLI.
type Service interface {
	NotifyRunCompleted(ctx context.Context, summary RunSummary) error
	NotifyRunFailed(ctx context.Context, err error, book string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notify.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notify.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyRunCompleted(ctx context.Context, summary RunSummary) error {
	duration := summary.Duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d name pairs from %s", summary.Pairs, baseName(summary.Source))
	if summary.Target != "" {
		fmt.Fprintf(&b, " / %s", baseName(summary.Target))
	}
	fmt.Fprintf(&b, " in %s", duration)
	if summary.Flagged > 0 {
		fmt.Fprintf(&b, "\n%d pairs left out of the pair file", summary.Flagged)
	}
	if summary.PairPath != "" {
		fmt.Fprintf(&b, "\nFile: %s", summary.PairPath)
	}

	data := payload{
		title:   "nounmap - Run Complete",
		message: b.String(),
		tags:    []string{"nounmap", "run", "completed"},
	}
	if summary.Pairs == 0 {
		data.title = "nounmap - Run Complete (no pairs)"
		data.tags = append(data.tags, "warning")
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRunFailed(ctx context.Context, err error, book string) error {
	var b strings.Builder
	b.WriteString("Run failed")
	if book = strings.TrimSpace(book); book != "" {
		b.WriteString(" for ")
		b.WriteString(baseName(book))
	}
	b.WriteString(": ")
	if err != nil {
		b.WriteString(strings.TrimSpace(err.Error()))
	} else {
		b.WriteString("unknown")
	}

	return n.send(ctx, payload{
		title:    "nounmap - Error",
		message:  b.String(),
		tags:     []string{"nounmap", "error", "alert"},
		priority: "high",
	})
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	return n.send(ctx, payload{
		title:    "nounmap - Test",
		message:  "Notification system test",
		tags:     []string{"nounmap", "test"},
		priority: "low",
	})
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func baseName(path string) string {
	if path = strings.TrimSpace(path); path == "" {
		return ""
	}
	return filepath.Base(path)
}

type noopService struct{}

func (noopService) NotifyRunCompleted(context.Context, RunSummary) error { return nil }
func (noopService) NotifyRunFailed(context.Context, error, string) error { return nil }
func (noopService) TestNotification(context.Context) error              { return nil }
