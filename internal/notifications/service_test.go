package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nounmap/internal/config"
	"nounmap/internal/notifications"
)

type capturedRequest struct {
	title    string
	tags     string
	priority string
	body     string
}

func newCaptureServer(t *testing.T, status int) (*httptest.Server, <-chan capturedRequest) {
	t.Helper()
	ch := make(chan capturedRequest, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		ch <- capturedRequest{
			title:    r.Header.Get("Title"),
			tags:     r.Header.Get("Tags"),
			priority: r.Header.Get("Priority"),
			body:     string(body),
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, ch
}

func serviceFor(url string) notifications.Service {
	cfg := config.Default()
	cfg.Notify.NtfyTopic = url
	return notifications.NewService(&cfg)
}

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyRunCompleted(context.Background(), notifications.RunSummary{Pairs: 3}); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNotifyRunCompleted(t *testing.T) {
	srv, ch := newCaptureServer(t, http.StatusOK)
	err := serviceFor(srv.URL).NotifyRunCompleted(context.Background(), notifications.RunSummary{
		RunID:    "abc",
		Source:   "/books/zh.epub",
		Target:   "/books/en.epub",
		Pairs:    12,
		Flagged:  1,
		PairPath: "/out/pairs.txt",
		Duration: 95 * time.Second,
	})
	if err != nil {
		t.Fatalf("NotifyRunCompleted: %v", err)
	}
	got := <-ch
	if got.title != "nounmap - Run Complete" {
		t.Fatalf("title = %q", got.title)
	}
	if got.tags != "nounmap,run,completed" {
		t.Fatalf("tags = %q", got.tags)
	}
	for _, want := range []string{"12 name pairs from zh.epub / en.epub in 1m35s", "1 pairs left out", "File: /out/pairs.txt"} {
		if !strings.Contains(got.body, want) {
			t.Fatalf("body %q missing %q", got.body, want)
		}
	}
}

func TestNotifyRunFailedIsHighPriority(t *testing.T) {
	srv, ch := newCaptureServer(t, http.StatusOK)
	if err := serviceFor(srv.URL).NotifyRunFailed(context.Background(), errors.New("tagger unreachable"), "/books/zh.epub"); err != nil {
		t.Fatalf("NotifyRunFailed: %v", err)
	}
	got := <-ch
	if got.priority != "high" {
		t.Fatalf("priority = %q", got.priority)
	}
	if got.body != "Run failed for zh.epub: tagger unreachable" {
		t.Fatalf("body = %q", got.body)
	}
}

func TestSendReportsServerError(t *testing.T) {
	srv, ch := newCaptureServer(t, http.StatusForbidden)
	err := serviceFor(srv.URL).TestNotification(context.Background())
	<-ch
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected 403 error, got %v", err)
	}
}
