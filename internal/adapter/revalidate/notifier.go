// Package revalidate notifies the web frontend that cached pages for a
// lesson or course became stale. Delivery is best-effort: failures are
// logged and never surface to the caller.
package revalidate

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const requestTimeout = 3 * time.Second

// Notifier issues cache revalidation requests against the frontend.
type Notifier struct {
	baseURL string
	secret  string
	client  *http.Client
	logger  *slog.Logger
}

// New creates a Notifier. baseURL is the frontend origin, secret is sent as
// a query parameter the frontend checks before purging.
func New(baseURL, secret string, logger *slog.Logger) *Notifier {
	return &Notifier{
		baseURL: baseURL,
		secret:  secret,
		client:  &http.Client{Timeout: requestTimeout},
		logger:  logger.With(slog.String("component", "revalidate")),
	}
}

// ProgressChanged asks the frontend to revalidate the pages that render the
// user's progress through the given lesson. It returns immediately; the
// request runs detached from the caller's context lifetime.
func (n *Notifier) ProgressChanged(ctx context.Context, courseID, lessonID uuid.UUID) {
	if n.baseURL == "" {
		return
	}
	paths := []string{
		fmt.Sprintf("/course/%s", courseID),
		fmt.Sprintf("/lesson/%s", lessonID),
		"/quests",
	}
	detached := context.WithoutCancel(ctx)
	go func() {
		for _, path := range paths {
			n.revalidate(detached, path)
		}
	}()
}

func (n *Notifier) revalidate(ctx context.Context, path string) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/api/revalidate?secret=%s&path=%s",
		n.baseURL, url.QueryEscape(n.secret), url.QueryEscape(path))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		n.logger.Error("build revalidate request", slog.String("path", path), slog.Any("error", err))
		return
	}

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("revalidate request failed", slog.String("path", path), slog.Any("error", err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		n.logger.Warn("revalidate rejected",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode))
	}
}
