package reminders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/dietplan/internal/telemetry/tracing"
)

// HTTPScheduler talks to the notification service:
//
//	PUT {baseURL}/plans/{planId}/reminders
type HTTPScheduler struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewHTTPScheduler(baseURL, token string, httpClient *http.Client) *HTTPScheduler {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &HTTPScheduler{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

func (s *HTTPScheduler) Schedule(ctx context.Context, schedule Schedule) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "reminders.scheduler.schedule")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("plan.id", schedule.PlanID),
		attribute.Int("reminders.count", len(schedule.Reminders)),
	)

	body, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}

	url := fmt.Sprintf("%s/plans/%d/reminders", s.baseURL, schedule.PlanID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notification service responded %d: %s", resp.StatusCode, respBody)
	}
	return nil
}
