package sheets

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

	"go.uber.org/zap"
)

// Outcome classifies a submission attempt. Every attempt resolves to
// exactly one outcome; the client never returns an error to its caller.
type Outcome int

const (
	// OutcomeSubmitted means the endpoint accepted the order. An
	// order number is present only if the endpoint returned one.
	OutcomeSubmitted Outcome = iota
	// OutcomeSkipped means no endpoint is configured. Not an error.
	OutcomeSkipped
	// OutcomeFailed means the request failed in transport or the
	// response body could not be parsed.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSubmitted:
		return "submitted"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the normalized outcome of one submission attempt.
type Result struct {
	Outcome     Outcome
	OrderNumber string
}

// OrderPayload is the JSON body posted to the order log.
type OrderPayload struct {
	Business     string  `json:"business"`
	BusinessSlug string  `json:"business_slug"`
	Customer     string  `json:"customer"`
	Phone        string  `json:"phone,omitempty"`
	Address      string  `json:"address"`
	Note         string  `json:"note"`
	Order        string  `json:"order"`
	Total        float64 `json:"total"`
}

type submitResponse struct {
	OrderNumber orderNumber `json:"orderNumber"`
}

// orderNumber tolerates the endpoint returning the token as either a
// JSON string or a bare number.
type orderNumber string

func (n *orderNumber) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = orderNumber(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*n = orderNumber(num.String())
		return nil
	}
	return fmt.Errorf("unsupported order number %s", string(data))
}

// Client posts orders to a spreadsheet web-app endpoint, best effort.
type Client struct {
	WebAppURL  string
	HTTPClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a client for the given web-app URL. An empty or
// invalid URL leaves the client unconfigured; Submit then reports
// OutcomeSkipped instead of attempting a request.
func NewClient(webAppURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		WebAppURL: strings.TrimSpace(webAppURL),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Configured reports whether a usable endpoint URL is set.
func (c *Client) Configured() bool {
	if c.WebAppURL == "" {
		return false
	}
	u, err := url.Parse(c.WebAppURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Submit performs a single POST of the order. All failure modes fold
// into the returned Result; no retry, no idempotency key — a repeat
// submission of the same order creates a new logged record.
func (c *Client) Submit(ctx context.Context, payload OrderPayload) Result {
	if !c.Configured() {
		return Result{Outcome: OutcomeSkipped}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		c.logger.Warn("failed to marshal order payload", zap.Error(err))
		return Result{Outcome: OutcomeFailed}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.WebAppURL, bytes.NewBuffer(body))
	if err != nil {
		c.logger.Warn("failed to create order log request", zap.Error(err))
		return Result{Outcome: OutcomeFailed}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.logger.Warn("order log request failed", zap.Error(err))
		return Result{Outcome: OutcomeFailed}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("failed to read order log response", zap.Error(err))
		return Result{Outcome: OutcomeFailed}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("order log returned non-success status",
			zap.Int("status", resp.StatusCode))
		return Result{Outcome: OutcomeFailed}
	}

	var parsed submitResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		c.logger.Warn("failed to parse order log response", zap.Error(err))
		return Result{Outcome: OutcomeFailed}
	}

	return Result{
		Outcome:     OutcomeSubmitted,
		OrderNumber: string(parsed.OrderNumber),
	}
}
