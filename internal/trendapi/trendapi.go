// Package trendapi implements the HTTP client for search-interest lookups.
// The endpoint speaks a small JSON contract: GET /interest with keyword,
// timeframe and geo query params, responses guarded by an XSSI prefix.
package trendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/schema"
)

const (
	// DefaultBaseURL is the interest endpoint used when no override is
	// configured via --trends-base-url.
	DefaultBaseURL = "https://api.shelfwatch.dev/trends"

	// maxAttempts bounds how often a throttled lookup is retried.
	maxAttempts = 3
)

// xssiPrefix is prepended by the server to guard against cross-site script
// inclusion; clients strip it before decoding.
const xssiPrefix = ")]}',"

// retryBaseDelay scales the throttle backoff: the Nth retry waits N times
// this long. A variable so tests can compress the schedule.
var retryBaseDelay = 5 * time.Second

// Client fetches interest-over-time data from a trends endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ contract.TrendClient = &Client{} // Compile-time check

// NewClient creates a trends client for the given endpoint. An empty base
// URL selects the default endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// interestResponse is the wire shape of the /interest payload.
type interestResponse struct {
	Keyword string `json:"keyword"`
	Geo     string `json:"geo"`
	Points  []struct {
		Date     string `json:"date"`
		Interest int    `json:"interest"`
	} `json:"points"`
}

// FetchInterest implements the TrendClient interface. Throttling (HTTP 429)
// retries with a widening delay; any other non-200 status fails immediately.
func (c *Client) FetchInterest(ctx context.Context, keyword, timeframe, geo string) (schema.TrendSeries, error) {
	var lastErr error
	for attempt := range maxAttempts {
		series, retryable, err := c.fetchOnce(ctx, keyword, timeframe, geo)
		if err == nil {
			return series, nil
		}
		if !retryable {
			return schema.TrendSeries{}, err
		}
		lastErr = err

		if attempt < maxAttempts-1 {
			if err := sleepContext(ctx, time.Duration(attempt+1)*retryBaseDelay); err != nil {
				return schema.TrendSeries{}, err
			}
		}
	}
	return schema.TrendSeries{}, fmt.Errorf("interest lookup for %q kept throttling after %d attempts: %w", keyword, maxAttempts, lastErr)
}

// fetchOnce performs a single interest request. The bool reports whether the
// failure is worth retrying.
func (c *Client) fetchOnce(ctx context.Context, keyword, timeframe, geo string) (schema.TrendSeries, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/interest", nil)
	if err != nil {
		return schema.TrendSeries{}, false, err
	}

	q := req.URL.Query()
	q.Set("keyword", keyword)
	q.Set("timeframe", timeframe)
	if geo != "" {
		q.Set("geo", geo)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return schema.TrendSeries{}, false, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return schema.TrendSeries{}, true, fmt.Errorf("interest endpoint throttled the request (HTTP 429)")
	case resp.StatusCode != http.StatusOK:
		return schema.TrendSeries{}, false, fmt.Errorf("interest endpoint returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return schema.TrendSeries{}, false, err
	}

	series, err := decodeInterest(body, keyword, timeframe, geo)
	if err != nil {
		return schema.TrendSeries{}, false, err
	}
	return series, false, nil
}

// decodeInterest strips the XSSI guard and unmarshals the payload into a
// dated series. Sample dates use the calendar-day wire format.
func decodeInterest(body []byte, keyword, timeframe, geo string) (schema.TrendSeries, error) {
	trimmed := bytes.TrimPrefix(bytes.TrimSpace(body), []byte(xssiPrefix))

	var payload interestResponse
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return schema.TrendSeries{}, fmt.Errorf("failed to decode interest payload: %w", err)
	}

	series := schema.TrendSeries{
		Keyword:   keyword,
		Geo:       geo,
		Timeframe: timeframe,
		Points:    make([]schema.TrendPoint, 0, len(payload.Points)),
	}
	for _, p := range payload.Points {
		date, err := time.Parse(contract.DateOnlyFormat, p.Date)
		if err != nil {
			return schema.TrendSeries{}, fmt.Errorf("failed to parse sample date %q: %w", p.Date, err)
		}
		series.Points = append(series.Points, schema.TrendPoint{
			Date:     date,
			Interest: p.Interest,
		})
	}
	return series, nil
}

// sleepContext waits for d unless the context ends first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
