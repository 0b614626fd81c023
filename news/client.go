package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/rustyeddy/riskgate/risk"
)

// Client fetches upcoming events from an HTTP calendar feed. Calls are
// bounded by the request timeout and run through a circuit breaker so a
// flapping feed fails fast instead of stalling every validation.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewClient builds a calendar client for baseURL. timeout bounds each
// fetch; zero means 5s.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	st := gobreaker.Settings{Name: "news-calendar"}
	st.Interval = 60 * time.Second
	st.Timeout = 60 * time.Second
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= 3
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(st),
	}
}

// feedEvent is the wire shape of one calendar entry.
type feedEvent struct {
	Title      string    `json:"title"`
	Currencies []string  `json:"currencies"`
	Time       time.Time `json:"time"`
	Impact     string    `json:"impact"`
}

// UpcomingEvents fetches high-impact events for the currencies within the
// lookahead window.
func (c *Client) UpcomingEvents(ctx context.Context, currencies []string, within time.Duration) ([]risk.NewsEvent, error) {
	out, err := c.breaker.Execute(func() (any, error) {
		return c.fetch(ctx, currencies, within)
	})
	if err != nil {
		log.Warn().Err(err).Msg("news calendar fetch failed")
		return nil, err
	}
	return out.([]risk.NewsEvent), nil
}

func (c *Client) fetch(ctx context.Context, currencies []string, within time.Duration) ([]risk.NewsEvent, error) {
	q := url.Values{}
	q.Set("currencies", strings.Join(currencies, ","))
	q.Set("minutes", fmt.Sprintf("%d", int(within.Minutes())))
	q.Set("impact", "high")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/events?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build calendar request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calendar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar responded %d", resp.StatusCode)
	}

	var feed []feedEvent
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decode calendar response: %w", err)
	}

	events := make([]risk.NewsEvent, 0, len(feed))
	for _, fe := range feed {
		events = append(events, risk.NewsEvent{
			Title:      fe.Title,
			Currencies: fe.Currencies,
			Time:       fe.Time,
			Impact:     fe.Impact,
		})
	}
	return events, nil
}
