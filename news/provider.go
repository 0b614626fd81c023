// Package news supplies upcoming high-impact economic calendar events to
// the admission engine. Providers are best-effort: the engine treats any
// error as "calendar unavailable" and degrades to a warning.
package news

import (
	"context"
	"time"

	"github.com/rustyeddy/riskgate/risk"
)

// Provider mirrors risk.NewsSource so implementations here plug straight
// into the engine.
type Provider interface {
	UpcomingEvents(ctx context.Context, currencies []string, within time.Duration) ([]risk.NewsEvent, error)
}

// Static serves a fixed event list, filtered to the requested currencies
// and window. Used by tests and the one-shot CLI.
type Static struct {
	Now    func() time.Time
	Events []risk.NewsEvent
}

func (s *Static) UpcomingEvents(_ context.Context, currencies []string, within time.Duration) ([]risk.NewsEvent, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	start := now().UTC()
	end := start.Add(within)

	var out []risk.NewsEvent
	for _, ev := range s.Events {
		if ev.Time.Before(start) || ev.Time.After(end) {
			continue
		}
		if !mentionsAny(ev.Currencies, currencies) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

func mentionsAny(eventCurrencies, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, ec := range eventCurrencies {
		for _, w := range wanted {
			if ec == w {
				return true
			}
		}
	}
	return false
}
