package risk

import (
	"math"
	"time"

	"github.com/rustyeddy/riskgate/market"
)

// DefaultNewsBufferMinutes is the blackout lookahead when the account does
// not override it.
const DefaultNewsBufferMinutes = 30

// newsRule blocks trades into a high-impact news window on the symbol's
// currencies. A failed calendar fetch degrades to a warning: the engine
// never silently passes and never hard-blocks on infrastructure alone.
type newsRule struct{}

func (newsRule) Name() string { return "news" }

func (newsRule) Evaluate(in *Input) Outcome {
	var o Outcome
	if in.Account.NewsTradingAllowed {
		return o
	}

	if in.Market.Unavailable {
		o.Warn("could not verify news schedule: calendar unavailable")
		return o
	}

	buffer := time.Duration(in.Account.NewsBufferMinutes) * time.Minute
	if buffer <= 0 {
		buffer = DefaultNewsBufferMinutes * time.Minute
	}

	currencies := market.Currencies(in.Request.Symbol)
	for _, ev := range in.Market.Events {
		if ev.Time.Before(in.Now) || ev.Time.After(in.Now.Add(buffer)) {
			continue
		}
		if !touchesAny(ev.Currencies, currencies) {
			continue
		}
		mins := int(math.Ceil(ev.Time.Sub(in.Now).Minutes()))
		o.Block("high-impact news %q in %d minute(s)", ev.Title, mins)
		o.NewsWindow = &NewsWindow{
			Event:        ev.Title,
			EventTime:    ev.Time,
			MinutesUntil: mins,
		}
		return o
	}
	return o
}

func touchesAny(eventCurrencies, symbolCurrencies []string) bool {
	for _, ec := range eventCurrencies {
		for _, sc := range symbolCurrencies {
			if ec == sc {
				return true
			}
		}
	}
	return false
}
