// market/instruments.go
package market

import (
	"math"
	"strings"
)

type InstrumentMeta struct {
	Name           string
	BaseCurrency   string
	QuoteCurrency  string
	PipLocation    int
	PipValuePerLot float64 // account-currency value of one pip per 1.0 lot
}

// DefaultMeta is used for symbols missing from the table. It treats the
// instrument as a standard 4-decimal FX pair with a $10/pip full lot.
var DefaultMeta = InstrumentMeta{
	PipLocation:    -4,
	PipValuePerLot: 10,
}

var Instruments = map[string]InstrumentMeta{
	"EURUSD": {
		Name:           "EURUSD",
		BaseCurrency:   "EUR",
		QuoteCurrency:  "USD",
		PipLocation:    -4,
		PipValuePerLot: 10,
	},
	"GBPUSD": {
		Name:           "GBPUSD",
		BaseCurrency:   "GBP",
		QuoteCurrency:  "USD",
		PipLocation:    -4,
		PipValuePerLot: 10,
	},
	"AUDUSD": {
		Name:           "AUDUSD",
		BaseCurrency:   "AUD",
		QuoteCurrency:  "USD",
		PipLocation:    -4,
		PipValuePerLot: 10,
	},
	"NZDUSD": {
		Name:           "NZDUSD",
		BaseCurrency:   "NZD",
		QuoteCurrency:  "USD",
		PipLocation:    -4,
		PipValuePerLot: 10,
	},
	"USDJPY": {
		Name:           "USDJPY",
		BaseCurrency:   "USD",
		QuoteCurrency:  "JPY",
		PipLocation:    -2,
		PipValuePerLot: 9.1,
	},
	"USDCAD": {
		Name:           "USDCAD",
		BaseCurrency:   "USD",
		QuoteCurrency:  "CAD",
		PipLocation:    -4,
		PipValuePerLot: 7.3,
	},
	"USDCHF": {
		Name:           "USDCHF",
		BaseCurrency:   "USD",
		QuoteCurrency:  "CHF",
		PipLocation:    -4,
		PipValuePerLot: 11.2,
	},
	"EURGBP": {
		Name:           "EURGBP",
		BaseCurrency:   "EUR",
		QuoteCurrency:  "GBP",
		PipLocation:    -4,
		PipValuePerLot: 12.7,
	},
	"EURJPY": {
		Name:           "EURJPY",
		BaseCurrency:   "EUR",
		QuoteCurrency:  "JPY",
		PipLocation:    -2,
		PipValuePerLot: 9.1,
	},
	"GBPJPY": {
		Name:           "GBPJPY",
		BaseCurrency:   "GBP",
		QuoteCurrency:  "JPY",
		PipLocation:    -2,
		PipValuePerLot: 9.1,
	},
	"XAUUSD": {
		Name:           "XAUUSD",
		BaseCurrency:   "XAU",
		QuoteCurrency:  "USD",
		PipLocation:    -1,
		PipValuePerLot: 10,
	},
}

// Normalize maps broker symbol spellings ("EUR_USD", "eur/usd") onto the
// table's keys.
func Normalize(symbol string) string {
	s := strings.ToUpper(symbol)
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, "/", "")
	return s
}

// Lookup returns the instrument metadata for symbol, falling back to
// DefaultMeta for unlisted symbols.
func Lookup(symbol string) InstrumentMeta {
	if m, ok := Instruments[Normalize(symbol)]; ok {
		return m
	}
	m := DefaultMeta
	m.Name = Normalize(symbol)
	return m
}

func pipSize(loc int) float64 {
	return math.Pow(10, float64(loc))
}

// PipSize returns the price increment of one pip for the symbol.
func PipSize(symbol string) float64 {
	return pipSize(Lookup(symbol).PipLocation)
}

// PipValuePerLot returns the account-currency value of a one-pip move per
// 1.0 lot for the symbol.
func PipValuePerLot(symbol string) float64 {
	return Lookup(symbol).PipValuePerLot
}

// Currencies returns the currencies an instrument is exposed to. For a
// listed pair it is base+quote; for unlisted symbols it falls back to
// splitting a six-letter code in half, which covers conventional FX
// spellings like "CADJPY".
func Currencies(symbol string) []string {
	m := Lookup(symbol)
	if m.BaseCurrency != "" && m.QuoteCurrency != "" {
		return []string{m.BaseCurrency, m.QuoteCurrency}
	}
	s := Normalize(symbol)
	if len(s) == 6 {
		return []string{s[:3], s[3:]}
	}
	return []string{s}
}
