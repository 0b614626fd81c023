package market

// Correlations maps each symbol to the instruments whose price moves are
// treated as the same directional risk bucket. The table is symmetric by
// construction of the defaults; LoadTables merges per-deployment overrides
// verbatim, so an override is responsible for its own symmetry.
var Correlations = map[string][]string{
	"EURUSD": {"GBPUSD", "AUDUSD", "NZDUSD", "EURGBP"},
	"GBPUSD": {"EURUSD", "AUDUSD", "NZDUSD", "EURGBP"},
	"AUDUSD": {"EURUSD", "GBPUSD", "NZDUSD"},
	"NZDUSD": {"EURUSD", "GBPUSD", "AUDUSD"},
	"EURGBP": {"EURUSD", "GBPUSD"},
	"USDJPY": {"USDCAD", "USDCHF"},
	"USDCAD": {"USDJPY", "USDCHF"},
	"USDCHF": {"USDJPY", "USDCAD"},
	"EURJPY": {"GBPJPY", "USDJPY"},
	"GBPJPY": {"EURJPY", "USDJPY"},
	"XAUUSD": {"XAGUSD"},
	"XAGUSD": {"XAUUSD"},
}

// CorrelatedWith returns the correlation bucket for symbol, empty for
// symbols with no entry.
func CorrelatedWith(symbol string) []string {
	return Correlations[Normalize(symbol)]
}

// IsCorrelated reports whether a and b belong to the same bucket.
func IsCorrelated(a, b string) bool {
	nb := Normalize(b)
	for _, s := range CorrelatedWith(a) {
		if s == nb {
			return true
		}
	}
	return false
}
