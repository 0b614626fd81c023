package market

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTables(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTablesMergesInstruments(t *testing.T) {
	savedInstruments := make(map[string]InstrumentMeta, len(Instruments))
	for k, v := range Instruments {
		savedInstruments[k] = v
	}
	savedCorrelations := make(map[string][]string, len(Correlations))
	for k, v := range Correlations {
		savedCorrelations[k] = v
	}
	t.Cleanup(func() {
		Instruments = savedInstruments
		Correlations = savedCorrelations
	})

	path := writeTables(t, `
instruments:
  CAD_JPY:
    basecurrency: CAD
    quotecurrency: JPY
    piplocation: -2
    pipvalueperlot: 6.8
correlations:
  CADJPY: [USD_JPY, EUR_JPY]
`)

	assert.NoError(t, LoadTables(path))

	m := Lookup("CADJPY")
	assert.Equal(t, "CADJPY", m.Name)
	assert.Equal(t, -2, m.PipLocation)
	assert.InDelta(t, 6.8, m.PipValuePerLot, 1e-9)

	assert.Equal(t, []string{"USDJPY", "EURJPY"}, CorrelatedWith("CADJPY"))

	// Defaults survive the merge.
	assert.InDelta(t, 10.0, Lookup("EURUSD").PipValuePerLot, 1e-9)
}

func TestLoadTablesRejectsBadPipValue(t *testing.T) {
	path := writeTables(t, `
instruments:
  BROKEN:
    piplocation: -4
    pipvalueperlot: 0
`)

	assert.Error(t, LoadTables(path))
}

func TestLoadTablesMissingFile(t *testing.T) {
	t.Parallel()

	assert.Error(t, LoadTables(filepath.Join(t.TempDir(), "nope.yaml")))
}
