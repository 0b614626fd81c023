package market

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tables is the on-disk override format for the instrument and correlation
// maps. Entries merge over the compiled-in defaults so a deployment only
// lists what differs.
type Tables struct {
	Instruments  map[string]InstrumentMeta `yaml:"instruments"`
	Correlations map[string][]string       `yaml:"correlations"`
}

// LoadTables reads a YAML table file and merges it into the package maps.
func LoadTables(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read tables file: %w", err)
	}

	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("parse tables file: %w", err)
	}

	for sym, meta := range t.Instruments {
		key := Normalize(sym)
		if meta.Name == "" {
			meta.Name = key
		}
		if meta.PipValuePerLot <= 0 {
			return fmt.Errorf("instrument %s: pip value per lot must be positive", sym)
		}
		Instruments[key] = meta
	}

	for sym, bucket := range t.Correlations {
		normalized := make([]string, 0, len(bucket))
		for _, s := range bucket {
			normalized = append(normalized, Normalize(s))
		}
		Correlations[Normalize(sym)] = normalized
	}

	return nil
}
