package views

import "sensor-plotter/models"

// CSVSchema defines the canonical column layout of each logger variant.
// This file is the single source of truth for expected column names.

// Variant identifies a logger firmware build.
type Variant int

const (
	VariantUnknown Variant = iota
	VariantEnvironment
	VariantGas
)

var variantNames = map[Variant]string{
	VariantEnvironment: "environment",
	VariantGas:         "gas",
}

func (v Variant) String() string {
	if n, ok := variantNames[v]; ok {
		return n
	}
	return "unknown"
}

// ParseVariant maps a configuration name onto a Variant.
func ParseVariant(name string) Variant {
	for v, n := range variantNames {
		if n == name {
			return v
		}
	}
	return VariantUnknown
}

// SchemaColumns returns the canonical column list for a variant.
var SchemaColumns = map[Variant][]string{
	VariantEnvironment: {
		"Timestamp",
		"CO2_ppm", "Temperature_C", "Humidity_%RH", "TVOC_ppb", "AQI",
	},
	VariantGas: {
		"Timestamp",
		"H2_ppm", "H2S_ppm", "NH3_ppm", "CH4_ppm", "CO_ppm",
	},
}

// MissingColumns lists canonical columns the table lacks.
// The timestamp column is checked by the loader and skipped here.
func MissingColumns(v Variant, t *models.Table) []string {
	var missing []string
	for _, col := range SchemaColumns[v] {
		if col == t.TimestampColumn {
			continue
		}
		if !t.Has(col) {
			missing = append(missing, col)
		}
	}
	return missing
}
