package models

import (
	"math"
	"strconv"
)

// ─── shared formatting helpers (package-private) ────────────────────────

func itoa(v int) string { return strconv.Itoa(v) }

// ftoa renders v with prec decimals; undefined values become empty fields.
func ftoa(v float64, prec int) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// CSVRowWriter is the interface every exportable model must satisfy.
type CSVRowWriter interface {
	CSVHeader() []string
	CSVRow() []string
}
