package models

// SeriesSummary describes one column after cleaning and smoothing.
type SeriesSummary struct {
	Column  string  `json:"column"`
	Rows    int     `json:"rows"`
	Defined int     `json:"defined"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Mean    float64 `json:"mean"`

	// Threshold counts are only meaningful when the level is configured.
	Warning      *float64 `json:"warning,omitempty"`
	Danger       *float64 `json:"danger,omitempty"`
	AboveWarning int      `json:"above_warning"`
	AboveDanger  int      `json:"above_danger"`
}

func (SeriesSummary) CSVHeader() []string {
	return []string{
		"column", "rows", "defined", "min", "max", "mean",
		"warning", "danger", "above_warning", "above_danger",
	}
}

func (s *SeriesSummary) CSVRow() []string {
	warn, danger := "", ""
	if s.Warning != nil {
		warn = ftoa(*s.Warning, -1)
	}
	if s.Danger != nil {
		danger = ftoa(*s.Danger, -1)
	}
	return []string{
		s.Column,
		itoa(s.Rows),
		itoa(s.Defined),
		ftoa(s.Min, 4),
		ftoa(s.Max, 4),
		ftoa(s.Mean, 4),
		warn,
		danger,
		itoa(s.AboveWarning),
		itoa(s.AboveDanger),
	}
}
