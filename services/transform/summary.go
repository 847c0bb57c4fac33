package transform

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"sensor-plotter/models"
)

var nan = math.NaN()

// Thresholds are the alarm levels checked by Summarize. Nil means unset.
type Thresholds struct {
	Warning *float64
	Danger  *float64
}

// Summarize reports min, max and mean over the defined values of a column
// and counts samples at or above each configured alarm level.
func Summarize(t *models.Table, column string, th Thresholds) (*models.SeriesSummary, error) {
	s, err := t.Column(column)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	sum := &models.SeriesSummary{
		Column:  column,
		Rows:    s.Len(),
		Warning: th.Warning,
		Danger:  th.Danger,
		Min:     nan,
		Max:     nan,
		Mean:    nan,
	}

	vals := s.DefinedValues()
	sum.Defined = len(vals)
	if len(vals) == 0 {
		return sum, nil
	}
	sum.Min = floats.Min(vals)
	sum.Max = floats.Max(vals)
	sum.Mean = stat.Mean(vals, nil)

	for _, v := range vals {
		if th.Warning != nil && v >= *th.Warning {
			sum.AboveWarning++
		}
		if th.Danger != nil && v >= *th.Danger {
			sum.AboveDanger++
		}
	}
	return sum, nil
}

// MeanDefined returns the mean over the defined values, NaN if none.
func MeanDefined(s *models.Series) float64 {
	vals := s.DefinedValues()
	if len(vals) == 0 {
		return nan
	}
	return stat.Mean(vals, nil)
}
