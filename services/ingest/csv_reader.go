package ingest

import (
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"sensor-plotter/models"
	"sensor-plotter/utils"
)

// nanTokens are cell values read as undefined measurements.
var nanTokens = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL", "<nil>"}

// CSVOptions controls how a sensor log is read.
type CSVOptions struct {
	TimestampColumn string
	TimestampLayout string // empty = try the known layouts
	Delimiter       rune
}

// DefaultCSVOptions matches the SD-card logger output.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		TimestampColumn: "Timestamp",
		Delimiter:       ',',
	}
}

// CSVReader loads one sensor log into a Table.
type CSVReader struct {
	path string
	opts CSVOptions
}

func NewCSVReader(path string, opts CSVOptions) *CSVReader {
	defaults := DefaultCSVOptions()
	if opts.TimestampColumn == "" {
		opts.TimestampColumn = defaults.TimestampColumn
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = defaults.Delimiter
	}
	return &CSVReader{path: path, opts: opts}
}

// Load opens the file and reads every row.
func (r *CSVReader) Load() (*models.Table, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open sensor log: %w", err)
	}
	defer f.Close()

	t, err := ReadTable(f, r.opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}
	utils.L().Debug("loaded %s  rows=%d  columns=%v", r.path, t.Len(), t.Names())
	return t, nil
}

// ReadTable reads a headed CSV stream. Every column other than the
// timestamp is parsed as float64. Cells are trimmed; the undefined tokens
// become NaN and any other non-numeric cell fails with *models.ParseError.
func ReadTable(rd io.Reader, opts CSVOptions) (*models.Table, error) {
	df := dataframe.ReadCSV(rd,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithDelimiter(opts.Delimiter),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read csv: %w", df.Err)
	}

	tsCol := df.Col(opts.TimestampColumn)
	if tsCol.Err != nil {
		return nil, fmt.Errorf("%w: %q", models.ErrColumnNotFound, opts.TimestampColumn)
	}

	raw := tsCol.Records()
	timestamps := make([]time.Time, len(raw))
	for i, s := range raw {
		ts, err := utils.ParseTimestamp(s, opts.TimestampLayout)
		if err != nil {
			return nil, &models.ParseError{Row: i + 1, Column: opts.TimestampColumn, Value: s, Err: err}
		}
		timestamps[i] = ts
	}

	t := models.NewTable(opts.TimestampColumn, timestamps)
	for _, name := range df.Names() {
		if name == opts.TimestampColumn {
			continue
		}
		values, err := parseFloats(name, df.Col(name).Records())
		if err != nil {
			return nil, err
		}
		if err := t.SetColumn(models.NewSeries(name, values)); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func parseFloats(column string, cells []string) ([]float64, error) {
	out := make([]float64, len(cells))
	for i, cell := range cells {
		v := strings.TrimSpace(cell)
		if slices.Contains(nanTokens, v) {
			out[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, &models.ParseError{Row: i + 1, Column: column, Value: cell, Err: err}
		}
		out[i] = f
	}
	return out, nil
}
