package utils

import (
	"fmt"
	"strings"
	"time"
)

// timestampLayouts are tried in order when no explicit layout is configured.
// They cover what the loggers and spreadsheet exports produce.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// ParseTimestamp parses s with layout, or with the known layouts when layout
// is empty. Values without a zone are read as UTC.
func ParseTimestamp(s, layout string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if layout != "" {
		return time.Parse(layout, s)
	}
	for _, l := range timestampLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date-time format %q", s)
}

// OutputName builds the chart file name:
//
//	<stem>[_smoothed][_notitle].png
func OutputName(stem string, smoothed, showTitle bool) string {
	name := stem
	if smoothed {
		name += "_smoothed"
	}
	if !showTitle {
		name += "_notitle"
	}
	return name + ".png"
}

// ExportName builds the processed-table file name:
//
//	<stem>[_smoothed].csv
func ExportName(stem string, smoothed bool) string {
	if smoothed {
		return stem + "_smoothed.csv"
	}
	return stem + ".csv"
}
