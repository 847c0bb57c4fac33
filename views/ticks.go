package views

import (
	"math"
	"time"

	"gonum.org/v1/plot"
)

// maxTimeTicks bounds the number of labelled ticks on the time axis.
const maxTimeTicks = 48

// TimeTicks places major ticks on multiples of Interval (aligned to the
// Unix epoch, so hourly ticks fall on full UTC hours) labelled with Format.
// X values are Unix seconds.
type TimeTicks struct {
	Interval time.Duration
	Format   string
}

var _ plot.Ticker = TimeTicks{}

// Ticks implements plot.Ticker. Spans that would need more than
// maxTimeTicks ticks double the step until they fit, so a day-long log at
// an hourly interval is still labelled hourly while a multi-day log gets
// 2h, 4h... ticks.
func (t TimeTicks) Ticks(min, max float64) []plot.Tick {
	step := t.Interval.Seconds()
	if step <= 0 {
		step = time.Hour.Seconds()
	}
	for (max-min)/step > maxTimeTicks {
		step *= 2
	}
	format := t.Format
	if format == "" {
		format = "15:04"
	}

	var ticks []plot.Tick
	start := math.Ceil(min/step) * step
	for k := 0; ; k++ {
		v := start + float64(k)*step
		if v > max {
			break
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: unixTime(v).Format(format)})
	}
	return ticks
}

// unixSeconds maps a timestamp onto the chart x axis.
func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func unixTime(v float64) time.Time {
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC()
}
