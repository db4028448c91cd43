package ttbarplot

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// PreciseTicks places about NSuggestedTicks labelled ticks on round values
// and unlabelled minor ticks between them.
type PreciseTicks struct {
	NSuggestedTicks int
}

func (t PreciseTicks) Ticks(min, max float64) []plot.Tick {
	if t.NSuggestedTicks < 2 {
		t.NSuggestedTicks = 4
	}

	// empty histograms collapse the axis range
	if !(max > min) {
		v := round(min, 6)
		return []plot.Tick{{Value: v, Label: formatFloatTick(v, -1)}}
	}

	tens := math.Pow10(int(math.Floor(math.Log10(max - min))))
	n := (max - min) / tens
	for n < float64(t.NSuggestedTicks)-1 {
		tens /= 10
		n = (max - min) / tens
	}

	majorMult := int(n / float64(t.NSuggestedTicks-1))
	switch majorMult {
	case 0:
		majorMult = 1
	case 7:
		majorMult = 6
	case 9:
		majorMult = 8
	}
	majorDelta := float64(majorMult) * tens

	ticks := majorTicks(min, max, majorDelta)
	return append(ticks, minorTicks(min, max, minorDelta(majorMult, majorDelta), ticks)...)
}

func majorTicks(min, max, delta float64) []plot.Tick {
	var values []float64
	val := math.Floor(min/delta) * delta
	for ; val <= max; val += delta {
		if val >= min {
			values = append(values, val)
		}
	}

	prec := int(math.Ceil(math.Log10(math.Abs(val))) - math.Floor(math.Log10(delta)))
	ticks := make([]plot.Tick, 0, len(values))
	for _, v := range values {
		v = round(v, prec)
		ticks = append(ticks, plot.Tick{Value: v, Label: formatFloatTick(v, -1)})
	}
	return ticks
}

func minorDelta(majorMult int, majorDelta float64) float64 {
	switch majorMult {
	case 3, 6:
		return majorDelta / 3
	case 5:
		return majorDelta / 5
	}
	return majorDelta / 2
}

func minorTicks(min, max, delta float64, major []plot.Tick) []plot.Tick {
	var ticks []plot.Tick
	for val := math.Floor(min/delta) * delta; val <= max; val += delta {
		if val < min || hasTick(major, val) {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: val})
	}
	return ticks
}

func hasTick(ticks []plot.Tick, v float64) bool {
	for _, t := range ticks {
		if t.Value == v {
			return true
		}
	}
	return false
}

// round rounds x to prec decimal places.
func round(x float64, prec int) float64 {
	if x == 0 {
		// no negative zero
		return 0
	}
	if prec >= 0 && x == math.Trunc(x) {
		return x
	}
	pow := math.Pow10(prec)
	intermed := x * pow
	if math.IsInf(intermed, 0) {
		return x
	}
	if x < 0 {
		x = math.Ceil(intermed - 0.5)
	} else {
		x = math.Floor(intermed + 0.5)
	}
	if x == 0 {
		return 0
	}
	return x / pow
}

func formatFloatTick(v float64, prec int) string {
	return strconv.FormatFloat(v, 'g', prec, 64)
}

// DefaultLogFloor is the value LogScale and LogTicks substitute for
// non-positive axis values.
const DefaultLogFloor = 1e-6

// LogScale is a logarithmic axis scale that tolerates empty bins: values
// at or below Floor are drawn at Floor.
type LogScale struct {
	Floor float64
}

func (s LogScale) Normalize(min, max, x float64) float64 {
	floor := s.floor()
	min, max, x = math.Max(min, floor), math.Max(max, floor), math.Max(x, floor)
	if max <= min {
		return 0
	}
	logMin := math.Log(min)
	return (math.Log(x) - logMin) / (math.Log(max) - logMin)
}

func (s LogScale) floor() float64 {
	if s.Floor > 0 {
		return s.Floor
	}
	return DefaultLogFloor
}

// LogTicks places ticks on powers of ten. Non-positive bounds are raised
// to Floor.
type LogTicks struct {
	Floor float64
}

func (t LogTicks) Ticks(min, max float64) []plot.Tick {
	floor := LogScale{Floor: t.Floor}.floor()
	min, max = math.Max(min, floor), math.Max(max, floor)
	if max <= min {
		max = min * 10
	}
	return plot.LogTicks{}.Ticks(min, max)
}
