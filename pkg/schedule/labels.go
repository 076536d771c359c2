package schedule

import "fmt"

const (
	// PeriodCount is the number of rows in a day.
	PeriodCount = 24
	// ShortPeriods is the number of leading 30-minute periods; the rest are lecture-length slots.
	ShortPeriods = 18

	dayStart    = 9 * 60
	shortStride = 30
	shortLength = 30
	longStart   = dayStart + ShortPeriods*shortStride
	longStride  = 55
	longLength  = 50
)

// Span is a period's time range in minutes since midnight.
type Span struct {
	Start int
	End   int
}

var (
	periodSpans  = buildPeriodSpans()
	periodLabels = buildPeriodLabels(periodSpans)
)

func buildPeriodSpans() [PeriodCount]Span {
	var spans [PeriodCount]Span
	for i := 0; i < ShortPeriods; i++ {
		start := dayStart + i*shortStride
		spans[i] = Span{Start: start, End: start + shortLength}
	}
	for i := ShortPeriods; i < PeriodCount; i++ {
		start := longStart + (i-ShortPeriods)*longStride
		spans[i] = Span{Start: start, End: start + longLength}
	}
	return spans
}

func buildPeriodLabels(spans [PeriodCount]Span) [PeriodCount]string {
	var labels [PeriodCount]string
	for i, s := range spans {
		labels[i] = FormatHnM(s.Start) + "~" + FormatHnM(s.End)
	}
	return labels
}

// Fill2 zero-pads n to two digits.
func Fill2(n int) string {
	return fmt.Sprintf("%02d", n)
}

// FormatHnM renders minutes since midnight as "HH:MM".
func FormatHnM(minutes int) string {
	return Fill2(minutes/60) + ":" + Fill2(minutes%60)
}

// PeriodLabel returns the "HH:MM~HH:MM" label of a 1-based period, or "" when out of range.
func PeriodLabel(period int) string {
	if period < 1 || period > PeriodCount {
		return ""
	}
	return periodLabels[period-1]
}

// PeriodSpan returns the time range of a 1-based period.
func PeriodSpan(period int) (Span, bool) {
	if period < 1 || period > PeriodCount {
		return Span{}, false
	}
	return periodSpans[period-1], true
}

// PeriodLabels returns all period labels in order.
func PeriodLabels() []string {
	out := make([]string, PeriodCount)
	copy(out, periodLabels[:])
	return out
}
