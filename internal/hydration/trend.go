package hydration

import "time"

// Period selects the bucketing scheme for a trend chart.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodAnnual  Period = "annual"
)

// ValidPeriod reports whether p is one of the four chart periods.
func ValidPeriod(p Period) bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodAnnual:
		return true
	}
	return false
}

// TrendBucket is one bar of a trend chart.
type TrendBucket struct {
	Label        string `json:"label"`
	ValueMl      int    `json:"value_ml"`
	PercentOfMax int    `json:"percent_of_max"`
}

var dailyLabels = []string{"00-03", "03-06", "06-09", "09-12", "12-15", "15-18", "18-21", "21-24"}
var weeklyLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
var monthlyLabels = []string{"W1", "W2", "W3", "W4"}

// Buckets groups consumptions into chart buckets. The caller hands in the
// record set for the window it cares about; only the annual period filters,
// dropping records outside the trailing 12 calendar months ending at now.
// Bucket order is chronological, empty input yields all-zero buckets.
func Buckets(consumptions []ConsumptionInput, period Period, now time.Time, loc *time.Location) []TrendBucket {
	var labels []string
	var windowStart time.Time

	switch period {
	case PeriodDaily:
		labels = dailyLabels
	case PeriodWeekly:
		labels = weeklyLabels
	case PeriodMonthly:
		labels = monthlyLabels
	case PeriodAnnual:
		local := now.In(loc)
		windowStart = time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -11, 0)
		labels = make([]string, 12)
		for i := range labels {
			labels[i] = windowStart.AddDate(0, i, 0).Month().String()[:3]
		}
	default:
		return nil
	}

	values := make([]int, len(labels))
	seen := make(map[string]bool)
	for _, c := range dedupConsumptions(consumptions, seen) {
		idx, ok := bucketIndex(c.OccurredAt.In(loc), period, windowStart)
		if !ok {
			continue
		}
		values[idx] += consumptionMl(c)
	}

	max := 0
	for _, v := range values {
		if v > max {
			max = v
		}
	}

	buckets := make([]TrendBucket, len(labels))
	for i, v := range values {
		percent := 0
		if max > 0 {
			percent = roundMl(float64(v) / float64(max) * 100)
		}
		buckets[i] = TrendBucket{Label: labels[i], ValueMl: v, PercentOfMax: percent}
	}
	return buckets
}

func bucketIndex(local time.Time, period Period, windowStart time.Time) (int, bool) {
	switch period {
	case PeriodDaily:
		return local.Hour() / 3, true
	case PeriodWeekly:
		// time.Weekday is Sunday-first; charts are Monday-first.
		return (int(local.Weekday()) + 6) % 7, true
	case PeriodMonthly:
		idx := (local.Day() - 1) / 7
		if idx > 3 {
			idx = 3
		}
		return idx, true
	case PeriodAnnual:
		idx := (local.Year()-windowStart.Year())*12 + int(local.Month()) - int(windowStart.Month())
		if idx < 0 || idx > 11 {
			return 0, false
		}
		return idx, true
	}
	return 0, false
}
