package hydration

import "time"

// ActivityInput is the slice of an activity record the calculations need.
type ActivityInput struct {
	ID              string
	Type            string
	Intensity       string
	DurationMinutes int
	OccurredAt      time.Time
}

// ConsumptionInput is the slice of a consumption record the calculations
// need. Factor and EffectiveMl are pointers because the beverage catalog or
// the precomputed column may be missing; see consumptionMl for precedence.
type ConsumptionInput struct {
	ID          string
	VolumeMl    float64
	Factor      *float64
	EffectiveMl *float64
	OccurredAt  time.Time
}

// Date is a calendar day in some viewer-local timezone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf extracts the calendar day of t in loc using local components.
// Never derived from the UTC instant: slicing an ISO string would shift
// records across midnight for viewers east or west of UTC.
func DateOf(t time.Time, loc *time.Location) Date {
	y, m, d := t.In(loc).Date()
	return Date{Year: y, Month: m, Day: d}
}

// DayState is the aggregated progress for one calendar day.
type DayState struct {
	BaseGoalMl       int  `json:"base_goal_ml"`
	TotalEffectiveMl int  `json:"total_effective_ml"`
	TotalPSEMl       int  `json:"total_pse_ml"`
	EffectiveGoalMl  int  `json:"effective_goal_ml"`
	Progress         int  `json:"progress"`
	Completed        bool `json:"completed"`
}

// AggregateDay combines the base goal, the day's activities and the day's
// consumptions into a progress state. PSE adjusts the goal, not the intake.
// A base goal <= 0 degrades to the sentinel goal of 1 instead of erroring,
// so the percentage stays finite when no real goal is configured.
func AggregateDay(baseGoalMl int, activities []ActivityInput, consumptions []ConsumptionInput, target Date, loc *time.Location) DayState {
	totalEffective := 0
	seen := make(map[string]bool)
	for _, c := range dedupConsumptions(consumptions, seen) {
		if DateOf(c.OccurredAt, loc) != target {
			continue
		}
		totalEffective += consumptionMl(c)
	}

	totalPSE := 0
	for _, a := range activities {
		if DateOf(a.OccurredAt, loc) != target {
			continue
		}
		totalPSE += EstimatePSE(a.Type, a.Intensity, a.DurationMinutes)
	}

	effectiveGoal := baseGoalMl + totalPSE
	if effectiveGoal < 1 {
		effectiveGoal = 1
	}

	progress := roundMl(float64(totalEffective) / float64(effectiveGoal) * 100)
	if progress > 100 {
		progress = 100
	}

	return DayState{
		BaseGoalMl:       baseGoalMl,
		TotalEffectiveMl: totalEffective,
		TotalPSEMl:       totalPSE,
		EffectiveGoalMl:  effectiveGoal,
		Progress:         progress,
		Completed:        totalEffective >= effectiveGoal,
	}
}

// consumptionMl applies the value precedence: precomputed effective column,
// then volume * factor, then the raw volume when the beverage is unknown.
func consumptionMl(c ConsumptionInput) int {
	switch {
	case c.EffectiveMl != nil:
		return roundMl(*c.EffectiveMl)
	case c.Factor != nil:
		return EffectiveMl(c.VolumeMl, *c.Factor)
	default:
		return roundMl(c.VolumeMl)
	}
}

// dedupConsumptions drops repeated ids, first occurrence wins. Callers may
// hand us overlapping pages; summing them as-is would double count.
func dedupConsumptions(consumptions []ConsumptionInput, seen map[string]bool) []ConsumptionInput {
	out := consumptions[:0:0]
	for _, c := range consumptions {
		if c.ID != "" {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
		}
		out = append(out, c)
	}
	return out
}
