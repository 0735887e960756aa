package hydration

import (
	"testing"
	"time"
)

func fp(v float64) *float64 { return &v }

func TestAggregateDayEmpty(t *testing.T) {
	target := Date{2026, time.March, 10}
	got := AggregateDay(2000, nil, nil, target, time.UTC)

	if got.TotalEffectiveMl != 0 || got.TotalPSEMl != 0 {
		t.Errorf("expected zero totals, got %+v", got)
	}
	if got.EffectiveGoalMl != 2000 {
		t.Errorf("expected goal 2000, got %d", got.EffectiveGoalMl)
	}
	if got.Completed {
		t.Error("empty day must not be completed")
	}
}

func TestAggregateDaySentinelGoal(t *testing.T) {
	got := AggregateDay(0, nil, nil, Date{2026, time.March, 10}, time.UTC)
	if got.EffectiveGoalMl != 1 {
		t.Errorf("expected sentinel goal 1, got %d", got.EffectiveGoalMl)
	}
	// zero intake against the sentinel still reads as not completed
	if got.Completed {
		t.Error("expected not completed")
	}
}

func TestAggregateDayScenario(t *testing.T) {
	target := Date{2026, time.March, 10}
	at := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	activities := []ActivityInput{
		{ID: "a1", Type: "correr", Intensity: "media", DurationMinutes: 30, OccurredAt: at},
	}
	consumptions := []ConsumptionInput{
		{ID: "c1", VolumeMl: 500, EffectiveMl: fp(500), OccurredAt: at},
	}

	got := AggregateDay(2000, activities, consumptions, target, time.UTC)
	if got.TotalPSEMl != 600 {
		t.Errorf("expected PSE 600, got %d", got.TotalPSEMl)
	}
	if got.EffectiveGoalMl != 2600 {
		t.Errorf("expected goal 2600, got %d", got.EffectiveGoalMl)
	}
	if got.Progress != 19 {
		t.Errorf("expected progress 19, got %d", got.Progress)
	}
	if got.Completed {
		t.Error("expected not completed")
	}
}

func TestAggregateDayIdempotent(t *testing.T) {
	target := Date{2026, time.March, 10}
	at := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	activities := []ActivityInput{{ID: "a1", Type: "hiit", Intensity: "alta", DurationMinutes: 45, OccurredAt: at}}
	consumptions := []ConsumptionInput{{ID: "c1", VolumeMl: 300, Factor: fp(1.0), OccurredAt: at}}

	first := AggregateDay(2000, activities, consumptions, target, time.UTC)
	second := AggregateDay(2000, activities, consumptions, target, time.UTC)
	if first != second {
		t.Errorf("aggregate not deterministic: %+v vs %+v", first, second)
	}
}

func TestAggregateDayDedupFirstWins(t *testing.T) {
	target := Date{2026, time.March, 10}
	at := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	consumptions := []ConsumptionInput{
		{ID: "c1", VolumeMl: 500, EffectiveMl: fp(500), OccurredAt: at},
		{ID: "c1", VolumeMl: 999, EffectiveMl: fp(999), OccurredAt: at},
	}

	got := AggregateDay(2000, nil, consumptions, target, time.UTC)
	if got.TotalEffectiveMl != 500 {
		t.Errorf("expected dedup to keep first occurrence (500), got %d", got.TotalEffectiveMl)
	}
}

func TestAggregateDayValuePrecedence(t *testing.T) {
	target := Date{2026, time.March, 10}
	at := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	consumptions := []ConsumptionInput{
		// precomputed column beats the factor
		{ID: "c1", VolumeMl: 200, Factor: fp(0.5), EffectiveMl: fp(150), OccurredAt: at},
		// factor beats the raw volume
		{ID: "c2", VolumeMl: 200, Factor: fp(0.5), OccurredAt: at},
		// raw volume is the last resort
		{ID: "c3", VolumeMl: 200, OccurredAt: at},
	}

	got := AggregateDay(2000, nil, consumptions, target, time.UTC)
	if want := 150 + 100 + 200; got.TotalEffectiveMl != want {
		t.Errorf("expected %d, got %d", want, got.TotalEffectiveMl)
	}
}

func TestAggregateDayUsesLocalCalendarDay(t *testing.T) {
	lima, err := time.LoadLocation("America/Lima") // UTC-5, no DST
	if err != nil {
		t.Fatal(err)
	}

	// 2026-03-11 01:30 UTC is still 2026-03-10 20:30 in Lima
	at := time.Date(2026, time.March, 11, 1, 30, 0, 0, time.UTC)
	consumptions := []ConsumptionInput{{ID: "c1", VolumeMl: 400, EffectiveMl: fp(400), OccurredAt: at}}

	got := AggregateDay(2000, nil, consumptions, Date{2026, time.March, 10}, lima)
	if got.TotalEffectiveMl != 400 {
		t.Errorf("record near midnight fell out of the local day: %+v", got)
	}

	next := AggregateDay(2000, nil, consumptions, Date{2026, time.March, 11}, lima)
	if next.TotalEffectiveMl != 0 {
		t.Errorf("record counted on the wrong local day: %+v", next)
	}
}

func TestAggregateDayProgressCapped(t *testing.T) {
	target := Date{2026, time.March, 10}
	at := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	consumptions := []ConsumptionInput{{ID: "c1", VolumeMl: 5000, EffectiveMl: fp(5000), OccurredAt: at}}

	got := AggregateDay(2000, nil, consumptions, target, time.UTC)
	if got.Progress != 100 {
		t.Errorf("expected capped progress 100, got %d", got.Progress)
	}
	if !got.Completed {
		t.Error("expected completed")
	}
}
