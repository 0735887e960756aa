package hydration

import (
	"testing"
	"time"
)

func TestBucketsWeeklyEmpty(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	got := Buckets(nil, PeriodWeekly, now, time.UTC)

	want := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	if len(got) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(got))
	}
	for i, b := range got {
		if b.Label != want[i] || b.ValueMl != 0 || b.PercentOfMax != 0 {
			t.Errorf("bucket %d = %+v, want {%s 0 0}", i, b, want[i])
		}
	}
}

func TestBucketsDailyPlacement(t *testing.T) {
	day := func(hour int) time.Time {
		return time.Date(2026, time.March, 10, hour, 15, 0, 0, time.UTC)
	}
	consumptions := []ConsumptionInput{
		{ID: "c1", VolumeMl: 200, EffectiveMl: fp(200), OccurredAt: day(0)},
		{ID: "c2", VolumeMl: 300, EffectiveMl: fp(300), OccurredAt: day(7)},
		{ID: "c3", VolumeMl: 500, EffectiveMl: fp(500), OccurredAt: day(23)},
	}

	got := Buckets(consumptions, PeriodDaily, day(12), time.UTC)
	if len(got) != 8 {
		t.Fatalf("expected 8 buckets, got %d", len(got))
	}
	if got[0].ValueMl != 200 || got[2].ValueMl != 300 || got[7].ValueMl != 500 {
		t.Errorf("values landed in wrong buckets: %+v", got)
	}
	if got[7].PercentOfMax != 100 || got[0].PercentOfMax != 40 || got[2].PercentOfMax != 60 {
		t.Errorf("percentOfMax wrong: %+v", got)
	}
}

func TestBucketsWeeklyMondayFirst(t *testing.T) {
	sunday := time.Date(2026, time.March, 8, 10, 0, 0, 0, time.UTC)
	monday := time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC)
	consumptions := []ConsumptionInput{
		{ID: "c1", VolumeMl: 100, EffectiveMl: fp(100), OccurredAt: sunday},
		{ID: "c2", VolumeMl: 250, EffectiveMl: fp(250), OccurredAt: monday},
	}

	got := Buckets(consumptions, PeriodWeekly, monday, time.UTC)
	if got[0].ValueMl != 250 {
		t.Errorf("Monday bucket expected 250, got %d", got[0].ValueMl)
	}
	if got[6].ValueMl != 100 {
		t.Errorf("Sunday bucket expected 100, got %d", got[6].ValueMl)
	}
}

func TestBucketsMonthlyClampsFifthWeek(t *testing.T) {
	day31 := time.Date(2026, time.January, 31, 10, 0, 0, 0, time.UTC)
	consumptions := []ConsumptionInput{
		{ID: "c1", VolumeMl: 300, EffectiveMl: fp(300), OccurredAt: day31},
	}

	got := Buckets(consumptions, PeriodMonthly, day31, time.UTC)
	if len(got) != 4 {
		t.Fatalf("expected 4 buckets, got %d", len(got))
	}
	if got[3].ValueMl != 300 {
		t.Errorf("day 31 should clamp into W4, got %+v", got)
	}
}

func TestBucketsAnnualWindow(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	consumptions := []ConsumptionInput{
		// this month -> last bucket
		{ID: "c1", VolumeMl: 400, EffectiveMl: fp(400), OccurredAt: time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)},
		// 11 months ago -> first bucket
		{ID: "c2", VolumeMl: 200, EffectiveMl: fp(200), OccurredAt: time.Date(2025, time.April, 20, 8, 0, 0, 0, time.UTC)},
		// outside the trailing window, dropped
		{ID: "c3", VolumeMl: 999, EffectiveMl: fp(999), OccurredAt: time.Date(2025, time.February, 1, 8, 0, 0, 0, time.UTC)},
	}

	got := Buckets(consumptions, PeriodAnnual, now, time.UTC)
	if len(got) != 12 {
		t.Fatalf("expected 12 buckets, got %d", len(got))
	}
	if got[0].Label != "Apr" || got[11].Label != "Mar" {
		t.Errorf("expected oldest-to-newest labels Apr..Mar, got %s..%s", got[0].Label, got[11].Label)
	}
	if got[0].ValueMl != 200 || got[11].ValueMl != 400 {
		t.Errorf("annual values misplaced: %+v", got)
	}
	total := 0
	for _, b := range got {
		total += b.ValueMl
	}
	if total != 600 {
		t.Errorf("out-of-window record not dropped, total %d", total)
	}
}

func TestBucketsDedupFirstWins(t *testing.T) {
	at := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	consumptions := []ConsumptionInput{
		{ID: "c1", VolumeMl: 100, EffectiveMl: fp(100), OccurredAt: at},
		{ID: "c1", VolumeMl: 800, EffectiveMl: fp(800), OccurredAt: at},
	}

	got := Buckets(consumptions, PeriodDaily, at, time.UTC)
	if got[3].ValueMl != 100 {
		t.Errorf("expected dedup to keep first occurrence, got %+v", got[3])
	}
}

func TestBucketsUnknownPeriod(t *testing.T) {
	if got := Buckets(nil, Period("hourly"), time.Now(), time.UTC); got != nil {
		t.Errorf("expected nil for unknown period, got %+v", got)
	}
	if ValidPeriod(Period("hourly")) {
		t.Error("hourly must not validate")
	}
}
