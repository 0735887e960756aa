package hydration

import "testing"

func TestEstimatePSERunning(t *testing.T) {
	// 30 min medium run: 30 * 20.0 * 1.0
	got := EstimatePSE("correr", "media", 30)
	if got != 600 {
		t.Errorf("expected 600, got %d", got)
	}
}

func TestEstimatePSEHathaYoga(t *testing.T) {
	// 60 min high-intensity hatha: 60 * 5.0 * 1.2
	got := EstimatePSE("yoga_hatha", "alta", 60)
	if got != 360 {
		t.Errorf("expected 360, got %d", got)
	}
}

func TestEstimateMonotonicInDuration(t *testing.T) {
	for _, typ := range KnownActivityTypes() {
		for _, intensity := range []string{"baja", "media", "alta"} {
			prev := 0
			for d := 1; d <= 1440; d += 37 {
				got := EstimatePSE(typ, intensity, d)
				if got < prev {
					t.Fatalf("%s/%s: estimate decreased from %d to %d at duration %d", typ, intensity, prev, got, d)
				}
				prev = got
			}
		}
	}
}

func TestEstimateIntensityOrdering(t *testing.T) {
	for _, typ := range KnownActivityTypes() {
		for _, d := range []int{1, 30, 90, 1440} {
			low := EstimatePSE(typ, "baja", d)
			med := EstimatePSE(typ, "media", d)
			high := EstimatePSE(typ, "alta", d)
			if high < med || med < low {
				t.Fatalf("%s duration %d: expected alta >= media >= baja, got %d/%d/%d", typ, d, high, med, low)
			}
		}
	}
}

func TestEstimateUnknownLookupsUseDefaults(t *testing.T) {
	var fallbacks []string
	OnFallback = func(kind, value string) { fallbacks = append(fallbacks, kind+"="+value) }
	defer func() { OnFallback = nil }()

	got := EstimatePSE("escalada", "extrema", 60)
	want := 798 // 60 * 13.3 * 1.0
	if got != want {
		t.Errorf("expected default estimate %d, got %d", want, got)
	}
	if len(fallbacks) != 2 {
		t.Errorf("expected 2 fallback observations, got %v", fallbacks)
	}
}

func TestEffectiveMl(t *testing.T) {
	if got := EffectiveMl(250, 1.2); got != 300 {
		t.Errorf("expected 300, got %d", got)
	}
	if got := EffectiveMl(333, 1.0); got != 333 {
		t.Errorf("expected 333, got %d", got)
	}
	// half rounds away from zero
	if got := EffectiveMl(250, 0.95); got != 238 {
		t.Errorf("expected 238, got %d", got)
	}
}
