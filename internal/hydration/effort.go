// Package hydration holds the pure calculation rules for the tracker:
// effort-to-sweat estimation, effective hydration, beverage classification,
// daily goal aggregation and trend bucketing. It has no dependencies so the
// same rules can be exercised from services, handlers and tests alike.
package hydration

// OnFallback, when set, is called every time a lookup misses the tables and
// a default is used instead. kind is "activity_type" or "intensity". Wired
// to a Prometheus counter in main; unknown values stay invisible to users.
var OnFallback func(kind, value string)

// DefaultCoefficient is used for activity types the table doesn't know yet,
// e.g. categories added server-side before this binary was updated.
const DefaultCoefficient = 13.3

// Base sweat-rate coefficients in ml per minute at medium intensity.
var baseCoefficients = map[string]float64{
	"correr":          20.0,
	"ciclismo":        16.7,
	"natacion":        18.3,
	"deporte_equipo":  16.7,
	"gimnasio":        12.5,
	"hiit":            25.0,
	"raqueta":         15.0,
	"baile_aerobico":  13.3,
	"caminata_rapida": 8.3,
	"pilates":         6.7,
	"caminar":         4.2,
	"yoga_hatha":      5.0,
	"yoga_bikram":     25.0,
}

var intensityMultipliers = map[string]float64{
	"baja":  0.8,
	"media": 1.0,
	"alta":  1.2,
}

// Coefficient returns the base sweat-rate coefficient for an activity type.
func Coefficient(activityType string) float64 {
	if c, ok := baseCoefficients[activityType]; ok {
		return c
	}
	if OnFallback != nil {
		OnFallback("activity_type", activityType)
	}
	return DefaultCoefficient
}

// Multiplier returns the intensity multiplier, 1.0 for unknown intensities.
func Multiplier(intensity string) float64 {
	if m, ok := intensityMultipliers[intensity]; ok {
		return m
	}
	if OnFallback != nil {
		OnFallback("intensity", intensity)
	}
	return 1.0
}

// KnownActivityTypes lists the table keys, mainly for catalog endpoints.
func KnownActivityTypes() []string {
	types := make([]string, 0, len(baseCoefficients))
	for t := range baseCoefficients {
		types = append(types, t)
	}
	return types
}
