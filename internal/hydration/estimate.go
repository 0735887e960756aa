package hydration

import "math"

// EstimatePSE returns the estimated incremental hydration need, in whole
// milliliters, for an activity: duration * type coefficient * intensity
// multiplier. Duration is expected to already be validated to [1,1440];
// the estimator itself never errors.
func EstimatePSE(activityType, intensity string, durationMinutes int) int {
	return roundMl(float64(durationMinutes) * Coefficient(activityType) * Multiplier(intensity))
}

// EffectiveMl converts a poured volume into its hydration contribution using
// the beverage's hydration factor (1.0 = plain water).
func EffectiveMl(volumeMl, hydrationFactor float64) int {
	return roundMl(volumeMl * hydrationFactor)
}

// roundMl rounds half away from zero. Every ml value leaving this package
// goes through it so displayed numbers agree everywhere.
func roundMl(v float64) int {
	return int(math.Round(v))
}
