package beverage

import "hydroTrackerAPI/internal/hydration"

// Beverage catalog entry. HydrationFactor is authoritative: classification
// and effective hydration are always derived from it, never stored.
type Beverage struct {
	ID              string  `json:"id"`
	Name            string  `json:"nombre"`
	HydrationFactor float64 `json:"factor_hidratacion"`
	IsWater         bool    `json:"es_agua"`
	IsPremiumOnly   bool    `json:"solo_premium"`

	Classification *hydration.Classification `json:"clasificacion,omitempty"`
}

// WithClassification fills the derived tier from the hydration factor.
func (b *Beverage) WithClassification() *Beverage {
	c := hydration.Classify(b.HydrationFactor)
	b.Classification = &c
	return b
}
