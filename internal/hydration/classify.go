package hydration

// Classification is the qualitative hydration-quality band for a beverage,
// used for at-a-glance coloring and advisory text.
type Classification struct {
	Tier     int    `json:"tier"`
	Label    string `json:"label"`
	Color    string `json:"color"`
	Symbol   string `json:"symbol"`
	Advisory string `json:"advisory"`
}

// Classify maps a hydration factor to one of five tiers. Thresholds are
// checked highest first with >=, so boundary values land on the better tier.
// Anything below 0.80, including out-of-range garbage, is tier 5.
func Classify(hydrationFactor float64) Classification {
	switch {
	case hydrationFactor >= 1.15:
		return Classification{1, "Very Good", "#16a34a", "++", "Helps retain fluids"}
	case hydrationFactor >= 1.05:
		return Classification{2, "Good", "#84cc16", "+", "Hydration superior to water"}
	case hydrationFactor >= 0.95:
		return Classification{3, "Neutral", "#38bdf8", "=", "Similar to water"}
	case hydrationFactor >= 0.80:
		return Classification{4, "Fair", "#f59e0b", "-", "Hydrates little, needs light compensation"}
	default:
		return Classification{5, "Poor", "#ef4444", "--", "Dehydrates more than it contributes, needs compensation"}
	}
}
