package premium

// Goal is the personalized daily target served to premium users. The
// formula string tells the client how meta_ml was derived so it can be
// surfaced in settings.
type Goal struct {
	GoalMl   int      `json:"meta_ml"`
	WeightKg *float64 `json:"peso_kg,omitempty"`
	Formula  string   `json:"formula"`
}
