package container

// Container is a preset pour size used to prefill a consumption's volume.
// It never enters any calculation.
type Container struct {
	ID       string  `json:"id"`
	Name     string  `json:"nombre"`
	VolumeMl float64 `json:"volumen_ml"`
	Color    string  `json:"color,omitempty"`
}
