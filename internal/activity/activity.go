package activity

import "time"

type Activity struct {
	ID              string    `json:"id"`
	UserID          string    `json:"-"`
	ActivityType    string    `json:"tipo_actividad"`
	Intensity       string    `json:"intensidad"`
	DurationMinutes int       `json:"duracion_minutos"`
	OccurredAt      time.Time `json:"fecha_hora"`
	// Derived, recomputed on every read, never stored.
	EstimatedMl int       `json:"hidratacion_estimada_ml"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateActivityRequest struct {
	ActivityType    string     `json:"tipo_actividad"`
	Intensity       string     `json:"intensidad"`
	DurationMinutes int        `json:"duracion_minutos"`
	OccurredAt      *time.Time `json:"fecha_hora"`
}

type UpdateActivityRequest struct {
	ActivityType    string     `json:"tipo_actividad"`
	Intensity       string     `json:"intensidad"`
	DurationMinutes int        `json:"duracion_minutos"`
	OccurredAt      *time.Time `json:"fecha_hora"`
}
