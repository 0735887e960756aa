package consumption

import (
	"time"

	"hydroTrackerAPI/internal/beverage"
	"hydroTrackerAPI/internal/container"
)

type Consumption struct {
	ID          string               `json:"id"`
	UserID      string               `json:"-"`
	Beverage    *beverage.Beverage   `json:"bebida,omitempty"`
	BeverageID  string               `json:"bebida_id"`
	Container   *container.Container `json:"recipiente,omitempty"`
	ContainerID *string              `json:"recipiente_id,omitempty"`
	VolumeMl    float64              `json:"cantidad_ml"`
	// Written at create/update time from the beverage's factor; optional on
	// the wire because older rows may predate the column.
	EffectiveMl *float64  `json:"cantidad_hidratacion_efectiva_ml,omitempty"`
	OccurredAt  time.Time `json:"fecha_hora"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateConsumptionRequest struct {
	BeverageID  string     `json:"bebida_id"`
	ContainerID *string    `json:"recipiente_id"`
	VolumeMl    float64    `json:"cantidad_ml"`
	OccurredAt  *time.Time `json:"fecha_hora"`
}

type UpdateConsumptionRequest struct {
	BeverageID  string     `json:"bebida_id"`
	ContainerID *string    `json:"recipiente_id"`
	VolumeMl    float64    `json:"cantidad_ml"`
	OccurredAt  *time.Time `json:"fecha_hora"`
}

type Page struct {
	Results  []*Consumption `json:"results"`
	Count    int            `json:"count"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// DailySummary is the aggregate the dashboard renders for one calendar day.
type DailySummary struct {
	Date             string `json:"fecha"`
	TotalMl          int    `json:"total_ml"`
	TotalEffectiveMl int    `json:"total_hidratacion_efectiva_ml"`
	GoalMl           int    `json:"meta_ml"`
	PSEAdjustmentMl  int    `json:"ajuste_actividad_ml"`
	Progress         int    `json:"progreso_porcentaje"`
	Completed        bool   `json:"completada"`
	Count            int    `json:"cantidad_consumos"`
}
