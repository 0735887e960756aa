package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hydroTrackerAPI/internal/beverage"
	"hydroTrackerAPI/internal/consumption"
	"hydroTrackerAPI/internal/container"
	"hydroTrackerAPI/internal/hydration"
)

type ConsumptionService struct {
	db             *pgxpool.Pool
	premiumService *PremiumService
}

func NewConsumptionService(db *pgxpool.Pool, premiumService *PremiumService) *ConsumptionService {
	return &ConsumptionService{db: db, premiumService: premiumService}
}

func (s *ConsumptionService) CreateConsumption(ctx context.Context, clerkID string, req *consumption.CreateConsumptionRequest) (*consumption.Consumption, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	bev, err := s.getBeverage(ctx, req.BeverageID)
	if err != nil {
		return nil, err
	}

	occurredAt := time.Now()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	// The effective column is server-authoritative: written once from the
	// beverage's factor at mutation time.
	effective := float64(hydration.EffectiveMl(req.VolumeMl, bev.HydrationFactor))

	c := &consumption.Consumption{
		ID:          uuid.New().String(),
		UserID:      userID.String(),
		BeverageID:  bev.ID,
		ContainerID: req.ContainerID,
		VolumeMl:    req.VolumeMl,
		EffectiveMl: &effective,
		OccurredAt:  occurredAt,
	}

	query := `
	INSERT INTO consumptions (id, user_id, beverage_id, container_id, volume_ml, effective_ml, occurred_at, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	RETURNING created_at, updated_at
	`

	err = s.db.QueryRow(ctx, query, c.ID, userID, bev.ID, req.ContainerID, c.VolumeMl, effective, occurredAt).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumption: %w", err)
	}

	c.Beverage = bev.WithClassification()
	if req.ContainerID != nil {
		c.Container, _ = s.getContainer(ctx, *req.ContainerID)
	}
	return c, nil
}

func (s *ConsumptionService) UpdateConsumption(ctx context.Context, clerkID string, consumptionID string, req *consumption.UpdateConsumptionRequest) (*consumption.Consumption, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	bev, err := s.getBeverage(ctx, req.BeverageID)
	if err != nil {
		return nil, err
	}

	effective := float64(hydration.EffectiveMl(req.VolumeMl, bev.HydrationFactor))

	query := `
	UPDATE consumptions
	SET beverage_id = $3,
		container_id = $4,
		volume_ml = $5,
		effective_ml = $6,
		occurred_at = COALESCE($7, occurred_at),
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING id, container_id, volume_ml, effective_ml, occurred_at, created_at, updated_at
	`

	c := &consumption.Consumption{UserID: userID.String(), BeverageID: bev.ID}
	err = s.db.QueryRow(ctx, query, consumptionID, userID, bev.ID, req.ContainerID, req.VolumeMl, effective, req.OccurredAt).
		Scan(&c.ID, &c.ContainerID, &c.VolumeMl, &c.EffectiveMl, &c.OccurredAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("consumption not found")
		}
		return nil, fmt.Errorf("failed to update consumption: %w", err)
	}

	c.Beverage = bev.WithClassification()
	if c.ContainerID != nil {
		c.Container, _ = s.getContainer(ctx, *c.ContainerID)
	}
	return c, nil
}

func (s *ConsumptionService) DeleteConsumption(ctx context.Context, clerkID string, consumptionID string) error {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	result, err := s.db.Exec(ctx, `DELETE FROM consumptions WHERE id = $1 AND user_id = $2`, consumptionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete consumption: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Printf("DeleteConsumption: no consumption %s for user %s", consumptionID, clerkID)
		return fmt.Errorf("consumption not found")
	}

	return nil
}

// ListConsumptions returns a page of records in [from, to), newest first,
// with the beverage and container nested for form prefill.
func (s *ConsumptionService) ListConsumptions(ctx context.Context, clerkID string, from, to time.Time, page, pageSize int) (*consumption.Page, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	var total int
	countQuery := `
	SELECT COUNT(*)
	FROM consumptions
	WHERE user_id = $1 AND occurred_at >= $2 AND occurred_at < $3
	`
	if err := s.db.QueryRow(ctx, countQuery, userID, from, to).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count consumptions: %w", err)
	}

	query := `
	SELECT
		c.id,
		c.beverage_id,
		c.container_id,
		c.volume_ml,
		c.effective_ml,
		c.occurred_at,
		c.created_at,
		c.updated_at,
		b.name,
		b.hydration_factor,
		b.is_water,
		b.is_premium_only,
		r.name,
		r.volume_ml,
		r.color
	FROM consumptions c
	LEFT JOIN beverages b ON b.id = c.beverage_id
	LEFT JOIN containers r ON r.id = c.container_id
	WHERE c.user_id = $1 AND c.occurred_at >= $2 AND c.occurred_at < $3
	ORDER BY c.occurred_at DESC
	LIMIT $4 OFFSET $5
	`

	rows, err := s.db.Query(ctx, query, userID, from, to, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch consumptions: %w", err)
	}
	defer rows.Close()

	results := []*consumption.Consumption{}
	for rows.Next() {
		c := &consumption.Consumption{UserID: userID.String()}
		var bevName *string
		var bevFactor *float64
		var bevWater, bevPremium *bool
		var contName *string
		var contVolume *float64
		var contColor *string

		err := rows.Scan(
			&c.ID,
			&c.BeverageID,
			&c.ContainerID,
			&c.VolumeMl,
			&c.EffectiveMl,
			&c.OccurredAt,
			&c.CreatedAt,
			&c.UpdatedAt,
			&bevName,
			&bevFactor,
			&bevWater,
			&bevPremium,
			&contName,
			&contVolume,
			&contColor,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan consumption: %w", err)
		}

		if bevName != nil && bevFactor != nil {
			b := &beverage.Beverage{
				ID:              c.BeverageID,
				Name:            *bevName,
				HydrationFactor: *bevFactor,
			}
			if bevWater != nil {
				b.IsWater = *bevWater
			}
			if bevPremium != nil {
				b.IsPremiumOnly = *bevPremium
			}
			c.Beverage = b.WithClassification()
		}
		if c.ContainerID != nil && contName != nil && contVolume != nil {
			c.Container = &container.Container{ID: *c.ContainerID, Name: *contName, VolumeMl: *contVolume}
			if contColor != nil {
				c.Container.Color = *contColor
			}
		}

		results = append(results, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return &consumption.Page{
		Results:  results,
		Count:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// DailySummary aggregates one viewer-local calendar day: consumptions feed
// the intake total, activities raise the goal, the premium formula overrides
// the configured base goal when it applies.
func (s *ConsumptionService) DailySummary(ctx context.Context, clerkID string, target hydration.Date, loc *time.Location) (*consumption.DailySummary, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	dayStart := time.Date(target.Year, target.Month, target.Day, 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	inputs, rawTotal, err := s.consumptionInputs(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	activities, err := s.activityInputs(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	baseGoal, err := s.premiumService.BaseGoalMl(ctx, userID)
	if err != nil {
		return nil, err
	}

	state := hydration.AggregateDay(baseGoal, activities, inputs, target, loc)

	return &consumption.DailySummary{
		Date:             dayStart.Format("2006-01-02"),
		TotalMl:          rawTotal,
		TotalEffectiveMl: state.TotalEffectiveMl,
		GoalMl:           state.EffectiveGoalMl,
		PSEAdjustmentMl:  state.TotalPSEMl,
		Progress:         state.Progress,
		Completed:        state.Completed,
		Count:            len(inputs),
	}, nil
}

// Trends buckets the window of records the chart period calls for. Daily,
// weekly and monthly cover the current day/week/month; annual covers the
// trailing 12 calendar months.
func (s *ConsumptionService) Trends(ctx context.Context, clerkID string, period hydration.Period, loc *time.Location) ([]hydration.TrendBucket, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	now := time.Now().In(loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	var from, to time.Time
	switch period {
	case hydration.PeriodDaily:
		from, to = dayStart, dayStart.AddDate(0, 0, 1)
	case hydration.PeriodWeekly:
		from = dayStart.AddDate(0, 0, -((int(now.Weekday()) + 6) % 7))
		to = from.AddDate(0, 0, 7)
	case hydration.PeriodMonthly:
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		to = from.AddDate(0, 1, 0)
	case hydration.PeriodAnnual:
		to = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, 1, 0)
		from = to.AddDate(0, -12, 0)
	default:
		return nil, fmt.Errorf("unknown period %q", period)
	}

	inputs, _, err := s.consumptionInputs(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	return hydration.Buckets(inputs, period, now, loc), nil
}

// consumptionInputs fetches the calculation slice of the rows in [from, to)
// plus the raw (pre-factor) volume total for the same window.
func (s *ConsumptionService) consumptionInputs(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]hydration.ConsumptionInput, int, error) {
	query := `
	SELECT c.id, c.volume_ml, c.effective_ml, c.occurred_at, b.hydration_factor
	FROM consumptions c
	LEFT JOIN beverages b ON b.id = c.beverage_id
	WHERE c.user_id = $1 AND c.occurred_at >= $2 AND c.occurred_at < $3
	`

	rows, err := s.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch consumptions: %w", err)
	}
	defer rows.Close()

	inputs := []hydration.ConsumptionInput{}
	rawTotal := 0.0
	for rows.Next() {
		var in hydration.ConsumptionInput
		if err := rows.Scan(&in.ID, &in.VolumeMl, &in.EffectiveMl, &in.OccurredAt, &in.Factor); err != nil {
			return nil, 0, fmt.Errorf("failed to scan consumption: %w", err)
		}
		inputs = append(inputs, in)
		rawTotal += in.VolumeMl
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return inputs, int(math.Round(rawTotal)), nil
}

func (s *ConsumptionService) activityInputs(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]hydration.ActivityInput, error) {
	query := `
	SELECT id, activity_type, intensity, duration_minutes, occurred_at
	FROM activities
	WHERE user_id = $1 AND occurred_at >= $2 AND occurred_at < $3
	`

	rows, err := s.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}
	defer rows.Close()

	inputs := []hydration.ActivityInput{}
	for rows.Next() {
		var in hydration.ActivityInput
		if err := rows.Scan(&in.ID, &in.Type, &in.Intensity, &in.DurationMinutes, &in.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		inputs = append(inputs, in)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return inputs, nil
}

func (s *ConsumptionService) getBeverage(ctx context.Context, beverageID string) (*beverage.Beverage, error) {
	b := &beverage.Beverage{ID: beverageID}
	query := `SELECT name, hydration_factor, is_water, is_premium_only FROM beverages WHERE id = $1`
	err := s.db.QueryRow(ctx, query, beverageID).Scan(&b.Name, &b.HydrationFactor, &b.IsWater, &b.IsPremiumOnly)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("beverage not found")
		}
		return nil, fmt.Errorf("failed to get beverage: %w", err)
	}
	return b, nil
}

func (s *ConsumptionService) getContainer(ctx context.Context, containerID string) (*container.Container, error) {
	c := &container.Container{ID: containerID}
	var color *string
	query := `SELECT name, volume_ml, color FROM containers WHERE id = $1`
	err := s.db.QueryRow(ctx, query, containerID).Scan(&c.Name, &c.VolumeMl, &color)
	if err != nil {
		return nil, fmt.Errorf("failed to get container: %w", err)
	}
	if color != nil {
		c.Color = *color
	}
	return c, nil
}
