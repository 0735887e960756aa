package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hydroTrackerAPI/internal/premium"
)

// mlPerKg is the personalized-goal formula: 35 ml of effective hydration
// per kg of body weight per day.
const mlPerKg = 35.0

var ErrPremiumRequired = errors.New("premium required")

type PremiumService struct {
	db *pgxpool.Pool
}

func NewPremiumService(db *pgxpool.Pool) *PremiumService {
	return &PremiumService{db: db}
}

// GetPersonalizedGoal serves GET /premium/goal/. Free users get
// ErrPremiumRequired; premium users without a recorded weight fall back to
// their configured goal rather than a 404.
func (s *PremiumService) GetPersonalizedGoal(ctx context.Context, clerkID string) (*premium.Goal, error) {
	var isPremium bool
	var weightKg *float64
	var configuredGoal int

	query := `SELECT is_premium, weight_kg, daily_goal_ml FROM users WHERE clerk_id = $1`
	err := s.db.QueryRow(ctx, query, clerkID).Scan(&isPremium, &weightKg, &configuredGoal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !isPremium {
		return nil, ErrPremiumRequired
	}

	if weightKg == nil {
		return &premium.Goal{GoalMl: configuredGoal, Formula: "configured"}, nil
	}

	return &premium.Goal{
		GoalMl:   int(math.Round(*weightKg * mlPerKg)),
		WeightKg: weightKg,
		Formula:  fmt.Sprintf("%.0f ml/kg", mlPerKg),
	}, nil
}

// BaseGoalMl is what the daily aggregate starts from: the personalized
// formula when premium and weight are available, the configured goal
// otherwise. A missing or zero goal is left as-is; the aggregator treats
// it as the sentinel "no real goal configured".
func (s *PremiumService) BaseGoalMl(ctx context.Context, userID uuid.UUID) (int, error) {
	var isPremium bool
	var weightKg *float64
	var configuredGoal int

	query := `SELECT is_premium, weight_kg, daily_goal_ml FROM users WHERE id = $1`
	err := s.db.QueryRow(ctx, query, userID).Scan(&isPremium, &weightKg, &configuredGoal)
	if err != nil {
		return 0, fmt.Errorf("failed to get user goal: %w", err)
	}

	if isPremium && weightKg != nil {
		return int(math.Round(*weightKg * mlPerKg)), nil
	}
	return configuredGoal, nil
}
