package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hydroTrackerAPI/internal/user"
)

// defaultDailyGoalMl is the free-tier fixed goal assigned at provisioning.
const defaultDailyGoalMl = 2000

type UserService struct {
	db *pgxpool.Pool
}

func NewUserService(db *pgxpool.Pool) *UserService {
	return &UserService{db: db}
}

func (s *UserService) CreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	u := &user.User{
		ID:          uuid.New().String(),
		ClerkID:     req.ClerkID,
		Email:       req.Email,
		Username:    req.Username,
		ImageURL:    req.ImageURL,
		DailyGoalMl: defaultDailyGoalMl,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	query := `
	INSERT INTO users (id, clerk_id, email, username, image_url, daily_goal_ml, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id, clerk_id, email, username, image_url, daily_goal_ml, is_premium, created_at, updated_at
	`

	err := s.db.QueryRow(
		ctx,
		query,
		u.ID,
		u.ClerkID,
		u.Email,
		u.Username,
		u.ImageURL,
		u.DailyGoalMl,
		u.CreatedAt,
		u.UpdatedAt,
	).Scan(
		&u.ID,
		&u.ClerkID,
		&u.Email,
		&u.Username,
		&u.ImageURL,
		&u.DailyGoalMl,
		&u.IsPremium,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

func (s *UserService) GetUserByClerkID(ctx context.Context, clerkID string) (*user.User, error) {
	query := `
	SELECT id, clerk_id, email, username, image_url, weight_kg, daily_goal_ml, is_premium, premium_until, created_at, updated_at
	FROM users
	WHERE clerk_id = $1
	`

	u := &user.User{}
	err := s.db.QueryRow(ctx, query, clerkID).Scan(
		&u.ID,
		&u.ClerkID,
		&u.Email,
		&u.Username,
		&u.ImageURL,
		&u.WeightKg,
		&u.DailyGoalMl,
		&u.IsPremium,
		&u.PremiumUntil,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// UpdateProfileByClerkID applies the editable profile fields. Weight feeds
// the premium goal formula, daily_goal_ml the free-tier aggregate.
func (s *UserService) UpdateProfileByClerkID(ctx context.Context, clerkID string, req *user.UpdateProfileRequest) (*user.User, error) {
	query := `
	UPDATE users
	SET
		username = COALESCE(NULLIF($2, ''), username),
		image_url = COALESCE(NULLIF($3, ''), image_url),
		weight_kg = COALESCE($4, weight_kg),
		daily_goal_ml = CASE WHEN $5 != 0 THEN $5 ELSE daily_goal_ml END,
		updated_at = NOW()
	WHERE clerk_id = $1
	RETURNING id, clerk_id, email, username, image_url, weight_kg, daily_goal_ml, is_premium, premium_until, created_at, updated_at
	`

	u := &user.User{}
	err := s.db.QueryRow(
		ctx,
		query,
		clerkID,
		req.Username,
		req.ImageURL,
		req.WeightKg,
		req.DailyGoalMl,
	).Scan(
		&u.ID,
		&u.ClerkID,
		&u.Email,
		&u.Username,
		&u.ImageURL,
		&u.WeightKg,
		&u.DailyGoalMl,
		&u.IsPremium,
		&u.PremiumUntil,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return u, nil
}

func (s *UserService) DeleteUserByClerkID(ctx context.Context, clerkID string) error {
	result, err := s.db.Exec(ctx, `DELETE FROM users WHERE clerk_id = $1`, clerkID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}
