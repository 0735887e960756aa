package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hydroTrackerAPI/internal/activity"
	"hydroTrackerAPI/internal/hydration"
)

type ActivityService struct {
	db *pgxpool.Pool
}

func NewActivityService(db *pgxpool.Pool) *ActivityService {
	return &ActivityService{db: db}
}

func (s *ActivityService) CreateActivity(ctx context.Context, clerkID string, req *activity.CreateActivityRequest) (*activity.Activity, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	occurredAt := time.Now()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	a := &activity.Activity{
		ID:              uuid.New().String(),
		UserID:          userID.String(),
		ActivityType:    req.ActivityType,
		Intensity:       req.Intensity,
		DurationMinutes: req.DurationMinutes,
		OccurredAt:      occurredAt,
	}

	query := `
	INSERT INTO activities (id, user_id, activity_type, intensity, duration_minutes, occurred_at, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	RETURNING created_at, updated_at
	`

	err = s.db.QueryRow(ctx, query, a.ID, userID, a.ActivityType, a.Intensity, a.DurationMinutes, a.OccurredAt).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	a.EstimatedMl = hydration.EstimatePSE(a.ActivityType, a.Intensity, a.DurationMinutes)
	return a, nil
}

// GetTodayActivities returns the viewer's activities for their local
// calendar day. The window is built from local midnight in loc, not from
// the UTC date, so late-evening records stay on the right day.
func (s *ActivityService) GetTodayActivities(ctx context.Context, clerkID string, loc *time.Location) ([]*activity.Activity, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	now := time.Now().In(loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := `
	SELECT id, activity_type, intensity, duration_minutes, occurred_at, created_at, updated_at
	FROM activities
	WHERE user_id = $1
		AND occurred_at >= $2
		AND occurred_at < $3
	ORDER BY occurred_at DESC
	`

	rows, err := s.db.Query(ctx, query, userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}
	defer rows.Close()

	activities := []*activity.Activity{}
	for rows.Next() {
		a := &activity.Activity{UserID: userID.String()}
		err := rows.Scan(&a.ID, &a.ActivityType, &a.Intensity, &a.DurationMinutes, &a.OccurredAt, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.EstimatedMl = hydration.EstimatePSE(a.ActivityType, a.Intensity, a.DurationMinutes)
		activities = append(activities, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return activities, nil
}

func (s *ActivityService) UpdateActivity(ctx context.Context, clerkID string, activityID string, req *activity.UpdateActivityRequest) (*activity.Activity, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	query := `
	UPDATE activities
	SET activity_type = $3,
		intensity = $4,
		duration_minutes = $5,
		occurred_at = COALESCE($6, occurred_at),
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING id, activity_type, intensity, duration_minutes, occurred_at, created_at, updated_at
	`

	a := &activity.Activity{UserID: userID.String()}
	err = s.db.QueryRow(ctx, query, activityID, userID, req.ActivityType, req.Intensity, req.DurationMinutes, req.OccurredAt).
		Scan(&a.ID, &a.ActivityType, &a.Intensity, &a.DurationMinutes, &a.OccurredAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("activity not found")
		}
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}

	a.EstimatedMl = hydration.EstimatePSE(a.ActivityType, a.Intensity, a.DurationMinutes)
	return a, nil
}

func (s *ActivityService) DeleteActivity(ctx context.Context, clerkID string, activityID string) error {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	result, err := s.db.Exec(ctx, `DELETE FROM activities WHERE id = $1 AND user_id = $2`, activityID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Printf("DeleteActivity: no activity %s for user %s", activityID, clerkID)
		return fmt.Errorf("activity not found")
	}

	return nil
}
