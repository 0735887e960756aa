package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"hydroTrackerAPI/internal/activity"
	"hydroTrackerAPI/internal/consumption"
	"hydroTrackerAPI/internal/hydration"
	"hydroTrackerAPI/internal/user"
	"hydroTrackerAPI/services"
	"hydroTrackerAPI/tests/helpers"
)

// TestDailySummaryFlow walks the write path end to end: provision a user,
// log an activity and a consumption, then check the aggregated day.
// Skipped when no test database is configured.
func TestDailySummaryFlow(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	ctx := context.Background()
	clerkID := "user_test_" + uuid.New().String()

	userService := services.NewUserService(pool)
	premiumService := services.NewPremiumService(pool)
	activityService := services.NewActivityService(pool)
	consumptionService := services.NewConsumptionService(pool, premiumService)

	u, err := userService.CreateUser(ctx, &user.CreateUserRequest{
		ClerkID:  clerkID,
		Email:    "test_flow@example.com",
		Username: "testflow",
	})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	t.Logf("Created user %s", u.ID)

	beverageID := uuid.New().String()
	_, err = pool.Exec(ctx, `INSERT INTO beverages (id, name, hydration_factor, is_water) VALUES ($1, 'Agua', 1.0, true)`, beverageID)
	if err != nil {
		t.Fatalf("Failed to seed beverage: %v", err)
	}
	defer pool.Exec(ctx, `DELETE FROM beverages WHERE id = $1`, beverageID)

	now := time.Now()
	_, err = activityService.CreateActivity(ctx, clerkID, &activity.CreateActivityRequest{
		ActivityType:    "correr",
		Intensity:       "media",
		DurationMinutes: 30,
		OccurredAt:      &now,
	})
	if err != nil {
		t.Fatalf("Failed to create activity: %v", err)
	}

	created, err := consumptionService.CreateConsumption(ctx, clerkID, &consumption.CreateConsumptionRequest{
		BeverageID: beverageID,
		VolumeMl:   500,
		OccurredAt: &now,
	})
	if err != nil {
		t.Fatalf("Failed to create consumption: %v", err)
	}
	if created.EffectiveMl == nil || *created.EffectiveMl != 500 {
		t.Errorf("expected effective 500 for water, got %v", created.EffectiveMl)
	}

	summary, err := consumptionService.DailySummary(ctx, clerkID, hydration.DateOf(now, time.UTC), time.UTC)
	if err != nil {
		t.Fatalf("Failed to build daily summary: %v", err)
	}

	// base goal 2000 + 600 PSE from the run
	if summary.GoalMl != 2600 {
		t.Errorf("expected goal 2600, got %d", summary.GoalMl)
	}
	if summary.TotalEffectiveMl != 500 {
		t.Errorf("expected total 500, got %d", summary.TotalEffectiveMl)
	}
	if summary.Progress != 19 {
		t.Errorf("expected progress 19, got %d", summary.Progress)
	}
	if summary.Completed {
		t.Error("expected day not completed")
	}
	if summary.Count != 1 {
		t.Errorf("expected 1 consumption, got %d", summary.Count)
	}
}
