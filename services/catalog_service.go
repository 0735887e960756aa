package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"hydroTrackerAPI/internal/beverage"
	"hydroTrackerAPI/internal/container"
)

// CatalogService serves the beverage and container catalogs that feed form
// defaults and the per-beverage classification badge.
type CatalogService struct {
	db *pgxpool.Pool
}

func NewCatalogService(db *pgxpool.Pool) *CatalogService {
	return &CatalogService{db: db}
}

// ListBeverages returns the catalog visible to the caller. Premium-only
// beverages are filtered out for free users.
func (s *CatalogService) ListBeverages(ctx context.Context, clerkID string) ([]*beverage.Beverage, error) {
	var isPremium bool
	err := s.db.QueryRow(ctx, `SELECT is_premium FROM users WHERE clerk_id = $1`, clerkID).Scan(&isPremium)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	query := `
	SELECT id, name, hydration_factor, is_water, is_premium_only
	FROM beverages
	WHERE NOT is_premium_only OR $1
	ORDER BY is_water DESC, name
	`

	rows, err := s.db.Query(ctx, query, isPremium)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch beverages: %w", err)
	}
	defer rows.Close()

	beverages := []*beverage.Beverage{}
	for rows.Next() {
		b := &beverage.Beverage{}
		err := rows.Scan(&b.ID, &b.Name, &b.HydrationFactor, &b.IsWater, &b.IsPremiumOnly)
		if err != nil {
			return nil, fmt.Errorf("failed to scan beverage: %w", err)
		}
		beverages = append(beverages, b.WithClassification())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return beverages, nil
}

func (s *CatalogService) ListContainers(ctx context.Context) ([]*container.Container, error) {
	query := `SELECT id, name, volume_ml, COALESCE(color, '') FROM containers ORDER BY volume_ml`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch containers: %w", err)
	}
	defer rows.Close()

	containers := []*container.Container{}
	for rows.Next() {
		c := &container.Container{}
		err := rows.Scan(&c.ID, &c.Name, &c.VolumeMl, &c.Color)
		if err != nil {
			return nil, fmt.Errorf("failed to scan container: %w", err)
		}
		containers = append(containers, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return containers, nil
}
