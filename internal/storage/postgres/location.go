package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/storefront-checkout/internal/domain/location"
)

var _ location.Repository = (*LocationRepository)(nil)

const (
	listRegionsSQL = `SELECT id, name, code FROM regions WHERE is_active ORDER BY name`
	listCitiesSQL  = `SELECT id, region_id, name, postal_code FROM cities
	WHERE region_id = $1 AND is_active ORDER BY name`
	upsertRegionSQL = `INSERT INTO regions (name, code) VALUES ($1, $2)
	ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, is_active = TRUE
	RETURNING id`
	upsertCitySQL = `INSERT INTO cities (region_id, name, postal_code) VALUES ($1, $2, $3)
	ON CONFLICT (region_id, name) DO UPDATE SET postal_code = EXCLUDED.postal_code, is_active = TRUE`
)

// LocationRepository implements location.Repository.
type LocationRepository struct {
	pool *pgxpool.Pool
}

// NewLocationRepository returns a LocationRepository that uses the given pool.
func NewLocationRepository(pool *pgxpool.Pool) *LocationRepository {
	return &LocationRepository{pool: pool}
}

// ListRegions returns active regions ordered by name.
func (r *LocationRepository) ListRegions(ctx context.Context) ([]location.Region, error) {
	rows, err := r.pool.Query(ctx, listRegionsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing regions: %w", err)
	}
	regions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (location.Region, error) {
		var reg location.Region
		err := row.Scan(&reg.ID, &reg.Name, &reg.Code)
		return reg, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning regions: %w", err)
	}
	return regions, nil
}

// ListCities returns the active cities of a region ordered by name.
func (r *LocationRepository) ListCities(ctx context.Context, regionID int64) ([]location.City, error) {
	rows, err := r.pool.Query(ctx, listCitiesSQL, regionID)
	if err != nil {
		return nil, fmt.Errorf("listing cities of region %d: %w", regionID, err)
	}
	cities, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (location.City, error) {
		var c location.City
		err := row.Scan(&c.ID, &c.RegionID, &c.Name, &c.PostalCode)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning cities: %w", err)
	}
	return cities, nil
}

// UpsertRegion inserts or reactivates a region by code and returns its id.
func (r *LocationRepository) UpsertRegion(ctx context.Context, name, code string) (int64, error) {
	var id int64
	if err := r.pool.QueryRow(ctx, upsertRegionSQL, name, code).Scan(&id); err != nil {
		return 0, fmt.Errorf("upserting region %q: %w", code, err)
	}
	return id, nil
}

// UpsertCity inserts or reactivates a city of a region.
func (r *LocationRepository) UpsertCity(ctx context.Context, c location.City) error {
	if _, err := r.pool.Exec(ctx, upsertCitySQL, c.RegionID, c.Name, c.PostalCode); err != nil {
		return fmt.Errorf("upserting city %q: %w", c.Name, err)
	}
	return nil
}
