package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/storefront-checkout/internal/domain/delivery"
)

var _ delivery.ZoneRepository = (*ZoneRepository)(nil)

const (
	zoneByTypeSQL = `SELECT zone_type, name, delivery_fee, estimated_days
	FROM delivery_zones WHERE zone_type = $1 AND is_active`
	upsertZoneSQL = `INSERT INTO delivery_zones (zone_type, name, delivery_fee, estimated_days)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (zone_type) DO UPDATE SET
		name = EXCLUDED.name,
		delivery_fee = EXCLUDED.delivery_fee,
		estimated_days = EXCLUDED.estimated_days,
		is_active = TRUE`
)

// ZoneRepository implements delivery.ZoneRepository.
type ZoneRepository struct {
	pool *pgxpool.Pool
}

// NewZoneRepository returns a ZoneRepository that uses the given pool.
func NewZoneRepository(pool *pgxpool.Pool) *ZoneRepository {
	return &ZoneRepository{pool: pool}
}

// ZoneByType returns an active zone, or delivery.ErrZoneNotFound.
func (r *ZoneRepository) ZoneByType(ctx context.Context, zoneType string) (*delivery.Zone, error) {
	var z delivery.Zone
	err := r.pool.QueryRow(ctx, zoneByTypeSQL, zoneType).Scan(&z.Type, &z.Name, &z.Fee, &z.EstimatedDays)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrZoneNotFound
		}
		return nil, fmt.Errorf("getting zone %q: %w", zoneType, err)
	}
	return &z, nil
}

// UpsertZone inserts or replaces a zone.
func (r *ZoneRepository) UpsertZone(ctx context.Context, z delivery.Zone) error {
	if _, err := r.pool.Exec(ctx, upsertZoneSQL, z.Type, z.Name, z.Fee, z.EstimatedDays); err != nil {
		return fmt.Errorf("upserting zone %q: %w", z.Type, err)
	}
	return nil
}
