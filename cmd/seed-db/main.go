// Command seed-db loads the delivery regions, cities and zone tariffs, and
// optionally a demo cart.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"slices"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront-checkout/internal/domain/cart"
	"github.com/xenking/storefront-checkout/internal/domain/delivery"
	"github.com/xenking/storefront-checkout/internal/domain/location"
	"github.com/xenking/storefront-checkout/internal/storage/postgres"
)

// tariffs are the zones with their own price. Other zone types fall back to
// the catch-all zone.
var tariffs = []delivery.Zone{
	{Type: "abidjan", Name: "Abidjan et environs", Fee: decimal.NewFromInt(2500), EstimatedDays: 1},
	{Type: "bassam", Name: "Grand-Bassam", Fee: decimal.NewFromInt(3000), EstimatedDays: 2},
	{Type: delivery.ZoneOther, Name: "Autres villes de Côte d'Ivoire", Fee: decimal.NewFromInt(3000), EstimatedDays: 3},
}

var demoCart = []cart.Item{
	{ProductName: "Pagne wax 6 yards", Quantity: 2, UnitPrice: decimal.NewFromInt(12500)},
	{ProductName: "Sac en raphia", Quantity: 1, UnitPrice: decimal.NewFromInt(8000)},
}

func main() {
	var (
		databaseURL string
		demoSession string
	)
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&demoSession, "demo-session", "", "session id to fill with a demo cart")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, demoSession); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, demoSession string) error {
	slog.Info("connecting to database")
	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")
	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := seedLocations(ctx, postgres.NewLocationRepository(pool)); err != nil {
		return errors.Wrap(err, "seed locations")
	}
	if err := seedZones(ctx, postgres.NewZoneRepository(pool)); err != nil {
		return errors.Wrap(err, "seed zones")
	}
	if demoSession != "" {
		if err := seedCart(ctx, postgres.NewCartRepository(pool), demoSession); err != nil {
			return errors.Wrap(err, "seed demo cart")
		}
	}
	return nil
}

func seedLocations(ctx context.Context, repo *postgres.LocationRepository) error {
	cities := 0
	for _, r := range regions {
		id, err := repo.UpsertRegion(ctx, r.Name, r.Code)
		if err != nil {
			return errors.Wrapf(err, "upsert region %s", r.Name)
		}
		for _, name := range r.Cities {
			if err := repo.UpsertCity(ctx, location.City{RegionID: id, Name: name}); err != nil {
				return errors.Wrapf(err, "upsert city %s", name)
			}
			cities++
		}
	}
	slog.Info("upserted locations", slog.Int("regions", len(regions)), slog.Int("cities", cities))
	return nil
}

func seedZones(ctx context.Context, repo *postgres.ZoneRepository) error {
	priced := make([]string, 0, len(tariffs))
	for _, z := range tariffs {
		if err := repo.UpsertZone(ctx, z); err != nil {
			return errors.Wrapf(err, "upsert zone %s", z.Type)
		}
		priced = append(priced, z.Type)
		slog.Info("upserted zone", slog.String("zone", z.Type), slog.String("fee", z.Fee.String()))
	}
	for _, z := range delivery.Zones() {
		if !slices.Contains(priced, z) {
			slog.Info("zone priced as catch-all", slog.String("zone", z))
		}
	}
	return nil
}

func seedCart(ctx context.Context, repo *postgres.CartRepository, session string) error {
	items, err := repo.Items(ctx, session)
	if err != nil {
		return err
	}
	if len(items) > 0 {
		slog.Info("demo cart already filled", slog.String("session", session), slog.Int("items", len(items)))
		return nil
	}
	for _, it := range demoCart {
		if err := repo.AddItem(ctx, session, it); err != nil {
			return err
		}
	}
	slog.Info("filled demo cart", slog.String("session", session), slog.String("subtotal", cart.Subtotal(demoCart).String()))
	return nil
}
