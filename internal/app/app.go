// Package app wires the storefront API together and runs it.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/storefront-checkout/internal/domain/delivery"
	"github.com/xenking/storefront-checkout/internal/domain/order"
	"github.com/xenking/storefront-checkout/internal/handler"
	"github.com/xenking/storefront-checkout/internal/storage/postgres"
	"github.com/xenking/storefront-checkout/pkg/health"
	"github.com/xenking/storefront-checkout/pkg/httpmiddleware"
)

// Run builds every dependency, serves HTTP until ctx is done, then drains and
// shuts down.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return errors.Wrap(err, "create db pool")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	locations := postgres.NewLocationRepository(pool)
	zones := postgres.NewZoneRepository(pool)
	carts := postgres.NewCartRepository(pool)
	orders := postgres.NewOrderRepository(pool)

	fees := delivery.NewService(zones, delivery.WithLogger(lg.Named("delivery")))
	orderService := order.NewService(carts, orders)

	probes := health.New(health.WithLogger(lg.Named("health")))
	probes.AddReadinessCheck(health.Check{Name: "postgres", Timeout: 5 * time.Second, Func: health.PingCheck(pool)})
	probes.AddLivenessCheck(health.Check{Name: "goroutines", Func: health.GoroutineCountCheck(cfg.Health.MaxGoroutines)})
	probes.AddLivenessCheck(health.Check{Name: "gc_pause", Func: health.GCMaxPauseCheck(time.Second)})
	probes.Start(ctx, cfg.Health.Interval)
	defer probes.Stop()

	api := http.NewServeMux()
	handler.New(locations, fees, orderService, carts).Register(api)

	root := http.NewServeMux()
	root.HandleFunc("GET /livez", probes.LiveEndpoint)
	root.HandleFunc("GET /readyz", probes.ReadyEndpoint)
	root.Handle("/", httpmiddleware.Wrap(api,
		httpmiddleware.RequestID(),
		httpmiddleware.InjectLogger(lg),
		httpmiddleware.Recovery(),
		httpmiddleware.LogRequests(),
		httpmiddleware.CORS(cfg.CORS),
		httpmiddleware.RateLimit(ctx, httpmiddleware.RateLimitConfig{
			Max:         cfg.RateLimit.Max,
			Window:      cfg.RateLimit.Window,
			SafeMethods: cfg.RateLimit.Reads,
		}),
		httpmiddleware.Session(cfg.Session),
		httpmiddleware.CSRF(cfg.CSRF),
	))

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: otelhttp.NewHandler(root, "storefront-api",
			otelhttp.WithTracerProvider(m.TracerProvider()),
			otelhttp.WithMeterProvider(m.MeterProvider()),
		),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("Server listening", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		probes.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()
		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown")
		}
		return nil
	})

	probes.SetReady(true)
	return g.Wait()
}
