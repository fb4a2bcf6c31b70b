// Command checkout-cli places an order against a running storefront by
// driving the checkout cascade headlessly: it loads the page state, walks the
// country, region and city selects, picks a payment method and submits.
package main

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/xenking/storefront-checkout/internal/storefront"
)

func main() {
	app.Run(func(ctx context.Context, lg *zap.Logger, m *app.Telemetry) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		hc, err := httpClient(cfg, m)
		if err != nil {
			return err
		}
		client, err := storefront.NewClient(cfg.BaseURL,
			storefront.WithHTTPClient(hc),
			storefront.WithRoutes(cfg.Routes),
			storefront.WithTracerProvider(m.TracerProvider()),
		)
		if err != nil {
			return errors.Wrap(err, "create client")
		}

		d := &driver{cfg: cfg, client: client, lg: lg, mp: m.MeterProvider()}
		o, err := d.Run(ctx)
		if err != nil {
			return err
		}
		lg.Info("Order placed",
			zap.String("order_number", o.OrderNumber),
			zap.String("status", o.Status),
			zap.String("city", o.City),
			zap.String("country", o.Country),
			zap.String("subtotal", o.Subtotal),
			zap.String("shipping_cost", o.ShippingCost),
			zap.String("total", o.Total),
			zap.Int("items", len(o.Items)),
		)
		return nil
	})
}

// httpClient keeps cookies across calls so the session and CSRF cookies set
// by the first response are replayed. A configured session is preset.
func httpClient(cfg *Config, m *app.Telemetry) (*http.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "cookie jar")
	}
	if cfg.Session != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, errors.Wrap(err, "parse base url")
		}
		jar.SetCookies(u, []*http.Cookie{{Name: cfg.SessionCookie, Value: cfg.Session, Path: "/"}})
	}
	return &http.Client{
		Jar: jar,
		Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithTracerProvider(m.TracerProvider()),
			otelhttp.WithMeterProvider(m.MeterProvider()),
		),
	}, nil
}
