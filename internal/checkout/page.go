package checkout

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"github.com/xenking/storefront-checkout/internal/dom"
	"github.com/xenking/storefront-checkout/internal/storefront"
)

// API is the storefront surface the cascade calls. *storefront.Client
// implements it.
type API interface {
	Regions(ctx context.Context) ([]storefront.Region, error)
	Cities(ctx context.Context, regionID string) ([]storefront.City, error)
	DeliveryFee(ctx context.Context, req storefront.FeeRequest) (*storefront.DeliveryFee, error)
	PaymentMethods(ctx context.Context, country string) ([]storefront.Method, error)
	CreateOrder(ctx context.Context, draft *storefront.Draft) (*storefront.OrderResult, error)
}

var _ API = (*storefront.Client)(nil)

// StalePolicy decides what happens to a response that arrives after a newer
// request for the same widget was issued.
type StalePolicy string

const (
	// StaleDrop ignores superseded responses; the last triggered request wins.
	StaleDrop StalePolicy = "drop"
	// StaleApply applies every response as it arrives; the last to resolve wins.
	StaleApply StalePolicy = "apply"
)

// UnmarshalText validates the policy when loaded from config.
func (p *StalePolicy) UnmarshalText(b []byte) error {
	switch v := StalePolicy(b); v {
	case StaleDrop, StaleApply:
		*p = v
		return nil
	case "":
		*p = StaleDrop
		return nil
	default:
		return fmt.Errorf("unknown stale policy %q", v)
	}
}

// sequence issues request tokens for one widget. Only touched on the loop.
type sequence struct {
	policy StalePolicy
	last   uint64
}

func (s *sequence) next() uint64 {
	s.last++
	return s.last
}

// fresh reports whether the response for tok should be applied.
func (s *sequence) fresh(tok uint64) bool {
	return s.policy == StaleApply || tok == s.last
}

// page resolves elements by selector. Missing elements are logged and
// skipped, never fatal.
type page struct {
	doc dom.Document
	lg  *zap.Logger
}

func (p page) el(id string) (dom.Element, bool) {
	el, ok := p.doc.Element(id)
	if !ok {
		p.lg.Debug("Element not found", zap.String("id", id))
	}
	return el, ok
}

func (p page) with(id string, fn func(dom.Element)) {
	if el, ok := p.el(id); ok {
		fn(el)
	}
}

func (p page) value(id string) string {
	if el, ok := p.el(id); ok {
		return el.Value()
	}
	return ""
}

func (p page) text(id string) string {
	if el, ok := p.el(id); ok {
		return el.Text()
	}
	return ""
}

// instruments are the cascade's counters.
type instruments struct {
	loads       metric.Int64Counter
	quotes      metric.Int64Counter
	submissions metric.Int64Counter
}

func newInstruments(mp metric.MeterProvider, lg *zap.Logger) instruments {
	meter := mp.Meter("checkout")
	fallback := noop.NewMeterProvider().Meter("checkout")

	counter := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc))
		if err != nil {
			lg.Warn("Create counter", zap.String("name", name), zap.Error(err))
			c, _ = fallback.Int64Counter(name)
		}
		return c
	}
	return instruments{
		loads:       counter("checkout.loads", "Option list loads by widget and outcome"),
		quotes:      counter("checkout.quotes", "Delivery fee quotes by outcome"),
		submissions: counter("checkout.submissions", "Order submissions by outcome"),
	}
}

func outcome(v string, extra ...attribute.KeyValue) metric.AddOption {
	return metric.WithAttributes(append(extra, attribute.String("outcome", v))...)
}

func widget(v string) attribute.KeyValue {
	return attribute.String("widget", v)
}
