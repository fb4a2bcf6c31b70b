package main

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/xenking/storefront-checkout/internal/checkout"
	"github.com/xenking/storefront-checkout/internal/dom"
	"github.com/xenking/storefront-checkout/internal/domain/destination"
	"github.com/xenking/storefront-checkout/internal/session"
	"github.com/xenking/storefront-checkout/internal/storefront"
	"github.com/xenking/storefront-checkout/internal/uiloop"
)

// timerSlack covers the gap between a loop timer's deadline and its task
// reaching the queue.
const timerSlack = 50 * time.Millisecond

// host stands in for the browser window. Alerts and the final navigation are
// handed to the driver over channels.
type host struct {
	lg        *zap.Logger
	alerts    chan string
	navigated chan string
}

func newHost(lg *zap.Logger) *host {
	return &host{
		lg:        lg,
		alerts:    make(chan string, 8),
		navigated: make(chan string, 1),
	}
}

func (h *host) Alert(message string) {
	h.lg.Warn("Alert", zap.String("message", message))
	select {
	case h.alerts <- message:
	default:
	}
}

func (h *host) Navigate(url string) {
	h.lg.Debug("Navigate", zap.String("url", url))
	select {
	case h.navigated <- url:
	default:
	}
}

// driver plays one shopper through the checkout page.
type driver struct {
	cfg    *Config
	client *storefront.Client
	lg     *zap.Logger
	mp     metric.MeterProvider
}

// Run places the order and returns it as the confirmation page shows it.
func (d *driver) Run(ctx context.Context) (*storefront.OrderDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	b, err := d.client.Checkout(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load checkout")
	}
	sel := d.cfg.Checkout.Selectors
	doc := checkout.NewPage(sel, b)
	sess := session.New(doc)
	d.client.SetTokenSource(sess)

	loop := uiloop.New(uiloop.WithLogger(d.lg))
	loopCtx, stop := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = loop.Run(loopCtx)
	}()
	defer func() {
		stop()
		<-done
	}()

	var number string
	h := newHost(d.lg)
	o := checkout.New(loop, d.client, sess, h, d.cfg.Checkout,
		checkout.WithLogger(d.lg),
		checkout.WithMeterProvider(d.mp),
		checkout.WithOrderPage(func(n string) string {
			number = n
			return d.cfg.Routes.OrderPage(n)
		}),
	)
	p := &pageDriver{loop: loop, doc: doc}

	if err := p.fire(ctx, o.Init); err != nil {
		return nil, errors.Wrap(err, "init")
	}

	s := d.cfg.Shopper
	if s.Country != "" {
		if _, err := p.choose(ctx, sel.Country, s.Country); err != nil {
			return nil, err
		}
		if err := p.fire(ctx, o.CountryChanged); err != nil {
			return nil, errors.Wrap(err, "country")
		}
	}
	country, err := p.value(ctx, sel.Country)
	if err != nil {
		return nil, err
	}

	if destination.IsDomestic(country) {
		region, err := p.choose(ctx, sel.Region, s.Region)
		if err != nil {
			return nil, err
		}
		if err := p.fire(ctx, o.RegionChanged); err != nil {
			return nil, errors.Wrap(err, "region")
		}
		city, err := p.choose(ctx, sel.City, s.City)
		if err != nil {
			return nil, err
		}
		if err := p.fire(ctx, o.CityChanged); err != nil {
			return nil, errors.Wrap(err, "city")
		}
		d.lg.Info("Address selected", zap.String("region", region), zap.String("city", city))
	} else {
		if s.ForeignCity != "" {
			if _, err := p.choose(ctx, sel.ForeignCity, s.ForeignCity); err != nil {
				return nil, err
			}
		}
		// The country change schedules its own quote. Let it fire and land
		// before quoting the city, or it would supersede the city quote.
		loop.Clock().Sleep(d.cfg.Checkout.ForeignQuoteDelay + timerSlack)
		if err := loop.Idle(ctx); err != nil {
			return nil, errors.Wrap(err, "country quote")
		}
		if err := p.fire(ctx, o.ForeignCityChanged); err != nil {
			return nil, errors.Wrap(err, "foreign city")
		}
		d.lg.Info("Address selected", zap.String("country", country), zap.String("city", s.ForeignCity))
	}

	if err := p.fire(ctx, func(context.Context) error { return o.PaymentSelected(s.Payment) }); err != nil {
		return nil, errors.Wrap(err, "payment")
	}
	inputs := map[string]string{
		"shipping_first_name": s.FirstName,
		"shipping_last_name":  s.LastName,
		"shipping_address":    s.Address,
		"notes":               s.Notes,
		sel.Phone:             s.Phone,
	}
	if err := p.fill(ctx, inputs); err != nil {
		return nil, err
	}
	if err := p.check(ctx, sel.Form); err != nil {
		return nil, err
	}

	if err := o.Submit(ctx); err != nil {
		return nil, errors.Wrap(err, "submit")
	}
	select {
	case <-h.navigated:
	case msg := <-h.alerts:
		return nil, errors.Errorf("order rejected: %s", msg)
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "wait for confirmation")
	}

	detail, err := d.client.Order(ctx, number)
	if err != nil {
		return nil, errors.Wrapf(err, "load order %s", number)
	}
	return detail, nil
}

// pageDriver reads and writes the document on the UI loop.
type pageDriver struct {
	loop *uiloop.Loop
	doc  *dom.Memory
}

// fire dispatches an event and waits until every request it started has been
// applied.
func (p *pageDriver) fire(ctx context.Context, event func(context.Context) error) error {
	if err := event(ctx); err != nil {
		return err
	}
	return p.loop.Idle(ctx)
}

func (p *pageDriver) value(ctx context.Context, id string) (string, error) {
	var v string
	err := p.loop.Do(ctx, func() {
		if el, ok := p.doc.Element(id); ok {
			v = el.Value()
		}
	})
	return v, err
}

// choose sets a control. Selects match want against option labels and
// values, case-insensitively; an empty want picks the first real option.
// It returns what is now shown.
func (p *pageDriver) choose(ctx context.Context, id, want string) (string, error) {
	var (
		shown string
		cerr  error
	)
	err := p.loop.Do(ctx, func() {
		el, ok := p.doc.Element(id)
		if !ok {
			cerr = errors.Errorf("no element %q", id)
			return
		}
		if el.Kind() != dom.KindSelect {
			el.SetValue(want)
			shown = want
			return
		}
		var labels []string
		for _, opt := range el.Options() {
			if opt.Value == "" {
				continue
			}
			if want == "" || strings.EqualFold(opt.Label, want) || strings.EqualFold(opt.Value, want) {
				el.SetValue(opt.Value)
				shown = opt.Label
				return
			}
			labels = append(labels, opt.Label)
		}
		cerr = errors.Errorf("%s: no option %q (offered: %s)", id, want, strings.Join(labels, ", "))
	})
	if err != nil {
		return "", err
	}
	return shown, cerr
}

func (p *pageDriver) fill(ctx context.Context, values map[string]string) error {
	var missing []string
	err := p.loop.Do(ctx, func() {
		for id, v := range values {
			el, ok := p.doc.Element(id)
			if !ok {
				missing = append(missing, id)
				continue
			}
			el.SetValue(v)
		}
	})
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return errors.Errorf("missing inputs: %s", strings.Join(missing, ", "))
	}
	return nil
}

// check fails early when no payment method ended up checked, which means the
// requested method is not offered for the destination.
func (p *pageDriver) check(ctx context.Context, formID string) error {
	var fields []dom.Field
	if err := p.loop.Do(ctx, func() { fields = p.doc.FormData(formID) }); err != nil {
		return err
	}
	for _, f := range fields {
		if f.Name == checkout.PaymentMethodField && f.Value != "" {
			return nil
		}
	}
	return errors.New("payment method not offered")
}
