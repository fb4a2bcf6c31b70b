// Package checkout drives the checkout form cascade: country to region to
// city to delivery fee, payment method selection, and order submission.
//
// Every event handler and every document mutation runs on a uiloop.Loop.
// Network calls run off the loop and post their results back, so handlers
// never block on the storefront.
package checkout

import (
	"context"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/xenking/storefront-checkout/internal/dom"
	"github.com/xenking/storefront-checkout/internal/domain/destination"
	"github.com/xenking/storefront-checkout/internal/session"
	"github.com/xenking/storefront-checkout/internal/storefront"
	"github.com/xenking/storefront-checkout/internal/uiloop"
)

// Messages shown to the shopper.
const (
	SubmittingTitle = "Création de votre commande"
	SubmittingText  = "Un instant, nous préparons votre commande..."
	SuccessTitle    = "Commande créée avec succès!"
	SuccessText     = "Redirection..."
	OrderFailedText = "Une erreur est survenue lors de la création de votre commande."
	TransportText   = "Une erreur est survenue. Veuillez réessayer."
)

// foreignCityPlaceholder is shown in the free-text foreign city input.
const foreignCityPlaceholder = "Ville"

// Host is the environment around the page: blocking alerts and navigation.
type Host interface {
	Alert(message string)
	Navigate(url string)
}

// Config tunes the cascade.
type Config struct {
	Selectors         Selectors
	ForeignQuoteDelay time.Duration `default:"500ms" usage:"Delay before quoting a newly selected foreign country"`
	RedirectDelay     time.Duration `default:"1s" usage:"Delay between order success and navigation"`
	StalePolicy       StalePolicy   `default:"drop" usage:"What to do with superseded responses: drop or apply"`
}

// DefaultConfig returns the storefront's stock timings and ids.
func DefaultConfig() Config {
	return Config{
		Selectors:         DefaultSelectors(),
		ForeignQuoteDelay: 500 * time.Millisecond,
		RedirectDelay:     time.Second,
		StalePolicy:       StaleDrop,
	}
}

// Option configures an Orchestrator.
type Option func(*options)

type options struct {
	lg        *zap.Logger
	mp        metric.MeterProvider
	orderPage func(number string) string
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(lg *zap.Logger) Option { return func(o *options) { o.lg = lg } }

// WithMeterProvider sets the meter provider for cascade counters.
func WithMeterProvider(mp metric.MeterProvider) Option { return func(o *options) { o.mp = mp } }

// WithOrderPage sets how the confirmation URL is built from an order number.
func WithOrderPage(fn func(number string) string) Option {
	return func(o *options) { o.orderPage = fn }
}

// deps is what every widget shares.
type deps struct {
	loop   *uiloop.Loop
	api    API
	page   page
	sel    Selectors
	lg     *zap.Logger
	m      instruments
	policy StalePolicy
}

// Orchestrator wires the widgets to page events.
type Orchestrator struct {
	*deps
	cfg       Config
	session   *session.Session
	host      Host
	orderPage func(string) string

	address  *AddressResolver
	fees     *FeeCalculator
	payments *PaymentSelector

	// Loop-only state.
	submitting   bool
	foreignQuote clockwork.Timer
}

// New builds the cascade for the page behind sess.
func New(loop *uiloop.Loop, api API, sess *session.Session, host Host, cfg Config, opts ...Option) *Orchestrator {
	o := options{
		lg:        zap.NewNop(),
		mp:        otel.GetMeterProvider(),
		orderPage: storefront.DefaultRoutes().OrderPage,
	}
	for _, fn := range opts {
		fn(&o)
	}
	if cfg.StalePolicy == "" {
		cfg.StalePolicy = StaleDrop
	}

	d := &deps{
		loop:   loop,
		api:    api,
		page:   page{doc: sess.Document(), lg: o.lg},
		sel:    cfg.Selectors,
		lg:     o.lg,
		m:      newInstruments(o.mp, o.lg),
		policy: cfg.StalePolicy,
	}
	return &Orchestrator{
		deps:      d,
		cfg:       cfg,
		session:   sess,
		host:      host,
		orderPage: o.orderPage,
		address:   newAddressResolver(d),
		fees:      newFeeCalculator(d),
		payments:  newPaymentSelector(d),
	}
}

// Address returns the region/city widget.
func (o *Orchestrator) Address() *AddressResolver { return o.address }

// Fees returns the delivery fee widget.
func (o *Orchestrator) Fees() *FeeCalculator { return o.fees }

// Payments returns the payment method widget.
func (o *Orchestrator) Payments() *PaymentSelector { return o.payments }

// The exported event methods below are safe to call from any goroutine; they
// queue the handler on the loop.

// Init runs the page-load handlers.
func (o *Orchestrator) Init(ctx context.Context) error {
	return o.loop.Post(func() { o.init(ctx) })
}

// CountryChanged handles a change of the country select.
func (o *Orchestrator) CountryChanged(ctx context.Context) error {
	return o.loop.Post(func() { o.countryChanged(ctx) })
}

// RegionChanged handles a change of the domestic region select.
func (o *Orchestrator) RegionChanged(ctx context.Context) error {
	return o.loop.Post(func() { o.address.LoadCities(ctx, o.page.value(o.sel.Region)) })
}

// CityChanged handles a change of the domestic city select.
func (o *Orchestrator) CityChanged(ctx context.Context) error {
	return o.loop.Post(func() { o.cityChanged(ctx) })
}

// ForeignCityChanged handles input in, or a change of, the foreign city field.
func (o *Orchestrator) ForeignCityChanged(ctx context.Context) error {
	return o.loop.Post(func() { o.foreignCityChanged(ctx) })
}

// PaymentSelected handles a click on a payment tile.
func (o *Orchestrator) PaymentSelected(value string) error {
	return o.loop.Post(func() { o.payments.Select(value) })
}

// Submit handles the form submission.
func (o *Orchestrator) Submit(ctx context.Context) error {
	return o.loop.Post(func() { o.submit(ctx) })
}

func (o *Orchestrator) init(ctx context.Context) {
	country := o.page.value(o.sel.Country)
	o.updateCountryFields(country)
	o.address.LoadRegions(ctx)
	o.payments.LoadMethods(ctx, country)
}

func (o *Orchestrator) countryChanged(ctx context.Context) {
	country := o.page.value(o.sel.Country)
	domestic := destination.IsDomestic(country)

	o.page.with(o.sel.DomesticBlock, func(el dom.Element) { el.SetVisible(domestic) })
	o.page.with(o.sel.ForeignBlock, func(el dom.Element) { el.SetVisible(!domestic) })
	o.page.with(o.sel.Region, func(el dom.Element) { el.SetRequired(domestic) })
	o.page.with(o.sel.City, func(el dom.Element) { el.SetRequired(domestic) })

	o.updateCountryFields(country)
	o.payments.LoadMethods(ctx, country)

	// Under the drop policy a newer country selection supersedes the pending
	// delayed quote as well as in-flight responses.
	if o.foreignQuote != nil && o.policy == StaleDrop {
		o.foreignQuote.Stop()
		o.foreignQuote = nil
	}
	if !domestic {
		o.foreignQuote = o.loop.After(o.cfg.ForeignQuoteDelay, func() {
			o.fees.Quote(ctx, destination.Destination{Country: country})
		})
	}
}

// updateCountryFields sets the phone prefix and placeholder, and swaps the
// foreign city field between a select of known cities and a free-text input.
func (o *Orchestrator) updateCountryFields(country string) {
	o.page.with(o.sel.PhonePrefix, func(el dom.Element) { el.SetText(destination.PhonePrefix(country)) })
	o.page.with(o.sel.Phone, func(el dom.Element) { el.SetPlaceholder(destination.PhonePlaceholder(country)) })

	switch {
	case destination.IsDomestic(country):
	case country == destination.Other:
		if el, ok := o.page.el(o.sel.ForeignCity); ok && el.Kind() == dom.KindSelect {
			input, _ := o.page.doc.Morph(o.sel.ForeignCity, dom.KindInput)
			input.SetPlaceholder(foreignCityPlaceholder)
		}
	default:
		cities := destination.Cities(country)
		if len(cities) == 0 {
			return
		}
		sel, ok := o.page.doc.Morph(o.sel.ForeignCity, dom.KindSelect)
		if !ok {
			o.lg.Debug("Element not found", zap.String("id", o.sel.ForeignCity))
			return
		}
		opts := make([]dom.Option, 0, len(cities)+1)
		opts = append(opts, dom.Option{Value: "", Label: CityPlaceholder})
		for _, c := range cities {
			opts = append(opts, dom.Option{Value: c, Label: c})
		}
		sel.SetOptions(opts)
		sel.SetValue(cities[0])
	}
}

// destination reads the shipping destination from the form.
func (o *Orchestrator) destination() destination.Destination {
	d := destination.Destination{Country: o.page.value(o.sel.Country)}
	if !d.IsDomestic() {
		d.CityName = strings.TrimSpace(o.page.value(o.sel.ForeignCity))
		return d
	}
	d.RegionID = o.page.value(o.sel.Region)
	if el, ok := o.page.el(o.sel.City); ok {
		d.CityID = el.Value()
		if d.CityID != "" {
			d.CityName, _ = el.SelectedLabel()
		}
	}
	return d
}

func (o *Orchestrator) cityChanged(ctx context.Context) {
	dest := o.destination()
	if dest.IsDomestic() {
		o.page.with(o.sel.CityName, func(el dom.Element) { el.SetValue(dest.CityName) })
	}
	o.fees.Quote(ctx, dest)
}

func (o *Orchestrator) foreignCityChanged(ctx context.Context) {
	dest := o.destination()
	if dest.IsDomestic() || dest.CityName == "" {
		return
	}
	o.fees.Quote(ctx, dest)
}

func (o *Orchestrator) submit(ctx context.Context) {
	if o.submitting {
		o.lg.Debug("Submission already in flight")
		return
	}
	o.submitting = true
	o.showOverlay(SubmittingTitle, SubmittingText)

	draft := storefront.NewDraft(o.page.doc.FormData(o.sel.Form))
	uiloop.Async(o.loop, ctx, func(ctx context.Context) (*storefront.OrderResult, error) {
		return o.api.CreateOrder(ctx, draft)
	}, func(res *storefront.OrderResult, err error) {
		if err != nil {
			o.submitting = false
			o.hideOverlay()
			o.lg.Error("Create order", zap.Error(err))
			o.m.submissions.Add(ctx, 1, outcome("error"))
			o.host.Alert(TransportText)
			return
		}
		if !res.Success {
			o.submitting = false
			o.hideOverlay()
			o.lg.Info("Order rejected", zap.Int("field_errors", len(res.Errors)), zap.String("error", res.Error))
			o.m.submissions.Add(ctx, 1, outcome("rejected"))
			o.host.Alert(rejectionMessage(res))
			return
		}

		o.m.submissions.Add(ctx, 1, outcome("ok"))
		o.lg.Info("Order created", zap.String("order_number", res.OrderNumber))
		o.showOverlay(SuccessTitle, SuccessText)
		target := o.orderPage(res.OrderNumber)
		o.loop.After(o.cfg.RedirectDelay, func() { o.host.Navigate(target) })
	})
}

// rejectionMessage formats field errors in server order, or falls back to the
// top-level error.
func rejectionMessage(res *storefront.OrderResult) string {
	if len(res.Errors) > 0 {
		var b strings.Builder
		b.WriteString("Erreurs:\n")
		for _, fe := range res.Errors {
			b.WriteString(fe.Field)
			b.WriteString(": ")
			b.WriteString(strings.Join(fe.Messages, ", "))
			b.WriteString("\n")
		}
		return b.String()
	}
	if res.Error != "" {
		return res.Error
	}
	return OrderFailedText
}

func (o *Orchestrator) showOverlay(title, text string) {
	o.page.with(o.sel.OverlayTitle, func(el dom.Element) { el.SetText(title) })
	o.page.with(o.sel.OverlayText, func(el dom.Element) { el.SetText(text) })
	o.page.with(o.sel.Overlay, func(el dom.Element) { el.SetVisible(true) })
}

func (o *Orchestrator) hideOverlay() {
	o.page.with(o.sel.Overlay, func(el dom.Element) { el.SetVisible(false) })
}
