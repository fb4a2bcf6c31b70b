package checkout

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/storefront-checkout/internal/dom"
	"github.com/xenking/storefront-checkout/internal/domain/destination"
	"github.com/xenking/storefront-checkout/internal/domain/payment"
	"github.com/xenking/storefront-checkout/internal/session"
	"github.com/xenking/storefront-checkout/internal/storefront"
	"github.com/xenking/storefront-checkout/internal/uiloop"
)

// --- Mock implementations ---

type fakeAPI struct {
	mu      sync.Mutex
	quotes  []storefront.FeeRequest
	drafts  []*storefront.Draft
	methods []string

	regionsFn func(ctx context.Context) ([]storefront.Region, error)
	citiesFn  func(ctx context.Context, regionID string) ([]storefront.City, error)
	feeFn     func(ctx context.Context, req storefront.FeeRequest) (*storefront.DeliveryFee, error)
	methodsFn func(ctx context.Context, country string) ([]storefront.Method, error)
	createFn  func(ctx context.Context, draft *storefront.Draft) (*storefront.OrderResult, error)
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		regionsFn: func(context.Context) ([]storefront.Region, error) {
			return []storefront.Region{{ID: "1", Name: "Région A"}, {ID: "2", Name: "Région B"}}, nil
		},
		citiesFn: func(_ context.Context, regionID string) ([]storefront.City, error) {
			if regionID != "1" {
				return nil, nil
			}
			return []storefront.City{{ID: "10", Name: "Abidjan"}, {ID: "11", Name: "Bouaké"}}, nil
		},
		feeFn: func(_ context.Context, req storefront.FeeRequest) (*storefront.DeliveryFee, error) {
			switch {
			case req.City == "Abidjan":
				return &storefront.DeliveryFee{Fee: "1500", EstimatedDays: 1}, nil
			case req.City == "Bouaké":
				return &storefront.DeliveryFee{Fee: "3000", EstimatedDays: 2}, nil
			case req.Country == "France":
				return &storefront.DeliveryFee{Fee: "15000", EstimatedDays: 7}, nil
			default:
				return &storefront.DeliveryFee{Fee: "4500", EstimatedDays: 5}, nil
			}
		},
		createFn: func(context.Context, *storefront.Draft) (*storefront.OrderResult, error) {
			return &storefront.OrderResult{Success: true, OrderNumber: "CMD-20261015-0001", OrderID: "1"}, nil
		},
	}
}

func (f *fakeAPI) Regions(ctx context.Context) ([]storefront.Region, error) {
	return f.regionsFn(ctx)
}

func (f *fakeAPI) Cities(ctx context.Context, regionID string) ([]storefront.City, error) {
	return f.citiesFn(ctx, regionID)
}

func (f *fakeAPI) DeliveryFee(ctx context.Context, req storefront.FeeRequest) (*storefront.DeliveryFee, error) {
	f.mu.Lock()
	f.quotes = append(f.quotes, req)
	f.mu.Unlock()
	return f.feeFn(ctx, req)
}

func (f *fakeAPI) PaymentMethods(ctx context.Context, country string) ([]storefront.Method, error) {
	f.mu.Lock()
	f.methods = append(f.methods, country)
	f.mu.Unlock()
	if f.methodsFn != nil {
		return f.methodsFn(ctx, country)
	}
	return payment.MethodsFor(country), nil
}

func (f *fakeAPI) CreateOrder(ctx context.Context, draft *storefront.Draft) (*storefront.OrderResult, error) {
	f.mu.Lock()
	f.drafts = append(f.drafts, draft)
	f.mu.Unlock()
	return f.createFn(ctx, draft)
}

func (f *fakeAPI) quoteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.quotes)
}

func (f *fakeAPI) lastQuote() storefront.FeeRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.quotes) == 0 {
		return storefront.FeeRequest{}
	}
	return f.quotes[len(f.quotes)-1]
}

type fakeHost struct {
	mu        sync.Mutex
	alerts    []string
	navigated []string
}

func (h *fakeHost) Alert(message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.alerts = append(h.alerts, message)
}

func (h *fakeHost) Navigate(url string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.navigated = append(h.navigated, url)
}

func (h *fakeHost) snapshot() (alerts, navigated []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.alerts...), append([]string(nil), h.navigated...)
}

// --- Harness ---

type harness struct {
	t     *testing.T
	ctx   context.Context
	doc   *dom.Memory
	api   *fakeAPI
	host  *fakeHost
	clock *clockwork.FakeClock
	loop  *uiloop.Loop
	o     *Orchestrator
}

func checkoutPage(sel Selectors) *dom.Memory {
	doc := dom.NewMemory()
	doc.Add(sel.Form, dom.KindContainer)
	doc.Add(sel.Country, dom.KindSelect, dom.WithName("shipping_country"), dom.WithOptions(
		dom.Option{Value: destination.Domestic, Label: destination.Domestic},
		dom.Option{Value: "France", Label: "France"},
		dom.Option{Value: "Mali", Label: "Mali"},
		dom.Option{Value: destination.Other, Label: destination.Other},
	))
	doc.Add(sel.DomesticBlock, dom.KindText)
	doc.Add(sel.Region, dom.KindSelect, dom.WithName("shipping_region"), dom.Required())
	doc.Add(sel.City, dom.KindSelect, dom.WithName("shipping_city"), dom.Required())
	doc.Add(sel.CityName, dom.KindHidden, dom.WithName("shipping_city_name"))
	doc.Add(sel.ForeignBlock, dom.KindText, dom.Hidden())
	doc.Add(sel.ForeignCity, dom.KindInput, dom.WithName("shipping_city_int"))
	doc.Add(sel.PhonePrefix, dom.KindText, dom.WithText("+225"))
	doc.Add(sel.Phone, dom.KindInput, dom.WithName("shipping_phone"), dom.WithValue("0700000000"))
	doc.Add(sel.FeeWidget, dom.KindText, dom.Hidden())
	doc.Add(sel.FeeAmount, dom.KindText)
	doc.Add(sel.FeeCity, dom.KindText)
	doc.Add(sel.Subtotal, dom.KindText, dom.WithText("25 000 FCFA"))
	doc.Add(sel.SummaryFeeRow, dom.KindText, dom.Hidden())
	doc.Add(sel.SummaryFee, dom.KindText)
	doc.Add(sel.Total, dom.KindText, dom.WithText("25 000 FCFA"))
	doc.Add(sel.FeeField, dom.KindHidden, dom.WithName("calculated_delivery_fee"))
	doc.Add(sel.PaymentGrid, dom.KindContainer)
	doc.Add(sel.PaymentForms, dom.KindContainer)
	doc.Add(session.DefaultTokenField, dom.KindHidden, dom.WithName("csrfmiddlewaretoken"), dom.WithValue("tok"))
	doc.Add(sel.Overlay, dom.KindText, dom.Hidden())
	doc.Add(sel.OverlayTitle, dom.KindText)
	doc.Add(sel.OverlayText, dom.KindText)
	doc.AddToForm(sel.Form,
		sel.Country, sel.Region, sel.City, sel.CityName, sel.ForeignCity,
		sel.Phone, sel.FeeField, sel.PaymentGrid, session.DefaultTokenField,
	)
	return doc
}

func newHarness(t *testing.T, mutate ...func(*Config)) *harness {
	t.Helper()

	cfg := DefaultConfig()
	for _, fn := range mutate {
		fn(&cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())
	clock := clockwork.NewFakeClock()
	loop := uiloop.New(uiloop.WithClock(clock))
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = loop.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	doc := checkoutPage(cfg.Selectors)
	h := &harness{
		t:     t,
		ctx:   ctx,
		doc:   doc,
		api:   newFakeAPI(),
		host:  &fakeHost{},
		clock: clock,
		loop:  loop,
	}
	h.o = New(loop, h.api, session.New(doc), h.host, cfg)
	return h
}

func (h *harness) settle() {
	h.t.Helper()
	require.NoError(h.t, h.loop.Idle(h.ctx))
}

func (h *harness) el(id string) dom.Element {
	h.t.Helper()
	el, ok := h.doc.Element(id)
	require.True(h.t, ok, "element %q", id)
	return el
}

// do runs fn on the loop, the way a browser event handler would.
func (h *harness) do(fn func()) {
	h.t.Helper()
	require.NoError(h.t, h.loop.Do(h.ctx, fn))
}

func (h *harness) selectCountry(country string) {
	h.t.Helper()
	h.do(func() { h.el(h.o.sel.Country).SetValue(country) })
	require.NoError(h.t, h.o.CountryChanged(h.ctx))
	h.settle()
}

func (h *harness) chooseRegionAndCity(regionID, cityID string) {
	h.t.Helper()
	h.do(func() { h.el(h.o.sel.Region).SetValue(regionID) })
	require.NoError(h.t, h.o.RegionChanged(h.ctx))
	h.settle()
	h.do(func() { h.el(h.o.sel.City).SetValue(cityID) })
	require.NoError(h.t, h.o.CityChanged(h.ctx))
	h.settle()
}

// plain replaces the no-break spaces thousands are grouped with.
func plain(s string) string {
	return strings.NewReplacer("\u202f", " ", "\u00a0", " ").Replace(s)
}

func labels(opts []dom.Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Label
	}
	return out
}

func values(ms []storefront.Method) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Value
	}
	return out
}

func tileValues(grid dom.Element) []string {
	var out []string
	for _, n := range grid.Children() {
		out = append(out, n.Attr("data-value"))
	}
	return out
}

// --- Tests ---

func TestOrchestrator_Init(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.o.Init(h.ctx))
	h.settle()

	assert.Equal(t, []dom.Option{
		{Value: "", Label: RegionPlaceholder},
		{Value: "1", Label: "Région A"},
		{Value: "2", Label: "Région B"},
	}, h.el(h.o.sel.Region).Options())
	assert.Equal(t, "+225", h.el(h.o.sel.PhonePrefix).Text())
	assert.Equal(t, destination.DomesticPhonePlaceholder, h.el(h.o.sel.Phone).Placeholder())
	assert.Len(t, h.el(h.o.sel.PaymentGrid).Children(), len(payment.MethodsFor(destination.Domestic)))
}

func TestOrchestrator_RegionsFailureLeavesPlaceholder(t *testing.T) {
	h := newHarness(t)
	h.api.regionsFn = func(context.Context) ([]storefront.Region, error) {
		return nil, errors.New("connection refused")
	}

	require.NoError(t, h.o.Init(h.ctx))
	h.settle()

	assert.Equal(t, []dom.Option{{Value: "", Label: RegionPlaceholder}}, h.el(h.o.sel.Region).Options())
}

func TestOrchestrator_DomesticCascade(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.o.Init(h.ctx))
	h.settle()

	h.chooseRegionAndCity("1", "10")

	assert.Equal(t, []dom.Option{
		{Value: "", Label: CityPlaceholder},
		{Value: "10", Label: "Abidjan"},
		{Value: "11", Label: "Bouaké"},
	}, h.el(h.o.sel.City).Options())
	assert.Equal(t, "Abidjan", h.el(h.o.sel.CityName).Value())
	assert.Equal(t, storefront.FeeRequest{City: "Abidjan", Country: destination.Domestic}, h.api.lastQuote())

	assert.Equal(t, "1500 FCFA", h.el(h.o.sel.FeeAmount).Text())
	assert.Equal(t, "Abidjan", h.el(h.o.sel.FeeCity).Text())
	assert.True(t, h.el(h.o.sel.FeeWidget).Visible())
	assert.True(t, h.el(h.o.sel.SummaryFeeRow).Visible())
	assert.Equal(t, "1500 FCFA", h.el(h.o.sel.SummaryFee).Text())
	assert.Equal(t, "1500", h.el(h.o.sel.FeeField).Value())
	assert.Equal(t, "26 500 FCFA", plain(h.el(h.o.sel.Total).Text()))
}

func TestOrchestrator_CityPlaceholderDoesNotQuote(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.o.Init(h.ctx))
	h.settle()

	h.chooseRegionAndCity("1", "")

	assert.Zero(t, h.api.quoteCount())
	assert.Equal(t, "", h.el(h.o.sel.CityName).Value())
	assert.False(t, h.el(h.o.sel.FeeWidget).Visible())
}

func TestOrchestrator_EmptyRegionKeepsCities(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.o.Init(h.ctx))
	h.settle()
	h.chooseRegionAndCity("1", "10")

	h.do(func() { h.el(h.o.sel.Region).SetValue("") })
	require.NoError(t, h.o.RegionChanged(h.ctx))
	h.settle()

	assert.Len(t, h.el(h.o.sel.City).Options(), 3)
}

func TestOrchestrator_CitiesFailureKeepsOptions(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.o.Init(h.ctx))
	h.settle()
	h.chooseRegionAndCity("1", "10")

	h.api.citiesFn = func(context.Context, string) ([]storefront.City, error) {
		return nil, errors.New("timeout")
	}
	h.do(func() { h.el(h.o.sel.Region).SetValue("2") })
	require.NoError(t, h.o.RegionChanged(h.ctx))
	h.settle()

	assert.Len(t, h.el(h.o.sel.City).Options(), 3)
}

func TestOrchestrator_ForeignCountry(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.o.Init(h.ctx))
	h.settle()

	h.selectCountry("France")

	assert.False(t, h.el(h.o.sel.DomesticBlock).Visible())
	assert.True(t, h.el(h.o.sel.ForeignBlock).Visible())
	assert.False(t, h.el(h.o.sel.Region).Required())
	assert.False(t, h.el(h.o.sel.City).Required())
	assert.Equal(t, "+33", h.el(h.o.sel.PhonePrefix).Text())
	assert.Equal(t, destination.ForeignPhonePlaceholder, h.el(h.o.sel.Phone).Placeholder())

	city := h.el(h.o.sel.ForeignCity)
	assert.Equal(t, dom.KindSelect, city.Kind())
	opts := city.Options()
	require.NotEmpty(t, opts)
	assert.Equal(t, dom.Option{Value: "", Label: CityPlaceholder}, opts[0])
	assert.Equal(t, "Paris", city.Value())

	methods := make([]string, 0)
	for _, n := range h.el(h.o.sel.PaymentGrid).Children() {
		methods = append(methods, n.Attr("data-value"))
	}
	assert.Equal(t, []string{payment.Card, payment.PayPal, payment.BankTransfer}, methods)

	// The quote waits for the debounce delay.
	assert.Zero(t, h.api.quoteCount())
	h.clock.Advance(499 * time.Millisecond)
	h.settle()
	assert.Zero(t, h.api.quoteCount())

	h.clock.Advance(time.Millisecond)
	require.Eventually(t, func() bool { return h.api.quoteCount() == 1 }, time.Second, time.Millisecond)
	h.settle()

	assert.Equal(t, storefront.FeeRequest{Country: "France"}, h.api.lastQuote())
	assert.Equal(t, "France", h.el(h.o.sel.FeeCity).Text())
	assert.Equal(t, "15000 FCFA", h.el(h.o.sel.FeeAmount).Text())
	assert.Equal(t, "40 000 FCFA", plain(h.el(h.o.sel.Total).Text()))
}

func TestOrchestrator_BackToDomestic(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.o.Init(h.ctx))
	h.settle()

	h.selectCountry("France")
	h.selectCountry(destination.Domestic)

	assert.True(t, h.el(h.o.sel.DomesticBlock).Visible())
	assert.False(t, h.el(h.o.sel.ForeignBlock).Visible())
	assert.True(t, h.el(h.o.sel.Region).Required())
	assert.True(t, h.el(h.o.sel.City).Required())
	assert.Equal(t, "+225", h.el(h.o.sel.PhonePrefix).Text())

	// The superseded foreign quote never fires.
	h.clock.Advance(time.Second)
	h.settle()
	assert.Zero(t, h.api.quoteCount())
}

func TestOrchestrator_OtherCountryRestoresInput(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.o.Init(h.ctx))
	h.settle()

	h.selectCountry("Mali")
	require.Equal(t, dom.KindSelect, h.el(h.o.sel.ForeignCity).Kind())

	h.selectCountry(destination.Other)

	city := h.el(h.o.sel.ForeignCity)
	assert.Equal(t, dom.KindInput, city.Kind())
	assert.Equal(t, "Ville", city.Placeholder())
	assert.Equal(t, "shipping_city_int", city.Name())
	assert.Equal(t, destination.UnknownPrefix, h.el(h.o.sel.PhonePrefix).Text())
	assert.Equal(t, destination.OtherPhonePlaceholder, h.el(h.o.sel.Phone).Placeholder())
}

func TestOrchestrator_ForeignCityChanged(t *testing.T) {
	tests := []struct {
		name   string
		city   string
		quoted bool
	}{
		{name: "City", city: "Lyon", quoted: true},
		{name: "Blank", city: "   ", quoted: false},
		{name: "Empty", city: "", quoted: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, func(c *Config) { c.ForeignQuoteDelay = time.Hour })
			h.selectCountry(destination.Other)

			h.do(func() { h.el(h.o.sel.ForeignCity).SetValue(tt.city) })
			require.NoError(t, h.o.ForeignCityChanged(h.ctx))
			h.settle()

			if !tt.quoted {
				assert.Zero(t, h.api.quoteCount())
				return
			}
			assert.Equal(t, storefront.FeeRequest{City: tt.city, Country: destination.Other}, h.api.lastQuote())
			assert.Equal(t, tt.city, h.el(h.o.sel.FeeCity).Text())
		})
	}
}

func TestOrchestrator_UnparsableFeeLeavesSummary(t *testing.T) {
	h := newHarness(t)
	h.api.feeFn = func(context.Context, storefront.FeeRequest) (*storefront.DeliveryFee, error) {
		return &storefront.DeliveryFee{Fee: "gratuit"}, nil
	}
	require.NoError(t, h.o.Init(h.ctx))
	h.settle()

	h.chooseRegionAndCity("1", "10")

	assert.Equal(t, 1, h.api.quoteCount())
	assert.False(t, h.el(h.o.sel.FeeWidget).Visible())
	assert.Equal(t, "", h.el(h.o.sel.FeeField).Value())
	assert.Equal(t, "25 000 FCFA", h.el(h.o.sel.Total).Text())
}

func TestOrchestrator_StaleQuotes(t *testing.T) {
	tests := []struct {
		name   string
		policy StalePolicy
		want   string
	}{
		{name: "Drop", policy: StaleDrop, want: "Bouaké"},
		{name: "Apply", policy: StaleApply, want: "Abidjan"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, func(c *Config) { c.StalePolicy = tt.policy })
			require.NoError(t, h.o.Init(h.ctx))
			h.settle()

			release := make(chan struct{})
			next := h.api.feeFn
			h.api.feeFn = func(ctx context.Context, req storefront.FeeRequest) (*storefront.DeliveryFee, error) {
				if req.City == "Abidjan" {
					<-release
				}
				return next(ctx, req)
			}

			h.do(func() { h.el(h.o.sel.Region).SetValue("1") })
			require.NoError(t, h.o.RegionChanged(h.ctx))
			h.settle()

			// Abidjan is requested first but resolves last.
			h.do(func() { h.el(h.o.sel.City).SetValue("10") })
			require.NoError(t, h.o.CityChanged(h.ctx))
			require.Eventually(t, func() bool { return h.api.quoteCount() == 1 }, time.Second, time.Millisecond)

			h.do(func() { h.el(h.o.sel.City).SetValue("11") })
			require.NoError(t, h.o.CityChanged(h.ctx))
			require.Eventually(t, func() bool {
				return h.el(h.o.sel.FeeCity).Text() == "Bouaké"
			}, time.Second, time.Millisecond)

			close(release)
			h.settle()

			assert.Equal(t, tt.want, h.el(h.o.sel.FeeCity).Text())
		})
	}
}

func TestOrchestrator_StaleCities(t *testing.T) {
	tests := []struct {
		name   string
		policy StalePolicy
		want   []string
	}{
		{name: "Drop", policy: StaleDrop, want: []string{CityPlaceholder, "Yamoussoukro"}},
		{name: "Apply", policy: StaleApply, want: []string{CityPlaceholder, "Abidjan", "Bouaké"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, func(c *Config) { c.StalePolicy = tt.policy })
			require.NoError(t, h.o.Init(h.ctx))
			h.settle()

			started := make(chan struct{})
			release := make(chan struct{})
			next := h.api.citiesFn
			h.api.citiesFn = func(ctx context.Context, regionID string) ([]storefront.City, error) {
				if regionID == "2" {
					return []storefront.City{{ID: "20", Name: "Yamoussoukro"}}, nil
				}
				close(started)
				<-release
				return next(ctx, regionID)
			}

			// Region 1 is selected first but its cities arrive last.
			h.do(func() { h.el(h.o.sel.Region).SetValue("1") })
			require.NoError(t, h.o.RegionChanged(h.ctx))
			<-started

			h.do(func() { h.el(h.o.sel.Region).SetValue("2") })
			require.NoError(t, h.o.RegionChanged(h.ctx))
			require.Eventually(t, func() bool {
				return len(labels(h.el(h.o.sel.City).Options())) == 2
			}, time.Second, time.Millisecond)

			close(release)
			h.settle()

			assert.Equal(t, tt.want, labels(h.el(h.o.sel.City).Options()))
		})
	}
}

func TestOrchestrator_StaleMethods(t *testing.T) {
	tests := []struct {
		name   string
		policy StalePolicy
		want   []string
	}{
		{name: "Drop", policy: StaleDrop, want: values(payment.MethodsFor(destination.Domestic))},
		{name: "Apply", policy: StaleApply, want: values(payment.MethodsFor("France"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, func(c *Config) { c.StalePolicy = tt.policy })
			require.NoError(t, h.o.Init(h.ctx))
			h.settle()
			h.do(func() { h.el(h.o.sel.PaymentGrid).SetChildren() })

			started := make(chan struct{})
			release := make(chan struct{})
			h.api.methodsFn = func(_ context.Context, country string) ([]storefront.Method, error) {
				if country == "France" {
					close(started)
					<-release
				}
				return payment.MethodsFor(country), nil
			}

			// France is selected first but its methods arrive last.
			h.do(func() { h.el(h.o.sel.Country).SetValue("France") })
			require.NoError(t, h.o.CountryChanged(h.ctx))
			<-started

			h.do(func() { h.el(h.o.sel.Country).SetValue(destination.Domestic) })
			require.NoError(t, h.o.CountryChanged(h.ctx))
			require.Eventually(t, func() bool {
				return len(tileValues(h.el(h.o.sel.PaymentGrid))) > 0
			}, time.Second, time.Millisecond)

			close(release)
			h.settle()

			assert.Equal(t, tt.want, tileValues(h.el(h.o.sel.PaymentGrid)))
		})
	}
}

func TestOrchestrator_PaymentSelection(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.o.Init(h.ctx))
	h.settle()

	for _, method := range []string{payment.OrangeMoney, payment.Card} {
		require.NoError(t, h.o.PaymentSelected(method))
		h.settle()

		var active []string
		for _, tile := range h.el(h.o.sel.PaymentGrid).Children() {
			if tile.HasClass("active") {
				active = append(active, tile.Attr("data-value"))
			}
		}
		assert.Equal(t, []string{method}, active)

		forms := h.el(h.o.sel.PaymentForms).Children()
		require.Len(t, forms, 1, method)
		assert.True(t, forms[0].HasClass("payment-form-details"))
	}

	// Only the checked radio is posted.
	var posted []dom.Field
	h.do(func() { posted = h.doc.FormData(h.o.sel.Form) })
	var methods []string
	for _, f := range posted {
		if f.Name == PaymentMethodField {
			methods = append(methods, f.Value)
		}
	}
	assert.Equal(t, []string{payment.Card}, methods)

	require.NoError(t, h.o.PaymentSelected("crypto"))
	h.settle()
	assert.Empty(t, h.el(h.o.sel.PaymentForms).Children())
}

func TestOrchestrator_Submit(t *testing.T) {
	tests := []struct {
		name      string
		result    *storefront.OrderResult
		err       error
		wantAlert string
		navigate  bool
	}{
		{
			name:     "Success",
			result:   &storefront.OrderResult{Success: true, OrderNumber: "CMD-1"},
			navigate: true,
		},
		{
			name: "FieldErrors",
			result: &storefront.OrderResult{Errors: []storefront.FieldError{
				{Field: "phone", Messages: []string{"Invalid"}},
				{Field: "shipping_address", Messages: []string{"Requis", "Trop court"}},
			}},
			wantAlert: "Erreurs:\nphone: Invalid\nshipping_address: Requis, Trop court\n",
		},
		{
			name:      "EmptyCart",
			result:    &storefront.OrderResult{Error: "Votre panier est vide."},
			wantAlert: "Votre panier est vide.",
		},
		{
			name:      "Generic",
			result:    &storefront.OrderResult{},
			wantAlert: OrderFailedText,
		},
		{
			name:      "Transport",
			err:       errors.New("connection reset"),
			wantAlert: TransportText,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.api.createFn = func(context.Context, *storefront.Draft) (*storefront.OrderResult, error) {
				return tt.result, tt.err
			}

			require.NoError(t, h.o.Submit(h.ctx))
			h.settle()

			if tt.navigate {
				assert.True(t, h.el(h.o.sel.Overlay).Visible())
				assert.Equal(t, SuccessTitle, h.el(h.o.sel.OverlayTitle).Text())
				assert.Equal(t, SuccessText, h.el(h.o.sel.OverlayText).Text())

				_, navigated := h.host.snapshot()
				assert.Empty(t, navigated)

				h.clock.Advance(time.Second)
				require.Eventually(t, func() bool {
					_, navigated := h.host.snapshot()
					return len(navigated) == 1
				}, time.Second, time.Millisecond)
				alerts, navigated := h.host.snapshot()
				assert.Empty(t, alerts)
				assert.Equal(t, []string{"/orders/commande/CMD-1/"}, navigated)
				return
			}

			alerts, navigated := h.host.snapshot()
			assert.Equal(t, []string{tt.wantAlert}, alerts)
			assert.Empty(t, navigated)
			assert.False(t, h.el(h.o.sel.Overlay).Visible())
		})
	}
}

func TestOrchestrator_SubmitPostsFormInOrder(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.o.Init(h.ctx))
	h.settle()
	h.chooseRegionAndCity("1", "10")

	require.NoError(t, h.o.Submit(h.ctx))
	h.settle()

	require.Len(t, h.api.drafts, 1)
	var names []string
	h.api.drafts[0].Each(func(name, _ string) { names = append(names, name) })
	assert.Equal(t, []string{
		"shipping_country", "shipping_region", "shipping_city", "shipping_city_name",
		"shipping_city_int", "shipping_phone", "calculated_delivery_fee", "csrfmiddlewaretoken",
	}, names)

	fee, _ := h.api.drafts[0].Get("calculated_delivery_fee")
	assert.Equal(t, "1500", fee)
	name, _ := h.api.drafts[0].Get("shipping_city_name")
	assert.Equal(t, "Abidjan", name)
}

func TestOrchestrator_SubmitGuard(t *testing.T) {
	h := newHarness(t)
	release := make(chan struct{})
	h.api.createFn = func(context.Context, *storefront.Draft) (*storefront.OrderResult, error) {
		<-release
		return &storefront.OrderResult{Error: "Votre panier est vide."}, nil
	}

	require.NoError(t, h.o.Submit(h.ctx))
	require.NoError(t, h.o.Submit(h.ctx))
	require.Eventually(t, func() bool {
		h.api.mu.Lock()
		defer h.api.mu.Unlock()
		return len(h.api.drafts) == 1
	}, time.Second, time.Millisecond)
	h.do(func() {
		assert.True(t, h.el(h.o.sel.Overlay).Visible())
		assert.Equal(t, SubmittingTitle, h.el(h.o.sel.OverlayTitle).Text())
	})

	close(release)
	h.settle()

	// A failed submission re-arms the form.
	require.NoError(t, h.o.Submit(h.ctx))
	h.settle()

	h.api.mu.Lock()
	defer h.api.mu.Unlock()
	assert.Len(t, h.api.drafts, 2)
}
