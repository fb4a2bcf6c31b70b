package checkout

import (
	"context"

	"go.uber.org/zap"

	"github.com/xenking/storefront-checkout/internal/dom"
	"github.com/xenking/storefront-checkout/internal/domain/destination"
	"github.com/xenking/storefront-checkout/internal/domain/money"
	"github.com/xenking/storefront-checkout/internal/storefront"
	"github.com/xenking/storefront-checkout/internal/uiloop"
)

// FeeCalculator quotes delivery and updates the fee widget and the order
// summary. Its methods must run on the UI loop.
type FeeCalculator struct {
	*deps
	seq sequence
}

func newFeeCalculator(d *deps) *FeeCalculator {
	return &FeeCalculator{deps: d, seq: sequence{policy: d.policy}}
}

// Quote requests a fee for dest. Nothing is sent when the destination has no
// city (domestic) or no country (foreign).
func (f *FeeCalculator) Quote(ctx context.Context, dest destination.Destination) {
	q, ok := dest.QuoteRequest()
	if !ok {
		f.lg.Debug("Nothing to quote", zap.String("country", dest.Country))
		return
	}

	tok := f.seq.next()
	req := storefront.FeeRequest{City: q.City, Country: q.Country}
	uiloop.Async(f.loop, ctx, func(ctx context.Context) (*storefront.DeliveryFee, error) {
		return f.api.DeliveryFee(ctx, req)
	}, func(fee *storefront.DeliveryFee, err error) {
		if !f.seq.fresh(tok) {
			f.lg.Debug("Dropping stale quote", zap.String("label", q.Label))
			return
		}
		if err != nil {
			f.lg.Warn("Quote delivery fee",
				zap.String("city", q.City),
				zap.String("country", q.Country),
				zap.Error(err),
			)
			f.m.quotes.Add(ctx, 1, outcome("error"))
			return
		}
		if err := f.apply(q.Label, fee.Fee); err != nil {
			f.lg.Warn("Apply delivery fee", zap.String("fee", fee.Fee), zap.Error(err))
			f.m.quotes.Add(ctx, 1, outcome("unparsable"))
			return
		}
		f.m.quotes.Add(ctx, 1, outcome("ok"))
	})
}

// apply parses everything it needs before touching the page, so a bad amount
// leaves the summary as it was.
func (f *FeeCalculator) apply(label, fee string) error {
	summary, err := money.ParseSummary(f.page.text(f.sel.Subtotal), fee)
	if err != nil {
		return err
	}

	f.page.with(f.sel.FeeAmount, func(el dom.Element) { el.SetText(money.Label(fee)) })
	f.page.with(f.sel.FeeCity, func(el dom.Element) { el.SetText(label) })
	f.page.with(f.sel.FeeWidget, func(el dom.Element) { el.SetVisible(true) })
	f.page.with(f.sel.SummaryFee, func(el dom.Element) { el.SetText(money.Label(fee)) })
	f.page.with(f.sel.SummaryFeeRow, func(el dom.Element) { el.SetVisible(true) })
	f.page.with(f.sel.FeeField, func(el dom.Element) { el.SetValue(fee) })
	f.page.with(f.sel.Total, func(el dom.Element) { el.SetText(money.Display(summary.Total())) })
	return nil
}
