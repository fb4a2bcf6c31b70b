package checkout

import (
	"context"

	"go.uber.org/zap"

	"github.com/xenking/storefront-checkout/internal/dom"
	"github.com/xenking/storefront-checkout/internal/domain/payment"
	"github.com/xenking/storefront-checkout/internal/storefront"
	"github.com/xenking/storefront-checkout/internal/uiloop"
)

// PaymentMethodField is the radio group name posted with the order.
const PaymentMethodField = "payment_method"

const (
	tileClass   = "payment-option"
	activeClass = "active"
)

// PaymentSelector renders the payment method grid and the detail sub-form of
// the selected method. Its methods must run on the UI loop.
type PaymentSelector struct {
	*deps
	seq sequence
}

func newPaymentSelector(d *deps) *PaymentSelector {
	return &PaymentSelector{deps: d, seq: sequence{policy: d.policy}}
}

// LoadMethods rebuilds the grid from the methods offered for country. On
// failure the grid is left as it was.
func (p *PaymentSelector) LoadMethods(ctx context.Context, country string) {
	tok := p.seq.next()
	uiloop.Async(p.loop, ctx, func(ctx context.Context) ([]storefront.Method, error) {
		return p.api.PaymentMethods(ctx, country)
	}, func(methods []storefront.Method, err error) {
		if !p.seq.fresh(tok) {
			p.lg.Debug("Dropping stale payment methods", zap.String("country", country))
			return
		}
		if err != nil {
			p.lg.Warn("Load payment methods", zap.String("country", country), zap.Error(err))
			p.m.loads.Add(ctx, 1, outcome("error", widget("payment_methods")))
			return
		}
		tiles := make([]*dom.Node, 0, len(methods))
		for _, m := range methods {
			tiles = append(tiles, methodTile(m))
		}
		p.page.with(p.sel.PaymentGrid, func(el dom.Element) { el.SetChildren(tiles...) })
		p.m.loads.Add(ctx, 1, outcome("ok", widget("payment_methods")))
	})
}

func methodTile(m payment.Method) *dom.Node {
	id := "payment-" + m.Value
	return dom.El("div", []dom.Attr{dom.A("class", tileClass), dom.A("data-value", m.Value)},
		dom.El("input", []dom.Attr{
			dom.A("type", "radio"),
			dom.A("name", PaymentMethodField),
			dom.A("value", m.Value),
			dom.A("id", id),
		}),
		dom.El("label", []dom.Attr{dom.A("for", id)},
			dom.El("img", []dom.Attr{dom.A("src", payment.Logo(m.Value)), dom.A("alt", m.Label)}),
			dom.T("div", m.Label),
		),
	)
}

// Select marks the tile for value as active, checks its radio, and replaces
// the sub-form with the one for value. Unknown values get an empty sub-form.
func (p *PaymentSelector) Select(value string) {
	p.page.with(p.sel.PaymentGrid, func(el dom.Element) {
		tiles := el.Children()
		for _, t := range tiles {
			selected := t.Attr("data-value") == value
			if selected {
				t.AddClass(activeClass)
			} else {
				t.RemoveClass(activeClass)
			}
			for _, radio := range dom.FindAll(t.Children, func(n *dom.Node) bool {
				return n.Tag == "input" && n.Attr("name") == PaymentMethodField
			}) {
				if selected {
					radio.SetAttr("checked", "checked")
				} else {
					radio.RemoveAttr("checked")
				}
			}
		}
		el.SetChildren(tiles...)
	})

	variant := payment.Parse(value)
	p.page.with(p.sel.PaymentForms, func(el dom.Element) {
		d := variant.Details()
		if d.Empty() {
			el.SetChildren()
			return
		}
		el.SetChildren(renderDetails(d))
	})
	p.lg.Debug("Payment method selected", zap.String("method", variant.Value()))
}

func renderDetails(d payment.Details) *dom.Node {
	form := dom.El("div", []dom.Attr{dom.A("class", "payment-form-details active")})
	if d.Title != "" {
		form.Children = append(form.Children, dom.T("h6", d.Title, dom.A("class", "mb-3")))
	}
	for _, f := range d.Fields {
		form.Children = append(form.Children, dom.El("div", []dom.Attr{dom.A("class", "mb-3")},
			dom.T("label", f.Label, dom.A("class", "form-label")),
			dom.El("input", []dom.Attr{
				dom.A("type", f.Type),
				dom.A("class", "form-control"),
				dom.A("placeholder", f.Placeholder),
			}),
		))
	}
	if d.Notice != nil {
		class := "alert alert-info"
		if d.Notice.Level == payment.NoticeWarning {
			class = "alert alert-warning"
		}
		form.Children = append(form.Children, dom.T("div", d.Notice.Text, dom.A("class", class)))
	}
	return form
}
