package checkout

import (
	"github.com/xenking/storefront-checkout/internal/dom"
	"github.com/xenking/storefront-checkout/internal/domain/destination"
	"github.com/xenking/storefront-checkout/internal/domain/money"
	"github.com/xenking/storefront-checkout/internal/session"
	"github.com/xenking/storefront-checkout/internal/storefront"
)

// Contact and free-text fields of the checkout form. They are plain inputs
// posted as is.
var contactFields = []string{
	"shipping_first_name",
	"shipping_last_name",
	"shipping_address",
	"shipping_postal_code",
	"notes",
	"billing_address",
}

// NewPage renders the checkout template into an in-memory document, the way
// the storefront serves it: domestic address block shown, foreign block and
// fee widgets hidden, summary primed with the cart subtotal.
func NewPage(sel Selectors, b *storefront.Bootstrap) *dom.Memory {
	doc := dom.NewMemory()
	doc.Add(sel.Form, dom.KindContainer)

	countries := b.Countries
	if len(countries) == 0 {
		countries = destination.Countries()
	}
	options := make([]dom.Option, len(countries))
	for i, c := range countries {
		options[i] = dom.Option{Value: c, Label: c}
	}
	country := b.Country
	if country == "" {
		country = destination.Domestic
	}
	subtotal := money.Label(b.Subtotal)
	if d, err := money.Parse(b.Subtotal); err == nil {
		subtotal = money.Display(d)
	}

	for _, name := range contactFields {
		doc.Add(name, dom.KindInput, dom.WithName(name))
	}
	doc.Add(sel.Country, dom.KindSelect, dom.WithName("shipping_country"), dom.WithOptions(options...), dom.WithValue(country))
	doc.Add(sel.DomesticBlock, dom.KindText)
	doc.Add(sel.Region, dom.KindSelect, dom.WithName("shipping_region"), dom.Required())
	doc.Add(sel.City, dom.KindSelect, dom.WithName("shipping_city"), dom.Required())
	doc.Add(sel.CityName, dom.KindHidden, dom.WithName("shipping_city_name"))
	doc.Add(sel.ForeignBlock, dom.KindText, dom.Hidden())
	doc.Add(sel.ForeignCity, dom.KindInput, dom.WithName("shipping_city_int"), dom.WithPlaceholder(foreignCityPlaceholder))
	doc.Add(sel.PhonePrefix, dom.KindText, dom.WithText(destination.PhonePrefix(country)))
	doc.Add(sel.Phone, dom.KindInput, dom.WithName("shipping_phone"), dom.WithPlaceholder(destination.PhonePlaceholder(country)))

	doc.Add(sel.FeeWidget, dom.KindText, dom.Hidden())
	doc.Add(sel.FeeAmount, dom.KindText)
	doc.Add(sel.FeeCity, dom.KindText)
	doc.Add(sel.Subtotal, dom.KindText, dom.WithText(subtotal))
	doc.Add(sel.SummaryFeeRow, dom.KindText, dom.Hidden())
	doc.Add(sel.SummaryFee, dom.KindText)
	doc.Add(sel.Total, dom.KindText, dom.WithText(subtotal))
	doc.Add(sel.FeeField, dom.KindHidden, dom.WithName(sel.FeeField))

	doc.Add(sel.PaymentGrid, dom.KindContainer)
	doc.Add(sel.PaymentForms, dom.KindContainer)
	doc.Add(session.DefaultTokenField, dom.KindHidden, dom.WithName(session.DefaultTokenField), dom.WithValue(b.CSRFToken))
	doc.SetMeta(session.DefaultTokenMeta, b.CSRFToken)

	doc.Add(sel.Overlay, dom.KindText, dom.Hidden())
	doc.Add(sel.OverlayTitle, dom.KindText)
	doc.Add(sel.OverlayText, dom.KindText)

	form := append([]string(nil), contactFields...)
	form = append(form,
		sel.Country, sel.Region, sel.City, sel.CityName, sel.ForeignCity,
		sel.Phone, sel.FeeField, sel.PaymentGrid, session.DefaultTokenField,
	)
	doc.AddToForm(sel.Form, form...)
	return doc
}
