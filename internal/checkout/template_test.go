package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/storefront-checkout/internal/dom"
	"github.com/xenking/storefront-checkout/internal/domain/destination"
	"github.com/xenking/storefront-checkout/internal/session"
	"github.com/xenking/storefront-checkout/internal/storefront"
)

func TestNewPage(t *testing.T) {
	sel := DefaultSelectors()
	doc := NewPage(sel, &storefront.Bootstrap{
		CSRFToken: "tok",
		Subtotal:  "25000.00",
		Country:   destination.Domestic,
		Countries: []string{destination.Domestic, "France", destination.Other},
	})

	get := func(id string) dom.Element {
		el, ok := doc.Element(id)
		require.True(t, ok, id)
		return el
	}

	country := get(sel.Country)
	assert.Equal(t, destination.Domestic, country.Value())
	assert.Len(t, country.Options(), 3)
	assert.Equal(t, "+225", get(sel.PhonePrefix).Text())
	assert.Equal(t, destination.DomesticPhonePlaceholder, get(sel.Phone).Placeholder())
	assert.Equal(t, "25 000 FCFA", plain(get(sel.Subtotal).Text()))
	assert.Equal(t, "25 000 FCFA", plain(get(sel.Total).Text()))
	assert.True(t, get(sel.DomesticBlock).Visible())
	assert.False(t, get(sel.ForeignBlock).Visible())
	assert.False(t, get(sel.FeeWidget).Visible())
	assert.True(t, get(sel.Region).Required())

	token, ok := doc.Meta(session.DefaultTokenMeta)
	require.True(t, ok)
	assert.Equal(t, "tok", token)
	csrf, _ := session.New(doc).CSRFToken()
	assert.Equal(t, "tok", csrf)

	names := make([]string, 0)
	for _, f := range doc.FormData(sel.Form) {
		names = append(names, f.Name)
	}
	assert.Subset(t, names, []string{
		"shipping_first_name", "shipping_last_name", "shipping_address",
		"shipping_country", "shipping_region", "shipping_city", "shipping_city_name",
		"shipping_city_int", "shipping_phone", "calculated_delivery_fee", session.DefaultTokenField,
	})
}

func TestNewPage_Defaults(t *testing.T) {
	sel := DefaultSelectors()
	doc := NewPage(sel, &storefront.Bootstrap{Subtotal: "oops"})

	country, ok := doc.Element(sel.Country)
	require.True(t, ok)
	assert.Equal(t, destination.Domestic, country.Value())
	assert.Len(t, country.Options(), len(destination.Countries()))

	subtotal, ok := doc.Element(sel.Subtotal)
	require.True(t, ok)
	assert.Equal(t, "oops FCFA", subtotal.Text())
}
