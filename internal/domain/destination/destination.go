// Package destination models where an order ships: the domestic region/city
// path or a foreign country with a free or listed city.
package destination

// Destination is the shipping target assembled from the checkout form.
type Destination struct {
	Country  string
	RegionID string
	CityID   string
	// CityName is the resolved display name on the domestic path and the
	// typed or listed city on the foreign path.
	CityName string
}

// IsDomestic reports whether the destination uses the region/city selectors.
func (d Destination) IsDomestic() bool {
	return IsDomestic(d.Country)
}

// IsDomestic reports whether country is the domestic country.
func IsDomestic(country string) bool {
	return country == Domestic
}

// Quote is what the delivery fee endpoint is asked for, plus the label shown
// next to the fee.
type Quote struct {
	City    string
	Country string
	Label   string
}

// QuoteRequest resolves the fee request for the destination. It reports false
// when there is nothing to price: a domestic destination without a city, or
// no country at all.
func (d Destination) QuoteRequest() (Quote, bool) {
	if d.IsDomestic() {
		if d.CityName == "" {
			return Quote{}, false
		}
		return Quote{City: d.CityName, Country: Domestic, Label: d.CityName}, true
	}
	if d.Country == "" {
		return Quote{}, false
	}
	label := d.CityName
	if label == "" {
		label = d.Country
	}
	return Quote{City: d.CityName, Country: d.Country, Label: label}, true
}
