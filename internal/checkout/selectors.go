package checkout

// Selectors maps each element the cascade touches to its document id. The
// defaults match the storefront checkout template; deployments with a
// different template override them from config.
type Selectors struct {
	Country       string `default:"shipping_country" yaml:"country"`
	Region        string `default:"shipping_region" yaml:"region"`
	City          string `default:"shipping_city" yaml:"city"`
	CityName      string `default:"shipping_city_name" yaml:"city_name"`
	ForeignCity   string `default:"shipping_city_int" yaml:"foreign_city"`
	Phone         string `default:"shipping_phone" yaml:"phone"`
	PhonePrefix   string `default:"phone-prefix" yaml:"phone_prefix"`
	DomesticBlock string `default:"civ-address-fields" yaml:"domestic_block"`
	ForeignBlock  string `default:"international-address-fields" yaml:"foreign_block"`

	FeeWidget     string `default:"delivery-fee-display" yaml:"fee_widget"`
	FeeAmount     string `default:"delivery-fee-amount" yaml:"fee_amount"`
	FeeCity       string `default:"delivery-city-name" yaml:"fee_city"`
	Subtotal      string `default:"summary-subtotal" yaml:"subtotal"`
	SummaryFee    string `default:"summary-delivery-fee" yaml:"summary_fee"`
	SummaryFeeRow string `default:"delivery-fee-summary" yaml:"summary_fee_row"`
	FeeField      string `default:"calculated_delivery_fee" yaml:"fee_field"`
	Total         string `default:"summary-total" yaml:"total"`

	PaymentGrid  string `default:"payment-methods-grid" yaml:"payment_grid"`
	PaymentForms string `default:"payment-forms-container" yaml:"payment_forms"`

	Form         string `default:"checkout-form" yaml:"form"`
	Overlay      string `default:"loading-overlay" yaml:"overlay"`
	OverlayTitle string `default:"loading-title" yaml:"overlay_title"`
	OverlayText  string `default:"loading-text" yaml:"overlay_text"`
}

// DefaultSelectors returns the ids used by the storefront template.
func DefaultSelectors() Selectors {
	return Selectors{
		Country:       "shipping_country",
		Region:        "shipping_region",
		City:          "shipping_city",
		CityName:      "shipping_city_name",
		ForeignCity:   "shipping_city_int",
		Phone:         "shipping_phone",
		PhonePrefix:   "phone-prefix",
		DomesticBlock: "civ-address-fields",
		ForeignBlock:  "international-address-fields",
		FeeWidget:     "delivery-fee-display",
		FeeAmount:     "delivery-fee-amount",
		FeeCity:       "delivery-city-name",
		Subtotal:      "summary-subtotal",
		SummaryFee:    "summary-delivery-fee",
		SummaryFeeRow: "delivery-fee-summary",
		FeeField:      "calculated_delivery_fee",
		Total:         "summary-total",
		PaymentGrid:   "payment-methods-grid",
		PaymentForms:  "payment-forms-container",
		Form:          "checkout-form",
		Overlay:       "loading-overlay",
		OverlayTitle:  "loading-title",
		OverlayText:   "loading-text",
	}
}
