// Package payment describes the payment methods offered at checkout and the
// detail sub-form each one asks for.
package payment

import "github.com/xenking/storefront-checkout/internal/domain/destination"

// Method values as posted in the payment_method form field.
const (
	Cash         = "cash"
	MoovMoney    = "moovmoney"
	OrangeMoney  = "orangemoney"
	MTNMoney     = "mtnmoney"
	Wave         = "wave"
	Card         = "carte"
	PayPal       = "paypal"
	BankTransfer = "bank_transfer"
)

// Method is a selectable payment method.
type Method struct {
	Value string
	Label string
}

var (
	domesticMethods = []Method{
		{Cash, "Paiement à la livraison"},
		{MoovMoney, "Moov Money"},
		{OrangeMoney, "Orange Money"},
		{MTNMoney, "MTN Money"},
		{Wave, "Wave"},
		{Card, "Carte bancaire"},
	}
	foreignMethods = []Method{
		{Card, "Carte bancaire"},
		{PayPal, "PayPal"},
		{BankTransfer, "Virement bancaire"},
	}
)

// MethodsFor returns the methods offered for a shipping country.
func MethodsFor(country string) []Method {
	src := foreignMethods
	if destination.IsDomestic(country) {
		src = domesticMethods
	}
	out := make([]Method, len(src))
	copy(out, src)
	return out
}

// Allowed reports whether value is a known method for any country.
func Allowed(value string) bool {
	for _, list := range [][]Method{domesticMethods, foreignMethods} {
		for _, m := range list {
			if m.Value == value {
				return true
			}
		}
	}
	return false
}

// LogoBase is the directory payment logos are served from.
const LogoBase = "/static/images/payment/"

// DefaultLogo is used for methods without a dedicated logo.
const DefaultLogo = LogoBase + "default.png"

var logos = map[string]string{
	Cash:         "livraison.png",
	MoovMoney:    "moov-money.png",
	OrangeMoney:  "orange-money.png",
	MTNMoney:     "mtn-money.png",
	Wave:         "wave.png",
	Card:         "carte-bancaire.png",
	PayPal:       "paypal.png",
	BankTransfer: "bank.png",
}

// Logo returns the logo path for a method value.
func Logo(value string) string {
	if f, ok := logos[value]; ok {
		return LogoBase + f
	}
	return DefaultLogo
}
