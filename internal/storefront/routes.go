package storefront

import (
	"net/url"
	"strings"
)

// Routes are the endpoint paths, relative to the base URL. {id}, {method}
// and {number} are substituted per call.
type Routes struct {
	Regions        string `default:"/orders/api/regions/" yaml:"regions"`
	Cities         string `default:"/orders/api/regions/{id}/cities/" yaml:"cities"`
	DeliveryFee    string `default:"/orders/api/calculate-delivery-fee/" yaml:"delivery_fee"`
	PaymentMethods string `default:"/orders/api/delivery-methods/" yaml:"payment_methods"`
	CreateOrder    string `default:"/orders/api/create-order/" yaml:"create_order"`
	PaymentLogo    string `default:"/orders/api/payment-logo/{method}/" yaml:"payment_logo"`
	Checkout       string `default:"/orders/api/checkout/" yaml:"checkout"`
	OrderDetail    string `default:"/orders/commande/{number}/" yaml:"order_detail"`
}

// DefaultRoutes returns the storefront's stock paths.
func DefaultRoutes() Routes {
	return Routes{
		Regions:        "/orders/api/regions/",
		Cities:         "/orders/api/regions/{id}/cities/",
		DeliveryFee:    "/orders/api/calculate-delivery-fee/",
		PaymentMethods: "/orders/api/delivery-methods/",
		CreateOrder:    "/orders/api/create-order/",
		PaymentLogo:    "/orders/api/payment-logo/{method}/",
		Checkout:       "/orders/api/checkout/",
		OrderDetail:    "/orders/commande/{number}/",
	}
}

func (r Routes) cities(regionID string) string {
	return strings.ReplaceAll(r.Cities, "{id}", url.PathEscape(regionID))
}

func (r Routes) paymentLogo(method string) string {
	return strings.ReplaceAll(r.PaymentLogo, "{method}", url.PathEscape(method))
}

func (r Routes) orderDetail(number string) string {
	return strings.ReplaceAll(r.OrderDetail, "{number}", url.PathEscape(number))
}

// OrderPage is the page a browser is sent to after a successful order.
func (r Routes) OrderPage(number string) string {
	return r.orderDetail(number)
}
