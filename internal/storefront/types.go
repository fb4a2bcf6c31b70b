package storefront

import "github.com/xenking/storefront-checkout/internal/domain/payment"

// Region is a domestic administrative region.
type Region struct {
	ID   string
	Name string
	Code string
}

// City belongs to a region.
type City struct {
	ID         string
	Name       string
	PostalCode string
}

// DeliveryFee is a successful fee quote. Fee is kept as the raw string the
// server sent; it is parsed with the shared currency parser by callers.
type DeliveryFee struct {
	Fee           string
	EstimatedDays int
	EstimatedDate string
}

// FeeRequest is the body of a delivery fee quote.
type FeeRequest struct {
	City    string
	Country string
}

// FieldError lists the messages for one form field, in server order.
type FieldError struct {
	Field    string
	Messages []string
}

// OrderResult is the create-order response body. It is returned for both
// successful and rejected submissions.
type OrderResult struct {
	Success     bool
	OrderNumber string
	OrderID     string
	Message     string
	Error       string
	Errors      []FieldError
}

// Bootstrap is the checkout page state served to headless clients.
type Bootstrap struct {
	CSRFToken string
	Subtotal  string
	Country   string
	Countries []string
}

// OrderLine is one item of a placed order.
type OrderLine struct {
	ProductName string
	Quantity    int
	UnitPrice   string
	TotalPrice  string
}

// OrderDetail is the confirmation page payload for a placed order.
type OrderDetail struct {
	OrderNumber   string
	Status        string
	FirstName     string
	LastName      string
	Phone         string
	Address       string
	City          string
	Country       string
	PaymentMethod string
	Subtotal      string
	ShippingCost  string
	Total         string
	CreatedAt     string
	Items         []OrderLine
}

// Method is re-exported for callers that only import the client.
type Method = payment.Method
