package order

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront-checkout/internal/domain/destination"
	"github.com/xenking/storefront-checkout/internal/domain/payment"
)

// Form is the checkout form as posted by the storefront page. Field names
// follow the form tags.
type Form struct {
	FirstName     string `form:"shipping_first_name" validate:"required,max=50"`
	LastName      string `form:"shipping_last_name" validate:"required,max=50"`
	Phone         string `form:"shipping_phone" validate:"required,max=20"`
	Address       string `form:"shipping_address" validate:"required,max=255"`
	City          string `form:"shipping_city" validate:"required_without_all=CityInt CityName,max=100"`
	PostalCode    string `form:"shipping_postal_code" validate:"max=20"`
	Country       string `form:"shipping_country" validate:"required,max=100"`
	CityInt       string `form:"shipping_city_int" validate:"max=100"`
	CityName      string `form:"shipping_city_name" validate:"max=100"`
	Region        string `form:"shipping_region" validate:"max=100"`
	DeliveryFee   string `form:"calculated_delivery_fee" validate:"omitempty,fee"`
	PaymentMethod string `form:"payment_method" validate:"required,payment_method"`
	Notes         string `form:"notes"`
	Billing       string `form:"billing_address"`
}

// FormFromFields fills a Form from posted fields. Values are trimmed and
// unknown fields are ignored.
func FormFromFields(fields map[string]string) Form {
	var f Form
	v := reflect.ValueOf(&f).Elem()
	t := v.Type()
	for i := range t.NumField() {
		if s, ok := fields[t.Field(i).Tag.Get("form")]; ok {
			v.Field(i).SetString(strings.TrimSpace(s))
		}
	}
	if f.Country == "" {
		f.Country = destination.Domestic
	}
	return f
}

// ResolvedCity is the city the parcel ships to: the domestic city name,
// then the foreign city, then the raw city field.
func (f Form) ResolvedCity() string {
	switch {
	case f.CityName != "":
		return f.CityName
	case f.CityInt != "":
		return f.CityInt
	default:
		return f.City
	}
}

// Fee returns the delivery fee computed on the page. A missing fee is zero.
func (f Form) Fee() decimal.Decimal {
	d, err := decimal.NewFromString(f.DeliveryFee)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FieldError lists the messages for one form field.
type FieldError struct {
	Field    string
	Messages []string
}

// ValidationError is returned when the posted form is invalid. Fields keep
// form order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return "invalid checkout form: " + strings.Join(names, ", ")
}

// newValidator builds the form validator. Reported field names are the form
// tags.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("form")
	})
	must(v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		return payment.Allowed(fl.Field().String())
	}))
	must(v.RegisterValidation("fee", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && !d.IsNegative()
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// validateForm returns a *ValidationError listing every invalid field.
func validateForm(v *validator.Validate, f Form) error {
	err := v.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "validate form")
	}

	out := &ValidationError{}
	index := make(map[string]int)
	for _, fe := range verrs {
		name := fe.Field()
		i, ok := index[name]
		if !ok {
			i = len(out.Fields)
			index[name] = i
			out.Fields = append(out.Fields, FieldError{Field: name})
		}
		out.Fields[i].Messages = append(out.Fields[i].Messages, message(fe))
	}
	return out
}

// message renders a failed rule the way the storefront shows it.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without_all":
		return "Ce champ est obligatoire."
	case "max":
		return fmt.Sprintf("Assurez-vous que cette valeur comporte au plus %s caractères (actuellement %d).",
			fe.Param(), len([]rune(fe.Value().(string))))
	case "payment_method":
		return fmt.Sprintf("Sélectionnez un choix valide. %s n'en fait pas partie.", fe.Value())
	case "fee":
		return "Saisissez un nombre."
	default:
		return "Valeur invalide."
	}
}
