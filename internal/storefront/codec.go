package storefront

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// scalar reads a string, number, bool or null as a string. Ids and amounts
// arrive as either numbers or strings depending on the endpoint.
func scalar(d *jx.Decoder) (string, error) {
	switch t := d.Next(); t {
	case jx.String:
		return d.Str()
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return "", err
		}
		return n.String(), nil
	case jx.Bool:
		b, err := d.Bool()
		if err != nil {
			return "", err
		}
		if b {
			return "true", nil
		}
		return "false", nil
	case jx.Null:
		return "", d.Null()
	default:
		return "", errors.Errorf("unexpected %s", t)
	}
}

func boolean(d *jx.Decoder) (bool, error) {
	switch d.Next() {
	case jx.Bool:
		return d.Bool()
	case jx.Null:
		return false, d.Null()
	default:
		s, err := scalar(d)
		return s == "true" || s == "1", err
	}
}

func integer(d *jx.Decoder) (int, error) {
	if d.Next() == jx.Null {
		return 0, d.Null()
	}
	return d.Int()
}

func stringList(d *jx.Decoder) ([]string, error) {
	if d.Next() != jx.Array {
		s, err := scalar(d)
		if err != nil || s == "" {
			return nil, err
		}
		return []string{s}, nil
	}
	var out []string
	err := d.Arr(func(d *jx.Decoder) error {
		s, err := scalar(d)
		if err != nil {
			return err
		}
		out = append(out, s)
		return nil
	})
	return out, err
}

// list decodes the array under key of a top level object. A missing key is
// an error.
func list(data []byte, key string, item func(d *jx.Decoder) error) error {
	found := false
	err := jx.DecodeBytes(data).Obj(func(d *jx.Decoder, k string) error {
		if k != key {
			return d.Skip()
		}
		found = true
		if d.Next() == jx.Null {
			return d.Null()
		}
		return d.Arr(item)
	})
	if err != nil {
		return err
	}
	if !found {
		return errors.Errorf("missing %q", key)
	}
	return nil
}

func decodeRegions(data []byte) ([]Region, error) {
	out := []Region{}
	err := list(data, "regions", func(d *jx.Decoder) error {
		var r Region
		if err := d.Obj(func(d *jx.Decoder, key string) (err error) {
			switch key {
			case "id":
				r.ID, err = scalar(d)
			case "name":
				r.Name, err = scalar(d)
			case "code":
				r.Code, err = scalar(d)
			default:
				err = d.Skip()
			}
			return err
		}); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

func decodeCities(data []byte) ([]City, error) {
	out := []City{}
	err := list(data, "cities", func(d *jx.Decoder) error {
		var c City
		if err := d.Obj(func(d *jx.Decoder, key string) (err error) {
			switch key {
			case "id":
				c.ID, err = scalar(d)
			case "name":
				c.Name, err = scalar(d)
			case "postal_code":
				c.PostalCode, err = scalar(d)
			default:
				err = d.Skip()
			}
			return err
		}); err != nil {
			return err
		}
		out = append(out, c)
		return nil
	})
	return out, err
}

func decodeMethods(data []byte) ([]Method, error) {
	out := []Method{}
	err := list(data, "methods", func(d *jx.Decoder) error {
		var m Method
		if err := d.Obj(func(d *jx.Decoder, key string) (err error) {
			switch key {
			case "value":
				m.Value, err = scalar(d)
			case "label":
				m.Label, err = scalar(d)
			default:
				err = d.Skip()
			}
			return err
		}); err != nil {
			return err
		}
		out = append(out, m)
		return nil
	})
	return out, err
}

type feeResponse struct {
	success bool
	fee     DeliveryFee
	err     string
}

func decodeFee(data []byte) (feeResponse, error) {
	var r feeResponse
	err := jx.DecodeBytes(data).Obj(func(d *jx.Decoder, key string) (err error) {
		switch key {
		case "success":
			r.success, err = boolean(d)
		case "fee":
			r.fee.Fee, err = scalar(d)
		case "estimated_days":
			r.fee.EstimatedDays, err = integer(d)
		case "estimated_date":
			r.fee.EstimatedDate, err = scalar(d)
		case "error":
			r.err, err = scalar(d)
		default:
			err = d.Skip()
		}
		return err
	})
	return r, err
}

func decodeOrderResult(data []byte) (*OrderResult, error) {
	r := &OrderResult{}
	err := jx.DecodeBytes(data).Obj(func(d *jx.Decoder, key string) (err error) {
		switch key {
		case "success":
			r.Success, err = boolean(d)
		case "order_number":
			r.OrderNumber, err = scalar(d)
		case "order_id":
			r.OrderID, err = scalar(d)
		case "message":
			r.Message, err = scalar(d)
		case "error":
			r.Error, err = scalar(d)
		case "errors":
			r.Errors, err = fieldErrors(d)
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// fieldErrors keeps the server's field order.
func fieldErrors(d *jx.Decoder) ([]FieldError, error) {
	if d.Next() == jx.Null {
		return nil, d.Null()
	}
	var out []FieldError
	err := d.Obj(func(d *jx.Decoder, key string) error {
		msgs, err := stringList(d)
		if err != nil {
			return err
		}
		out = append(out, FieldError{Field: key, Messages: msgs})
		return nil
	})
	return out, err
}

func decodeLogo(data []byte) (string, error) {
	var logo string
	found := false
	err := jx.DecodeBytes(data).Obj(func(d *jx.Decoder, key string) (err error) {
		if key != "logo" {
			return d.Skip()
		}
		found = true
		logo, err = scalar(d)
		return err
	})
	if err == nil && !found {
		err = errors.New(`missing "logo"`)
	}
	return logo, err
}

func decodeBootstrap(data []byte) (*Bootstrap, error) {
	b := &Bootstrap{}
	err := jx.DecodeBytes(data).Obj(func(d *jx.Decoder, key string) (err error) {
		switch key {
		case "csrf_token":
			b.CSRFToken, err = scalar(d)
		case "subtotal":
			b.Subtotal, err = scalar(d)
		case "country":
			b.Country, err = scalar(d)
		case "countries":
			b.Countries, err = stringList(d)
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func decodeOrderDetail(data []byte) (*OrderDetail, error) {
	o := &OrderDetail{}
	err := jx.DecodeBytes(data).Obj(func(d *jx.Decoder, key string) (err error) {
		switch key {
		case "order_number":
			o.OrderNumber, err = scalar(d)
		case "status":
			o.Status, err = scalar(d)
		case "shipping_first_name":
			o.FirstName, err = scalar(d)
		case "shipping_last_name":
			o.LastName, err = scalar(d)
		case "shipping_phone":
			o.Phone, err = scalar(d)
		case "shipping_address":
			o.Address, err = scalar(d)
		case "shipping_city":
			o.City, err = scalar(d)
		case "shipping_country":
			o.Country, err = scalar(d)
		case "payment_method":
			o.PaymentMethod, err = scalar(d)
		case "subtotal":
			o.Subtotal, err = scalar(d)
		case "shipping_cost":
			o.ShippingCost, err = scalar(d)
		case "total_amount":
			o.Total, err = scalar(d)
		case "created_at":
			o.CreatedAt, err = scalar(d)
		case "items":
			err = d.Arr(func(d *jx.Decoder) error {
				var l OrderLine
				if err := d.Obj(func(d *jx.Decoder, key string) (err error) {
					switch key {
					case "product_name":
						l.ProductName, err = scalar(d)
					case "quantity":
						l.Quantity, err = integer(d)
					case "unit_price":
						l.UnitPrice, err = scalar(d)
					case "total_price":
						l.TotalPrice, err = scalar(d)
					default:
						err = d.Skip()
					}
					return err
				}); err != nil {
					return err
				}
				o.Items = append(o.Items, l)
				return nil
			})
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// errorMessage pulls "error" out of a failure body, if there is one.
func errorMessage(data []byte) string {
	var msg string
	_ = jx.DecodeBytes(data).Obj(func(d *jx.Decoder, key string) (err error) {
		if key != "error" {
			return d.Skip()
		}
		msg, err = scalar(d)
		return err
	})
	return msg
}

func encodeFeeRequest(r FeeRequest) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("city", func(e *jx.Encoder) { e.Str(r.City) })
		e.Field("country", func(e *jx.Encoder) { e.Str(r.Country) })
	})
	return e.Bytes()
}

func encodeDraft(d *Draft) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		d.Each(func(name, value string) {
			e.Field(name, func(e *jx.Encoder) { e.Str(value) })
		})
	})
	return e.Bytes()
}
