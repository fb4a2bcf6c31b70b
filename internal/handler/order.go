package handler

import (
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/storefront-checkout/internal/domain/cart"
	"github.com/xenking/storefront-checkout/internal/domain/destination"
	"github.com/xenking/storefront-checkout/internal/domain/order"
	"github.com/xenking/storefront-checkout/pkg/httpmiddleware"
)

const (
	msgOrderCreated = "Votre commande a été créée avec succès!"
	msgEmptyCart    = "Votre panier est vide."
	msgOrderFailed  = "Une erreur est survenue lors de la création de votre commande."
)

// text reads a JSON scalar as a string. Numbers keep their literal form and
// null is empty.
func text(d *jx.Decoder) (string, error) {
	switch t := d.Next(); t {
	case jx.String:
		return d.Str()
	case jx.Number:
		n, err := d.Num()
		return n.String(), err
	case jx.Bool:
		b, err := d.Bool()
		if b {
			return "true", err
		}
		return "false", err
	case jx.Null:
		return "", d.Null()
	default:
		return "", errors.Errorf("unexpected %s", t)
	}
}

// orderFields reads the posted checkout form, either a flat JSON object or a
// urlencoded form.
func orderFields(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/x-www-form-urlencoded" || ct == "multipart/form-data" {
		r.Body = http.MaxBytesReader(w, r.Body, maxBody)
		if err := r.ParseForm(); err != nil {
			return nil, errors.Wrap(err, "parse form")
		}
		fields := make(map[string]string, len(r.PostForm))
		for k := range r.PostForm {
			fields[k] = r.PostForm.Get(k)
		}
		return fields, nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}
	fields := make(map[string]string)
	err = jx.DecodeBytes(data).Obj(func(d *jx.Decoder, key string) error {
		v, err := text(d)
		fields[key] = v
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode body")
	}
	return fields, nil
}

// CreateOrder places the session cart as an order. Every outcome is a
// {"success":...} body; invalid forms list their errors field by field.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	fields, err := orderFields(w, r)
	if err != nil {
		zctx.From(r.Context()).Debug("Bad order request", zap.Error(err))
		writeFailure(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	sessionID := httpmiddleware.SessionIDFromContext(r.Context())
	o, err := h.orders.Create(r.Context(), sessionID, fields)
	if err != nil {
		mapOrderError(w, r, err)
		return
	}

	zctx.From(r.Context()).Info("Order created",
		zap.String("order_number", o.Number),
		zap.Int64("order_id", o.ID),
		zap.String("country", o.Shipping.Country),
		zap.String("payment_method", o.PaymentMethod),
		zap.Stringer("total", o.Total),
	)
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Field("success", func(e *jx.Encoder) { e.Bool(true) })
		e.Field("order_number", func(e *jx.Encoder) { e.Str(o.Number) })
		e.Field("order_id", func(e *jx.Encoder) { e.Int64(o.ID) })
		e.Field("message", func(e *jx.Encoder) { e.Str(msgOrderCreated) })
	})
}

// mapOrderError writes the response for a failed order placement.
func mapOrderError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *order.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, func(e *jx.Encoder) {
			e.Field("success", func(e *jx.Encoder) { e.Bool(false) })
			e.Field("errors", func(e *jx.Encoder) {
				e.Obj(func(e *jx.Encoder) {
					for _, f := range verr.Fields {
						e.Field(f.Field, func(e *jx.Encoder) { strArr(e, f.Messages) })
					}
				})
			})
		})
	case errors.Is(err, order.ErrEmptyCart):
		writeFailure(w, http.StatusBadRequest, msgEmptyCart)
	case errors.Is(err, order.ErrNotFound):
		writeError(w, http.StatusNotFound, "Commande introuvable.")
	default:
		zctx.From(r.Context()).Error("Create order", zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, msgOrderFailed)
	}
}

// OrderDetail serves a placed order to the session that placed it.
func (h *Handler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Get(r.Context(), r.PathValue("number"))
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			mapOrderError(w, r, err)
			return
		}
		internalError(w, r, "Get order", err)
		return
	}
	if o.SessionID != httpmiddleware.SessionIDFromContext(r.Context()) {
		mapOrderError(w, r, order.ErrNotFound)
		return
	}

	s := o.Shipping
	str := func(e *jx.Encoder, name, v string) { e.Field(name, func(e *jx.Encoder) { e.Str(v) }) }
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		str(e, "order_number", o.Number)
		str(e, "status", string(o.Status))
		str(e, "shipping_first_name", s.FirstName)
		str(e, "shipping_last_name", s.LastName)
		str(e, "shipping_phone", s.Phone)
		str(e, "shipping_address", s.Address)
		str(e, "shipping_city", s.City)
		str(e, "shipping_postal_code", s.PostalCode)
		str(e, "shipping_country", s.Country)
		str(e, "shipping_region", s.Region)
		str(e, "payment_method", o.PaymentMethod)
		str(e, "notes", o.Notes)
		str(e, "subtotal", o.Subtotal.StringFixed(2))
		str(e, "shipping_cost", o.ShippingCost.StringFixed(2))
		str(e, "tax_amount", o.TaxAmount.StringFixed(2))
		str(e, "total_amount", o.Total.StringFixed(2))
		str(e, "created_at", o.CreatedAt.Format(time.RFC3339))
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, it := range o.Items {
					e.Obj(func(e *jx.Encoder) {
						str(e, "product_name", it.ProductName)
						e.Field("quantity", func(e *jx.Encoder) { e.Int(it.Quantity) })
						str(e, "unit_price", it.UnitPrice.StringFixed(2))
						str(e, "total_price", it.TotalPrice.StringFixed(2))
					})
				}
			})
		})
	})
}

// Checkout serves the page bootstrap: the anti-forgery token, the cart
// subtotal and the selectable countries.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	items, err := h.carts.Items(r.Context(), httpmiddleware.SessionIDFromContext(r.Context()))
	if err != nil {
		internalError(w, r, "Get cart items", err)
		return
	}
	subtotal := cart.Subtotal(items)
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Field("csrf_token", func(e *jx.Encoder) { e.Str(httpmiddleware.CSRFTokenFromContext(r.Context())) })
		e.Field("subtotal", func(e *jx.Encoder) { e.Str(subtotal.StringFixed(2)) })
		e.Field("country", func(e *jx.Encoder) { e.Str(destination.Domestic) })
		e.Field("countries", func(e *jx.Encoder) { strArr(e, destination.Countries()) })
	})
}
