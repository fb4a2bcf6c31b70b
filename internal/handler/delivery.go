package handler

import (
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/storefront-checkout/internal/domain/delivery"
	"github.com/xenking/storefront-checkout/internal/domain/destination"
	"github.com/xenking/storefront-checkout/internal/domain/payment"
)

const msgCityRequired = "Ville requise pour la Côte d'Ivoire"

// maxBody caps request bodies of the JSON endpoints.
const maxBody = 64 << 10

// DeliveryFee quotes {"city","country"} as
// {"success":true,"fee","estimated_days","estimated_date"}.
func (h *Handler) DeliveryFee(w http.ResponseWriter, r *http.Request) {
	city, country, err := decodeFeeRequest(r)
	if err != nil {
		zctx.From(r.Context()).Debug("Bad fee request", zap.Error(err))
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	q, err := h.fees.Quote(r.Context(), city, country)
	switch {
	case errors.Is(err, delivery.ErrCityRequired):
		writeError(w, http.StatusBadRequest, msgCityRequired)
		return
	case err != nil:
		internalError(w, r, "Quote delivery", err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Field("success", func(e *jx.Encoder) { e.Bool(true) })
		e.Field("fee", func(e *jx.Encoder) { e.Str(q.Fee.String()) })
		e.Field("estimated_days", func(e *jx.Encoder) { e.Int(q.EstimatedDays) })
		e.Field("estimated_date", func(e *jx.Encoder) { e.Str(q.EstimatedDate.Format("2006-01-02")) })
	})
}

// decodeFeeRequest reads the quote body. A missing country is domestic.
func decodeFeeRequest(r *http.Request) (city, country string, err error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		return "", "", errors.Wrap(err, "read body")
	}
	country = destination.Domestic
	err = jx.DecodeBytes(data).Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "city":
			v, err := text(d)
			city = v
			return err
		case "country":
			v, err := text(d)
			if v != "" {
				country = v
			}
			return err
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return "", "", errors.Wrap(err, "decode body")
	}
	return city, country, nil
}

// PaymentMethods serves {"methods":[{value,label}]} for ?country=, domestic
// by default.
func (h *Handler) PaymentMethods(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	if country == "" {
		country = destination.Domestic
	}
	methods := payment.MethodsFor(country)
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Field("methods", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, m := range methods {
					e.Obj(func(e *jx.Encoder) {
						e.Field("value", func(e *jx.Encoder) { e.Str(m.Value) })
						e.Field("label", func(e *jx.Encoder) { e.Str(m.Label) })
					})
				}
			})
		})
	})
}

// PaymentLogo serves {"logo":path}. Unknown methods get the default logo.
func (h *Handler) PaymentLogo(w http.ResponseWriter, r *http.Request) {
	logo := payment.Logo(r.PathValue("method"))
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Field("logo", func(e *jx.Encoder) { e.Str(logo) })
	})
}
