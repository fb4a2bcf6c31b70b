package storefront

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/storefront-checkout/internal/dom"
)

// --- Helpers ---

type staticToken string

func (s staticToken) CSRFToken() (string, bool) { return string(s), s != "" }

func newTestClient(t *testing.T, h http.Handler, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// --- Tests ---

func TestClient_Regions(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /orders/api/regions/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "XMLHttpRequest", r.Header.Get("X-Requested-With"))
		writeJSON(w, http.StatusOK, `{"regions":[{"id":1,"name":"Abidjan","code":"ABJ"},{"id":"2","name":"Bas-Sassandra","code":null}]}`)
	})
	c := newTestClient(t, mux)

	regions, err := c.Regions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Region{
		{ID: "1", Name: "Abidjan", Code: "ABJ"},
		{ID: "2", Name: "Bas-Sassandra"},
	}, regions)
}

func TestClient_Regions_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `{"error":"boom"}`,
			check: func(t *testing.T, err error) {
				var se *StatusError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
				assert.Equal(t, "boom", se.Message)
			},
		},
		{
			name:   "not json",
			status: http.StatusOK,
			body:   `<html>`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMalformedResponse)
			},
		},
		{
			name:   "missing key",
			status: http.StatusOK,
			body:   `{"items":[]}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMalformedResponse)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, tt.status, tt.body)
			}))
			_, err := c.Regions(context.Background())
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestClient_Cities(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /orders/api/regions/{id}/cities/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.PathValue("id"))
		writeJSON(w, http.StatusOK, `{"cities":[{"id":4,"name":"Abidjan","postal_code":""},{"id":5,"name":"Bingerville","postal_code":"01"}]}`)
	})
	c := newTestClient(t, mux)

	cities, err := c.Cities(context.Background(), "7")
	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, City{ID: "5", Name: "Bingerville", PostalCode: "01"}, cities[1])
}

func TestClient_DeliveryFee(t *testing.T) {
	var got map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /orders/api/calculate-delivery-fee/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok", r.Header.Get("X-CSRFToken"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, `{"success":true,"fee":"15000","estimated_days":10,"estimated_date":"2026-10-25"}`)
	})
	c := newTestClient(t, mux, WithTokenSource(staticToken("tok")))

	fee, err := c.DeliveryFee(context.Background(), FeeRequest{City: "", Country: "France"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"city": "", "country": "France"}, got)
	assert.Equal(t, &DeliveryFee{Fee: "15000", EstimatedDays: 10, EstimatedDate: "2026-10-25"}, fee)
}

func TestClient_DeliveryFee_NumericFee(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":true,"fee":4500.00,"estimated_days":5}`)
	}))

	fee, err := c.DeliveryFee(context.Background(), FeeRequest{City: "Abidjan", Country: "Côte d'Ivoire"})
	require.NoError(t, err)
	assert.Equal(t, "4500.00", fee.Fee)
}

func TestClient_DeliveryFee_Failures(t *testing.T) {
	t.Run("rejected", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, `{"success":false,"error":"zone inconnue"}`)
		}))
		_, err := c.DeliveryFee(context.Background(), FeeRequest{City: "X", Country: "Côte d'Ivoire"})
		require.ErrorIs(t, err, ErrRejected)
		assert.Contains(t, err.Error(), "zone inconnue")
	})

	t.Run("city required", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusBadRequest, `{"error":"Ville requise pour la Côte d'Ivoire"}`)
		}))
		_, err := c.DeliveryFee(context.Background(), FeeRequest{Country: "Côte d'Ivoire"})
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusBadRequest, se.StatusCode)
		assert.Equal(t, "Ville requise pour la Côte d'Ivoire", se.Message)
	})
}

func TestClient_PaymentMethods(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /orders/api/delivery-methods/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Côte d'Ivoire", r.URL.Query().Get("country"))
		writeJSON(w, http.StatusOK, `{"methods":[{"value":"cash","label":"Paiement à la livraison"},{"value":"wave","label":"Wave"}]}`)
	})
	c := newTestClient(t, mux)

	methods, err := c.PaymentMethods(context.Background(), "Côte d'Ivoire")
	require.NoError(t, err)
	assert.Equal(t, []Method{{Value: "cash", Label: "Paiement à la livraison"}, {Value: "wave", Label: "Wave"}}, methods)
}

func TestClient_PaymentLogo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /orders/api/payment-logo/{method}/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"logo":"/static/images/payment/`+r.PathValue("method")+`.png"}`)
	})
	c := newTestClient(t, mux)

	logo, err := c.PaymentLogo(context.Background(), "wave")
	require.NoError(t, err)
	assert.Equal(t, "/static/images/payment/wave.png", logo)
}

func TestClient_CreateOrder(t *testing.T) {
	var raw []byte
	mux := http.NewServeMux()
	mux.HandleFunc("POST /orders/api/create-order/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok", r.Header.Get("X-CSRFToken"))
		raw, _ = io.ReadAll(r.Body)
		writeJSON(w, http.StatusOK, `{"success":true,"order_number":"CMD-1A2B3C4D","order_id":42,"message":"Commande créée avec succès!"}`)
	})
	c := newTestClient(t, mux, WithTokenSource(staticToken("tok")))

	draft := NewDraft([]dom.Field{
		{Name: "shipping_first_name", Value: "Awa"},
		{Name: "shipping_city", Value: "4"},
		{Name: "shipping_first_name", Value: "Aya"},
	})
	res, err := c.CreateOrder(context.Background(), draft)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "CMD-1A2B3C4D", res.OrderNumber)
	assert.Equal(t, "42", res.OrderID)

	// Later duplicates win but keep the first position; the token is added
	// when the form did not carry it.
	assert.Equal(t, `{"shipping_first_name":"Aya","shipping_city":"4","csrfmiddlewaretoken":"tok"}`, string(raw))
}

func TestClient_CreateOrder_FieldErrors(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"success":false,"errors":{"shipping_phone":["Requis.","Trop court."],"shipping_address":["Requis."]}}`)
	}))

	res, err := c.CreateOrder(context.Background(), NewDraft(nil))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, []FieldError{
		{Field: "shipping_phone", Messages: []string{"Requis.", "Trop court."}},
		{Field: "shipping_address", Messages: []string{"Requis."}},
	}, res.Errors)
}

func TestClient_CreateOrder_Undecodable(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	}))

	_, err := c.CreateOrder(context.Background(), NewDraft(nil))
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
}

func TestClient_CreateOrder_Transport(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	srv.Close()

	_, err = c.CreateOrder(context.Background(), NewDraft(nil))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMalformedResponse))
	var se *StatusError
	assert.False(t, errors.As(err, &se))
}

func TestClient_CheckoutKeepsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /orders/api/checkout/", func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "s1", Path: "/"})
		writeJSON(w, http.StatusOK, `{"csrf_token":"tok","subtotal":"12 000","country":"Côte d'Ivoire","countries":["Côte d'Ivoire","France","Autre"]}`)
	})
	mux.HandleFunc("GET /orders/commande/{number}/", func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie("sessionid")
		if assert.NoError(t, err) {
			assert.Equal(t, "s1", ck.Value)
		}
		writeJSON(w, http.StatusOK, `{"order_number":"`+r.PathValue("number")+`","status":"pending","total_amount":"14500.00","items":[{"product_name":"Pagne","quantity":2,"unit_price":"6000.00","total_price":"12000.00"}]}`)
	})
	c := newTestClient(t, mux)

	b, err := c.Checkout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Bootstrap{
		CSRFToken: "tok",
		Subtotal:  "12 000",
		Country:   "Côte d'Ivoire",
		Countries: []string{"Côte d'Ivoire", "France", "Autre"},
	}, b)

	o, err := c.Order(context.Background(), "CMD-1A2B3C4D")
	require.NoError(t, err)
	assert.Equal(t, "CMD-1A2B3C4D", o.OrderNumber)
	assert.Equal(t, "14500.00", o.Total)
	require.Len(t, o.Items, 1)
	assert.Equal(t, 2, o.Items[0].Quantity)
}

func TestRoutes_OrderPage(t *testing.T) {
	assert.Equal(t, "/orders/commande/CMD-1A2B3C4D/", DefaultRoutes().OrderPage("CMD-1A2B3C4D"))
}
