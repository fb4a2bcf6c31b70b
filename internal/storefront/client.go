// Package storefront is the HTTP client for the storefront checkout API.
package storefront

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrMalformedResponse is returned when a response body cannot be decoded.
var ErrMalformedResponse = errors.New("malformed response")

// ErrRejected is returned when the server answers success:false.
var ErrRejected = errors.New("request rejected")

// StatusError reports a non-success HTTP status.
type StatusError struct {
	StatusCode int
	// Message is the "error" field of the body, if any.
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

type malformedError struct {
	err error
}

func (e *malformedError) Error() string { return ErrMalformedResponse.Error() + ": " + e.err.Error() }
func (e *malformedError) Unwrap() error { return ErrMalformedResponse }

func malformed(err error) error { return &malformedError{err: err} }

// TokenSource supplies the anti-forgery token for mutating requests.
type TokenSource interface {
	CSRFToken() (string, bool)
}

// Client talks to the storefront.
type Client struct {
	base   *url.URL
	http   *http.Client
	routes Routes
	tokens TokenSource
	tracer trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented client.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

// WithRoutes overrides the endpoint paths.
func WithRoutes(r Routes) Option { return func(c *Client) { c.routes = r } }

// WithTokenSource sets where the CSRF token is read from.
func WithTokenSource(ts TokenSource) Option { return func(c *Client) { c.tokens = ts } }

// WithTracerProvider sets the tracer provider for client spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) { c.tracer = tp.Tracer("storefront") }
}

// NewClient returns a client for the storefront at baseURL. The default HTTP
// client keeps cookies and is instrumented with otelhttp.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "create cookie jar")
	}
	c := &Client{
		base: base,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Jar:       jar,
		},
		routes: DefaultRoutes(),
		tracer: otel.GetTracerProvider().Tracer("storefront"),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// SetTokenSource replaces the token source. Used once the page session exists.
func (c *Client) SetTokenSource(ts TokenSource) { c.tokens = ts }

type request struct {
	method   string
	path     string
	query    url.Values
	body     []byte
	mutating bool
}

type response struct {
	status int
	body   []byte
}

func (r response) ok() bool { return r.status >= 200 && r.status < 300 }

func (c *Client) do(ctx context.Context, req request) (response, error) {
	u := c.base.JoinPath(req.path)
	if req.query != nil {
		u.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}
	hr, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return response{}, errors.Wrap(err, "build request")
	}
	hr.Header.Set("Accept", "application/json")
	hr.Header.Set("X-Requested-With", "XMLHttpRequest")
	if req.body != nil {
		hr.Header.Set("Content-Type", "application/json")
	}
	if req.mutating && c.tokens != nil {
		if token, ok := c.tokens.CSRFToken(); ok {
			hr.Header.Set("X-CSRFToken", token)
		}
	}

	resp, err := c.http.Do(hr)
	if err != nil {
		return response{}, errors.Wrap(err, "send request")
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, errors.Wrap(err, "read body")
	}
	return response{status: resp.StatusCode, body: data}, nil
}

func (c *Client) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, "storefront."+op, trace.WithSpanKind(trace.SpanKindClient), trace.WithAttributes(attrs...))
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// get performs a GET and checks the status.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	resp, err := c.do(ctx, request{method: http.MethodGet, path: path, query: query})
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, &StatusError{StatusCode: resp.status, Message: errorMessage(resp.body)}
	}
	return resp.body, nil
}

// Regions lists the domestic regions.
func (c *Client) Regions(ctx context.Context) (_ []Region, rerr error) {
	ctx, span := c.start(ctx, "Regions")
	defer func() { finish(span, rerr) }()

	data, err := c.get(ctx, c.routes.Regions, nil)
	if err != nil {
		return nil, errors.Wrap(err, "list regions")
	}
	regions, err := decodeRegions(data)
	if err != nil {
		return nil, errors.Wrap(malformed(err), "list regions")
	}
	span.SetAttributes(attribute.Int("storefront.regions", len(regions)))
	return regions, nil
}

// Cities lists the cities of a region.
func (c *Client) Cities(ctx context.Context, regionID string) (_ []City, rerr error) {
	ctx, span := c.start(ctx, "Cities", attribute.String("storefront.region_id", regionID))
	defer func() { finish(span, rerr) }()

	data, err := c.get(ctx, c.routes.cities(regionID), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "list cities of region %s", regionID)
	}
	cities, err := decodeCities(data)
	if err != nil {
		return nil, errors.Wrapf(malformed(err), "list cities of region %s", regionID)
	}
	return cities, nil
}

// DeliveryFee quotes delivery to a destination.
func (c *Client) DeliveryFee(ctx context.Context, req FeeRequest) (_ *DeliveryFee, rerr error) {
	ctx, span := c.start(ctx, "DeliveryFee",
		attribute.String("storefront.city", req.City),
		attribute.String("storefront.country", req.Country),
	)
	defer func() { finish(span, rerr) }()

	resp, err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     c.routes.DeliveryFee,
		body:     encodeFeeRequest(req),
		mutating: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "quote delivery fee")
	}
	if !resp.ok() {
		return nil, errors.Wrap(&StatusError{StatusCode: resp.status, Message: errorMessage(resp.body)}, "quote delivery fee")
	}
	r, err := decodeFee(resp.body)
	if err != nil {
		return nil, errors.Wrap(malformed(err), "quote delivery fee")
	}
	if !r.success {
		if r.err != "" {
			return nil, errors.Wrapf(ErrRejected, "quote delivery fee: %s", r.err)
		}
		return nil, errors.Wrap(ErrRejected, "quote delivery fee")
	}
	return &r.fee, nil
}

// PaymentMethods lists the payment methods offered for a country.
func (c *Client) PaymentMethods(ctx context.Context, country string) (_ []Method, rerr error) {
	ctx, span := c.start(ctx, "PaymentMethods", attribute.String("storefront.country", country))
	defer func() { finish(span, rerr) }()

	data, err := c.get(ctx, c.routes.PaymentMethods, url.Values{"country": {country}})
	if err != nil {
		return nil, errors.Wrap(err, "list payment methods")
	}
	methods, err := decodeMethods(data)
	if err != nil {
		return nil, errors.Wrap(malformed(err), "list payment methods")
	}
	return methods, nil
}

// PaymentLogo returns the logo path the storefront serves for a method.
func (c *Client) PaymentLogo(ctx context.Context, method string) (_ string, rerr error) {
	ctx, span := c.start(ctx, "PaymentLogo", attribute.String("storefront.method", method))
	defer func() { finish(span, rerr) }()

	data, err := c.get(ctx, c.routes.paymentLogo(method), nil)
	if err != nil {
		return "", errors.Wrap(err, "get payment logo")
	}
	logo, err := decodeLogo(data)
	if err != nil {
		return "", errors.Wrap(malformed(err), "get payment logo")
	}
	return logo, nil
}

// CreateOrder submits the order. A decodable body is returned whatever the
// status, so callers can surface field errors; only transport failures and
// undecodable bodies are errors.
func (c *Client) CreateOrder(ctx context.Context, draft *Draft) (_ *OrderResult, rerr error) {
	ctx, span := c.start(ctx, "CreateOrder", attribute.Int("storefront.fields", draft.Len()))
	defer func() { finish(span, rerr) }()

	if c.tokens != nil {
		if token, ok := c.tokens.CSRFToken(); ok {
			if _, set := draft.Get(tokenField); !set {
				draft.Set(tokenField, token)
			}
		}
	}

	resp, err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     c.routes.CreateOrder,
		body:     encodeDraft(draft),
		mutating: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create order")
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.status))

	res, err := decodeOrderResult(resp.body)
	if err != nil {
		if !resp.ok() {
			return nil, errors.Wrap(&StatusError{StatusCode: resp.status}, "create order")
		}
		return nil, errors.Wrap(malformed(err), "create order")
	}
	return res, nil
}

// tokenField is the form field the server reads the CSRF token from.
const tokenField = "csrfmiddlewaretoken"

// Checkout loads the checkout page bootstrap and starts a session.
func (c *Client) Checkout(ctx context.Context) (_ *Bootstrap, rerr error) {
	ctx, span := c.start(ctx, "Checkout")
	defer func() { finish(span, rerr) }()

	data, err := c.get(ctx, c.routes.Checkout, nil)
	if err != nil {
		return nil, errors.Wrap(err, "load checkout")
	}
	b, err := decodeBootstrap(data)
	if err != nil {
		return nil, errors.Wrap(malformed(err), "load checkout")
	}
	return b, nil
}

// Order fetches a placed order by number.
func (c *Client) Order(ctx context.Context, number string) (_ *OrderDetail, rerr error) {
	ctx, span := c.start(ctx, "Order", attribute.String("storefront.order_number", number))
	defer func() { finish(span, rerr) }()

	data, err := c.get(ctx, c.routes.orderDetail(number), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "get order %s", number)
	}
	o, err := decodeOrderDetail(data)
	if err != nil {
		return nil, errors.Wrapf(malformed(err), "get order %s", number)
	}
	return o, nil
}
