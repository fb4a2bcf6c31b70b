// Package session holds the per-page state shared by the checkout widgets.
package session

import "github.com/xenking/storefront-checkout/internal/dom"

// Default locations of the anti-forgery token.
const (
	DefaultTokenField = "csrfmiddlewaretoken"
	DefaultTokenMeta  = "csrf-token"
)

// Session is built once per page and handed to every component.
type Session struct {
	doc        dom.Document
	tokenField string
	tokenMeta  string
}

// Option configures a Session.
type Option func(*Session)

// WithTokenField overrides the id of the hidden token input.
func WithTokenField(id string) Option { return func(s *Session) { s.tokenField = id } }

// WithTokenMeta overrides the meta tag name carrying the token.
func WithTokenMeta(name string) Option { return func(s *Session) { s.tokenMeta = name } }

// New returns a Session reading from doc.
func New(doc dom.Document, opts ...Option) *Session {
	s := &Session{
		doc:        doc,
		tokenField: DefaultTokenField,
		tokenMeta:  DefaultTokenMeta,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Document returns the page document.
func (s *Session) Document() dom.Document { return s.doc }

// CSRFToken returns the anti-forgery token, preferring the hidden form field
// over the meta tag. It is read on every call so a refreshed token is picked
// up.
func (s *Session) CSRFToken() (string, bool) {
	if el, ok := s.doc.Element(s.tokenField); ok {
		if v := el.Value(); v != "" {
			return v, true
		}
	}
	if v, ok := s.doc.Meta(s.tokenMeta); ok && v != "" {
		return v, true
	}
	return "", false
}
