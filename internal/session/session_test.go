package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xenking/storefront-checkout/internal/dom"
)

func TestCSRFToken(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(doc *dom.Memory)
		want   string
		wantOK bool
	}{
		{
			name: "hidden field",
			setup: func(doc *dom.Memory) {
				doc.Add("csrfmiddlewaretoken", dom.KindHidden, dom.WithValue("field-token"))
				doc.SetMeta("csrf-token", "meta-token")
			},
			want:   "field-token",
			wantOK: true,
		},
		{
			name: "meta fallback",
			setup: func(doc *dom.Memory) {
				doc.SetMeta("csrf-token", "meta-token")
			},
			want:   "meta-token",
			wantOK: true,
		},
		{
			name: "empty field falls back to meta",
			setup: func(doc *dom.Memory) {
				doc.Add("csrfmiddlewaretoken", dom.KindHidden)
				doc.SetMeta("csrf-token", "meta-token")
			},
			want:   "meta-token",
			wantOK: true,
		},
		{
			name:  "missing",
			setup: func(*dom.Memory) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := dom.NewMemory()
			tt.setup(doc)

			got, ok := New(doc).CSRFToken()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCSRFToken_CustomLocations(t *testing.T) {
	doc := dom.NewMemory()
	doc.Add("token", dom.KindHidden, dom.WithValue("abc"))

	s := New(doc, WithTokenField("token"), WithTokenMeta("x-csrf"))
	got, ok := s.CSRFToken()
	assert.True(t, ok)
	assert.Equal(t, "abc", got)

	// Refreshed tokens are picked up.
	el, _ := doc.Element("token")
	el.SetValue("def")
	got, _ = s.CSRFToken()
	assert.Equal(t, "def", got)
}
