package destination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhonePrefix(t *testing.T) {
	for _, c := range countries {
		assert.Equal(t, c.prefix, PhonePrefix(c.name), c.name)
	}
	assert.Equal(t, "+33", PhonePrefix("France"))
	assert.Equal(t, UnknownPrefix, PhonePrefix(Other))
	assert.Equal(t, UnknownPrefix, PhonePrefix("Atlantis"))
	assert.Equal(t, UnknownPrefix, PhonePrefix(""))
}

func TestPhonePlaceholder(t *testing.T) {
	assert.Equal(t, "0XXXXXXXXX", PhonePlaceholder(Domestic))
	assert.Equal(t, "+XXXXXXXXXX", PhonePlaceholder(Other))
	assert.Equal(t, "XXXXXXXXXX", PhonePlaceholder("Mali"))
}

func TestCities(t *testing.T) {
	fr := Cities("France")
	require.NotEmpty(t, fr)
	assert.Equal(t, "Paris", fr[0])

	// Callers get a copy.
	fr[0] = "Lutèce"
	assert.Equal(t, "Paris", Cities("France")[0])

	assert.Nil(t, Cities(Other))
	assert.Nil(t, Cities("Atlantis"))
}

func TestCountries(t *testing.T) {
	list := Countries()
	assert.Equal(t, Domestic, list[0])
	assert.Equal(t, Other, list[len(list)-1])
	assert.Len(t, list, 21)
}

func TestQuoteRequest(t *testing.T) {
	tests := []struct {
		name   string
		dest   Destination
		want   Quote
		wantOK bool
	}{
		{
			name:   "domestic city",
			dest:   Destination{Country: Domestic, RegionID: "1", CityID: "4", CityName: "Abidjan"},
			want:   Quote{City: "Abidjan", Country: Domestic, Label: "Abidjan"},
			wantOK: true,
		},
		{
			name: "domestic without city",
			dest: Destination{Country: Domestic, RegionID: "1"},
		},
		{
			name:   "foreign country only",
			dest:   Destination{Country: "France"},
			want:   Quote{City: "", Country: "France", Label: "France"},
			wantOK: true,
		},
		{
			name:   "foreign with city",
			dest:   Destination{Country: "France", CityName: "Lyon"},
			want:   Quote{City: "Lyon", Country: "France", Label: "Lyon"},
			wantOK: true,
		},
		{
			name: "no country",
			dest: Destination{CityName: "Lyon"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.dest.QuoteRequest()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
