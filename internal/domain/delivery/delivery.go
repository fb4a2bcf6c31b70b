// Package delivery prices shipping to a destination.
//
// Foreign countries have flat fees. Domestic cities map to a delivery zone
// whose fee and lead time live in the zone repository.
package delivery

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/storefront-checkout/internal/domain/destination"
)

// ZoneOther is the catch-all domestic zone.
const ZoneOther = "civ_other"

var (
	// ErrCityRequired is returned for a domestic quote without a city.
	ErrCityRequired = errors.New("city required for domestic delivery")
	// ErrZoneNotFound is returned by ZoneRepository for unknown or inactive zones.
	ErrZoneNotFound = errors.New("delivery zone not found")
)

// Zone is a priced group of domestic cities.
type Zone struct {
	Type          string
	Name          string
	Fee           decimal.Decimal
	EstimatedDays int
}

// ZoneRepository looks up active zones.
type ZoneRepository interface {
	ZoneByType(ctx context.Context, zoneType string) (*Zone, error)
}

// Quote is a priced delivery.
type Quote struct {
	Zone          string
	Fee           decimal.Decimal
	EstimatedDays int
	EstimatedDate time.Time
}

// DefaultZone prices a domestic city when no zone row can be read.
var DefaultZone = Zone{
	Type:          ZoneOther,
	Name:          "Zone par défaut",
	Fee:           decimal.NewFromInt(4500),
	EstimatedDays: 5,
}

var (
	nearFee = decimal.NewFromInt(10000)
	farFee  = decimal.NewFromInt(15000)
)

// foreignFees are flat fees per country. Near countries ship in 7 days, the
// rest in 10.
var foreignFees = map[string]decimal.Decimal{
	"Mali":         nearFee,
	"Burkina Faso": nearFee,
	"Sénégal":      nearFee,
	"Guinée":       nearFee,
	"Ghana":        farFee,
	"Togo":         farFee,
	"Bénin":        farFee,
	"Niger":        farFee,
	"Nigeria":      farFee,
	"Cameroun":     farFee,
	"Congo":        farFee,
	"Gabon":        farFee,
	"Tchad":        farFee,
	"RCA":          farFee,
	"Tunisie":      farFee,
	"Maroc":        farFee,
	"Algérie":      farFee,
	"France":       farFee,
	"Belgique":     farFee,
}

// ForeignFee returns the flat fee and lead time for country.
func ForeignFee(country string) (fee decimal.Decimal, days int, ok bool) {
	fee, ok = foreignFees[country]
	if !ok {
		return decimal.Zero, 0, false
	}
	if fee.Equal(nearFee) {
		return fee, 7, true
	}
	return fee, 10, true
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock estimated dates are computed from.
func WithClock(c clockwork.Clock) Option { return func(s *Service) { s.clock = c } }

// WithLogger sets the logger for zone lookup failures.
func WithLogger(lg *zap.Logger) Option { return func(s *Service) { s.lg = lg } }

// Service quotes delivery fees.
type Service struct {
	zones ZoneRepository
	clock clockwork.Clock
	lg    *zap.Logger
}

// NewService creates a Service backed by zones.
func NewService(zones ZoneRepository, opts ...Option) *Service {
	s := &Service{
		zones: zones,
		clock: clockwork.NewRealClock(),
		lg:    zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Quote prices delivery of a parcel to city in country. An empty country is
// domestic. Countries without a flat fee, "Autre" included, are priced by
// city like domestic deliveries, so they need a city too.
//
// Zone lookup failures never fail the quote: the city falls back to the
// catch-all zone and then to DefaultZone.
func (s *Service) Quote(ctx context.Context, city, country string) (*Quote, error) {
	if country == "" {
		country = destination.Domestic
	}
	if fee, days, ok := ForeignFee(country); ok {
		return s.quote(country, fee, days), nil
	}

	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ErrCityRequired
	}

	zone := s.zone(ctx, ZoneFor(city))
	return s.quote(zone.Type, zone.Fee, zone.EstimatedDays), nil
}

func (s *Service) zone(ctx context.Context, zoneType string) Zone {
	z, err := s.zones.ZoneByType(ctx, zoneType)
	if err == nil {
		return *z
	}
	if !errors.Is(err, ErrZoneNotFound) {
		s.lg.Error("Look up delivery zone", zap.String("zone", zoneType), zap.Error(err))
		return DefaultZone
	}
	if zoneType != ZoneOther {
		return s.zone(ctx, ZoneOther)
	}
	s.lg.Warn("Catch-all delivery zone missing, using default")
	return DefaultZone
}

func (s *Service) quote(zone string, fee decimal.Decimal, days int) *Quote {
	now := s.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return &Quote{
		Zone:          zone,
		Fee:           fee,
		EstimatedDays: days,
		EstimatedDate: today.AddDate(0, 0, days),
	}
}
