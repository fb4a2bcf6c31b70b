package checkout

import (
	"context"

	"go.uber.org/zap"

	"github.com/xenking/storefront-checkout/internal/dom"
	"github.com/xenking/storefront-checkout/internal/storefront"
	"github.com/xenking/storefront-checkout/internal/uiloop"
)

// Select placeholders.
const (
	RegionPlaceholder = "Sélectionnez une région"
	CityPlaceholder   = "Sélectionnez une ville"
)

// AddressResolver fills the domestic region and city selects. Its methods
// must run on the UI loop.
type AddressResolver struct {
	*deps
	regions sequence
	cities  sequence
}

func newAddressResolver(d *deps) *AddressResolver {
	return &AddressResolver{
		deps:    d,
		regions: sequence{policy: d.policy},
		cities:  sequence{policy: d.policy},
	}
}

// LoadRegions replaces the region options with the storefront's regions. On
// failure only the placeholder is left.
func (a *AddressResolver) LoadRegions(ctx context.Context) {
	tok := a.regions.next()
	uiloop.Async(a.loop, ctx, a.api.Regions, func(regions []storefront.Region, err error) {
		if !a.regions.fresh(tok) {
			a.lg.Debug("Dropping stale regions")
			return
		}
		opts := []dom.Option{{Value: "", Label: RegionPlaceholder}}
		if err != nil {
			a.lg.Warn("Load regions", zap.Error(err))
			a.m.loads.Add(ctx, 1, outcome("error", widget("regions")))
		} else {
			for _, r := range regions {
				opts = append(opts, dom.Option{Value: r.ID, Label: r.Name})
			}
			a.m.loads.Add(ctx, 1, outcome("ok", widget("regions")))
		}
		a.page.with(a.sel.Region, func(el dom.Element) { el.SetOptions(opts) })
	})
}

// LoadCities replaces the city options with the cities of regionID. An empty
// region is ignored. On failure the current options are kept.
func (a *AddressResolver) LoadCities(ctx context.Context, regionID string) {
	if regionID == "" {
		return
	}
	tok := a.cities.next()
	uiloop.Async(a.loop, ctx, func(ctx context.Context) ([]storefront.City, error) {
		return a.api.Cities(ctx, regionID)
	}, func(cities []storefront.City, err error) {
		if !a.cities.fresh(tok) {
			a.lg.Debug("Dropping stale cities", zap.String("region_id", regionID))
			return
		}
		if err != nil {
			a.lg.Warn("Load cities", zap.String("region_id", regionID), zap.Error(err))
			a.m.loads.Add(ctx, 1, outcome("error", widget("cities")))
			return
		}
		opts := make([]dom.Option, 0, len(cities)+1)
		opts = append(opts, dom.Option{Value: "", Label: CityPlaceholder})
		for _, c := range cities {
			opts = append(opts, dom.Option{Value: c.ID, Label: c.Name})
		}
		a.page.with(a.sel.City, func(el dom.Element) { el.SetOptions(opts) })
		a.m.loads.Add(ctx, 1, outcome("ok", widget("cities")))
	})
}
