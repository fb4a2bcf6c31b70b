// Package location holds the administrative regions and cities deliveries
// are addressed to.
package location

import "context"

// Region is a first-level administrative area.
type Region struct {
	ID   int64
	Name string
	Code string
}

// City belongs to exactly one region.
type City struct {
	ID         int64
	RegionID   int64
	Name       string
	PostalCode string
}

// Repository lists active regions and cities ordered by name. An unknown
// region has no cities; that is not an error.
type Repository interface {
	ListRegions(ctx context.Context) ([]Region, error)
	ListCities(ctx context.Context, regionID int64) ([]City, error)
}
