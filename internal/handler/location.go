package handler

import (
	"net/http"
	"strconv"

	"github.com/go-faster/jx"
)

// Regions serves {"regions":[{id,name,code}]}.
func (h *Handler) Regions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.locations.ListRegions(r.Context())
	if err != nil {
		internalError(w, r, "List regions", err)
		return
	}
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Field("regions", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, rg := range regions {
					e.Obj(func(e *jx.Encoder) {
						e.Field("id", func(e *jx.Encoder) { e.Int64(rg.ID) })
						e.Field("name", func(e *jx.Encoder) { e.Str(rg.Name) })
						e.Field("code", func(e *jx.Encoder) { e.Str(rg.Code) })
					})
				}
			})
		})
	})
}

// Cities serves {"cities":[{id,name,postal_code}]} for a region. A non
// numeric id is not a route.
func (h *Handler) Cities(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 0 {
		http.NotFound(w, r)
		return
	}
	cities, err := h.locations.ListCities(r.Context(), id)
	if err != nil {
		internalError(w, r, "List cities", err)
		return
	}
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Field("cities", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, c := range cities {
					e.Obj(func(e *jx.Encoder) {
						e.Field("id", func(e *jx.Encoder) { e.Int64(c.ID) })
						e.Field("name", func(e *jx.Encoder) { e.Str(c.Name) })
						e.Field("postal_code", func(e *jx.Encoder) { e.Str(c.PostalCode) })
					})
				}
			})
		})
	})
}
