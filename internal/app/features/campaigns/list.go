// internal/app/features/campaigns/list.go
package campaigns

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/ecohub/internal/app/policy/campaignpolicy"
	"github.com/dalemusser/ecohub/internal/app/store/queries/campaignqueries"
	"github.com/dalemusser/ecohub/internal/app/system/apperr"
	"github.com/dalemusser/ecohub/internal/app/system/geo"
	"github.com/dalemusser/ecohub/internal/app/system/metrics"
	"github.com/dalemusser/ecohub/internal/app/system/paging"
	"github.com/dalemusser/ecohub/internal/app/system/respond"
	"github.com/dalemusser/ecohub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultNearbyKm is the radius used by /location/nearby when none is given.
const DefaultNearbyKm = 10.0

// ServeList handles GET /campaigns.
//
// Query: category, status (admins only), location ("lng,lat,km"), search,
// page, limit. Malformed optional filters are ignored, never errors.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	req := campaignpolicy.RequesterFrom(r)
	vis := campaignpolicy.ForRequester(req, query.Get(r, "status"))
	f := campaignqueries.Build(campaignqueries.Params{
		Category: query.Get(r, "category"),
		Search:   query.Get(r, "search"),
		Location: query.Get(r, "location"),
	}, vis)
	h.serveFilter(w, r, "list campaigns", f)
}

// ServeNearby handles GET /campaigns/location/nearby.
//
// Accepts either lng, lat and distance (km, default 10) or the combined
// location parameter. Unlike the list, a missing or invalid point is a 400:
// the endpoint means nothing without one.
func (h *Handler) ServeNearby(w http.ResponseWriter, r *http.Request) {
	radius, ok := nearbyRadius(r)
	if !ok {
		h.ErrLog.Respond(w, r, "nearby campaigns",
			apperr.NewValidation("lng and lat are required and must be valid coordinates."))
		return
	}
	req := campaignpolicy.RequesterFrom(r)
	f := campaignqueries.Build(campaignqueries.Params{
		Category: query.Get(r, "category"),
		Search:   query.Get(r, "search"),
		Near:     &radius,
	}, campaignpolicy.ForRequester(req, ""))
	h.serveFilter(w, r, "nearby campaigns", f)
}

// ServeMine handles GET /campaigns/user/mycampaigns: every campaign the
// signed-in organizer owns, in any status.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	req := campaignpolicy.RequesterFrom(r)
	if req.Anonymous() {
		respond.Fail(w, http.StatusUnauthorized, "Please sign in to continue.")
		return
	}
	h.serveFilter(w, r, "my campaigns", campaignqueries.ForOrganizer(req.ID))
}

func (h *Handler) serveFilter(w http.ResponseWriter, r *http.Request, op string, f campaignqueries.Filter) {
	win := paging.FromRequest(r, h.MaxLimit)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.List(), h.Log, op)
	defer cancel()

	start := time.Now()
	rows, total, err := h.Store.List(ctx, f, win)
	metrics.ObserveDiscovery(f.NearestFirst(), time.Since(start))
	if err != nil {
		h.ErrLog.Respond(w, r, op, listErr(err))
		return
	}
	respond.JSON(w, http.StatusOK, paging.NewEnvelope(rows, total, win))
}

func nearbyRadius(r *http.Request) (geo.Radius, bool) {
	if loc := query.Get(r, "location"); loc != "" {
		return geo.Parse(loc)
	}
	lng, lat := query.Get(r, "lng"), query.Get(r, "lat")
	if lng == "" || lat == "" {
		return geo.Radius{}, false
	}
	km := strconv.FormatFloat(DefaultNearbyKm, 'f', -1, 64)
	if d := query.Get(r, "distance"); d != "" {
		km = d
	}
	return geo.Parse(strings.Join([]string{lng, lat, km}, ","))
}
