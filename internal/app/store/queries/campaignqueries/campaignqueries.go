// Package campaignqueries builds discovery filters for campaigns.
//
// Build is pure: it only composes predicates. The campaigns store runs
// the result.
package campaignqueries

import (
	"strings"

	"github.com/dalemusser/ecohub/internal/app/policy/campaignpolicy"
	"github.com/dalemusser/ecohub/internal/app/system/geo"
	"github.com/dalemusser/ecohub/internal/app/system/paging"
	"github.com/dalemusser/ecohub/internal/app/system/search"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Params are the raw discovery parameters of one request.
type Params struct {
	Category string
	Search   string
	Location string // "lng,lat,km"; ignored when it does not parse

	// Near, when set, is used instead of Location (the /location/nearby
	// endpoint takes the point and distance as separate parameters).
	Near *geo.Radius
}

// Filter is a built discovery query.
//
// Find and Count describe the same set of campaigns. They differ only when a
// radius is present: Find uses $near (nearest-first, not allowed in counts)
// and Count uses the equivalent $geoWithin.
type Filter struct {
	Find   bson.M
	Count  bson.M
	Radius *geo.Radius
}

// NearestFirst reports whether results come back ordered by distance.
func (f Filter) NearestFirst() bool { return f.Radius != nil }

// Build composes visibility, category, search and location into a Filter.
// Category is matched literally; an unknown category matches nothing.
func Build(p Params, vis campaignpolicy.VisibilityPolicy) Filter {
	var clauses []bson.M

	status := vis.Status
	if status == "" {
		status = campaignpolicy.DefaultVisibility.Status
	}
	clauses = append(clauses, bson.M{"status": status})

	if c := strings.TrimSpace(p.Category); c != "" {
		clauses = append(clauses, bson.M{"category": c})
	}
	if m := search.Match(p.Search); m != nil {
		clauses = append(clauses, m)
	}

	radius := p.Near
	if radius == nil && strings.TrimSpace(p.Location) != "" {
		if r, ok := geo.Parse(p.Location); ok {
			radius = &r
		}
	}

	f := Filter{Find: andify(clauses), Count: andify(clauses)}
	if radius != nil {
		f.Radius = radius
		f.Find = withLocation(clauses, radius.Near())
		f.Count = withLocation(clauses, radius.Within())
	}
	return f
}

// ForOrganizer lists every campaign an organizer owns, any status.
func ForOrganizer(organizerID primitive.ObjectID) Filter {
	m := bson.M{"organizer_id": organizerID}
	return Filter{Find: m, Count: m}
}

// FindOptions returns skip/limit for the page and, unless results are
// already distance-ordered, newest-first sorting.
func (f Filter) FindOptions(w paging.Window) *options.FindOptions {
	opts := options.Find().SetSkip(w.Skip()).SetLimit(w.Limit64())
	if !f.NearestFirst() {
		opts.SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	}
	return opts
}

// withLocation puts the spatial predicate at the top level next to the
// other clauses. $near is rejected inside $or and $elemMatch, so it is
// never nested.
func withLocation(clauses []bson.M, loc bson.M) bson.M {
	out := bson.M{"location": loc}
	if len(clauses) == 1 {
		for k, v := range clauses[0] {
			out[k] = v
		}
		return out
	}
	if len(clauses) > 1 {
		out["$and"] = clauses
	}
	return out
}

// andify composes clauses into a single bson.M with optional $and.
func andify(clauses []bson.M) bson.M {
	switch len(clauses) {
	case 0:
		return bson.M{}
	case 1:
		return clauses[0]
	default:
		return bson.M{"$and": clauses}
	}
}
