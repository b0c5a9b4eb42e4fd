// internal/app/system/search/search.go
package search

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fields are the campaign fields a free-text query is matched against.
// description_text is the tag-free copy of the description the store keeps,
// so queries match visible text and never markup. "tags" is an array; a
// regex on an array field matches if any element does.
var Fields = []string{"title", "description_text", "tags"}

// Normalize trims a raw query. An empty result means "no constraint".
func Normalize(q string) string {
	return strings.TrimSpace(q)
}

// Pattern returns a case-insensitive regex that matches q as a literal
// substring. Regex metacharacters in q have no special meaning.
func Pattern(q string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
}

// Match returns an $or predicate matching q against every field in Fields,
// or nil when q is empty.
func Match(q string) bson.M {
	q = Normalize(q)
	if q == "" {
		return nil
	}
	re := Pattern(q)
	or := make(bson.A, 0, len(Fields))
	for _, f := range Fields {
		or = append(or, bson.M{f: re})
	}
	return bson.M{"$or": or}
}

// Matches applies the same rule in memory: true if any of the given
// values contains q, ignoring case. Used where results are filtered
// outside Mongo (tests, fakes).
func Matches(q string, values ...string) bool {
	q = strings.ToLower(Normalize(q))
	if q == "" {
		return true
	}
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}
