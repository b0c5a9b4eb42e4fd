// internal/app/system/htmlsanitize/htmlsanitize.go
//
// Package htmlsanitize cleans user-submitted campaign text before it is
// stored. Descriptions may carry basic formatting (UGC policy); titles,
// short descriptions, tags and captions are plain text.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugc    = newUGCPolicy()
	strict = bluemonday.StrictPolicy()
)

func newUGCPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Sanitize keeps safe formatting HTML and drops scripts, event handlers,
// javascript: URLs, iframes and forms.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(ugc.Sanitize(s))
}

// PlainText removes every tag and returns unescaped text.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// PlainTexts applies PlainText to each value and drops values that end up
// empty. Used for tags and requirement lists.
func PlainTexts(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if t := PlainText(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
