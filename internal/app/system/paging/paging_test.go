package paging

import (
	"math"
	"net/http/httptest"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		page  string
		limit string
		max   int
		want  Window
	}{
		{"defaults", "", "", 0, Window{Page: 1, Limit: DefaultLimit}},
		{"explicit", "3", "25", 0, Window{Page: 3, Limit: 25}},
		{"non-numeric", "abc", "x", 0, Window{Page: 1, Limit: DefaultLimit}},
		{"zero", "0", "0", 0, Window{Page: 1, Limit: DefaultLimit}},
		{"negative", "-2", "-5", 0, Window{Page: 1, Limit: DefaultLimit}},
		{"clamped to max", "1", "1000", 50, Window{Page: 1, Limit: 50}},
		{"clamped to default max", "1", "1000", 0, Window{Page: 1, Limit: MaxLimit}},
		{"huge page clamped", "9223372036854775807", "100", 100, Window{Page: math.MaxInt64 / 100, Limit: 100}},
		{"page beyond int", "99999999999999999999", "10", 0, Window{Page: 1, Limit: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.page, tt.limit, tt.max)
			if got != tt.want {
				t.Errorf("Parse(%q, %q, %d) = %+v, want %+v", tt.page, tt.limit, tt.max, got, tt.want)
			}
		})
	}
}

func TestWindow_Skip(t *testing.T) {
	tests := []struct {
		w    Window
		want int64
	}{
		{Window{Page: 1, Limit: 10}, 0},
		{Window{Page: 2, Limit: 10}, 10},
		{Window{Page: 5, Limit: 7}, 28},
	}
	for _, tt := range tests {
		if got := tt.w.Skip(); got != tt.want {
			t.Errorf("%+v.Skip() = %d, want %d", tt.w, got, tt.want)
		}
	}
}

func TestWindow_SkipNeverNegative(t *testing.T) {
	for _, limit := range []string{"1", "7", "100"} {
		w := Parse("9223372036854775807", limit, 100)
		if w.Skip() < 0 {
			t.Errorf("limit %s: Skip() = %d, want >= 0", limit, w.Skip())
		}
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{100, 10, 10},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/campaigns?page=2&limit=10", nil)
	got := FromRequest(r, MaxLimit)
	if got.Page != 2 || got.Limit != 10 || got.Skip() != 10 {
		t.Errorf("FromRequest = %+v (skip %d), want page 2 limit 10 skip 10", got, got.Skip())
	}
}

func TestNewEnvelope(t *testing.T) {
	env := NewEnvelope[string](nil, 0, Window{Page: 1, Limit: 10})
	if env.Campaigns == nil || env.Count != 0 || env.TotalPages != 0 || !env.Success {
		t.Errorf("empty envelope = %+v", env)
	}

	env = NewEnvelope([]string{"a", "b"}, 12, Window{Page: 2, Limit: 10})
	if env.Count != 2 || env.Total != 12 || env.TotalPages != 2 || env.CurrentPage != 2 {
		t.Errorf("envelope = %+v", env)
	}
}
