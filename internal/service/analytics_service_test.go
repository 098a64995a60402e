package service

import (
	"errors"
	"testing"
	"time"
)

func TestResolveRangeWindows(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	cases := []struct {
		token string
		days  int
	}{
		{"7d", 7},
		{"30d", 30},
		{"90d", 90},
		{"1y", 365},
		{"", 30},
		{" 7D ", 7},
		{" 1Y ", 365},
	}
	for _, tc := range cases {
		start, end, err := ResolveRange(tc.token, now)
		if err != nil {
			t.Fatalf("ResolveRange(%q) failed: %v", tc.token, err)
		}
		if got := int(end.Sub(start).Hours() / 24); got != tc.days {
			t.Fatalf("ResolveRange(%q) window want %d days got %d", tc.token, tc.days, got)
		}
		// window must include all of today
		if !end.After(now) {
			t.Fatalf("ResolveRange(%q) end %v does not cover now %v", tc.token, end, now)
		}
	}
}

func TestResolveRangeRejectsUnknownToken(t *testing.T) {
	for _, token := range []string{"1d", "365d", "all", "seven"} {
		if _, _, err := ResolveRange(token, time.Now()); !errors.Is(err, ErrInvalidAnalyticsRange) {
			t.Fatalf("ResolveRange(%q) want ErrInvalidAnalyticsRange got %v", token, err)
		}
	}
}
