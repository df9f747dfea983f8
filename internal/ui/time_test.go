package ui

import (
	"testing"
	"time"
)

func TestFormatDurationShort(t *testing.T) {
	cases := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{name: "seconds", duration: 45 * time.Second, want: "45s"},
		{name: "minutes", duration: 2*time.Minute + 10*time.Second, want: "2m"},
		{name: "hours", duration: 3*time.Hour + 5*time.Minute, want: "3h"},
		{name: "days", duration: 48 * time.Hour, want: "2d"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatDurationShort(tc.duration)
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestFormatTimeAgo(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	then := now.Add(-2 * time.Minute)

	got := FormatTimeAgo(then, now)
	if got != "2m ago" {
		t.Fatalf("expected 2m ago, got %s", got)
	}

	if got := FormatTimeAgo(time.Time{}, now); got != "-" {
		t.Fatalf("expected - for zero time, got %s", got)
	}
}

func TestFormatDate(t *testing.T) {
	value := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)

	if got := FormatDate(value); got != "2025-06-08" {
		t.Fatalf("expected 2025-06-08, got %s", got)
	}
	if got := FormatDate(time.Time{}); got != "-" {
		t.Fatalf("expected - for zero time, got %s", got)
	}
	if got := FormatOptionalDate(nil); got != "-" {
		t.Fatalf("expected - for nil date, got %s", got)
	}
	if got := FormatOptionalDate(&value); got != "2025-06-08" {
		t.Fatalf("expected 2025-06-08, got %s", got)
	}
}
