package main

import (
	"testing"
	"time"
)

func TestParseMoneyFlag(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "whole dollars", input: "125000", want: 12_500_000},
		{name: "cents", input: "42.50", want: 4250},
		{name: "one decimal", input: "42.5", want: 4250},
		{name: "dollar sign", input: "$99.99", want: 9999},
		{name: "negative", input: "-10.25", want: -1025},
		{name: "bare fraction", input: ".75", want: 75},
		{name: "empty", input: "", wantErr: true},
		{name: "words", input: "ten", wantErr: true},
		{name: "too many decimals", input: "1.234", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseMoneyFlag("amount", tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %d cents, got %d", tc.want, got)
			}
		})
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{cents: 0, want: "$0.00"},
		{cents: 4250, want: "$42.50"},
		{cents: 12_500_000, want: "$125000.00"},
		{cents: -1025, want: "-$10.25"},
	}

	for _, tc := range tests {
		if got := formatMoney(tc.cents); got != tc.want {
			t.Errorf("formatMoney(%d): expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

func TestParseDateFlag(t *testing.T) {
	got, err := parseDateFlag("start", "2025-06-11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, time.June, 11, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if _, err := parseDateFlag("start", "June 11"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

func TestShouldUseEditor(t *testing.T) {
	tests := []struct {
		name        string
		hasFlags    bool
		edit        bool
		noEdit      bool
		interactive bool
		want        bool
	}{
		{name: "edit forces", hasFlags: true, edit: true, want: true},
		{name: "no-edit skips", interactive: true, noEdit: true, want: false},
		{name: "flags skip", hasFlags: true, interactive: true, want: false},
		{name: "interactive default", interactive: true, want: true},
		{name: "non-interactive default", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := shouldUseEditor(tc.hasFlags, tc.edit, tc.noEdit, tc.interactive)
			if got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
