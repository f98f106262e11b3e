package cmd

import (
	"errors"
	"testing"
	"time"

	serrors "github.com/PolarWolf314/seedtool/internal/errors"
	"github.com/PolarWolf314/seedtool/internal/formats"
	"github.com/PolarWolf314/seedtool/internal/sskr"
)

func TestParseDate(t *testing.T) {
	fixed := func() time.Time { return time.Date(2024, 6, 15, 1, 2, 3, 456789, time.FixedZone("X", 3600)) }

	tests := []struct {
		input string
		want  time.Time
	}{
		{"now", time.Date(2024, 6, 15, 0, 2, 3, 0, time.UTC)},
		{"NOW", time.Date(2024, 6, 15, 0, 2, 3, 0, time.UTC)},
		{"2024-06-15", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"2024-06-15T01:02:00Z", time.Date(2024, 6, 15, 1, 2, 0, 0, time.UTC)},
		{"2024-06-15T01:02:00+02:00", time.Date(2024, 6, 14, 23, 2, 0, 0, time.UTC)},
		{"2024-06-15T01:02:00.75Z", time.Date(2024, 6, 15, 1, 2, 0, 0, time.UTC)},
		{"2024-06-15T01:02:00", time.Date(2024, 6, 15, 1, 2, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := parseDate(tc.input, fixed)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, got)
			}
		})
	}

	for _, bad := range []string{"", "yesterday", "2024-13-01", "15/06/2024"} {
		if _, err := parseDate(bad, fixed); err == nil {
			t.Errorf("Expected error for %q, got nil", bad)
		}
	}
}

func TestGroupsValue(t *testing.T) {
	var groups []sskr.GroupSpec
	v := newGroupsValue(&groups, []sskr.GroupSpec{{Threshold: 1, Count: 1}})

	if v.String() != "[1-of-1]" {
		t.Errorf("Expected default [1-of-1], got %s", v.String())
	}

	if err := v.Set("2-of-3"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := v.Set("3-of-5, 1-of-1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []sskr.GroupSpec{{Threshold: 2, Count: 3}, {Threshold: 3, Count: 5}, {Threshold: 1, Count: 1}}
	if len(groups) != len(want) {
		t.Fatalf("Expected %v, got %v", want, groups)
	}
	for i := range want {
		if groups[i] != want[i] {
			t.Errorf("Expected %v at %d, got %v", want[i], i, groups[i])
		}
	}

	if err := v.Set("two-of-three"); !errors.Is(err, serrors.ErrInvalidGroupSpec) {
		t.Errorf("Expected ErrInvalidGroupSpec, got %v", err)
	}
	if err := v.Set(" , "); err == nil {
		t.Error("Expected error for empty spec, got nil")
	}
}

func TestFormatValue(t *testing.T) {
	var key formats.Key
	in := newFormatValue(&key, formats.Random, inputFormat)
	if in.String() != "random" {
		t.Errorf("Expected default random, got %s", in.String())
	}
	if err := in.Set("SSKR"); err != nil || key != formats.SSKR {
		t.Errorf("Expected sskr, got %s (%v)", key, err)
	}

	out := newFormatValue(&key, formats.Hex, outputFormat)
	if err := out.Set("random"); !errors.Is(err, serrors.ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
	if key != formats.Hex {
		t.Errorf("Expected key to stay hex, got %s", key)
	}
}
