package dto

import (
	"errors"
	"math/big"
	"testing"
)

func TestFormatUnits(t *testing.T) {
	v, _ := new(big.Int).SetString("15000000000000000000", 10)
	if got := FormatUnits(v, 18); got != "15" {
		t.Fatalf("expected 15, got %q", got)
	}
	if got := FormatUnits(big.NewInt(2142857), 6); got != "2.142857" {
		t.Fatalf("expected 2.142857, got %q", got)
	}
	if got := FormatUnits(big.NewInt(0), 18); got != "0" {
		t.Fatalf("expected 0, got %q", got)
	}
}

func TestParseUnits(t *testing.T) {
	got, err := ParseUnits("15", 18)
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	want, _ := new(big.Int).SetString("15000000000000000000", 10)
	if got.Cmp(want) != 0 {
		t.Fatalf("expected %s, got %s", want, got)
	}

	got, err = ParseUnits("2.5", 6)
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	if got.Cmp(big.NewInt(2_500_000)) != 0 {
		t.Fatalf("expected 2500000, got %s", got)
	}
}

func TestParseUnitsRejectsBadInput(t *testing.T) {
	for _, s := range []string{"", "abc", "-1", "0.0000001"} {
		if _, err := ParseUnits(s, 6); !errors.Is(err, ErrBadAmount) {
			t.Fatalf("expected ErrBadAmount for %q, got %v", s, err)
		}
	}
}
