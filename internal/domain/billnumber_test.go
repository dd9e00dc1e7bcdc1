package domain

import (
	"testing"
	"time"
)

func TestBillNumberPrefix(t *testing.T) {
	ts := time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)
	if got := BillNumberPrefix(ts); got != "INV-202603" {
		t.Fatalf("prefix = %s, want INV-202603", got)
	}
	ts = time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC)
	if got := BillNumberPrefix(ts); got != "INV-202512" {
		t.Fatalf("prefix = %s, want INV-202512", got)
	}
}

func TestNextBillNumber(t *testing.T) {
	cases := []struct {
		name   string
		last   string
		want   string
	}{
		{"no prior number", "", "INV-202603-0001"},
		{"increments", "INV-202603-0001", "INV-202603-0002"},
		{"zero pads", "INV-202603-0041", "INV-202603-0042"},
		{"rolls past padding", "INV-202603-9999", "INV-202603-10000"},
		{"unparseable suffix", "INV-202603-garbage", "INV-202603-0001"},
	}
	for _, tc := range cases {
		if got := NextBillNumber("INV-202603", tc.last); got != tc.want {
			t.Fatalf("%s: NextBillNumber(%q) = %s, want %s", tc.name, tc.last, got, tc.want)
		}
	}
}
