package pricing

import "testing"

func TestBandForSquareFootageBoundaries(t *testing.T) {
	cases := []struct {
		sqft int
		want Band
	}{
		{0, BandUnder1500},
		{1, BandUnder1500},
		{1200, BandUnder1500},
		{1499, BandUnder1500},
		{1500, Band1500},
		{2499, Band1500},
		{2500, Band2500},
		{3499, Band2500},
		{3500, Band3500},
		{4499, Band3500},
		{4500, Band4500},
		{12000, Band4500},
	}
	for _, tc := range cases {
		if got := BandForSquareFootage(tc.sqft); got != tc.want {
			t.Errorf("BandForSquareFootage(%d) = %q, want %q", tc.sqft, got, tc.want)
		}
	}
}

func TestResolveSizeBandFreeForm(t *testing.T) {
	cases := []struct {
		raw  string
		want Band
	}{
		{"1200", BandUnder1500},
		{"1,200 sq ft", BandUnder1500},
		{"approx. 3200", Band2500},
		{"4500", Band4500},
		{"", BandUnder1500},
		{"0", BandUnder1500},
		{"n/a", BandUnder1500},
	}
	for _, tc := range cases {
		if got := ResolveSizeBand(tc.raw); got != tc.want {
			t.Errorf("ResolveSizeBand(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestResolveSizeBandIdempotent(t *testing.T) {
	inputs := []string{"800", "1500", "2750", "3500", "5000", "garbage", ""}
	for _, raw := range inputs {
		first := ResolveSizeBand(raw)
		if second := ResolveSizeBand(string(first)); second != first {
			t.Errorf("ResolveSizeBand not idempotent for %q: %q then %q", raw, first, second)
		}
	}
}
