package pricing

import "testing"

func TestVolumeDiscountBoundaries(t *testing.T) {
	cases := []struct {
		subtotal Cents
		want     int64
	}{
		{0, 0},
		{19998, 0},  // one cent below the floor
		{19999, 3},  // inclusive boundary
		{34999, 3},
		{35000, 5},
		{49999, 5},
		{50000, 10},
		{70000, 12},
		{90000, 15},
		{109999, 15},
		{110000, 17},
		{500000, 17},
	}
	for _, tc := range cases {
		if got := VolumeDiscountPercent(tc.subtotal); got != tc.want {
			t.Errorf("VolumeDiscountPercent(%d) = %d, want %d", tc.subtotal, got, tc.want)
		}
	}
}

func TestApplyVolumeDiscountRounding(t *testing.T) {
	// 279.98 at 3% is 8.3994, rounded half up to 8.40.
	res := ApplyVolumeDiscount(27998)
	if res.Percent != 3 {
		t.Fatalf("percent = %d, want 3", res.Percent)
	}
	if res.Discount != 840 {
		t.Errorf("discount = %d, want 840", res.Discount)
	}
	if res.Total != 27158 {
		t.Errorf("total = %d, want 27158", res.Total)
	}
}

func TestApplyVolumeDiscountExactTier(t *testing.T) {
	// 1100.00 exactly: 17%, discount 187.00, total 913.00.
	res := ApplyVolumeDiscount(110000)
	if res.Percent != 17 || res.Discount != 18700 || res.Total != 91300 {
		t.Fatalf("got %+v, want 17%% / 18700 / 91300", res)
	}
}

func TestDiscountMonotonic(t *testing.T) {
	prev := int64(0)
	for subtotal := Cents(0); subtotal <= 150000; subtotal += 7 {
		pct := VolumeDiscountPercent(subtotal)
		if pct < prev {
			t.Fatalf("discount decreased from %d%% to %d%% at subtotal %d", prev, pct, subtotal)
		}
		prev = pct
	}
}

func TestCentsFormatting(t *testing.T) {
	if got := Cents(27158).String(); got != "271.58" {
		t.Errorf("String() = %q, want %q", got, "271.58")
	}
	if got := CentsFromFloat(229.99); got != 22999 {
		t.Errorf("CentsFromFloat(229.99) = %d, want 22999", got)
	}
	if got := CentsFromFloat(0.015); got != 2 {
		t.Errorf("CentsFromFloat(0.015) = %d, want 2 (half up)", got)
	}
}
