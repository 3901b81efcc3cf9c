package pricing

// DiscountTier maps a minimum subtotal (inclusive) to a percentage
// reduction.
type DiscountTier struct {
	MinSubtotal Cents
	Percent     int64
}

// discountTiers in descending threshold order. The 199.99 floor is
// carried over literally from the published price list; it lines up
// with the x.99 price points rather than a round 200.
var discountTiers = []DiscountTier{
	{110000, 17},
	{90000, 15},
	{70000, 12},
	{50000, 10},
	{35000, 5},
	{19999, 3},
}

// DiscountResult is the outcome of applying the volume discount.
type DiscountResult struct {
	Percent  int64
	Discount Cents
	Total    Cents
}

// VolumeDiscountPercent returns the discount percentage for a
// pre-discount subtotal: the highest tier whose threshold does not
// exceed the subtotal, or zero below every threshold. The result is a
// non-decreasing step function of the subtotal.
func VolumeDiscountPercent(subtotal Cents) int64 {
	for _, tier := range discountTiers {
		if subtotal >= tier.MinSubtotal {
			return tier.Percent
		}
	}
	return 0
}

// ApplyVolumeDiscount computes the discount amount (rounded half up at
// the cent) and the final charge for a subtotal.
func ApplyVolumeDiscount(subtotal Cents) DiscountResult {
	percent := VolumeDiscountPercent(subtotal)
	discount := percentOf(subtotal, percent)
	return DiscountResult{
		Percent:  percent,
		Discount: discount,
		Total:    subtotal - discount,
	}
}
