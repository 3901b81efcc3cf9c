package pricing

// Band is one of the fixed square-footage ranges that key every price
// table. Bands partition [0, +inf): inclusive lower bound, exclusive
// upper bound, with the top band unbounded.
type Band string

const (
	BandUnder1500 Band = "Under 1500 sq.ft."
	Band1500      Band = "1500-2499 sq.ft."
	Band2500      Band = "2500-3499 sq.ft."
	Band3500      Band = "3500-4499 sq.ft."
	Band4500      Band = "4500-5499 sq.ft."
)

// bands in ascending order of their lower bound.
var bands = []struct {
	band  Band
	floor int
}{
	{BandUnder1500, 0},
	{Band1500, 1500},
	{Band2500, 2500},
	{Band3500, 3500},
	{Band4500, 4500},
}

// smallestBand is the documented fallback for missing or unparseable
// sizes.
const smallestBand = BandUnder1500

// ResolveSizeBand maps a raw property-size value to its band. Canonical
// band labels resolve to themselves. Any other string has its digits
// extracted and is treated as a square footage. Missing, unparseable,
// zero or negative input falls back to the smallest band; that is a
// documented default, not an error, so callers that care must check the
// size themselves before calling.
func ResolveSizeBand(raw string) Band {
	for _, b := range bands {
		if Band(raw) == b.band {
			return b.band
		}
	}
	return BandForSquareFootage(extractDigits(raw))
}

// BandForSquareFootage maps a numeric size to its band. Sizes at a
// band's lower bound belong to that band.
func BandForSquareFootage(sqft int) Band {
	band := smallestBand
	for _, b := range bands {
		if sqft >= b.floor {
			band = b.band
		}
	}
	return band
}

func extractDigits(s string) int {
	n := 0
	seen := false
	for _, r := range s {
		if r >= '0' && r <= '9' {
			seen = true
			n = n*10 + int(r-'0')
			if n > 1<<30 {
				break
			}
		}
	}
	if !seen {
		return 0
	}
	return n
}
