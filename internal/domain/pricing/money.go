package pricing

import "github.com/shopspring/decimal"

// Cents is a money amount in integer minor units (CAD cents).
// All pricing arithmetic happens on this type; decimal conversion is
// reserved for the parse/format boundary so repeated computations never
// accumulate floating-point drift.
type Cents int64

// CentsFromDecimal converts a dollar amount to cents, rounding half up
// at the cent boundary.
func CentsFromDecimal(d decimal.Decimal) Cents {
	return Cents(d.Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

// CentsFromFloat converts a dollar amount received on the wire to cents.
func CentsFromFloat(f float64) Cents {
	return CentsFromDecimal(decimal.NewFromFloat(f))
}

// Decimal returns the amount in dollars as an exact decimal.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// Float64 returns the amount in dollars. Only for serialization of
// already-rounded values; never feed the result back into arithmetic.
func (c Cents) Float64() float64 {
	f, _ := c.Decimal().Float64()
	return f
}

// String formats the amount as a plain dollar string, e.g. "271.58".
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// percentOf returns pct% of c, rounded half up at the cent.
func percentOf(c Cents, pct int64) Cents {
	n := int64(c) * pct
	q := n / 100
	if n%100*2 >= 100 {
		q++
	}
	return Cents(q)
}
