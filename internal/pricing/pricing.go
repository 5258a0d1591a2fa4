// Package pricing computes the money side of a checkout: subtotal, flat tax
// and grand total. Values are kept as raw float64 dollars and rounded to
// currency precision only when displayed, so repeated recomputation never
// compounds rounding error.
package pricing

import "math"

// TaxRate is the flat tax applied to every booking. It is displayed as two
// equal components (two 9% lines); the split is cosmetic, there is a single
// taxable base.
const TaxRate = 0.18

type Quote struct {
	UnitPrice float64
	Quantity  int
	Subtotal  float64
	Tax       float64
	Total     float64
}

// Calculate derives a quote from a unit price and quantity. Quantity clamping
// (1-10) is the caller's responsibility at the checkout boundary.
func Calculate(unitPrice float64, quantity int) Quote {
	subtotal := unitPrice * float64(quantity)
	tax := subtotal * TaxRate
	return Quote{
		UnitPrice: unitPrice,
		Quantity:  quantity,
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     subtotal + tax,
	}
}

// TaxComponents splits the rounded tax into the two displayed lines. The
// second component absorbs the rounding remainder so the pair always sums
// exactly to Round2(Tax).
func (q Quote) TaxComponents() (float64, float64) {
	total := Round2(q.Tax)
	first := Round2(total / 2)
	return first, Round2(total - first)
}

// Round2 rounds to currency precision (2 decimal places).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
