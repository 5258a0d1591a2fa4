package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate_Scenario(t *testing.T) {
	q := Calculate(499, 2)

	assert.Equal(t, 998.00, Round2(q.Subtotal))
	assert.Equal(t, 179.64, Round2(q.Tax))
	assert.Equal(t, 1177.64, Round2(q.Total))
}

func TestCalculate_TotalIsSubtotalPlusTax(t *testing.T) {
	testCases := []struct {
		name      string
		unitPrice float64
		quantity  int
	}{
		{"free offer", 0, 1},
		{"single traveler", 1299, 1},
		{"max travelers", 749.50, 10},
		{"awkward cents", 33.33, 3},
		{"large price", 99999.99, 7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := Calculate(tc.unitPrice, tc.quantity)

			assert.Equal(t, tc.unitPrice*float64(tc.quantity), q.Subtotal)
			assert.InDelta(t, q.Subtotal*TaxRate, q.Tax, 1e-9)
			assert.InDelta(t, q.Subtotal+q.Tax, q.Total, 1e-9)
		})
	}
}

func TestTaxComponents_SumExactly(t *testing.T) {
	testCases := []struct {
		name      string
		unitPrice float64
		quantity  int
	}{
		{"even split", 499, 2},
		{"odd cent", 100.03, 1},
		{"tiny amount", 0.05, 1},
		{"big booking", 8888.88, 9},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := Calculate(tc.unitPrice, tc.quantity)
			first, second := q.TaxComponents()

			assert.Equal(t, Round2(q.Tax), Round2(first+second))
		})
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 179.64, Round2(179.64000000000001))
	assert.Equal(t, 0.0, Round2(0.001))
	assert.Equal(t, 1.23, Round2(1.234))
	assert.Equal(t, 1.24, Round2(1.236))
}
