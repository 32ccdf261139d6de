package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddOrIncrementKeepsOneLinePerProduct(t *testing.T) {
	var lines []LineItem

	lines = AddOrIncrement(lines, "prod-a", 22.68)
	lines = AddOrIncrement(lines, "prod-a", 22.68)
	lines = AddOrIncrement(lines, "prod-a", 22.68)
	lines = AddOrIncrement(lines, "prod-b", 391.71)

	assert.Len(t, lines, 2)
	assert.Equal(t, "prod-a", lines[0].ProductID)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.InDelta(t, 3*22.68, lines[0].LineTotal, 1e-9)
	assert.Equal(t, 1, lines[1].Quantity)
	assert.InDelta(t, 391.71, lines[1].LineTotal, 1e-9)
}

func TestLineTotalInvariantUnderMutations(t *testing.T) {
	var lines []LineItem
	lines = AddOrIncrement(lines, "prod-a", 10)
	lines = AddOrIncrement(lines, "prod-b", 5.5)
	lines = SetQuantity(lines, "prod-a", 7)
	lines = SetUnitPrice(lines, "prod-b", 8.25)
	lines = AddOrIncrement(lines, "prod-b", 5.5) // catalog price must not reset override

	for _, ln := range lines {
		assert.InDelta(t, float64(ln.Quantity)*ln.UnitPrice, ln.LineTotal, 1e-9, "line %s", ln.ProductID)
		assert.GreaterOrEqual(t, ln.Quantity, 1)
	}
	assert.InDelta(t, 8.25, lines[1].UnitPrice, 1e-9)
	assert.Equal(t, 2, lines[1].Quantity)
}

func TestSetQuantityZeroOrNegativeRemoves(t *testing.T) {
	var lines []LineItem
	lines = AddOrIncrement(lines, "prod-a", 10)
	lines = AddOrIncrement(lines, "prod-b", 20)

	got := SetQuantity(lines, "prod-a", 0)
	assert.Len(t, got, 1)
	assert.Equal(t, "prod-b", got[0].ProductID)

	got = SetQuantity(lines, "prod-b", -3)
	assert.Len(t, got, 1)
	assert.Equal(t, "prod-a", got[0].ProductID)
}

func TestMutationsOnUnknownIDAreNoOps(t *testing.T) {
	var lines []LineItem
	lines = AddOrIncrement(lines, "prod-a", 10)

	assert.Equal(t, lines, SetQuantity(lines, "missing", 4))
	assert.Equal(t, lines, SetUnitPrice(lines, "missing", 4))
	assert.Equal(t, lines, Remove(lines, "missing"))
}

func TestSetUnitPriceRejectsNegative(t *testing.T) {
	var lines []LineItem
	lines = AddOrIncrement(lines, "prod-a", 10)

	got := SetUnitPrice(lines, "prod-a", -1)
	assert.InDelta(t, 10, got[0].UnitPrice, 1e-9)
	assert.InDelta(t, 10, got[0].LineTotal, 1e-9)
}

func twoSampleLines() []LineItem {
	var lines []LineItem
	lines = AddOrIncrement(lines, "prod-a", 22.68)
	lines = AddOrIncrement(lines, "prod-a", 22.68)
	lines = AddOrIncrement(lines, "prod-b", 391.71)
	return lines
}

func TestComputeTotalsNoDiscount(t *testing.T) {
	totals := ComputeTotals(twoSampleLines(), DiscountPolicy{Type: DiscountNone}, 20)

	assert.InDelta(t, 437.07, totals.Gross, 1e-9)
	assert.InDelta(t, 0, totals.Discount, 1e-9)
	assert.InDelta(t, 437.07, totals.Net, 1e-9)
	assert.InDelta(t, 87.414, totals.Vat, 1e-9)
	assert.InDelta(t, 524.484, totals.Grand, 1e-9)
}

func TestComputeTotalsPercentageDiscount(t *testing.T) {
	totals := ComputeTotals(twoSampleLines(), DiscountPolicy{Type: DiscountPercentage, Value: 10}, 20)

	assert.InDelta(t, 43.707, totals.Discount, 1e-9)
	assert.InDelta(t, 393.363, totals.Net, 1e-9)
	assert.InDelta(t, 78.6726, totals.Vat, 1e-9)
	assert.InDelta(t, 472.0356, totals.Grand, 1e-9)
}

func TestComputeTotalsFlatDiscountClampedToGross(t *testing.T) {
	totals := ComputeTotals(twoSampleLines(), DiscountPolicy{Type: DiscountFlat, Value: 10000}, 20)

	assert.InDelta(t, 437.07, totals.Discount, 1e-9)
	assert.InDelta(t, 0, totals.Net, 1e-9)
	assert.InDelta(t, 0, totals.Vat, 1e-9)
	assert.InDelta(t, 0, totals.Grand, 1e-9)
}

func TestComputeTotalsFlatDiscount(t *testing.T) {
	totals := ComputeTotals(twoSampleLines(), DiscountPolicy{Type: DiscountFlat, Value: 37.07}, 20)

	assert.InDelta(t, 37.07, totals.Discount, 1e-9)
	assert.InDelta(t, 400, totals.Net, 1e-9)
	assert.InDelta(t, 80, totals.Vat, 1e-9)
	assert.InDelta(t, 480, totals.Grand, 1e-9)
}

func TestComputeTotalsPercentageClampedTo100(t *testing.T) {
	totals := ComputeTotals(twoSampleLines(), DiscountPolicy{Type: DiscountPercentage, Value: 150}, 20)

	assert.InDelta(t, 437.07, totals.Discount, 1e-9)
	assert.InDelta(t, 0, totals.Net, 1e-9)
	assert.InDelta(t, 0, totals.Vat, 1e-9)
	assert.InDelta(t, 0, totals.Grand, 1e-9)
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil, DiscountPolicy{Type: DiscountPercentage, Value: 10}, 20)
	assert.Equal(t, Totals{}, totals)
}
