package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimalEqual(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func TestComputeItemTotals(t *testing.T) {
	per100g := MacroPer100g{
		Kcal:     dec("200"),
		ProteinG: dec("10"),
		CarbsG:   dec("30"),
		FatG:     dec("5"),
	}

	totals := ComputeItemTotals(per100g, dec("150"))

	assertDecimalEqual(t, "300.00", totals.Kcal)
	assertDecimalEqual(t, "15.00", totals.ProteinG)
	assertDecimalEqual(t, "45.00", totals.CarbsG)
	assertDecimalEqual(t, "7.50", totals.FatG)
}

func TestComputeTemplateTotals(t *testing.T) {
	items := []MacroItem{
		{
			Per100g: MacroPer100g{
				Kcal:     dec("100"),
				ProteinG: dec("0"),
				CarbsG:   dec("25"),
				FatG:     dec("0"),
			},
			QuantityG: dec("200"),
		},
		{
			Per100g: MacroPer100g{
				Kcal:     dec("250"),
				ProteinG: dec("20"),
				CarbsG:   dec("0"),
				FatG:     dec("10"),
			},
			QuantityG: dec("100"),
		},
	}

	totals := ComputeTemplateTotals(items)

	assertDecimalEqual(t, "450.00", totals.Kcal)
	assertDecimalEqual(t, "20.00", totals.ProteinG)
	assertDecimalEqual(t, "50.00", totals.CarbsG)
	assertDecimalEqual(t, "10.00", totals.FatG)
}

// Items are rounded before summation and the sum is rounded again, so the
// aggregate can drift from sum-then-round-once in the last decimal. That
// drift is part of the contract.
func TestComputeTemplateTotalsDoubleRounding(t *testing.T) {
	item := MacroItem{
		Per100g: MacroPer100g{
			Kcal:     dec("33.33"),
			ProteinG: dec("0"),
			CarbsG:   dec("0"),
			FatG:     dec("0"),
		},
		QuantityG: dec("50"),
	}

	// each item: 16.665 -> 16.67 (half-up)
	itemTotals := ComputeItemTotals(item.Per100g, item.QuantityG)
	assertDecimalEqual(t, "16.67", itemTotals.Kcal)

	// 16.67 + 16.67 = 33.34, not the 33.33 that sum-then-round would give
	totals := ComputeTemplateTotals([]MacroItem{item, item})
	assertDecimalEqual(t, "33.34", totals.Kcal)
}

func TestComputeItemTotalsRoundsHalfUp(t *testing.T) {
	per100g := MacroPer100g{
		Kcal:     dec("1.25"),
		ProteinG: dec("1.35"),
		CarbsG:   dec("0"),
		FatG:     dec("0"),
	}

	totals := ComputeItemTotals(per100g, dec("50"))

	assertDecimalEqual(t, "0.63", totals.Kcal)     // 0.625 up, not banker's 0.62
	assertDecimalEqual(t, "0.68", totals.ProteinG) // 0.675 up
}
