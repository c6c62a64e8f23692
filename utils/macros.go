package utils

import "github.com/shopspring/decimal"

type MacroPer100g struct {
	Kcal     decimal.Decimal
	ProteinG decimal.Decimal
	CarbsG   decimal.Decimal
	FatG     decimal.Decimal
}

type MacroTotals struct {
	Kcal     decimal.Decimal
	ProteinG decimal.Decimal
	CarbsG   decimal.Decimal
	FatG     decimal.Decimal
}

type MacroItem struct {
	Per100g   MacroPer100g
	QuantityG decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

func round2(d decimal.Decimal) decimal.Decimal {
	// half-up to 2 decimal places
	return d.Round(2)
}

// ComputeItemTotals scales per-100g values by quantity and rounds each
// field independently.
func ComputeItemTotals(per100g MacroPer100g, quantityG decimal.Decimal) MacroTotals {
	factor := quantityG.Div(hundred)
	return MacroTotals{
		Kcal:     round2(per100g.Kcal.Mul(factor)),
		ProteinG: round2(per100g.ProteinG.Mul(factor)),
		CarbsG:   round2(per100g.CarbsG.Mul(factor)),
		FatG:     round2(per100g.FatG.Mul(factor)),
	}
}

// ComputeTemplateTotals sums already-rounded item totals and rounds again
// at the aggregate. Rounding at both levels is a behavioral contract the
// existing clients depend on, not an accident.
func ComputeTemplateTotals(items []MacroItem) MacroTotals {
	kcal := decimal.Zero
	protein := decimal.Zero
	carbs := decimal.Zero
	fat := decimal.Zero

	for _, item := range items {
		totals := ComputeItemTotals(item.Per100g, item.QuantityG)
		kcal = kcal.Add(totals.Kcal)
		protein = protein.Add(totals.ProteinG)
		carbs = carbs.Add(totals.CarbsG)
		fat = fat.Add(totals.FatG)
	}

	return MacroTotals{
		Kcal:     round2(kcal),
		ProteinG: round2(protein),
		CarbsG:   round2(carbs),
		FatG:     round2(fat),
	}
}
