package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMealTypeFromSlotKey(t *testing.T) {
	cases := map[string]string{
		"breakfast":        "breakfast",
		"Desayuno":         "breakfast",
		"  mid-morning  ":  "",
		"comida principal": "lunch",
		"almuerzo":         "lunch",
		"cena ligera":      "dinner",
		"DINNER":           "dinner",
		"merienda":         "snack",
		"snack_2":          "snack",
		"slot-1":           "",
	}
	for slot, want := range cases {
		assert.Equal(t, want, mealTypeFromSlotKey(slot), "slot %q", slot)
	}
}

func TestMealTypeFromSlotKeyEarliestEntryWins(t *testing.T) {
	// keywords of two meal types present: entry order decides, every time
	for i := 0; i < 100; i++ {
		assert.Equal(t, "breakfast", mealTypeFromSlotKey("comida desayuno"))
		assert.Equal(t, "lunch", mealTypeFromSlotKey("comida y cena"))
	}
}

func TestDishNameMatchesMealType(t *testing.T) {
	assert.True(t, dishNameMatchesMealType("Tortitas de desayuno", "breakfast"))
	assert.True(t, dishNameMatchesMealType("Snack de frutos secos", "snack"))
	assert.False(t, dishNameMatchesMealType("Lentejas con verduras", "lunch"))
	assert.False(t, dishNameMatchesMealType("Cena de pescado", "breakfast"))
}
