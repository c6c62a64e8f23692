package utils

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDayRank(t *testing.T) {
	assert.Equal(t, 1, DayRank("mon"))
	assert.Equal(t, 7, DayRank("sun"))
	assert.Equal(t, 99, DayRank("someday"))
	assert.Equal(t, 99, DayRank(""))
}

func TestSlotOrdering(t *testing.T) {
	slots := []PlanSlot{
		{DayKey: "sun", SlotKey: "dinner"},
		{DayKey: "mon", SlotKey: "lunch"},
		{DayKey: "mon", SlotKey: "breakfast"},
		{DayKey: "holiday", SlotKey: "brunch"},
		{DayKey: "wed", SlotKey: "dinner"},
	}

	sort.SliceStable(slots, func(a, b int) bool { return SlotLess(slots[a], slots[b]) })

	assert.Equal(t, []PlanSlot{
		{DayKey: "mon", SlotKey: "breakfast"},
		{DayKey: "mon", SlotKey: "lunch"},
		{DayKey: "wed", SlotKey: "dinner"},
		{DayKey: "sun", SlotKey: "dinner"},
		{DayKey: "holiday", SlotKey: "brunch"},
	}, slots)
}

func TestHasDuplicateDaySlot(t *testing.T) {
	assert.False(t, HasDuplicateDaySlot(nil))
	assert.False(t, HasDuplicateDaySlot([]PlanSlot{
		{DayKey: "mon", SlotKey: "breakfast"},
		{DayKey: "mon", SlotKey: "lunch"},
		{DayKey: "tue", SlotKey: "breakfast"},
	}))
	assert.True(t, HasDuplicateDaySlot([]PlanSlot{
		{DayKey: "mon", SlotKey: "breakfast"},
		{DayKey: "tue", SlotKey: "lunch"},
		{DayKey: "mon", SlotKey: "breakfast"},
	}))
}
