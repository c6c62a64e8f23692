package utils

// DayOrder ranks week days mon..sun. Unrecognized keys sort last.
var DayOrder = map[string]int{
	"mon": 1,
	"tue": 2,
	"wed": 3,
	"thu": 4,
	"fri": 5,
	"sat": 6,
	"sun": 7,
}

const unknownDayRank = 99

func DayRank(dayKey string) int {
	if rank, ok := DayOrder[dayKey]; ok {
		return rank
	}
	return unknownDayRank
}

// PlanSlot identifies one cell of a weekly plan.
type PlanSlot struct {
	DayKey  string
	SlotKey string
}

// SlotLess is the ordering for weekly plan items: day rank first, slot key
// lexicographic as tiebreak.
func SlotLess(a, b PlanSlot) bool {
	ra, rb := DayRank(a.DayKey), DayRank(b.DayKey)
	if ra != rb {
		return ra < rb
	}
	return a.SlotKey < b.SlotKey
}

// HasDuplicateDaySlot reports whether any (day, slot) pair repeats. The
// first repeat rejects the whole write.
func HasDuplicateDaySlot(slots []PlanSlot) bool {
	seen := make(map[PlanSlot]struct{}, len(slots))
	for _, slot := range slots {
		if _, ok := seen[slot]; ok {
			return true
		}
		seen[slot] = struct{}{}
	}
	return false
}
