package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestCalculateAge(t *testing.T) {
	assert.Equal(t, 26, CalculateAge(date(2000, time.February, 14), date(2026, time.February, 14)))
	assert.Equal(t, 25, CalculateAge(date(2000, time.February, 15), date(2026, time.February, 14)))
	assert.Equal(t, 25, CalculateAge(date(2000, time.March, 1), date(2026, time.February, 14)))
	assert.Equal(t, 0, CalculateAge(date(2030, time.January, 1), date(2026, time.February, 14)))
}

func TestCalculateTargetsBasic(t *testing.T) {
	targets, err := CalculateTargets(TargetInputs{
		Sex:           "male",
		AgeYears:      30,
		HeightCm:      180,
		WeightKg:      80.0,
		ActivityLevel: "moderate",
		Goal:          "maintain",
	})
	require.NoError(t, err)

	// BMR = 800 + 1125 - 150 + 5 = 1780; TDEE = 1780 * 1.55 = 2759
	assert.Equal(t, 2759, targets.DailyKcal)
	assert.Equal(t, 160, targets.DailyProteinG)
	assert.Equal(t, 64, targets.DailyFatG)
	assert.GreaterOrEqual(t, targets.DailyCarbsG, 0)

	assert.Equal(t, targets.DailyKcal*7, targets.WeeklyKcal)
	assert.Equal(t, targets.DailyProteinG*7, targets.WeeklyProteinG)
	assert.Equal(t, targets.DailyCarbsG*7, targets.WeeklyCarbsG)
	assert.Equal(t, targets.DailyFatG*7, targets.WeeklyFatG)
}

func TestCalculateTargetsIdempotent(t *testing.T) {
	in := TargetInputs{
		Sex:           "female",
		AgeYears:      25,
		HeightCm:      165,
		WeightKg:      60.0,
		ActivityLevel: "light",
		Goal:          "cut",
	}

	first, err := CalculateTargets(in)
	require.NoError(t, err)
	second, err := CalculateTargets(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCalculateTargetsOverrideKcal(t *testing.T) {
	overrideKcal := 1500
	targets, err := CalculateTargets(TargetInputs{
		Sex:           "female",
		AgeYears:      25,
		HeightCm:      165,
		WeightKg:      60.0,
		ActivityLevel: "light",
		Goal:          "cut",
		OverrideKcal:  &overrideKcal,
	})
	require.NoError(t, err)

	assert.Equal(t, 1500, targets.DailyKcal)
	assert.Equal(t, 10500, targets.WeeklyKcal)
}

func TestCalculateTargetsOverrideReconciliation(t *testing.T) {
	overrideKcal := 2000
	overrideProtein := 200
	overrideFat := 50
	targets, err := CalculateTargets(TargetInputs{
		Sex:              "male",
		AgeYears:         35,
		HeightCm:         175,
		WeightKg:         90.0,
		ActivityLevel:    "moderate",
		Goal:             "maintain",
		OverrideKcal:     &overrideKcal,
		OverrideProteinG: &overrideProtein,
		OverrideFatG:     &overrideFat,
	})
	require.NoError(t, err)

	assert.Equal(t, 2000, targets.DailyKcal)
	assert.Equal(t, 200, targets.DailyProteinG)
	assert.Equal(t, 50, targets.DailyFatG)
	// remainder: 2000 - 800 - 450 = 750 kcal -> 188g carbs
	assert.Equal(t, 188, targets.DailyCarbsG)
	assert.Equal(t, 14000, targets.WeeklyKcal)
	assert.Empty(t, targets.Warnings)
}

func TestCalculateTargetsCarbTieRoundsToEven(t *testing.T) {
	overrideKcal := 1490
	overrideProtein := 100
	overrideFat := 40
	targets, err := CalculateTargets(TargetInputs{
		Sex:              "male",
		AgeYears:         30,
		HeightCm:         180,
		WeightKg:         80.0,
		ActivityLevel:    "moderate",
		Goal:             "maintain",
		OverrideKcal:     &overrideKcal,
		OverrideProteinG: &overrideProtein,
		OverrideFatG:     &overrideFat,
	})
	require.NoError(t, err)

	// remainder: 1490 - 400 - 360 = 730 kcal; 730/4 = 182.5 -> 182, not 183
	assert.Equal(t, 182, targets.DailyCarbsG)
	assert.Empty(t, targets.Warnings)
}

func TestCalculateTargetsNegativeRemainderWarning(t *testing.T) {
	overrideKcal := 1000
	overrideProtein := 200
	overrideFat := 100
	targets, err := CalculateTargets(TargetInputs{
		Sex:              "male",
		AgeYears:         30,
		HeightCm:         180,
		WeightKg:         80.0,
		ActivityLevel:    "sedentary",
		Goal:             "maintain",
		OverrideKcal:     &overrideKcal,
		OverrideProteinG: &overrideProtein,
		OverrideFatG:     &overrideFat,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, targets.DailyCarbsG)
	assert.Contains(t, targets.Warnings, "macro_remainder_negative")
	// macro kcal = 800 + 0 + 900 = 1700, delta = -700
	assert.Contains(t, targets.Warnings, "macro_energy_mismatch;delta_kcal=-700")
}

func TestCalculateTargetsFloorsNegativeOverrides(t *testing.T) {
	overrideKcal := -100
	overrideCarbs := -50
	targets, err := CalculateTargets(TargetInputs{
		Sex:            "female",
		AgeYears:       40,
		HeightCm:       160,
		WeightKg:       55.0,
		ActivityLevel:  "sedentary",
		Goal:           "maintain",
		OverrideKcal:   &overrideKcal,
		OverrideCarbsG: &overrideCarbs,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, targets.DailyKcal)
	assert.Equal(t, 0, targets.DailyCarbsG)
}

func TestCalculateTargetsInvalidEnums(t *testing.T) {
	base := TargetInputs{
		Sex:           "male",
		AgeYears:      30,
		HeightCm:      180,
		WeightKg:      80.0,
		ActivityLevel: "moderate",
		Goal:          "maintain",
	}

	in := base
	in.Sex = "other"
	_, err := CalculateTargets(in)
	assert.ErrorIs(t, err, ErrInvalidSex)

	in = base
	in.ActivityLevel = "extreme"
	_, err = CalculateTargets(in)
	assert.ErrorIs(t, err, ErrInvalidActivityLevel)

	in = base
	in.Goal = "recomp"
	_, err = CalculateTargets(in)
	assert.ErrorIs(t, err, ErrInvalidGoal)
}
