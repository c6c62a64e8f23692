package utils

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrInvalidSex           = errors.New("invalid_sex")
	ErrInvalidActivityLevel = errors.New("invalid_activity_level")
	ErrInvalidGoal          = errors.New("invalid_goal")
)

type TargetInputs struct {
	Sex           string
	AgeYears      int
	HeightCm      int
	WeightKg      float64
	ActivityLevel string
	Goal          string

	OverrideKcal     *int
	OverrideProteinG *int
	OverrideCarbsG   *int
	OverrideFatG     *int
}

type Targets struct {
	DailyKcal     int
	DailyProteinG int
	DailyCarbsG   int
	DailyFatG     int

	WeeklyKcal     int
	WeeklyProteinG int
	WeeklyCarbsG   int
	WeeklyFatG     int

	Warnings []string
}

var activityFactors = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"very_active": 1.725,
	"athlete":     1.9,
}

var goalDeltasKcal = map[string]int{
	"maintain": 0,
	"cut":      -500,
	"bulk":     250,
}

// CalculateAge returns whole years between birthDate and asOf, one less if
// the birthday has not yet occurred in the asOf year. Floored at 0.
func CalculateAge(birthDate, asOf time.Time) int {
	years := asOf.Year() - birthDate.Year()
	if asOf.Month() < birthDate.Month() ||
		(asOf.Month() == birthDate.Month() && asOf.Day() < birthDate.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// Mifflin-St Jeor estimation of basal metabolic rate.
func bmrMifflinStJeor(sex string, weightKg float64, heightCm, ageYears int) (float64, error) {
	var s float64
	switch sex {
	case "male":
		s = 5
	case "female":
		s = -161
	default:
		return 0, ErrInvalidSex
	}
	return 10.0*weightKg + 6.25*float64(heightCm) - 5.0*float64(ageYears) + s, nil
}

// CalculateTargets computes daily and weekly calorie/macro targets from
// biometrics and overrides. Callers pre-validate the enum strings; unknown
// values come back as validation errors, never coerced.
func CalculateTargets(in TargetInputs) (Targets, error) {
	warnings := []string{}

	bmr, err := bmrMifflinStJeor(in.Sex, in.WeightKg, in.HeightCm, in.AgeYears)
	if err != nil {
		return Targets{}, err
	}

	factor, ok := activityFactors[in.ActivityLevel]
	if !ok {
		return Targets{}, ErrInvalidActivityLevel
	}
	delta, ok := goalDeltasKcal[in.Goal]
	if !ok {
		return Targets{}, ErrInvalidGoal
	}

	tdee := bmr * factor
	kcal := int(math.RoundToEven(tdee)) + delta
	if in.OverrideKcal != nil {
		kcal = *in.OverrideKcal
	}
	if kcal < 0 {
		kcal = 0
	}

	proteinG := int(math.RoundToEven(in.WeightKg * 2.0))
	if in.OverrideProteinG != nil {
		proteinG = *in.OverrideProteinG
	}
	fatG := int(math.RoundToEven(in.WeightKg * 0.8))
	if in.OverrideFatG != nil {
		fatG = *in.OverrideFatG
	}
	if proteinG < 0 {
		proteinG = 0
	}
	if fatG < 0 {
		fatG = 0
	}

	var carbsG int
	if in.OverrideCarbsG != nil {
		carbsG = *in.OverrideCarbsG
		if carbsG < 0 {
			carbsG = 0
		}
	} else {
		remainderKcal := kcal - proteinG*4 - fatG*9
		if remainderKcal < 0 {
			warnings = append(warnings, "macro_remainder_negative")
			remainderKcal = 0
		}
		// Half-to-even: carb remainders land on exact .5 ties whenever the
		// leftover kcal is even but not divisible by 4.
		carbsG = int(math.RoundToEven(float64(remainderKcal) / 4.0))
	}

	macroKcal := proteinG*4 + carbsG*4 + fatG*9
	if d := kcal - macroKcal; d >= 50 || d <= -50 {
		warnings = append(warnings, fmt.Sprintf("macro_energy_mismatch;delta_kcal=%d", d))
	}

	return Targets{
		DailyKcal:     kcal,
		DailyProteinG: proteinG,
		DailyCarbsG:   carbsG,
		DailyFatG:     fatG,

		WeeklyKcal:     kcal * 7,
		WeeklyProteinG: proteinG * 7,
		WeeklyCarbsG:   carbsG * 7,
		WeeklyFatG:     fatG * 7,

		Warnings: warnings,
	}, nil
}
