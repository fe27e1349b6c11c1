package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/limbo/fitlog/pkg/entity"
)

const (
	caloriesPerMinute = 8
	// MaxWorkoutMinutes bounds a single logged session (one day)
	MaxWorkoutMinutes = 24 * 60
	maxCalories       = math.MaxInt32
)

// Aggregate sums sessions, minutes and calories over entries.
// Durations that don't parse as numbers count as zero minutes.
func Aggregate(entries []entity.WorkoutEntry) entity.Totals {
	totals := entity.Totals{Sessions: len(entries)}
	for _, e := range entries {
		totals.Minutes += parseMinutes(e.Duration)
		totals.Calories += e.Calories
	}
	return totals
}

// CaloriesFor estimates burned calories as round(minutes * 8), halves rounding up.
// The result is capped at math.MaxInt32.
func CaloriesFor(duration string) int {
	calories := math.Floor(parseMinutes(duration)*caloriesPerMinute + 0.5)
	if calories > maxCalories {
		return maxCalories
	}
	return int(calories)
}

func parseMinutes(duration string) float64 {
	minutes, err := strconv.ParseFloat(strings.TrimSpace(duration), 64)
	if err != nil || math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return 0
	}
	return minutes
}
