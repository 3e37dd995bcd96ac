// Package progression implements the leveling math for the fitness tracker:
// XP thresholds, the level-up rule applied when a workout is recorded, the
// default XP reward, streak advancement and the bounded recent-workout list.
package progression

import (
	"sort"
	"time"

	"github.com/Dias221467/Levelup_Fitness/internal/models"
)

// RecentWorkoutCap bounds the recent-workout history kept on a user document.
const RecentWorkoutCap = 10

// XPForNextLevel returns the XP threshold that triggers a level-up at the
// given level.
func XPForNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return level * 100
}

// ProgressPercent converts (level, xp) into a completion percentage for the
// current level, clamped to [0,100].
func ProgressPercent(level, xp int) float64 {
	if xp < 0 {
		xp = 0
	}
	percent := float64(xp) / float64(XPForNextLevel(level)) * 100
	if percent > 100 {
		return 100
	}
	return percent
}

// LevelsGained decides how many levels a workout grants. At most one level is
// gained per recording, even when the XP overshoots several thresholds.
func LevelsGained(level, xp, xpGained int) int {
	if xp+xpGained >= XPForNextLevel(level) {
		return 1
	}
	return 0
}

// DefaultWorkoutXP is the reward used when the client does not supply one.
func DefaultWorkoutXP(durationMinutes int) int {
	return durationMinutes/5 + 5
}

// MergeRecent appends a workout to the history, sorts it newest-first and
// trims it to RecentWorkoutCap entries. This is the in-memory counterpart of
// the $push/$sort/$slice update the store performs.
func MergeRecent(history []models.Workout, w models.Workout) []models.Workout {
	merged := make([]models.Workout, 0, len(history)+1)
	merged = append(merged, history...)
	merged = append(merged, w)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.After(merged[j].Date)
	})

	if len(merged) > RecentWorkoutCap {
		merged = merged[:RecentWorkoutCap]
	}
	return merged
}

// NextStreak computes the streak value after a workout on `now`, given the
// date of the most recent prior workout. A workout on the day after the last
// one extends the streak, another workout the same day keeps it, and a gap of
// more than a day starts over at 1. Backdated workouts (dated before the
// newest recorded one) never move the streak.
func NextStreak(current int, lastWorkout, now time.Time) int {
	if current < 1 {
		current = 0
	}
	if lastWorkout.IsZero() {
		return 1
	}

	switch d := daysBetween(lastWorkout, now); {
	case d < 0:
		return current
	case d == 0:
		if current == 0 {
			return 1
		}
		return current
	case d == 1:
		return current + 1
	default:
		return 1
	}
}

func daysBetween(earlier, later time.Time) int {
	e := time.Date(earlier.Year(), earlier.Month(), earlier.Day(), 0, 0, 0, 0, time.UTC)
	l := time.Date(later.Year(), later.Month(), later.Day(), 0, 0, 0, 0, time.UTC)
	return int(l.Sub(e).Hours() / 24)
}
