package progression

import (
	"fmt"
	"testing"
	"time"

	"github.com/Dias221467/Levelup_Fitness/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressPercentInRange(t *testing.T) {
	cases := []struct {
		level, xp int
	}{
		{1, 0}, {1, 50}, {1, 100}, {1, 100000},
		{5, 0}, {5, 499}, {5, 500}, {10, 250},
		{1, -10}, {0, 50},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("level=%d xp=%d", c.level, c.xp), func(t *testing.T) {
			percent := ProgressPercent(c.level, c.xp)
			assert.GreaterOrEqual(t, percent, 0.0)
			assert.LessOrEqual(t, percent, 100.0)
		})
	}
}

func TestProgressPercentValues(t *testing.T) {
	assert.Equal(t, 50.0, ProgressPercent(1, 50))
	assert.Equal(t, 100.0, ProgressPercent(1, 100))
	assert.Equal(t, 100.0, ProgressPercent(1, 250))
	assert.Equal(t, 25.0, ProgressPercent(4, 100))
}

func TestDefaultWorkoutXP(t *testing.T) {
	assert.Equal(t, 10, DefaultWorkoutXP(25))
	assert.Equal(t, 5, DefaultWorkoutXP(1))
	assert.Equal(t, 17, DefaultWorkoutXP(60))
}

func TestLevelsGainedSingleStep(t *testing.T) {
	// 90 + 20 = 110 >= 100 crosses the level-1 threshold.
	assert.Equal(t, 1, LevelsGained(1, 90, 20))

	// A huge overshoot still grants exactly one level per recording.
	assert.Equal(t, 1, LevelsGained(1, 90, 5000))

	assert.Equal(t, 0, LevelsGained(1, 50, 20))
	assert.Equal(t, 1, LevelsGained(1, 80, 20)) // exactly on the threshold
	assert.Equal(t, 0, LevelsGained(3, 250, 40))
}

func TestMergeRecentCapsAtTen(t *testing.T) {
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	var history []models.Workout
	for i := 0; i < RecentWorkoutCap; i++ {
		history = MergeRecent(history, models.Workout{
			Name: fmt.Sprintf("workout %d", i),
			Date: base.AddDate(0, 0, i),
		})
	}
	require.Len(t, history, RecentWorkoutCap)

	// The 11th workout evicts the oldest entry.
	history = MergeRecent(history, models.Workout{
		Name: "workout 10",
		Date: base.AddDate(0, 0, 10),
	})
	require.Len(t, history, RecentWorkoutCap)

	assert.Equal(t, "workout 10", history[0].Name)
	assert.Equal(t, "workout 1", history[RecentWorkoutCap-1].Name)
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i].Date.After(history[i-1].Date), "history must be sorted newest first")
	}
}

func TestMergeRecentBackdatedWorkout(t *testing.T) {
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	history := []models.Workout{
		{Name: "newer", Date: base.AddDate(0, 0, 2)},
		{Name: "older", Date: base},
	}

	merged := MergeRecent(history, models.Workout{Name: "middle", Date: base.AddDate(0, 0, 1)})

	require.Len(t, merged, 3)
	assert.Equal(t, "newer", merged[0].Name)
	assert.Equal(t, "middle", merged[1].Name)
	assert.Equal(t, "older", merged[2].Name)
}

func TestNextStreak(t *testing.T) {
	today := time.Date(2024, 6, 10, 7, 30, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	lastWeek := today.AddDate(0, 0, -7)

	assert.Equal(t, 1, NextStreak(0, time.Time{}, today), "first workout starts a streak")
	assert.Equal(t, 4, NextStreak(3, yesterday, today), "consecutive day extends")
	assert.Equal(t, 3, NextStreak(3, today.Add(-2*time.Hour), today), "same day keeps the streak")
	assert.Equal(t, 1, NextStreak(3, lastWeek, today), "a gap resets")
	assert.Equal(t, 1, NextStreak(0, today.Add(-time.Hour), today))
}

func TestNextStreakIgnoresBackdatedWorkouts(t *testing.T) {
	today := time.Date(2024, 6, 10, 7, 30, 0, 0, time.UTC)

	assert.Equal(t, 3, NextStreak(3, today, today.AddDate(0, 0, -1)), "logging an older workout keeps a live streak")
	assert.Equal(t, 5, NextStreak(5, today, today.AddDate(0, 0, -30)))
	assert.Equal(t, 0, NextStreak(0, today, today.AddDate(0, 0, -2)))
}
