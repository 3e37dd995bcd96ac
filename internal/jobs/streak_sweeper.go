package jobs

import (
	"context"
	"time"

	"github.com/Dias221467/Levelup_Fitness/internal/repository"
	"github.com/sirupsen/logrus"
)

// StreakSweeper expires workout streaks for users who skipped a day.
type StreakSweeper struct {
	UserRepo *repository.UserRepository
}

// NewStreakSweeper creates a new instance of StreakSweeper.
func NewStreakSweeper(userRepo *repository.UserRepository) *StreakSweeper {
	return &StreakSweeper{UserRepo: userRepo}
}

// RunDailySweep zeroes the streak of every user whose newest workout is older
// than yesterday. A streak stays alive through today and yesterday; anything
// older means the chain is broken.
func (s *StreakSweeper) RunDailySweep(ctx context.Context) error {
	now := time.Now()
	startOfYesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)

	reset, err := s.UserRepo.ResetExpiredStreaks(ctx, startOfYesterday)
	if err != nil {
		return err
	}

	logrus.WithField("users_reset", reset).Info("Streak sweep completed")
	return nil
}
