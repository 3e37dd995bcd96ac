package cron

import (
	"context"

	"github.com/Dias221467/Levelup_Fitness/internal/jobs"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartStreakCronJobs schedules the nightly streak expiry sweep.
func StartStreakCronJobs(sweeper *jobs.StreakSweeper) {
	c := cron.New()

	// Shortly after midnight, once yesterday has fully passed
	c.AddFunc("5 0 * * *", func() {
		if err := sweeper.RunDailySweep(context.Background()); err != nil {
			logrus.WithError(err).Error("Streak sweep failed")
		}
	})

	c.Start()
}
