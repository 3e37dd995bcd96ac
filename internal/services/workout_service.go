package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Dias221467/Levelup_Fitness/internal/models"
	"github.com/Dias221467/Levelup_Fitness/internal/progression"
	"github.com/Dias221467/Levelup_Fitness/internal/repository"
	"github.com/Dias221467/Levelup_Fitness/pkg/apierrors"
	"github.com/sirupsen/logrus"
)

// WorkoutRequest is the client payload for recording a workout. XPGained is
// optional; zero means "compute the default reward".
type WorkoutRequest struct {
	Date     time.Time `json:"date"`
	Name     string    `json:"name"`
	Duration int       `json:"duration"`
	XPGained int       `json:"xpGained"`
}

// Validate checks the required fields of a workout request.
func (r WorkoutRequest) Validate() error {
	if r.Date.IsZero() {
		return apierrors.InvalidInput("date is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return apierrors.InvalidInput("name is required")
	}
	if r.Duration <= 0 {
		return apierrors.InvalidInput("duration must be a positive number of minutes")
	}
	if r.XPGained < 0 {
		return apierrors.InvalidInput("xpGained cannot be negative")
	}
	return nil
}

// WorkoutService records workouts and applies their progression effects.
type WorkoutService struct {
	userRepo    *repository.UserRepository
	activity    *ActivityService
	leaderboard *LeaderboardService
}

func NewWorkoutService(userRepo *repository.UserRepository, activity *ActivityService, leaderboard *LeaderboardService) *WorkoutService {
	return &WorkoutService{
		userRepo:    userRepo,
		activity:    activity,
		leaderboard: leaderboard,
	}
}

// RecordWorkout appends a workout to the user's bounded history, grants XP,
// advances the streak and applies at most one level-up. The XP increment and
// the level increment are two separate single-document updates; a failure in
// between leaves the XP applied without the level, an accepted limitation.
func (s *WorkoutService) RecordWorkout(ctx context.Context, username string, req WorkoutRequest) (*models.Workout, error) {
	if err := req.Validate(); err != nil {
		logrus.WithError(err).WithField("username", username).Warn("Rejected invalid workout")
		return nil, err
	}

	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	user.ApplyDefaults()

	workout := models.Workout{
		Date:     req.Date,
		Name:     strings.TrimSpace(req.Name),
		Duration: req.Duration,
		XPGained: req.XPGained,
	}
	if workout.XPGained == 0 {
		workout.XPGained = progression.DefaultWorkoutXP(workout.Duration)
	}

	if err := s.userRepo.PushWorkout(ctx, username, workout); err != nil {
		return nil, err
	}

	var lastWorkout time.Time
	if len(user.RecentWorkouts) > 0 {
		lastWorkout = user.RecentWorkouts[0].Date
	}
	streak := progression.NextStreak(user.Progression.Streak, lastWorkout, workout.Date)
	if err := s.userRepo.SetStreak(ctx, username, streak); err != nil {
		logrus.WithError(err).WithField("username", username).Error("Streak update failed after workout push")
	}

	oldLevel := user.Progression.Level
	if progression.LevelsGained(oldLevel, user.Progression.XP, workout.XPGained) > 0 {
		if err := s.userRepo.IncrementLevel(ctx, username); err != nil {
			logrus.WithError(err).WithField("username", username).Error("Level-up increment failed after XP was granted")
		} else {
			s.activity.LogActivity(ctx, username, ActivityLevelUp,
				fmt.Sprintf("%s reached level %d", username, oldLevel+1))
			logrus.WithFields(logrus.Fields{
				"username": username,
				"level":    oldLevel + 1,
			}).Info("User leveled up")
		}
	}

	s.activity.LogActivity(ctx, username, ActivityWorkoutRecorded,
		fmt.Sprintf("%s completed %q (%d min, +%d XP)", username, workout.Name, workout.Duration, workout.XPGained))
	s.leaderboard.UpdateScore(ctx, username, user.Progression.XP+workout.XPGained)

	logrus.WithFields(logrus.Fields{
		"username": username,
		"workout":  workout.Name,
		"xp":       workout.XPGained,
	}).Info("Workout recorded successfully")
	return &workout, nil
}

// ListWorkouts returns the user's recent workout history, newest first.
func (s *WorkoutService) ListWorkouts(ctx context.Context, username string) ([]models.Workout, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	user.ApplyDefaults()
	return user.RecentWorkouts, nil
}
