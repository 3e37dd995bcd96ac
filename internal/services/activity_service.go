package services

import (
	"context"
	"time"

	"github.com/Dias221467/Levelup_Fitness/internal/models"
	"github.com/Dias221467/Levelup_Fitness/internal/repository"
	"github.com/sirupsen/logrus"
)

// Activity types written to the feed.
const (
	ActivityWorkoutRecorded = "workout_recorded"
	ActivityLevelUp         = "level_up"
	ActivityFriendAdded     = "friend_added"
)

type ActivityService struct {
	repo *repository.ActivityRepository
}

func NewActivityService(repo *repository.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// LogActivity records a feed entry. Feed writes are best-effort: a failure is
// logged and swallowed so it never fails the operation that triggered it.
func (s *ActivityService) LogActivity(ctx context.Context, username, actionType, message string) {
	activity := &models.Activity{
		Username:  username,
		Type:      actionType,
		Message:   message,
		Timestamp: time.Now(),
	}

	if err := s.repo.CreateActivity(ctx, activity); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"username":    username,
			"action_type": actionType,
		}).Error("Failed to log activity")
	}
}

// GetRecentActivities returns recent feed entries for a user.
func (s *ActivityService) GetRecentActivities(ctx context.Context, username string, limit int) ([]models.Activity, error) {
	activities, err := s.repo.GetUserActivities(ctx, username, limit)
	if err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []models.Activity{}
	}
	return activities, nil
}
