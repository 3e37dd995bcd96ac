package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dias221467/Levelup_Fitness/internal/models"
	"github.com/Dias221467/Levelup_Fitness/internal/repository"
	"github.com/Dias221467/Levelup_Fitness/pkg/apierrors"
	"github.com/sirupsen/logrus"
)

// friendUserStore is the slice of the user repository the friend manager
// needs.
type friendUserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	AddFriend(ctx context.Context, owner string, entry models.FriendEntry) error
	RemoveFriend(ctx context.Context, owner, target string) error
	SearchUsers(ctx context.Context, fragment, exclude string, limit int64) ([]models.User, error)
}

type activityLogger interface {
	LogActivity(ctx context.Context, username, actionType, message string)
}

// FriendService handles business logic for managing friendships. Edges are
// one-directional: each call updates only the owner's list, so a mutual
// friendship takes two independent calls and the two sides can transiently
// disagree.
type FriendService struct {
	userRepo friendUserStore
	activity activityLogger
}

// NewFriendService creates a new FriendService.
func NewFriendService(userRepo *repository.UserRepository, activity *ActivityService) *FriendService {
	return &FriendService{
		userRepo: userRepo,
		activity: activity,
	}
}

// AddFriend appends a {username, level} snapshot of the target to the owner's
// friend list. Re-adding an existing friend is a no-op. The stored level is
// not kept in sync with the target afterwards.
func (s *FriendService) AddFriend(ctx context.Context, owner, target string) (*models.FriendEntry, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, apierrors.InvalidInput("friendUsername is required")
	}
	if owner == target {
		return nil, apierrors.InvalidInput("cannot add yourself as a friend")
	}

	ownerUser, err := s.userRepo.GetUserByUsername(ctx, owner)
	if err != nil {
		return nil, err
	}

	targetUser, err := s.userRepo.GetUserByUsername(ctx, target)
	if err != nil {
		return nil, err
	}
	targetUser.ApplyDefaults()

	for i := range ownerUser.Friends {
		if ownerUser.Friends[i].Username == target {
			logrus.WithFields(logrus.Fields{
				"owner":  owner,
				"friend": target,
			}).Info("Friend already added, skipping")
			return &ownerUser.Friends[i], nil
		}
	}

	entry := models.FriendEntry{
		Username: targetUser.Username,
		Level:    targetUser.Progression.Level,
	}
	if err := s.userRepo.AddFriend(ctx, owner, entry); err != nil {
		return nil, err
	}

	s.activity.LogActivity(ctx, owner, ActivityFriendAdded,
		fmt.Sprintf("%s added %s as a friend", owner, target))

	logrus.WithFields(logrus.Fields{
		"owner":  owner,
		"friend": target,
	}).Info("Friend added successfully")
	return &entry, nil
}

// RemoveFriend removes the target from the owner's friend list. Removing a
// user that is not listed is a no-op, not an error.
func (s *FriendService) RemoveFriend(ctx context.Context, owner, target string) error {
	if err := s.userRepo.RemoveFriend(ctx, owner, target); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"owner":  owner,
		"friend": target,
	}).Info("Friend removed")
	return nil
}

// SearchUsers returns {username, level} projections of users whose username
// contains the fragment, never including the requester.
func (s *FriendService) SearchUsers(ctx context.Context, fragment, requester string) ([]models.PublicUser, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return []models.PublicUser{}, nil
	}

	users, err := s.userRepo.SearchUsers(ctx, fragment, requester, 20)
	if err != nil {
		return nil, err
	}

	results := make([]models.PublicUser, 0, len(users))
	for _, user := range users {
		if user.Username == requester {
			continue
		}
		user.ApplyDefaults()
		results = append(results, models.PublicUser{
			Username: user.Username,
			Level:    user.Progression.Level,
		})
	}
	return results, nil
}
