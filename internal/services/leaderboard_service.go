package services

import (
	"context"

	"github.com/Dias221467/Levelup_Fitness/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const leaderboardKey = "leaderboard:xp"

// LeaderboardEntry is one row of the global XP ranking.
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Level    int    `json:"level"`
	XP       int    `json:"xp"`
}

// LeaderboardService keeps a Redis sorted set of total XP per user. Updates
// are best-effort; when Redis is down workouts still record and the board
// just goes stale or empty.
type LeaderboardService struct {
	redisClient *redis.Client
	userRepo    *repository.UserRepository
}

func NewLeaderboardService(redisClient *redis.Client, userRepo *repository.UserRepository) *LeaderboardService {
	return &LeaderboardService{
		redisClient: redisClient,
		userRepo:    userRepo,
	}
}

// UpdateScore sets the user's leaderboard score to their total XP.
func (s *LeaderboardService) UpdateScore(ctx context.Context, username string, totalXP int) {
	err := s.redisClient.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(totalXP),
		Member: username,
	}).Err()
	if err != nil {
		logrus.WithError(err).WithField("username", username).Warn("Failed to update leaderboard score")
	}
}

// Top returns the highest-XP users. Level is read back from Mongo so the
// board shows current levels, not snapshots.
func (s *LeaderboardService) Top(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	scores, err := s.redisClient.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		logrus.WithError(err).Warn("Failed to read leaderboard from Redis")
		return []LeaderboardEntry{}, nil
	}

	entries := make([]LeaderboardEntry, 0, len(scores))
	for i, z := range scores {
		username, ok := z.Member.(string)
		if !ok {
			continue
		}

		entry := LeaderboardEntry{
			Rank:     i + 1,
			Username: username,
			XP:       int(z.Score),
		}
		if user, err := s.userRepo.GetUserByUsername(ctx, username); err == nil {
			entry.Level = user.Progression.Level
		} else {
			entry.Level = 1
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
