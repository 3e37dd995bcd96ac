package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/Levelup_Fitness/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB establishes the MongoDB connection and makes sure the unique
// indexes on the users collection exist.
func ConnectDB(cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	db := client.Database(cfg.MongoDB)

	if err := ensureUserIndexes(ctx, db); err != nil {
		return nil, err
	}

	logrus.WithField("database", cfg.MongoDB).Info("Connected to MongoDB")
	return db, nil
}

// ensureUserIndexes creates the unique username and email indexes. Username is
// the foreign key used everywhere, so uniqueness is enforced at the store.
func ensureUserIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := db.Collection("users").Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %v", err)
	}
	return nil
}

// ConnectRedis opens the Redis client used for the XP leaderboard. A failed
// ping is logged but not fatal: the leaderboard degrades, workouts still work.
func ConnectRedis(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Warn("Redis unavailable, leaderboard disabled")
	} else {
		logrus.WithField("addr", cfg.RedisAddr).Info("Connected to Redis")
	}

	return client
}
