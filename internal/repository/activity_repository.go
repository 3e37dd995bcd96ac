package repository

import (
	"context"

	"github.com/Dias221467/Levelup_Fitness/internal/models"
	"github.com/Dias221467/Levelup_Fitness/pkg/apierrors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ActivityRepository struct {
	collection *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{
		collection: db.Collection("activities"),
	}
}

// CreateActivity inserts a new activity feed entry.
func (r *ActivityRepository) CreateActivity(ctx context.Context, activity *models.Activity) error {
	_, err := r.collection.InsertOne(ctx, activity)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert activity")
		return apierrors.StoreFailure(err)
	}
	return nil
}

// GetUserActivities fetches recent activities of a specific user.
func (r *ActivityRepository) GetUserActivities(ctx context.Context, username string, limit int) ([]models.Activity, error) {
	filter := bson.M{"username": username}
	sort := bson.D{{Key: "timestamp", Value: -1}}

	opts := options.Find().SetSort(sort).SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apierrors.StoreFailure(err)
	}
	defer cursor.Close(ctx)

	var activities []models.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, apierrors.StoreFailure(err)
	}
	return activities, nil
}
