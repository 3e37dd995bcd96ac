package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/Dias221467/Levelup_Fitness/internal/models"
	"github.com/Dias221467/Levelup_Fitness/internal/progression"
	"github.com/Dias221467/Levelup_Fitness/pkg/apierrors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository handles database operations related to users.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// CreateUser inserts a new user into the database.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			logrus.WithField("username", user.Username).Warn("Duplicate username or email on insert")
			return nil, apierrors.Conflict("username or email already in use")
		}
		logrus.WithError(err).Error("Failed to insert user into database")
		return nil, apierrors.StoreFailure(err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logrus.Error("Failed to cast inserted ID to ObjectID")
		return nil, apierrors.StoreFailure(errors.New("unexpected inserted ID type"))
	}
	user.ID = insertedID

	logrus.WithField("username", user.Username).Info("User inserted successfully")
	return user, nil
}

// GetUserByUsername retrieves a user by username, the key used in routes and
// friend edges.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apierrors.NotFound("user not found")
		}
		logrus.WithFields(logrus.Fields{
			"username": username,
			"error":    err,
		}).Warn("Failed to find user by username")
		return nil, apierrors.StoreFailure(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apierrors.NotFound("user not found")
		}
		logrus.WithFields(logrus.Fields{
			"email": email,
			"error": err,
		}).Warn("Failed to find user by email")
		return nil, apierrors.StoreFailure(err)
	}
	return &user, nil
}

// GetUserByVerifyToken retrieves a user by their email verification token.
func (r *UserRepository) GetUserByVerifyToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"verify_token": token}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apierrors.NotFound("verification token not found")
		}
		return nil, apierrors.StoreFailure(err)
	}
	return &user, nil
}

// UpdateFields applies a partial $set update to a user and returns the
// updated document, last write wins.
func (r *UserRepository) UpdateFields(ctx context.Context, username string, fields bson.M) (*models.User, error) {
	fields["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"username": username}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apierrors.NotFound("user not found")
		}
		logrus.WithFields(logrus.Fields{
			"username": username,
			"error":    err,
		}).Error("Failed to update user")
		return nil, apierrors.StoreFailure(err)
	}

	logrus.WithField("username", username).Info("User updated successfully")
	return &updated, nil
}

// PushWorkout appends a workout to the user's history, keeping the list
// sorted by date descending and capped, and increments the XP and workout
// counters in the same single-document update.
func (r *UserRepository) PushWorkout(ctx context.Context, username string, workout models.Workout) error {
	update := bson.M{
		"$push": bson.M{
			"recent_workouts": bson.M{
				"$each":  bson.A{workout},
				"$sort":  bson.M{"date": -1},
				"$slice": progression.RecentWorkoutCap,
			},
		},
		"$inc": bson.M{
			"progression.xp":           workout.XPGained,
			"stats.workouts_completed": 1,
		},
		"$set": bson.M{
			"updated_at": time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"username": username}, update)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"username": username,
			"error":    err,
		}).Error("Failed to push workout")
		return apierrors.StoreFailure(err)
	}
	if result.MatchedCount == 0 {
		return apierrors.NotFound("user not found")
	}
	return nil
}

// IncrementLevel bumps the user's level by one.
func (r *UserRepository) IncrementLevel(ctx context.Context, username string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"username": username},
		bson.M{"$inc": bson.M{"progression.level": 1}},
	)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"username": username,
			"error":    err,
		}).Error("Failed to increment level")
		return apierrors.StoreFailure(err)
	}
	return nil
}

// SetStreak stores the current streak and raises the best-streak high-water
// mark when the new value beats it.
func (r *UserRepository) SetStreak(ctx context.Context, username string, streak int) error {
	update := bson.M{
		"$set": bson.M{"progression.streak": streak},
		"$max": bson.M{"stats.best_streak": streak},
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"username": username}, update)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"username": username,
			"error":    err,
		}).Error("Failed to update streak")
		return apierrors.StoreFailure(err)
	}
	return nil
}

// AddFriend appends a friend edge to the owner's list. De-duplication happens
// in the service: $addToSet would not help because the level snapshot inside
// the entry can differ between otherwise identical edges.
func (r *UserRepository) AddFriend(ctx context.Context, owner string, entry models.FriendEntry) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"username": owner},
		bson.M{"$push": bson.M{"friends": entry}},
	)
	if err != nil {
		logrus.WithError(err).Error("Failed to add friend")
		return apierrors.StoreFailure(err)
	}
	if result.MatchedCount == 0 {
		return apierrors.NotFound("user not found")
	}
	return nil
}

// RemoveFriend pulls any edge matching the target username from the owner's
// list. Removing a friend that is not listed is a no-op, not an error.
func (r *UserRepository) RemoveFriend(ctx context.Context, owner, target string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"username": owner},
		bson.M{"$pull": bson.M{"friends": bson.M{"username": target}}},
	)
	if err != nil {
		logrus.WithError(err).Error("Failed to remove friend")
		return apierrors.StoreFailure(err)
	}
	if result.MatchedCount == 0 {
		return apierrors.NotFound("user not found")
	}
	return nil
}

// SearchUsers finds users whose username contains the fragment,
// case-insensitively, excluding the requester.
func (r *UserRepository) SearchUsers(ctx context.Context, fragment, exclude string, limit int64) ([]models.User, error) {
	filter := bson.M{
		"username": bson.M{
			"$regex":   regexp.QuoteMeta(fragment),
			"$options": "i",
			"$ne":      exclude,
		},
	}

	opts := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "username", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logrus.WithError(err).Error("Failed to search users")
		return nil, apierrors.StoreFailure(err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, apierrors.StoreFailure(err)
	}
	return users, nil
}

// ResetExpiredStreaks zeroes the streak of every user whose newest workout is
// older than the cutoff. The history is stored newest-first, so element 0 is
// the latest workout.
func (r *UserRepository) ResetExpiredStreaks(ctx context.Context, cutoff time.Time) (int64, error) {
	filter := bson.M{
		"progression.streak": bson.M{"$gt": 0},
		"$or": bson.A{
			bson.M{"recent_workouts.0.date": bson.M{"$lt": cutoff}},
			bson.M{"recent_workouts": bson.M{"$size": 0}},
		},
	}

	result, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"progression.streak": 0}})
	if err != nil {
		logrus.WithError(err).Error("Failed to reset expired streaks")
		return 0, apierrors.StoreFailure(err)
	}
	return result.ModifiedCount, nil
}
