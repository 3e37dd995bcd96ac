package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Progression holds the gamification counters. XP only ever grows; level is
// derived from it one step at a time when workouts are recorded.
type Progression struct {
	Level  int `bson:"level" json:"level"`
	XP     int `bson:"xp" json:"xp"`
	Streak int `bson:"streak" json:"streak"`
}

// Stats are lifetime totals shown on the profile page.
type Stats struct {
	WorkoutsCompleted int `bson:"workouts_completed" json:"workoutsCompleted"`
	BestStreak        int `bson:"best_streak" json:"bestStreak"`
}

// FriendEntry is a one-directional friend edge. Level is a snapshot taken when
// the edge was created and is not kept in sync with the target user.
type FriendEntry struct {
	Username string `bson:"username" json:"username"`
	Level    int    `bson:"level" json:"level"`
}

// Workout is a single entry in a user's bounded recent-workout history.
type Workout struct {
	Date     time.Time `bson:"date" json:"date"`
	Name     string    `bson:"name" json:"name"`
	Duration int       `bson:"duration" json:"duration"` // minutes
	XPGained int       `bson:"xp_gained" json:"xpGained"`
}

// User represents a user account in the fitness tracker. Username is unique
// and immutable once set; it is the key used in routes and friend edges.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username       string             `bson:"username" json:"username"`
	Email          string             `bson:"email" json:"email"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
	Bio            string             `bson:"bio" json:"bio"`
	Age            int                `bson:"age" json:"age"`
	Height         int                `bson:"height" json:"height"`
	Weight         int                `bson:"weight" json:"weight"`
	Progression    Progression        `bson:"progression" json:"progression"`
	XPProgress     float64            `bson:"-" json:"xpProgress"`
	Stats          Stats              `bson:"stats" json:"stats"`
	Friends        []FriendEntry      `bson:"friends" json:"friends"`
	RecentWorkouts []Workout          `bson:"recent_workouts" json:"recentWorkouts"`
	VerifyToken    string             `bson:"verify_token,omitempty" json:"-"`
	IsVerified     bool               `bson:"is_verified" json:"-"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"-"`
}

// PublicUser is the reduced projection returned by user search.
type PublicUser struct {
	Username string `json:"username"`
	Level    int    `json:"level"`
}

// ProfileUpdate carries the editable profile attributes. Pointer fields let a
// PATCH distinguish "not sent" from "set to zero".
type ProfileUpdate struct {
	Bio    *string `json:"bio"`
	Age    *int    `json:"age"`
	Height *int    `json:"height"`
	Weight *int    `json:"weight"`
}

// ApplyDefaults normalizes a document loaded from the store so older records
// serialize with every field the clients expect.
func (u *User) ApplyDefaults() {
	if u.Progression.Level < 1 {
		u.Progression.Level = 1
	}
	if u.Friends == nil {
		u.Friends = []FriendEntry{}
	}
	if u.RecentWorkouts == nil {
		u.RecentWorkouts = []Workout{}
	}
}
