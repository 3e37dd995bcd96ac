package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	var user User
	user.ApplyDefaults()

	assert.Equal(t, 1, user.Progression.Level)
	assert.NotNil(t, user.Friends)
	assert.Empty(t, user.Friends)
	assert.NotNil(t, user.RecentWorkouts)
	assert.Empty(t, user.RecentWorkouts)
}

func TestApplyDefaultsKeepsExistingValues(t *testing.T) {
	user := User{
		Progression: Progression{Level: 7, XP: 420, Streak: 3},
		Friends:     []FriendEntry{{Username: "argus", Level: 5}},
	}
	user.ApplyDefaults()

	assert.Equal(t, 7, user.Progression.Level)
	assert.Equal(t, 420, user.Progression.XP)
	assert.Len(t, user.Friends, 1)
}
