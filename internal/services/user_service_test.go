package services

import (
	"testing"

	"github.com/Dias221467/Levelup_Fitness/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDecorateUserFillsProgress(t *testing.T) {
	user := &models.User{Progression: models.Progression{Level: 1, XP: 50}}
	decorateUser(user)

	assert.Equal(t, 50.0, user.XPProgress)
	assert.NotNil(t, user.Friends)
	assert.NotNil(t, user.RecentWorkouts)
}

func TestDecorateUserClampsProgress(t *testing.T) {
	// Cumulative XP far past the threshold still renders a full bar.
	user := &models.User{Progression: models.Progression{Level: 2, XP: 100000}}
	decorateUser(user)
	assert.Equal(t, 100.0, user.XPProgress)

	// A legacy document with no progression defaults to level 1, 0%.
	var empty models.User
	decorateUser(&empty)
	assert.Equal(t, 1, empty.Progression.Level)
	assert.Equal(t, 0.0, empty.XPProgress)
}
