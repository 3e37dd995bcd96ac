package services

import (
	"errors"
	"testing"
	"time"

	"github.com/Dias221467/Levelup_Fitness/pkg/apierrors"
	"github.com/stretchr/testify/assert"
)

func TestWorkoutRequestValidate(t *testing.T) {
	valid := WorkoutRequest{
		Date:     time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
		Name:     "Morning run",
		Duration: 25,
	}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name string
		req  WorkoutRequest
	}{
		{"missing date", WorkoutRequest{Name: "Run", Duration: 25}},
		{"missing name", WorkoutRequest{Date: valid.Date, Duration: 25}},
		{"blank name", WorkoutRequest{Date: valid.Date, Name: "   ", Duration: 25}},
		{"zero duration", WorkoutRequest{Date: valid.Date, Name: "Run"}},
		{"negative duration", WorkoutRequest{Date: valid.Date, Name: "Run", Duration: -5}},
		{"negative xp", WorkoutRequest{Date: valid.Date, Name: "Run", Duration: 25, XPGained: -1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.req.Validate()
			assert.True(t, errors.Is(err, apierrors.ErrInvalidInput), "expected InvalidInput, got %v", err)
		})
	}
}

func TestWorkoutRequestValidateAllowsExplicitXP(t *testing.T) {
	req := WorkoutRequest{
		Date:     time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
		Name:     "Leg day",
		Duration: 45,
		XPGained: 30,
	}
	assert.NoError(t, req.Validate())
}
