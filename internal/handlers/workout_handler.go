package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Dias221467/Levelup_Fitness/internal/models"
	"github.com/Dias221467/Levelup_Fitness/internal/services"
	"github.com/Dias221467/Levelup_Fitness/pkg/apierrors"
	"github.com/Dias221467/Levelup_Fitness/pkg/logger"
	"github.com/Dias221467/Levelup_Fitness/pkg/middleware"
	"github.com/gorilla/mux"
)

// WorkoutHandler manages the workout history endpoints.
type WorkoutHandler struct {
	Service *services.WorkoutService
}

// NewWorkoutHandler initializes a new WorkoutHandler.
func NewWorkoutHandler(service *services.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{Service: service}
}

// ListWorkoutsHandler returns the user's recent workouts, newest first.
func (h *WorkoutHandler) ListWorkoutsHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	username := vars["username"]

	workouts, err := h.Service.ListWorkouts(r.Context(), username)
	if err != nil {
		logger.Log.Warnf("Failed to list workouts for %s: %v", username, err)
		apierrors.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]models.Workout{"workouts": workouts})
}

// RecordWorkoutHandler records a workout for the user and applies XP, streak
// and level effects. Users can only record workouts for themselves.
func (h *WorkoutHandler) RecordWorkoutHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	username := vars["username"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		apierrors.WriteError(w, apierrors.Unauthorized("authentication required"))
		logger.Log.Warn("Unauthorized attempt to record a workout")
		return
	}
	if claims.Username != username {
		http.Error(w, "Forbidden: You can only record your own workouts", http.StatusForbidden)
		logger.Log.Warnf("User %s attempted to record a workout for %s", claims.Username, username)
		return
	}

	var req services.WorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warnf("Failed to decode workout payload: %v", err)
		apierrors.WriteError(w, apierrors.InvalidInput("invalid request payload"))
		return
	}
	defer r.Body.Close()

	workout, err := h.Service.RecordWorkout(r.Context(), username, req)
	if err != nil {
		logger.Log.Warnf("Failed to record workout for %s: %v", username, err)
		apierrors.WriteError(w, err)
		return
	}

	logger.Log.Infof("User %s recorded workout %q", username, workout.Name)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Workout recorded successfully",
		"workout": workout,
	})
}
