package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Dias221467/Levelup_Fitness/internal/models"
	"github.com/Dias221467/Levelup_Fitness/internal/services"
	"github.com/Dias221467/Levelup_Fitness/pkg/apierrors"
	"github.com/Dias221467/Levelup_Fitness/pkg/logger"
	"github.com/gorilla/mux"
)

type ActivityHandler struct {
	Service *services.ActivityService
}

func NewActivityHandler(service *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{Service: service}
}

// GetActivityHandler returns the user's recent activity feed.
func (h *ActivityHandler) GetActivityHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	username := vars["username"]

	activities, err := h.Service.GetRecentActivities(r.Context(), username, 20)
	if err != nil {
		logger.Log.Errorf("Failed to fetch activity feed for %s: %v", username, err)
		apierrors.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]models.Activity{"activity": activities})
}
