package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Dias221467/Levelup_Fitness/internal/services"
	"github.com/Dias221467/Levelup_Fitness/pkg/apierrors"
	"github.com/Dias221467/Levelup_Fitness/pkg/logger"
)

type LeaderboardHandler struct {
	Service *services.LeaderboardService
}

func NewLeaderboardHandler(service *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{Service: service}
}

// GetLeaderboardHandler returns the top users by total XP.
func (h *LeaderboardHandler) GetLeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 100 {
			apierrors.WriteError(w, apierrors.InvalidInput("limit must be between 1 and 100"))
			return
		}
		limit = n
	}

	entries, err := h.Service.Top(r.Context(), limit)
	if err != nil {
		logger.Log.Errorf("Failed to fetch leaderboard: %v", err)
		apierrors.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"leaderboard": entries})
}
