package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Dias221467/Levelup_Fitness/internal/services"
	"github.com/Dias221467/Levelup_Fitness/pkg/apierrors"
	"github.com/Dias221467/Levelup_Fitness/pkg/logger"
	"github.com/Dias221467/Levelup_Fitness/pkg/middleware"
	"github.com/gorilla/mux"
)

// FriendHandler manages HTTP endpoints related to friend edges.
type FriendHandler struct {
	Service *services.FriendService
}

// NewFriendHandler initializes a new FriendHandler.
func NewFriendHandler(service *services.FriendService) *FriendHandler {
	return &FriendHandler{Service: service}
}

// AddFriendHandler appends a friend edge to the owner's list. Only the owner
// can modify their own friend list.
func (h *FriendHandler) AddFriendHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	owner := vars["username"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		apierrors.WriteError(w, apierrors.Unauthorized("authentication required"))
		logger.Log.Warn("Unauthorized attempt to add a friend")
		return
	}
	if claims.Username != owner {
		http.Error(w, "Forbidden: You can only manage your own friends", http.StatusForbidden)
		logger.Log.Warnf("User %s attempted to modify %s's friend list", claims.Username, owner)
		return
	}

	var body struct {
		FriendUsername string `json:"friendUsername"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger.Log.Warnf("Failed to decode add-friend payload: %v", err)
		apierrors.WriteError(w, apierrors.InvalidInput("invalid request payload"))
		return
	}
	defer r.Body.Close()

	entry, err := h.Service.AddFriend(r.Context(), owner, body.FriendUsername)
	if err != nil {
		logger.Log.Warnf("Failed to add friend %s for %s: %v", body.FriendUsername, owner, err)
		apierrors.WriteError(w, err)
		return
	}

	logger.Log.Infof("User %s added %s as a friend", owner, entry.Username)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Friend added successfully",
		"friend":  entry,
	})
}

// RemoveFriendHandler removes a friend edge from the owner's list.
func (h *FriendHandler) RemoveFriendHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	owner := vars["username"]
	friend := vars["friendUsername"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		apierrors.WriteError(w, apierrors.Unauthorized("authentication required"))
		logger.Log.Warn("Unauthorized attempt to remove a friend")
		return
	}
	if claims.Username != owner {
		http.Error(w, "Forbidden: You can only manage your own friends", http.StatusForbidden)
		logger.Log.Warnf("User %s attempted to modify %s's friend list", claims.Username, owner)
		return
	}

	if err := h.Service.RemoveFriend(r.Context(), owner, friend); err != nil {
		logger.Log.Warnf("Failed to remove friend %s for %s: %v", friend, owner, err)
		apierrors.WriteError(w, err)
		return
	}

	logger.Log.Infof("User %s removed %s from friends", owner, friend)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Friend removed successfully"})
}

// SearchUsersHandler returns {username, level} matches for a username
// fragment, excluding the requester.
func (h *FriendHandler) SearchUsersHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		apierrors.WriteError(w, apierrors.Unauthorized("authentication required"))
		logger.Log.Warn("Unauthorized attempt to search users")
		return
	}

	fragment := r.URL.Query().Get("username")
	results, err := h.Service.SearchUsers(r.Context(), fragment, claims.Username)
	if err != nil {
		logger.Log.Errorf("User search failed for %q: %v", fragment, err)
		apierrors.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}
