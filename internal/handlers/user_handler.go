package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Dias221467/Levelup_Fitness/internal/config"
	"github.com/Dias221467/Levelup_Fitness/internal/models"
	"github.com/Dias221467/Levelup_Fitness/internal/services"
	"github.com/Dias221467/Levelup_Fitness/pkg/apierrors"
	jwtutil "github.com/Dias221467/Levelup_Fitness/pkg/jwt"
	"github.com/Dias221467/Levelup_Fitness/pkg/middleware"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// UserHandler handles HTTP requests related to user operations.
type UserHandler struct {
	Service *services.UserService
	Config  *config.Config
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		Service: service,
		Config:  cfg,
	}
}

// RegisterUserHandler handles user registration.
func (h *UserHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	log.Info("RegisterUserHandler called")
	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.WithError(err).Warn("Failed to decode user registration request")
		apierrors.WriteError(w, apierrors.InvalidInput("invalid request payload"))
		return
	}
	defer r.Body.Close()

	createdUser, err := h.Service.RegisterUser(r.Context(), body.Username, body.Email, body.Password)
	if err != nil {
		log.WithError(err).Error("Failed to register user")
		apierrors.WriteError(w, err)
		return
	}

	log.WithField("username", createdUser.Username).Info("User registered successfully")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(createdUser)
}

// LoginUserHandler handles user login and returns a signed token plus the
// user snapshot the client keeps as its session cache.
func (h *UserHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	log.Info("LoginUserHandler called")
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.WithError(err).Warn("Failed to decode login request")
		apierrors.WriteError(w, apierrors.InvalidInput("invalid request payload"))
		return
	}
	defer r.Body.Close()

	user, err := h.Service.AuthenticateUser(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		log.WithFields(log.Fields{
			"email": credentials.Email,
			"error": err,
		}).Warn("Authentication failed")
		apierrors.WriteError(w, err)
		return
	}

	token, err := jwtutil.GenerateToken(user.Username, user.Email, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		log.WithError(err).Error("Failed to generate JWT token")
		apierrors.WriteError(w, apierrors.StoreFailure(err))
		return
	}

	log.WithField("username", user.Username).Info("User logged in successfully")

	response := map[string]interface{}{
		"token": token,
		"user":  user,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// VerifyEmailHandler confirms an email verification token.
func (h *UserHandler) VerifyEmailHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		apierrors.WriteError(w, apierrors.InvalidInput("token is required"))
		return
	}

	if err := h.Service.VerifyEmail(r.Context(), token); err != nil {
		log.WithError(err).Warn("Email verification failed")
		apierrors.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Email verified successfully"})
}

// GetUserHandler handles fetching a user profile by username. Any
// authenticated user may view any profile.
func (h *UserHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	username := vars["username"]

	user, err := h.Service.GetUser(r.Context(), username)
	if err != nil {
		log.WithField("username", username).WithError(err).Warn("User not found")
		apierrors.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// UpdateUserHandler handles updating a user profile. Both PUT and PATCH land
// here; only bio, age, height and weight are editable.
func (h *UserHandler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	username := vars["username"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		log.Warn("Unauthorized access attempt to UpdateUserHandler")
		apierrors.WriteError(w, apierrors.Unauthorized("authentication required"))
		return
	}

	if username != claims.Username {
		log.WithFields(log.Fields{
			"requestedUser": username,
			"loggedInUser":  claims.Username,
		}).Warn("Forbidden update attempt")
		http.Error(w, "Forbidden: You can only update your own profile", http.StatusForbidden)
		return
	}

	var update models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.WithError(err).Warn("Failed to decode update request")
		apierrors.WriteError(w, apierrors.InvalidInput("invalid request payload"))
		return
	}
	defer r.Body.Close()

	updatedUser, err := h.Service.UpdateProfile(r.Context(), username, update)
	if err != nil {
		log.WithFields(log.Fields{
			"username": username,
			"error":    err,
		}).Error("Failed to update user")
		apierrors.WriteError(w, err)
		return
	}

	log.WithField("username", updatedUser.Username).Info("User updated successfully")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updatedUser)
}
