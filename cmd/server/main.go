package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Dias221467/Levelup_Fitness/internal/config"
	"github.com/Dias221467/Levelup_Fitness/internal/database"
	"github.com/Dias221467/Levelup_Fitness/internal/handlers"
	"github.com/Dias221467/Levelup_Fitness/internal/jobs"
	"github.com/Dias221467/Levelup_Fitness/internal/repository"
	cronjobs "github.com/Dias221467/Levelup_Fitness/internal/scheduler"
	"github.com/Dias221467/Levelup_Fitness/internal/services"
	"github.com/Dias221467/Levelup_Fitness/pkg/logger"
	"github.com/Dias221467/Levelup_Fitness/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// Redis backs the XP leaderboard; the server runs without it
	redisClient := database.ConnectRedis(cfg)

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// --- Services ---
	userService := services.NewUserService(userRepo)
	activityService := services.NewActivityService(activityRepo)
	leaderboardService := services.NewLeaderboardService(redisClient, userRepo)
	workoutService := services.NewWorkoutService(userRepo, activityService, leaderboardService)
	friendService := services.NewFriendService(userRepo, activityService)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, cfg)
	workoutHandler := handlers.NewWorkoutHandler(workoutService)
	friendHandler := handlers.NewFriendHandler(friendService)
	activityHandler := handlers.NewActivityHandler(activityService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Public user routes
	router.HandleFunc("/users/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginUserHandler).Methods("POST")
	router.HandleFunc("/users/verify", userHandler.VerifyEmailHandler).Methods("GET")

	// Protected user routes (only authenticated users can access)
	protectedUserRoutes := router.PathPrefix("/users").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUserRoutes.HandleFunc("/search", friendHandler.SearchUsersHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/{username}", userHandler.GetUserHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/{username}", userHandler.UpdateUserHandler).Methods("PUT", "PATCH")
	protectedUserRoutes.HandleFunc("/{username}/workouts", workoutHandler.ListWorkoutsHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/{username}/workouts", workoutHandler.RecordWorkoutHandler).Methods("POST")
	protectedUserRoutes.HandleFunc("/{username}/friends", friendHandler.AddFriendHandler).Methods("POST")
	protectedUserRoutes.HandleFunc("/{username}/friends/{friendUsername}", friendHandler.RemoveFriendHandler).Methods("DELETE")
	protectedUserRoutes.HandleFunc("/{username}/activity", activityHandler.GetActivityHandler).Methods("GET")

	// Leaderboard routes
	protectedBoardRoutes := router.PathPrefix("/leaderboard").Subrouter()
	protectedBoardRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedBoardRoutes.HandleFunc("", leaderboardHandler.GetLeaderboardHandler).Methods("GET")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Nightly streak expiry
	sweeper := jobs.NewStreakSweeper(userRepo)
	cronjobs.StartStreakCronJobs(sweeper)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // adjust to frontend origin
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
