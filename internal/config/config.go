package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting the server needs.
type Config struct {
	Port        string
	MongoURI    string
	MongoDB     string
	RedisAddr   string
	RedisDB     int
	JWTSecret   string
	TokenExpiry time.Duration
}

// LoadConfig reads configuration from a .env file (if present) and the
// environment. Missing critical settings abort startup.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDB:     getEnv("MONGO_DB", "levelup"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenExpiry: 24 * time.Hour,
	}

	if db := os.Getenv("REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			log.Fatalf("Invalid REDIS_DB value %q: %v", db, err)
		}
		cfg.RedisDB = n
	}

	if exp := os.Getenv("TOKEN_EXPIRY"); exp != "" {
		d, err := time.ParseDuration(exp)
		if err != nil {
			log.Fatalf("Invalid TOKEN_EXPIRY value %q: %v", exp, err)
		}
		cfg.TokenExpiry = d
	}

	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI environment variable is not set")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
