package main

import (
	"os"
	"strconv"
	"time"
)

type config struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
	SeedFile   string
	Debug      bool
	Format     string
}

// configFromEnv loads defaults from the environment.
func configFromEnv() config {
	return config{
		URI:        envOr("RECIPES_MONGO_URI", "mongodb://localhost:27017"),
		Database:   envOr("RECIPES_DATABASE", "recipes"),
		Collection: envOr("RECIPES_COLLECTION", "recipes"),
		Timeout:    envDurationOr("RECIPES_TIMEOUT", 30*time.Second),
		SeedFile:   os.Getenv("RECIPES_SEED_FILE"),
		Debug:      envBoolOr("RECIPES_DEBUG", false),
		Format:     "json",
	}
}

// envOr returns the environment variable value or a default.
func envOr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// envBoolOr returns the environment variable as bool or a default.
func envBoolOr(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

// envDurationOr returns the environment variable as duration or a default.
func envDurationOr(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
