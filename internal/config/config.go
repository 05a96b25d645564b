// Package config reads flat env-var configuration, optionally seeded from a
// .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the .env file named by ELYUBOT_ENV (default ".env") if present.
func Load() {
	envFile := os.Getenv("ELYUBOT_ENV")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)
}

// CatalogPath is the location of the exported data snapshot.
func CatalogPath() string {
	p := os.Getenv("ELYUBOT_CATALOG")
	if p == "" {
		return "data/catalog.json"
	}
	return p
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("ELYUBOT_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// RedisAddr enables the Redis session store when non-empty; otherwise slot
// memory stays in process.
func RedisAddr() string {
	return os.Getenv("ELYUBOT_REDIS_ADDR")
}

func RedisPassword() string {
	return os.Getenv("ELYUBOT_REDIS_PASSWORD")
}

func RedisDB() int {
	db, err := strconv.Atoi(os.Getenv("ELYUBOT_REDIS_DB"))
	if err != nil {
		return 0
	}
	return db
}

// SessionTTL is how long idle conversations keep their slot memory.
func SessionTTL() time.Duration {
	d, err := time.ParseDuration(os.Getenv("ELYUBOT_SESSION_TTL"))
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// OllamaModel selects the generation model; empty disables the generative
// fallback entirely.
func OllamaModel() string {
	return os.Getenv("ELYUBOT_OLLAMA_MODEL")
}

func OllamaURL() string {
	return os.Getenv("ELYUBOT_OLLAMA_URL")
}

func GenerateTimeout() time.Duration {
	d, err := time.ParseDuration(os.Getenv("ELYUBOT_GENERATE_TIMEOUT"))
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// RateLimitRPS is the per-IP request rate for the HTTP API.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("ELYUBOT_RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 20
	}
	return rps
}

func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("ELYUBOT_RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 10
	}
	return burst
}
