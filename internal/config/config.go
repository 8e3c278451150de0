package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values loaded from environment variables.
type Config struct {
	HTTPPort        string
	DatabaseURL     string
	JWTSecret       string
	TokenExpiration time.Duration
	AllowedOrigins  []string

	// TrustClientSender accepts a client-supplied sender snapshot on
	// POST /api/chat when no bearer token actor is present. Demo-only;
	// must stay false in production deployments.
	TrustClientSender bool
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first, then checks actual environment variables.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Could not load .env file. Using environment variables only.", err)
	}

	port := getEnv("HTTP_PORT", "8080")
	jwtSecret := getEnv("JWT_SECRET", "default-super-secret-key") // CHANGE THIS IN PRODUCTION!
	dbURL := getEnv("DATABASE_URL", "")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set.")
	}

	tokenExpStr := getEnv("JWT_EXPIRATION_HOURS", "24")
	tokenExpHours, err := strconv.Atoi(tokenExpStr)
	if err != nil {
		log.Printf("Warning: Invalid JWT_EXPIRATION_HOURS '%s', using default 24h. Error: %v", tokenExpStr, err)
		tokenExpHours = 24
	}

	origins := strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	trustClientSender, err := strconv.ParseBool(getEnv("TRUST_CLIENT_SENDER", "false"))
	if err != nil {
		log.Printf("Warning: Invalid TRUST_CLIENT_SENDER value, defaulting to false. Error: %v", err)
		trustClientSender = false
	}
	if trustClientSender {
		log.Println("WARN: TRUST_CLIENT_SENDER is enabled; client-supplied chat senders will be accepted. Do not use in production.")
	}

	cfg := &Config{
		HTTPPort:          port,
		DatabaseURL:       dbURL,
		JWTSecret:         jwtSecret,
		TokenExpiration:   time.Hour * time.Duration(tokenExpHours),
		AllowedOrigins:    origins,
		TrustClientSender: trustClientSender,
	}

	log.Printf("Loaded config: Port=%s, DB_URL=***, TokenExp=%s, Origins=%v", cfg.HTTPPort, cfg.TokenExpiration, cfg.AllowedOrigins)

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Env variable %s not set, using default: %s", key, fallback)
	return fallback
}
