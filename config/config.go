package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment-derived configuration, loaded once at startup
var (
	Port string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	JWTSecret       string
	AuthCookieName  string
	DefaultPassword string

	ClientUrl string
)

// TokenTTL is how long a session cookie stays valid
const TokenTTL = 12 * time.Hour

// Load reads the .env file if present and populates the config vars
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	Port = getEnv("API_PORT", "8080")

	PostgresHost = getEnv("POSTGRES_HOST", "localhost")
	PostgresPort = getEnv("POSTGRES_PORT", "5432")
	PostgresUser = getEnv("POSTGRES_USER", "postgres")
	PostgresPassword = getEnv("POSTGRES_PASSWORD", "postgres")
	PostgresDB = getEnv("POSTGRES_DB", "tiro")

	JWTSecret = getEnv("JWT_SECRET", "")
	if JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	AuthCookieName = getEnv("AUTH_COOKIE_NAME", "tiro_session")
	DefaultPassword = getEnv("DEFAULT_ADMIN_PASSWORD", "")

	ClientUrl = getEnv("CLIENT_URL", "http://localhost:3000")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
