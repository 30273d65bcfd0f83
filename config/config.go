package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT        string
	DB_URL      string
	JWT_SECRET  string
	CORS_ORIGIN string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string

	S3_ENDPOINT   string
	S3_REGION     string
	S3_BUCKET     string
	S3_ACCESS_KEY string
	S3_SECRET_KEY string
	S3_PUBLIC_URL string

	// APP_CONFIG names an optional TOML file with non-secret settings.
	APP_CONFIG string
)

// LoadEnv reads .env (if present) and the process environment. DB_URL is
// always required; requireJWT is false for commands that never sign tokens.
func LoadEnv(requireJWT bool) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	if requireJWT {
		JWT_SECRET = mustEnv("JWT_SECRET")
	} else {
		JWT_SECRET = getEnv("JWT_SECRET", "")
	}
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:3000")

	// Google sign-in is off unless all three are set
	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")

	S3_ENDPOINT = getEnv("S3_ENDPOINT", "")
	S3_REGION = getEnv("S3_REGION", "us-east-1")
	S3_BUCKET = getEnv("S3_BUCKET", "image")
	S3_ACCESS_KEY = getEnv("S3_ACCESS_KEY", "")
	S3_SECRET_KEY = getEnv("S3_SECRET_KEY", "")
	S3_PUBLIC_URL = getEnv("S3_PUBLIC_URL", "")

	APP_CONFIG = getEnv("APP_CONFIG", "")
}

func GoogleEnabled() bool {
	return GOOGLE_CLIENT_ID != "" && GOOGLE_CLIENT_SECRET != "" && GOOGLE_REDIRECT_URL != ""
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		slog.Error("Missing required environment variable", slog.String("key", key))
		os.Exit(1)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// S3Enabled reports whether uploads go to a real bucket.
func S3Enabled() bool {
	return S3_BUCKET != "" && S3_ACCESS_KEY != "" && S3_SECRET_KEY != ""
}
