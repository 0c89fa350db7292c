package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	FirebaseCredentials string
	SendgridAPIKey      string
	SendgridFromEmail   string
	SendgridFromName    string
	CORSOrigins         []string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	origins := []string{"http://localhost:3000", "http://localhost:3001"}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		origins = nil
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return &Config{
		Port:                getEnv("PORT", "3001"),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", "serviceAccountKey.json"),
		SendgridAPIKey:      getEnv("SENDGRID_API_KEY", ""),
		SendgridFromEmail:   getEnv("SENDGRID_FROM_EMAIL", ""),
		SendgridFromName:    getEnv("SENDGRID_FROM_NAME", "Elderlyze Emergency System"),
		CORSOrigins:         origins,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
