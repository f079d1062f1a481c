package config

import (
	"os"
	"time"
)

type Config struct {
	ServerAddress string

	// AuthMode selects the identity backend: "firebase" (default) verifies
	// the mobile client's ID tokens; "jwt" runs the dev credential login.
	AuthMode      string
	JWTSecret     string
	JWTExpiration time.Duration

	FirebaseProjectID       string
	FirebaseCredentialsJSON string

	// MongoURI empty means the in-memory catalog (dev mode).
	MongoURI    string
	MongoDBName string

	// SeedFile optionally points at a JSON catalog seed.
	SeedFile string

	// DevLoginEmail/DevLoginPassword pre-create one jwt-mode account.
	DevLoginEmail    string
	DevLoginPassword string
}

func Load() *Config {
	return &Config{
		ServerAddress:           getEnv("SERVER_ADDRESS", ":8080"),
		AuthMode:                getEnv("AUTH_MODE", "firebase"),
		JWTSecret:               getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiration:           24 * time.Hour,
		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialsJSON: getEnv("FIREBASE_CREDENTIALS_JSON", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDBName:             getEnv("MONGO_DB", "lomilomi"),
		SeedFile:                getEnv("SEED_FILE", ""),
		DevLoginEmail:           getEnv("DEV_LOGIN_EMAIL", ""),
		DevLoginPassword:        getEnv("DEV_LOGIN_PASSWORD", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
