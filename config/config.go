package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port                string
	MongoURI            string
	JWTSecret           string
	TokenExpires        time.Duration
	SaltRounds          int
	StripeSecret        string
	StripeWebhookSecret string
	VonageAPIKey        string
	VonageAPISecret     string
	SMSSender           string
	Domain              string
}

// LoadEnv loads environment variables from a .env file
func LoadEnv() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Error loading .env file")
	}
}

// Load reads environment variables and returns a populated Config.
func Load() *Config {
	return &Config{
		Port:                GetEnv("PORT", "3000"),
		MongoURI:            GetEnv("MONGODB_URI", "mongodb://localhost:27017"),
		JWTSecret:           GetEnv("JWT_SECRET", ""),
		TokenExpires:        time.Duration(getEnvInt("JWT_EXPIRE_HOURS", 24)) * time.Hour,
		SaltRounds:          getEnvInt("SALT_ROUNDS", 10),
		StripeSecret:        GetEnv("STRIPE_SECRET", ""),
		StripeWebhookSecret: GetEnv("STRIPE_WEBHOOK_SECRET", ""),
		VonageAPIKey:        GetEnv("VONAGE_API_KEY", ""),
		VonageAPISecret:     GetEnv("VONAGE_API_SECRET", ""),
		SMSSender:           GetEnv("SMS_SENDER", "ECOM"),
		Domain:              GetEnv("DOMAIN", "http://localhost:3000"),
	}
}

// GetEnv retrieves environment variables with a fallback
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, fallback)
		return fallback
	}
	return n
}
