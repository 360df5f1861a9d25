package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr        string
	StoreDriver string
	DatabaseURL string

	MongoURI      string
	MongoDatabase string

	JWTSecret  string
	SessionTTL time.Duration
	// AdminEmails are granted the admin role when they register.
	AdminEmails           []string
	RejectSharedPasswords bool

	RabbitMQURL      string
	RabbitMQExchange string
	ChannelPoolSize  int

	LogLevel    string
	CORSOrigins string
	SeedCatalog bool
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Addr:                  getEnv("PAGE_FLOW_ADDR", ":5000"),
		StoreDriver:           strings.ToLower(getEnv("STORE_DRIVER", DriverPostgres)),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		MongoURI:              getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:         getEnv("MONGO_DATABASE", "LibraryManagement"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		SessionTTL:            getEnvAsDuration("SESSION_TTL", 72*time.Hour),
		AdminEmails:           getEnvAsList("ADMIN_EMAILS"),
		RejectSharedPasswords: os.Getenv("REJECT_SHARED_PASSWORDS") == "1",
		RabbitMQURL:           os.Getenv("RABBITMQ_URL"),
		RabbitMQExchange:      getEnv("RABBITMQ_EXCHANGE", "page_flow.orders"),
		ChannelPoolSize:       getEnvAsInt("CHANNEL_POOL_SIZE", 4),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		CORSOrigins:           getEnv("CORS_ORIGINS", "*"),
		SeedCatalog:           os.Getenv("SEED_CATALOG") == "1",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if v := strings.ToLower(strings.TrimSpace(part)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
