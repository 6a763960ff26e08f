package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Events   EventsConfig
	Client   ClientConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	OtelEnabled        bool
}

type DatabaseConfig struct {
	// Connection is a PostgreSQL DSN. Empty selects the in-memory store.
	Connection string
}

type EventsConfig struct {
	Topic    string
	NatsURL  string // empty disables export to NATS
	RedisURL string // empty keeps websocket fan-out local to this instance
}

type ClientConfig struct {
	APIURL         string
	LogFilePath    string
	RequestTimeout time.Duration
	RemovalDelay   time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "5000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/notes-api.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Events: EventsConfig{
			Topic:    getEnv("EVENTS_TOPIC", "NOTE_EVENTS"),
			NatsURL:  getEnv("NATS_URL", ""),
			RedisURL: getEnv("REDIS_URL", ""),
		},
		Client: ClientConfig{
			APIURL:         getEnv("NOTES_API_URL", "http://localhost:5000"),
			LogFilePath:    getEnv("CLIENT_LOG_FILE_PATH", "logs/notes-client.log"),
			RequestTimeout: getEnvAsDuration("CLIENT_REQUEST_TIMEOUT", 10*time.Second),
			RemovalDelay:   getEnvAsDuration("CLIENT_REMOVAL_DELAY", 300*time.Millisecond),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) UsesMemoryStore() bool {
	return c.Database.Connection == ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
