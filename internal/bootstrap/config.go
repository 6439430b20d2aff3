// Package bootstrap wires the connection hubs, repositories, and
// use-case structs into a runnable service: a Config loaded from env
// vars, an InitServers constructor, and a Service with a blocking Run.
package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
)

// Config is the top level configuration for the core, loaded entirely
// from environment variables.
type Config struct {
	EnvName       string
	LogLevel      string
	ServerAddress string

	DBConnectionString string
	DBMigrationsPath   string

	RedisConnectionString string

	RabbitMQConnectionString string
	RabbitMQExchange         string

	ObjectStoreEndpoint  string
	ObjectStoreAccessKey string
	ObjectStoreSecretKey string
	ObjectStoreUseSSL    bool
	ContentBucket        string

	OtelServiceName string
	EnableTelemetry bool

	ShutdownTimeoutSeconds int

	// DefaultEmbedderID, when set, is the embedder CreateSpace falls back
	// to when a request omits embedderId. Unset means no
	// default is configured.
	DefaultEmbedderID *midentifier.ID
}

// LoadConfig reads Config from the process environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		EnvName:       getEnv("ENV_NAME", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),

		DBMigrationsPath: getEnv("DB_MIGRATIONS_PATH", "migrations"),

		RabbitMQExchange: getEnv("RABBITMQ_EXCHANGE", "goodmem"),

		ObjectStoreUseSSL: getEnvBool("MINIO_USE_SSL", false),
		ContentBucket:     getEnv("MINIO_BUCKET", "goodmem-content"),

		OtelServiceName: getEnv("OTEL_RESOURCE_SERVICE_NAME", "goodmem"),
		EnableTelemetry: getEnvBool("ENABLE_TELEMETRY", false),

		ShutdownTimeoutSeconds: getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 30),
	}

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DB_URL is required")
	}

	cfg.DBConnectionString = buildDBConnectionString(dbURL, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"))

	cfg.RedisConnectionString = os.Getenv("REDIS_CONNECTION_STRING")
	if cfg.RedisConnectionString == "" {
		return nil, fmt.Errorf("REDIS_CONNECTION_STRING is required")
	}

	cfg.RabbitMQConnectionString = os.Getenv("RABBITMQ_CONNECTION_STRING")
	if cfg.RabbitMQConnectionString == "" {
		return nil, fmt.Errorf("RABBITMQ_CONNECTION_STRING is required")
	}

	cfg.ObjectStoreEndpoint = os.Getenv("MINIO_ENDPOINT")
	if cfg.ObjectStoreEndpoint == "" {
		return nil, fmt.Errorf("MINIO_ENDPOINT is required")
	}

	cfg.ObjectStoreAccessKey = os.Getenv("MINIO_ACCESS_KEY")
	cfg.ObjectStoreSecretKey = os.Getenv("MINIO_SECRET_KEY")

	if raw := os.Getenv("DEFAULT_EMBEDDER_ID"); raw != "" {
		id, err := midentifier.FromHex(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing DEFAULT_EMBEDDER_ID: %w", err)
		}

		cfg.DefaultEmbedderID = &id
	}

	return cfg, nil
}

// buildDBConnectionString composes a postgres DSN from the DB_URL host
// (scheme optional) plus the separately-supplied DB_USER/DB_PASSWORD
// credentials. A DB_URL that already embeds credentials is passed
// through untouched.
func buildDBConnectionString(dbURL, user, password string) string {
	rest := strings.TrimPrefix(dbURL, "postgres://")
	rest = strings.TrimPrefix(rest, "postgresql://")

	if user == "" || strings.Contains(rest, "@") {
		return "postgres://" + rest
	}

	return fmt.Sprintf("postgres://%s:%s@%s", user, password, rest)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}

	return b
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}

	return n
}
