package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Validation ValidationConfig
}

type AppConfig struct {
	Port               string `validate:"required"`
	BaseURL            string
	Environment        string
	LogFilePath        string `validate:"required"`
	AuditLogPath       string `validate:"required"`
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string `validate:"required"`
	RequireAuth        bool
}

type DatabaseConfig struct {
	Connection string `validate:"required"`
}

type ValidationConfig struct {
	// Domains this deployment validates; each gets the default check set.
	Domains []string `validate:"min=1"`

	// External log-validation service used by the utility-report mode.
	ServiceURL     string
	ServiceTimeout int // seconds

	// Correlation store TTL in seconds.
	CorrelationTTL int

	// Watermill topic for report-generated events.
	ReportTopic string `validate:"required"`

	// Optional rule toggles, off by default.
	EnforceGPSPrecision         bool
	EnforceBreakupTitles        bool
	EnforceUniqueFulfillmentIDs bool
	EnforceParentStopLinkage    bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	cfg := &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			AuditLogPath:       getEnv("AUDIT_LOG_PATH", "logs/audit.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			RequireAuth:        getEnvAsBool("AUTH_REQUIRED", false),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Validation: ValidationConfig{
			Domains:        splitList(getEnv("VALIDATION_DOMAINS", "ONDC:TRV11")),
			ServiceURL:     getEnv("VALIDATION_SERVICE_URL", ""),
			ServiceTimeout: getEnvAsInt("VALIDATION_SERVICE_TIMEOUT", 30),
			CorrelationTTL: getEnvAsInt("CORRELATION_TTL", 3600),
			ReportTopic:    getEnv("REPORT_TOPIC_NAME", "REPORT_GENERATED"),

			EnforceGPSPrecision:         getEnvAsBool("RULE_GPS_PRECISION", false),
			EnforceBreakupTitles:        getEnvAsBool("RULE_BREAKUP_TITLES", false),
			EnforceUniqueFulfillmentIDs: getEnvAsBool("RULE_UNIQUE_FULFILLMENT_IDS", false),
			EnforceParentStopLinkage:    getEnvAsBool("RULE_PARENT_STOP_LINKAGE", false),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
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

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
