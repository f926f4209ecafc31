package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	JWT       JWTConfig
	Storage   StorageConfig
	LiveKit   LiveKitConfig
	Groq      GroqConfig
	Assembly  AssemblyAIConfig
	Voice     VoiceWebhookConfig
	Assistant AssistantConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Backend     string // "postgres" or "mongo"
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// MongoConfig holds MongoDB configuration, used when Database.Backend is "mongo"
type MongoConfig struct {
	URI         string
	Database    string
	MaxPoolSize int
	MinPoolSize int
	MaxIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// KafkaConfig holds Kafka configuration. Empty Brokers disables the alert sink.
type KafkaConfig struct {
	Brokers    []string
	AlertTopic string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret string
	AccessExpiry time.Duration
	Issuer       string
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
	PublicURL       string
}

// LiveKitConfig holds LiveKit configuration
type LiveKitConfig struct {
	URL              string
	APIKey           string
	APISecret        string
	UseMock          bool
	EmptyTimeout     int32
	DepartureTimeout int32
}

// GroqConfig holds Groq LLM configuration
type GroqConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// AssemblyAIConfig holds AssemblyAI configuration
type AssemblyAIConfig struct {
	APIKey       string
	LanguageCode string
}

// VoiceWebhookConfig holds the shared secret for the external voice agent webhook
type VoiceWebhookConfig struct {
	Secret string
}

// AssistantConfig controls the voice command pipeline. Loaded with envconfig
// from ASSISTANT_* variables.
type AssistantConfig struct {
	IntentProfile         string        `envconfig:"INTENT_PROFILE" default:"full"`
	WritePolicy           string        `envconfig:"WRITE_POLICY" default:"at_most_once"`
	RetryMaxElapsed       time.Duration `envconfig:"RETRY_MAX_ELAPSED" default:"10s"`
	RetryInitialInterval  time.Duration `envconfig:"RETRY_INITIAL_INTERVAL" default:"500ms"`
	ClassificationTimeout time.Duration `envconfig:"CLASSIFICATION_TIMEOUT" default:"15s"`
	DefaultDoctorID       string        `envconfig:"DEFAULT_DOCTOR_ID" default:"dr-demo-id"`
	Temperature           float64       `envconfig:"TEMPERATURE" default:"0"`
	MaxTokens             int           `envconfig:"MAX_TOKENS" default:"512"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  getEnvAsSlice("ALLOWED_ORIGINS", "http://localhost:3000"),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Backend:     getEnv("STORE_BACKEND", "postgres"),
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "telehealth"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Mongo: MongoConfig{
			URI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:    getEnv("MONGO_DATABASE", "telehealth"),
			MaxPoolSize: getEnvAsInt("MONGO_MAX_POOL_SIZE", 20),
			MinPoolSize: getEnvAsInt("MONGO_MIN_POOL_SIZE", 2),
			MaxIdleTime: getEnvAsDuration("MONGO_MAX_IDLE_TIME", "5m"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers:    getEnvAsSlice("KAFKA_BROKERS", ""),
			AlertTopic: getEnv("KAFKA_ALERT_TOPIC", "emergency-alerts"),
		},
		JWT: JWTConfig{
			AccessSecret: getEnv("JWT_ACCESS_SECRET", ""),
			AccessExpiry: getEnvAsDuration("JWT_ACCESS_EXPIRY", "15m"),
			Issuer:       getEnv("JWT_ISSUER", "telehealth-assistant"),
		},
		Storage: StorageConfig{
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "telehealth-transcripts"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
			PublicURL:       getEnv("STORAGE_PUBLIC_URL", ""),
		},
		LiveKit: LiveKitConfig{
			URL:              getEnv("LIVEKIT_URL", "http://localhost:7880"),
			APIKey:           getEnv("LIVEKIT_API_KEY", ""),
			APISecret:        getEnv("LIVEKIT_API_SECRET", ""),
			UseMock:          getEnvAsBool("LIVEKIT_USE_MOCK", true),
			EmptyTimeout:     int32(getEnvAsInt("LIVEKIT_EMPTY_TIMEOUT", 600)),
			DepartureTimeout: int32(getEnvAsInt("LIVEKIT_DEPARTURE_TIMEOUT", 60)),
		},
		Groq: GroqConfig{
			APIKey:  getEnv("GROQ_API_KEY", ""),
			BaseURL: getEnv("GROQ_API_URL", "https://api.groq.com"),
			Model:   getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		},
		Assembly: AssemblyAIConfig{
			APIKey:       getEnv("ASSEMBLYAI_API_KEY", ""),
			LanguageCode: getEnv("ASSEMBLYAI_LANGUAGE", "en"),
		},
		Voice: VoiceWebhookConfig{
			Secret: getEnv("VOICE_WEBHOOK_SECRET", ""),
		},
	}

	if err := envconfig.Process("ASSISTANT", &config.Assistant); err != nil {
		return nil, fmt.Errorf("failed to load assistant config: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if c.Groq.APIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required")
	}
	switch c.Database.Backend {
	case "postgres", "mongo":
	default:
		return fmt.Errorf("STORE_BACKEND must be postgres or mongo, got %q", c.Database.Backend)
	}
	switch c.Assistant.IntentProfile {
	case "full", "compact":
	default:
		return fmt.Errorf("ASSISTANT_INTENT_PROFILE must be full or compact, got %q", c.Assistant.IntentProfile)
	}
	switch c.Assistant.WritePolicy {
	case "at_most_once", "retry":
	default:
		return fmt.Errorf("ASSISTANT_WRITE_POLICY must be at_most_once or retry, got %q", c.Assistant.WritePolicy)
	}
	if c.Assistant.WritePolicy == "retry" && c.Assistant.RetryMaxElapsed <= 0 {
		return fmt.Errorf("ASSISTANT_RETRY_MAX_ELAPSED must be positive with the retry write policy")
	}
	if !c.LiveKit.UseMock && (c.LiveKit.APIKey == "" || c.LiveKit.APISecret == "") {
		return fmt.Errorf("LIVEKIT_API_KEY and LIVEKIT_API_SECRET are required unless LIVEKIT_USE_MOCK is set")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

// getEnvAsSlice splits a comma separated value, dropping blanks
func getEnvAsSlice(key string, defaultValue string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, defaultValue), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
