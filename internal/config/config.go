package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server ServerConfig `json:"server"`

	// MySQL configuration (primary relational store)
	Database DatabaseConfig `json:"database"`

	// MongoDB configuration (GridFS image storage)
	MongoDB MongoConfig `json:"mongodb"`

	// Notification worker configuration
	Notification NotificationConfig `json:"notification"`

	// Email configuration (subscriber broadcasts)
	Email EmailConfig `json:"email"`

	// Blog domain configuration
	Blog BlogConfig `json:"blog"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         string `json:"port"`
	Host         string `json:"host"`
	ReadTimeout  int    `json:"read_timeout"`
	WriteTimeout int    `json:"write_timeout"`
	Environment  string `json:"environment"` // development, staging, production

	// PublicBaseURL is prepended to media paths when building
	// externally reachable upload URLs.
	PublicBaseURL string `json:"public_base_url"`
}

// DatabaseConfig contains MySQL connection configuration
type DatabaseConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

// MongoConfig contains MongoDB connection configuration
type MongoConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`
}

// NotificationConfig contains notification system configuration
type NotificationConfig struct {
	Workers           int  `json:"workers"`             // Number of worker goroutines
	ChannelBufferSize int  `json:"channel_buffer_size"` // Event channel buffer size
	Enabled           bool `json:"enabled"`
}

// EmailConfig contains SMTP configuration for subscriber broadcasts
type EmailConfig struct {
	SMTPHost  string `json:"smtp_host"`
	SMTPPort  int    `json:"smtp_port"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FromEmail string `json:"from_email"`
	FromName  string `json:"from_name"`
	Enabled   bool   `json:"enabled"`
}

// BlogConfig contains blog domain configuration
type BlogConfig struct {
	DraftRetentionDays int `json:"draft_retention_days"`
}

// Load builds a Config from environment variables, falling back to
// development defaults. godotenv.Load runs before this in main.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:          getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			Port:          getEnvOrDefault("SERVER_PORT", "8080"),
			ReadTimeout:   getEnvIntOrDefault("SERVER_READ_TIMEOUT", 15),
			WriteTimeout:  getEnvIntOrDefault("SERVER_WRITE_TIMEOUT", 15),
			Environment:   getEnvOrDefault("ENVIRONMENT", "development"),
			PublicBaseURL: getEnvOrDefault("PUBLIC_BASE_URL", "http://localhost:8080"),
		},
		Database: DatabaseConfig{
			Host:         getEnvOrDefault("DB_HOST", "localhost"),
			Port:         getEnvOrDefault("DB_PORT", "3306"),
			Username:     getEnvOrDefault("DB_USER", "inkwell"),
			Password:     getEnvOrDefault("DB_PASSWORD", ""),
			DatabaseName: getEnvOrDefault("DB_NAME", "inkwell_db"),
			MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
		},
		MongoDB: MongoConfig{
			Host:     getEnvOrDefault("MONGO_HOST", "localhost"),
			Port:     getEnvOrDefault("MONGO_PORT", "27017"),
			Username: getEnvOrDefault("MONGO_USER", ""),
			Password: getEnvOrDefault("MONGO_PASSWORD", ""),
			Database: getEnvOrDefault("MONGO_DB", "inkwell_media"),
		},
		Notification: NotificationConfig{
			Workers:           getEnvIntOrDefault("NOTIF_WORKERS", 5),
			ChannelBufferSize: getEnvIntOrDefault("NOTIF_BUFFER_SIZE", 1000),
			Enabled:           getEnvOrDefault("NOTIF_ENABLED", "true") == "true",
		},
		Email: EmailConfig{
			SMTPHost:  getEnvOrDefault("SMTP_HOST", ""),
			SMTPPort:  getEnvIntOrDefault("SMTP_PORT", 587),
			Username:  getEnvOrDefault("SMTP_USERNAME", ""),
			Password:  getEnvOrDefault("SMTP_PASSWORD", ""),
			FromEmail: getEnvOrDefault("FROM_EMAIL", "no-reply@inkwell.local"),
			FromName:  getEnvOrDefault("FROM_NAME", "Inkwell"),
			Enabled:   getEnvOrDefault("EMAIL_ENABLED", "false") == "true",
		},
		Blog: BlogConfig{
			DraftRetentionDays: getEnvIntOrDefault("DRAFT_RETENTION_DAYS", 7),
		},
	}
}

// DSN builds the MySQL connection string from the database section.
func (cfg *Config) DSN() string {
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "3306"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

// MongoURI builds the MongoDB connection URI.
func (cfg *Config) MongoURI() string {
	if cfg.MongoDB.Username != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s",
			cfg.MongoDB.Username, cfg.MongoDB.Password,
			cfg.MongoDB.Host, cfg.MongoDB.Port)
	}
	return fmt.Sprintf("mongodb://%s:%s", cfg.MongoDB.Host, cfg.MongoDB.Port)
}

// DraftRetention returns the draft expiry window.
func (cfg *Config) DraftRetention() int {
	if cfg.Blog.DraftRetentionDays <= 0 {
		return 7
	}
	return cfg.Blog.DraftRetentionDays
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
