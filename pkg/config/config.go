package config

import (
	"fmt"
	"log"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/johnquangdev/meeting-reactions/internal/domain/entities"
)

// Store backends
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Tracker  TrackerConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// StoreConfig selects where tracker state is kept
type StoreConfig struct {
	Backend        string        `envconfig:"STORE_BACKEND" default:"memory"`
	ConnectTimeout time.Duration `envconfig:"STORE_CONNECT_TIMEOUT" default:"30s"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"meeting_reactions"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"10"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"2"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host      string `envconfig:"REDIS_HOST" default:"localhost"`
	Port      string `envconfig:"REDIS_PORT" default:"6379"`
	Password  string `envconfig:"REDIS_PASSWORD"`
	DB        int    `envconfig:"REDIS_DB" default:"0"`
	KeyPrefix string `envconfig:"REDIS_KEY_PREFIX" default:"meeting-reactions:"`
}

// StorageConfig holds export archive configuration
type StorageConfig struct {
	Enabled         bool          `envconfig:"STORAGE_ENABLED" default:"false"`
	Endpoint        string        `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string        `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string        `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string        `envconfig:"STORAGE_BUCKET" default:"meeting-reactions"`
	UseSSL          bool          `envconfig:"STORAGE_USE_SSL" default:"false"`
	URLExpiry       time.Duration `envconfig:"STORAGE_URL_EXPIRY" default:"24h"`
}

// TrackerConfig holds reaction log settings
type TrackerConfig struct {
	// Timezone of the facilitator's wall clock
	Timezone string `envconfig:"TIMEZONE" default:"Asia/Seoul"`
	// Categories is a comma separated list of emoji:Name pairs, in column order
	Categories string `envconfig:"REACTION_CATEGORIES" default:"👍:Thumbs Up,❤️:Heart,😂:Laugh,👏:Clap,😮:Surprised,🤔:Thinking,✋:Raise Hand,👎:Thumbs Down"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	return FromEnv()
}

// FromEnv reads configuration from the process environment only
func FromEnv() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadTracker reads only the reaction log settings, for tools that do not
// run the server
func LoadTracker() (*TrackerConfig, error) {
	var tracker TrackerConfig
	if err := envconfig.Process("", &tracker); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	if _, err := tracker.Location(); err != nil {
		return nil, err
	}
	if _, err := tracker.ReactionCategories(); err != nil {
		return nil, err
	}
	return &tracker, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreMemory, StoreRedis, StorePostgres:
	default:
		return fmt.Errorf("STORE_BACKEND must be one of memory, redis, postgres (got %q)", c.Store.Backend)
	}
	if _, err := c.Tracker.Location(); err != nil {
		return err
	}
	if _, err := c.Tracker.ReactionCategories(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone
func (t TrackerConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", t.Timezone, err)
	}
	return loc, nil
}

// ReactionCategories parses the configured categories; at least one is required
func (t TrackerConfig) ReactionCategories() ([]entities.Category, error) {
	categories, err := entities.ParseCategories(t.Categories)
	if err != nil {
		return nil, fmt.Errorf("invalid REACTION_CATEGORIES: %w", err)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("REACTION_CATEGORIES is required")
	}
	return categories, nil
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

// IsProduction reports whether the server runs in production
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
