package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. NEWSCLASSIFIER_SERVER_PORT.
const EnvPrefix = "NEWSCLASSIFIER"

// Supported inference backends
const (
	BackendONNX   = "onnx"
	BackendRemote = "remote"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Model    ModelConfig    `mapstructure:"model"`
	Samples  SamplesConfig  `mapstructure:"samples"`
	Feed     FeedConfig     `mapstructure:"feed"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
	// MaxUploadBytes caps multipart uploads
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
}

// ModelConfig describes where the pretrained checkpoint lives and how to run it
type ModelConfig struct {
	CheckpointDir   string        `mapstructure:"checkpoint_dir"`
	Backend         string        `mapstructure:"backend"`
	ONNXLibraryPath string        `mapstructure:"onnx_library_path"`
	RemoteURL       string        `mapstructure:"remote_url"`
	RemoteTimeout   time.Duration `mapstructure:"remote_timeout"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	WordBudget      int           `mapstructure:"word_budget"`
}

// SamplesConfig holds the sample article directory
type SamplesConfig struct {
	Dir string `mapstructure:"dir"`
}

// FeedConfig holds RSS/Atom feed fetching configuration
type FeedConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	MaxItems int           `mapstructure:"max_items"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DSN returns the PostgreSQL connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Addr returns host:port for Redis
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from defaults, an optional config file and the environment.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that cannot be defaulted away
func (c *Config) Validate() error {
	switch c.Model.Backend {
	case BackendONNX, BackendRemote:
	default:
		return fmt.Errorf("invalid model.backend %q: must be %q or %q", c.Model.Backend, BackendONNX, BackendRemote)
	}
	if c.Model.Backend == BackendRemote && c.Model.RemoteURL == "" {
		return errors.New("model.remote_url is required for the remote backend")
	}
	if c.Model.WordBudget < 1 {
		return fmt.Errorf("model.word_budget must be positive, got %d", c.Model.WordBudget)
	}
	if c.Model.MaxTokens < 2 {
		return fmt.Errorf("model.max_tokens must be at least 2, got %d", c.Model.MaxTokens)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.max_upload_bytes", 20<<20)

	// Model
	v.SetDefault("model.checkpoint_dir", "./checkpoint")
	v.SetDefault("model.backend", BackendONNX)
	v.SetDefault("model.onnx_library_path", "")
	v.SetDefault("model.remote_url", "")
	v.SetDefault("model.remote_timeout", 30*time.Second)
	v.SetDefault("model.max_tokens", 512)
	v.SetDefault("model.word_budget", 1000)

	// Samples
	v.SetDefault("samples.dir", "./news")

	// Feed
	v.SetDefault("feed.timeout", 15*time.Second)
	v.SetDefault("feed.max_items", 10)

	// Database
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "newsclassifier")
	v.SetDefault("database.password", "newsclassifier")
	v.SetDefault("database.dbname", "newsclassifier")
	v.SetDefault("database.sslmode", "disable")

	// Redis
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 24*time.Hour)

	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
