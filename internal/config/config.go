package config

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/fieldcrypto"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port        string `yaml:"port" env:"PORT"`
		Mode        string `yaml:"mode" env:"NODE_ENV"`
		FrontendURL string `yaml:"frontend_url" env:"FRONTEND_URL"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
	} `yaml:"redis"`

	JWT struct {
		Secret    string `yaml:"secret" env:"JWT_SECRET"`
		ExpiresIn string `yaml:"expires_in" env:"JWT_EXPIRES_IN"`
		Issuer    string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	// Cipher holds the mandatory AES key for PII field encryption.
	Cipher struct {
		// Key is 64 hex characters decoding to exactly 32 bytes.
		Key string `yaml:"key" env:"CIPHER_KEY"`
	} `yaml:"cipher"`

	RateLimit struct {
		LoginWindow    string `yaml:"login_window" env:"RATE_LIMIT_LOGIN_WINDOW"`
		LoginMax       int    `yaml:"login_max" env:"RATE_LIMIT_LOGIN_MAX"`
		CheckInWindow  string `yaml:"checkin_window" env:"RATE_LIMIT_CHECKIN_WINDOW"`
		CheckInMax     int    `yaml:"checkin_max" env:"RATE_LIMIT_CHECKIN_MAX"`
	} `yaml:"rate_limit"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// .env is optional; real deployments set variables directly
	_ = godotenv.Load()

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.FrontendURL = "http://localhost:3000"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "academy"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.Redis.Addr = "localhost:6379"
	config.Redis.DB = 0

	config.JWT.ExpiresIn = "24h"
	config.JWT.Issuer = "academy-api"

	config.RateLimit.LoginWindow = "15m"
	config.RateLimit.LoginMax = 10
	config.RateLimit.CheckInWindow = "1m"
	config.RateLimit.CheckInMax = 6

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig fails fast on configuration the process cannot run without
func validateConfig(config *Config) error {
	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if config.Cipher.Key == "" {
		return fmt.Errorf("CIPHER_KEY is required")
	}
	key, err := hex.DecodeString(config.Cipher.Key)
	if err != nil {
		return fmt.Errorf("CIPHER_KEY must be hex encoded: %w", err)
	}
	if len(key) != fieldcrypto.KeySize {
		return fmt.Errorf("CIPHER_KEY must decode to exactly %d bytes, got %d", fieldcrypto.KeySize, len(key))
	}

	if config.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	return nil
}

// CipherKey returns the decoded 32-byte field encryption key. validateConfig
// has already guaranteed the decode succeeds.
func (c *Config) CipherKey() []byte {
	key, _ := hex.DecodeString(c.Cipher.Key)
	return key
}

// GetPostgresConnectionString builds the pgx connection string
func (c *Config) GetPostgresConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}
