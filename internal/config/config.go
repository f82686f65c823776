// Package config handles runtime configuration for the vault, applying
// defaults first and then overlaying values from the environment. An
// optional .env file in the working directory is loaded before the
// environment is read.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the vault.
//
// Fields:
//   - RedisHost / RedisPort / RedisPassword: account store connection.
//   - MongoURI / MongoDatabase / MongoCollection: secret record store.
//   - KeyMode: "ephemeral" (fresh random key per login) or "derived"
//     (key derived from the login password).
//   - StoreTimeout: bound on connect and per-operation store calls.
type Config struct {
	RedisHost     string
	RedisPort     int
	RedisPassword string

	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	KeyMode      string
	StoreTimeout time.Duration
}

// LoadDefaults populates Config with local development defaults.
func (c *Config) LoadDefaults() {
	c.RedisHost = "localhost"
	c.RedisPort = 6379
	c.RedisPassword = ""
	c.MongoURI = "mongodb://localhost:27017"
	c.MongoDatabase = "passvault"
	c.MongoCollection = "secrets"
	c.KeyMode = "ephemeral"
	c.StoreTimeout = 5 * time.Second
}

// LoadConfig builds a Config by applying defaults and then overlaying
// values from the environment (after loading an optional .env file).
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.parseEnv()
	return cfg
}

// RedisAddr returns the host:port address of the account store.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

func (c *Config) parseEnv() {
	c.RedisHost = getEnvOrDefault("REDIS_HOST", c.RedisHost)
	c.RedisPort = getEnvIntOrDefault("REDIS_PORT", c.RedisPort)
	c.RedisPassword = getEnvOrDefault("REDIS_PASSWORD", c.RedisPassword)

	c.MongoURI = getEnvOrDefault("MONGODB_URI", c.MongoURI)
	c.MongoDatabase = getEnvOrDefault("MONGODB_DATABASE", c.MongoDatabase)
	c.MongoCollection = getEnvOrDefault("MONGODB_COLLECTION", c.MongoCollection)

	c.KeyMode = getEnvOrDefault("VAULT_KEY_MODE", c.KeyMode)
	c.StoreTimeout = getEnvDurationOrDefault("VAULT_STORE_TIMEOUT", c.StoreTimeout)
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDurationOrDefault(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
