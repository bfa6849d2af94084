package config

import (
	"fmt"
	"os"
)

// TokenAlgorithm is the only accepted JWT signing algorithm.
const TokenAlgorithm = "HS256"

type Config struct {
	Port string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	// SecretKey signs access tokens. It must be supplied externally and is
	// never logged.
	SecretKey string

	// RedisAddr and KafkaBrokers are optional; empty disables the list cache
	// and event publishing respectively.
	RedisAddr    string
	KafkaBrokers string

	SeedUsername string
	SeedPassword string
	SeedEmail    string
	SeedFullName string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:         getenv("PORT", "8080"),
		DBHost:       getenv("DB_HOST", "127.0.0.1"),
		DBPort:       getenv("DB_PORT", "3306"),
		DBUser:       getenv("DB_USER", "root"),
		DBPass:       os.Getenv("DB_PASS"),
		DBName:       getenv("DB_NAME", "todolist"),
		SecretKey:    os.Getenv("SECRET_KEY"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		KafkaBrokers: os.Getenv("KAFKA_BROKERS"),
		SeedUsername: getenv("SEED_USERNAME", "musah"),
		SeedPassword: os.Getenv("SEED_PASSWORD"),
		SeedEmail:    getenv("SEED_EMAIL", "amusahcongo@gmail.com"),
		SeedFullName: getenv("SEED_FULL_NAME", "congo musah"),
	}

	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY must be set")
	}
	if alg := getenv("JWT_ALGORITHM", TokenAlgorithm); alg != TokenAlgorithm {
		return nil, fmt.Errorf("unsupported JWT_ALGORITHM %q, only %s is supported", alg, TokenAlgorithm)
	}
	if cfg.SeedPassword == "" {
		return nil, fmt.Errorf("SEED_PASSWORD must be set")
	}

	return cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
