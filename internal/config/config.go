// Package config は環境変数からアプリケーション設定を読み込みます。
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the server.
// It is loaded once at startup and treated as read-only afterwards.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	// Driver is either "mysql" or "sqlite".
	Driver string
	// SQLitePath is the database file used when Driver is "sqlite".
	SQLitePath string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	// InstanceConnectionName enables the Cloud SQL unix socket path when set.
	InstanceConnectionName string
	// RunMigrations enables gorm AutoMigrate at startup.
	RunMigrations bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	// CacheTTL is how long task list results stay cached.
	CacheTTL time.Duration
}

type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Load は.envを読み込んだ上で環境変数からConfigを構築します。
// 値が未設定の場合は開発用のデフォルト値を使用します。
func Load() (*Config, error) {
	// .envが無い場合はシステム環境変数のみを使用
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	accessTTL, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRATION", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION: %w", err)
	}
	refreshTTL, err := time.ParseDuration(getEnv("JWT_REFRESH_EXPIRATION", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Driver:                 getEnv("DB_DRIVER", "sqlite"),
			SQLitePath:             getEnv("SQLITE_PATH", "./todo.db"),
			Host:                   getEnv("DB_HOST", "localhost"),
			Port:                   getEnv("DB_PORT", "3306"),
			User:                   getEnv("DB_USER", ""),
			Password:               getEnv("DB_PASSWORD", ""),
			Name:                   getEnv("DB_NAME", "todo"),
			InstanceConnectionName: getEnv("INSTANCE_CONNECTION_NAME", ""),
			RunMigrations:          getEnvAsBool("RUN_MIGRATIONS", true),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			CacheTTL: cacheTTL,
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", ""),
			AccessTTL:  accessTTL,
			RefreshTTL: refreshTTL,
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
