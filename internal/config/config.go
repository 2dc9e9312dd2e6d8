package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Backend выбирает реализацию хранилищ.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config — конфигурация сервиса из переменных окружения.
type Config struct {
	Port           string
	StorageBackend string
	LogLevel       string
	DB             DBConfig
}

// DBConfig — параметры подключения к PostgreSQL.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN возвращает строку подключения к PostgreSQL.
func (d DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load читает конфигурацию из окружения (файл .env подхватывается, если есть).
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	backend := getEnv("STORAGE_BACKEND", BackendMemory)
	if backend != BackendMemory && backend != BackendPostgres {
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q: must be %q or %q", backend, BackendMemory, BackendPostgres)
	}

	cfg := &Config{
		Port:           getEnv("SERVER_PORT", "8080"),
		StorageBackend: backend,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "filmorate"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
