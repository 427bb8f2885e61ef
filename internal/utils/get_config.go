package utils

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server
	AppPort      string `yaml:"APP_PORT"`
	RateLimitMax string `yaml:"RATE_LIMIT_MAX"`

	// Database configuration
	DBType         string `yaml:"DB_TYPE"`
	DBUser         string `yaml:"DB_USER"`
	DBName         string `yaml:"DB_NAME"`
	DBPassword     string `yaml:"DB_PASSWORD"`
	DBPort         string `yaml:"DB_PORT"`
	DBHost         string `yaml:"DB_HOST"`
	DBMaxOpenConns string `yaml:"DB_MAX_OPEN_CONNS"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`
	JWTIssuer string `yaml:"JWT_ISSUER"`

	// Logging
	LogLevel  string `yaml:"LOG_LEVEL"`
	LogFormat string `yaml:"LOG_FORMAT"`
}

var defaults = Config{
	AppPort:        "8000",
	RateLimitMax:   "20",
	DBType:         "postgres",
	DBPort:         "5432",
	DBHost:         "localhost",
	DBMaxOpenConns: "10",
	JWTIssuer:      "FOODGRAM",
	LogLevel:       "info",
	LogFormat:      "json",
}

var config = defaults

// LoadConfig reads .env (if present) and the yaml file at path (if present).
// Environment variables win over the file, the file wins over defaults.
func LoadConfig(path string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg := defaults
	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("read %s: %w", path, err)
	}

	applyEnv(&cfg)
	config = cfg
	return nil
}

// applyEnv overrides every field whose yaml key is set in the environment.
func applyEnv(cfg *Config) {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		key := t.Field(i).Tag.Get("yaml")
		if val, ok := os.LookupEnv(key); ok {
			v.Field(i).SetString(val)
		}
	}
}

func GetConfig(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "RATE_LIMIT_MAX":
		return config.RateLimitMax
	case "DB_TYPE":
		return config.DBType
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_MAX_OPEN_CONNS":
		return config.DBMaxOpenConns
	case "JWT_SECRET":
		return config.JWTSecret
	case "JWT_ISSUER":
		return config.JWTIssuer
	case "LOG_LEVEL":
		return config.LogLevel
	case "LOG_FORMAT":
		return config.LogFormat
	default:
		return ""
	}
}

func GetConfigInt(key string, fallback int) int {
	n, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		return fallback
	}
	return n
}
