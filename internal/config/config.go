// Package config loads app config from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

type AppConfig struct {
	Port            string        `mapstructure:"PORT"`
	StorageDriver   string        `mapstructure:"STORAGE_DRIVER"` // mongo|memory
	MongoURI        string        `mapstructure:"MONGO_URI"`
	MongoDatabase   string        `mapstructure:"MONGO_DATABASE"`
	MongoCollection string        `mapstructure:"MONGO_COLLECTION"`
	ConnectTimeout  time.Duration `mapstructure:"MONGO_CONNECT_TIMEOUT"`
	AllowOrigins    string        `mapstructure:"CORS_ALLOW_ORIGINS"` // comma-separated, "*" for any
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	LogFormat       string        `mapstructure:"LOG_FORMAT"` // text|json
	GinMode         string        `mapstructure:"GIN_MODE"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

// Load reads .env if present (existing env vars win) and applies defaults.
func Load() (AppConfig, error) {
	_ = godotenv.Load() // load .env if present

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "5000")
	v.SetDefault("STORAGE_DRIVER", StorageMongo)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "employeeManagement1")
	v.SetDefault("MONGO_COLLECTION", "employees")
	v.SetDefault("MONGO_CONNECT_TIMEOUT", "10s")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return AppConfig{}, err
	}

	if strings.TrimSpace(cfg.Port) == "" {
		return AppConfig{}, errors.New("config: PORT must be set")
	}
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	if cfg.StorageDriver != StorageMongo && cfg.StorageDriver != StorageMemory {
		return AppConfig{}, fmt.Errorf("config: STORAGE_DRIVER must be %q or %q, got %q", StorageMongo, StorageMemory, cfg.StorageDriver)
	}
	if cfg.MongoURI == "" || cfg.MongoDatabase == "" || cfg.MongoCollection == "" {
		return AppConfig{}, errors.New("config: MONGO_URI, MONGO_DATABASE and MONGO_COLLECTION must be set")
	}
	cfg.GinMode = strings.ToLower(strings.TrimSpace(cfg.GinMode))
	switch cfg.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return AppConfig{}, fmt.Errorf("config: GIN_MODE must be %q, %q or %q, got %q", gin.DebugMode, gin.ReleaseMode, gin.TestMode, cfg.GinMode)
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return cfg, nil
}

// Origins returns the CORS origins; nil means every origin is allowed.
func (c AppConfig) Origins() []string {
	var out []string
	for _, p := range strings.Split(c.AllowOrigins, ",") {
		p = strings.TrimSpace(p)
		if p == "*" {
			return nil
		}
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
