package config

import (
	"log"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Name            string
	Env             string
	Port            string
	BaseURL         string
	LogLevel        string
	LogFormat       string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		appConfig = loadAppConfig(env())
	})
	return appConfig
}

func loadAppConfig(v *viper.Viper) *AppConfig {
	appEnv := v.GetString("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
		log.Printf("Warning: APP_ENV not set, defaulting to %s", appEnv)
	}
	format := v.GetString("LOG_FORMAT")
	if format == "" {
		format = "console"
		if appEnv == "production" {
			format = "json"
		}
	}
	return &AppConfig{
		Name:            v.GetString("APP_NAME"),
		Env:             appEnv,
		Port:            v.GetString("APP_PORT"),
		BaseURL:         v.GetString("APP_URL"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFormat:       format,
		RateLimitMax:    v.GetInt("RATE_LIMIT_MAX"),
		RateLimitWindow: v.GetDuration("RATE_LIMIT_WINDOW"),
	}
}
