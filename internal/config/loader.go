package config

import (
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	vars     *viper.Viper
	varsOnce sync.Once
)

// env returns the process-wide viper instance reading from the environment.
// main is expected to have loaded .env with godotenv before the first call.
func env() *viper.Viper {
	varsOnce.Do(func() {
		vars = viper.New()
		vars.AutomaticEnv()
		setDefaults(vars)
	})
	return vars
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "mock-interview")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("GEMINI_TEMPERATURE", 0.7)
	v.SetDefault("OPENROUTER_MODEL", "openai/gpt-4o-mini")
	v.SetDefault("OPENROUTER_URL", "https://openrouter.ai/api/v1/chat/completions")
	v.SetDefault("GENERATOR_PROVIDER", "gemini")
	v.SetDefault("GENERATOR_MAX_RETRIES", 0)
	v.SetDefault("GENERATOR_TIMEOUT", time.Duration(0))
	v.SetDefault("SESSION_MAX", 1000)
	v.SetDefault("SESSION_TTL", 2*time.Hour)
	v.SetDefault("RATE_LIMIT_MAX", 50)
	v.SetDefault("RATE_LIMIT_WINDOW", time.Minute)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
}

func firstNonEmpty(v *viper.Viper, keys ...string) string {
	for _, k := range keys {
		if s := strings.TrimSpace(v.GetString(k)); s != "" {
			return s
		}
	}
	return ""
}
