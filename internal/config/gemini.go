package config

import (
	"sync"

	"github.com/spf13/viper"
)

type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		geminiConfig = loadGeminiConfig(env())
	})
	return geminiConfig
}

func loadGeminiConfig(v *viper.Viper) *GeminiConfig {
	return &GeminiConfig{
		APIKey:      firstNonEmpty(v, "GEMINI_API_KEY", "API_KEY", "VITE_API_KEY"),
		Model:       v.GetString("GEMINI_MODEL"),
		Temperature: float32(v.GetFloat64("GEMINI_TEMPERATURE")),
	}
}
