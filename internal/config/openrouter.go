package config

import (
	"sync"

	"github.com/spf13/viper"
)

type OpenRouterConfig struct {
	APIKey string
	Model  string
	URL    string
}

var (
	openRouterConfig *OpenRouterConfig
	openRouterOnce   sync.Once
)

func LoadOpenRouterConfig() *OpenRouterConfig {
	openRouterOnce.Do(func() {
		openRouterConfig = loadOpenRouterConfig(env())
	})
	return openRouterConfig
}

func loadOpenRouterConfig(v *viper.Viper) *OpenRouterConfig {
	return &OpenRouterConfig{
		APIKey: firstNonEmpty(v, "OPENROUTER_API_KEY"),
		Model:  v.GetString("OPENROUTER_MODEL"),
		URL:    v.GetString("OPENROUTER_URL"),
	}
}
