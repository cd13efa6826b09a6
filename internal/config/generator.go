package config

import (
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

// GeneratorConfig selects the backend and its call policy. Zero retries and zero
// timeout mean a call runs once and is bounded only by the caller's context.
type GeneratorConfig struct {
	Provider   string
	MaxRetries int
	Timeout    time.Duration
}

var (
	generatorConfig *GeneratorConfig
	generatorOnce   sync.Once
)

func LoadGeneratorConfig() *GeneratorConfig {
	generatorOnce.Do(func() {
		generatorConfig = loadGeneratorConfig(env())
	})
	return generatorConfig
}

func loadGeneratorConfig(v *viper.Viper) *GeneratorConfig {
	provider := strings.ToLower(strings.TrimSpace(v.GetString("GENERATOR_PROVIDER")))
	if provider != ProviderOpenRouter {
		provider = ProviderGemini
	}
	retries := v.GetInt("GENERATOR_MAX_RETRIES")
	if retries < 0 {
		retries = 0
	}
	return &GeneratorConfig{
		Provider:   provider,
		MaxRetries: retries,
		Timeout:    v.GetDuration("GENERATOR_TIMEOUT"),
	}
}
