package service

import (
	"github.com/fadilmartias/mock-interview/internal/config"
	"go.uber.org/zap"
)

// NewGeneratorFromConfig wires the configured backend with its credential
// service. The same CredentialService is returned so presentation layers can
// configure or clear the key at runtime.
func NewGeneratorFromConfig(repo CredentialRepositoryInterface, log *zap.Logger) (*GeneratorService, *CredentialService) {
	genCfg := config.LoadGeneratorConfig()

	var backend StructuredBackend
	var creds *CredentialService
	switch genCfg.Provider {
	case config.ProviderOpenRouter:
		orCfg := config.LoadOpenRouterConfig()
		creds = NewCredentialService(config.ProviderOpenRouter, orCfg.APIKey, repo)
		backend = NewOpenRouterService(orCfg, genCfg, creds, log)
	default:
		gemCfg := config.LoadGeminiConfig()
		creds = NewCredentialService(config.ProviderGemini, gemCfg.APIKey, repo)
		backend = NewGeminiService(gemCfg, genCfg, creds, log)
	}
	return NewGeneratorService(backend, log), creds
}
