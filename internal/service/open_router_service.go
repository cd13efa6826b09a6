package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/mock-interview/internal/config"
	"github.com/fadilmartias/mock-interview/internal/logger"
	"github.com/go-resty/resty/v2"
	"github.com/kaptinlin/jsonrepair"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// OpenRouterService talks to an OpenAI-compatible chat completion endpoint.
// The requested shape travels inside the prompt as a JSON Schema document.
type OpenRouterService struct {
	credentials CredentialSource
	model       string
	url         string
	client      *resty.Client
	logger      *zap.Logger
}

func NewOpenRouterService(cfg *config.OpenRouterConfig, genCfg *config.GeneratorConfig, credentials CredentialSource, log *zap.Logger) *OpenRouterService {
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetRetryCount(genCfg.MaxRetries).
		SetRetryWaitTime(time.Second).
		SetRetryMaxWaitTime(90 * time.Second)
	if genCfg.Timeout > 0 {
		client.SetTimeout(genCfg.Timeout)
	}
	return &OpenRouterService{
		credentials: credentials,
		model:       cfg.Model,
		url:         cfg.URL,
		client:      client,
		logger:      logger.OrNop(log),
	}
}

func (s *OpenRouterService) Name() string {
	return config.ProviderOpenRouter
}

func (s *OpenRouterService) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	key, err := s.credentials.APIKey(ctx)
	if err != nil {
		return "", err
	}

	schemaDoc, err := json.Marshal(toJSONSchema(schema))
	if err != nil {
		return "", fmt.Errorf("failed to encode schema: %w", err)
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(key).
		SetBody(map[string]any{
			"model":       s.model,
			"temperature": 0.7,
			"messages": []map[string]string{
				{"role": "system", "content": "You are an interview assistant. Reply with a single JSON value and nothing else."},
				{"role": "user", "content": prompt + "\nReturn your answer STRICTLY as JSON matching this JSON Schema:\n" + string(schemaDoc)},
			},
		}).
		Post(s.url)
	if err != nil {
		return "", fmt.Errorf("openrouter request failed: %w", err)
	}

	body := resp.String()
	if resp.IsError() {
		msg := gjson.Get(body, "error.message").String()
		if msg == "" {
			msg = resp.Status()
		}
		return "", fmt.Errorf("openrouter returned %d: %s", resp.StatusCode(), msg)
	}

	content := gjson.Get(body, "choices.0.message.content").String()
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("no response from LLM")
	}
	return s.normalizeJSON(content)
}

// normalizeJSON strips markdown fences and repairs near-JSON content. Whatever
// comes out is still validated against the schema by the caller.
func (s *OpenRouterService) normalizeJSON(content string) (string, error) {
	text := strings.TrimSpace(content)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}
	if json.Valid([]byte(text)) {
		return text, nil
	}

	repaired, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return "", fmt.Errorf("malformed JSON from LLM: %w", err)
	}
	s.logger.Warn("repaired malformed JSON from openrouter", zap.Int("length", len(text)))
	return repaired, nil
}
