package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/fadilmartias/mock-interview/internal/config"
	"github.com/fadilmartias/mock-interview/internal/logger"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type GeminiService struct {
	credentials    CredentialSource
	model          string
	temperature    float32
	baseURL        string
	MaxRetries     int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	RequestTimeout time.Duration
	logger         *zap.Logger

	mu        sync.Mutex
	client    *genai.Client
	clientKey string
}

type GeminiOption func(*GeminiService)

// WithGeminiBaseURL points the client at a different endpoint.
func WithGeminiBaseURL(url string) GeminiOption {
	return func(s *GeminiService) {
		s.baseURL = url
	}
}

func NewGeminiService(cfg *config.GeminiConfig, genCfg *config.GeneratorConfig, credentials CredentialSource, log *zap.Logger, opts ...GeminiOption) *GeminiService {
	s := &GeminiService{
		credentials:    credentials,
		model:          cfg.Model,
		temperature:    cfg.Temperature,
		MaxRetries:     genCfg.MaxRetries,
		BaseDelay:      time.Second,
		MaxDelay:       90 * time.Second,
		RequestTimeout: genCfg.Timeout,
		logger:         logger.OrNop(log),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *GeminiService) Name() string {
	return config.ProviderGemini
}

// clientFor returns a client bound to the current key, rebuilding it whenever
// the key changes.
func (s *GeminiService) clientFor(ctx context.Context) (*genai.Client, error) {
	key, err := s.credentials.APIKey(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil && s.clientKey == key {
		return s.client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      key,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: s.baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	s.client = client
	s.clientKey = key
	return client, nil
}

func (s *GeminiService) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	client, err := s.clientFor(ctx)
	if err != nil {
		return "", err
	}

	callCtx := ctx
	if s.RequestTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.RequestTimeout)
		defer cancel()
	}

	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
		Temperature:      genai.Ptr(s.temperature),
	}

	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			s.logger.Info("retrying gemini call",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", s.MaxRetries),
				zap.Duration("delay", delay),
			)

			select {
			case <-time.After(delay):
			case <-callCtx.Done():
				return "", fmt.Errorf("context done during retry: %w", callCtx.Err())
			}
		}

		result, err := client.Models.GenerateContent(callCtx, s.model, genai.Text(prompt), genConfig)
		if err == nil {
			if err := s.validateGenerateResponse(result); err != nil {
				return "", fmt.Errorf("invalid response: %w", err)
			}
			text := result.Text()
			if strings.TrimSpace(text) == "" {
				return "", fmt.Errorf("no response from AI")
			}
			return text, nil
		}

		lastErr = err
		if !s.isRetryableError(err) {
			return "", fmt.Errorf("generate content failed: %w", err)
		}
		s.logger.Warn("retryable gemini error", zap.Int("attempt", attempt+1), zap.Error(err))
	}

	if s.MaxRetries == 0 {
		return "", fmt.Errorf("generate content failed: %w", lastErr)
	}
	return "", fmt.Errorf("max retries (%d) exceeded for GenerateContent: %w", s.MaxRetries, lastErr)
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))

	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}

	jitter := time.Duration(float64(delay) * 0.25)
	delay = delay - jitter/2 + time.Duration(float64(jitter)*0.5)

	return delay
}

func (s *GeminiService) isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429, 500, 502, 503, 504:
			return true
		default:
			return false
		}
	}

	errMsg := err.Error()
	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF")
}

func (s *GeminiService) validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}

	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}

	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}

	return nil
}
