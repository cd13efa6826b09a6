package config

import (
	"sync"
	"time"

	"github.com/spf13/viper"
)

type SessionConfig struct {
	MaxSessions int
	TTL         time.Duration
}

var (
	sessionConfig *SessionConfig
	sessionOnce   sync.Once
)

func LoadSessionConfig() *SessionConfig {
	sessionOnce.Do(func() {
		sessionConfig = loadSessionConfig(env())
	})
	return sessionConfig
}

func loadSessionConfig(v *viper.Viper) *SessionConfig {
	max := v.GetInt("SESSION_MAX")
	if max <= 0 {
		max = 1000
	}
	return &SessionConfig{
		MaxSessions: max,
		TTL:         v.GetDuration("SESSION_TTL"),
	}
}
