package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/PranavVetkar/Prototype-MarketingAI/internal/model"
)

// Generator backends
const (
	GeneratorGemini = "gemini"
	GeneratorOpenAI = "openai"
	GeneratorMock   = "mock"
)

// ServerConfig configures the demo API server
type ServerConfig struct {
	Host     string
	Port     int
	LogLevel string

	Generator    string
	Model        string
	Temperature  float64
	GeminiAPIKey string
	OpenAIAPIKey string
	OpenAIURL    string

	AdminEmail    string
	AdminPassword string
	AdminUID      string
}

// LoadServer reads the server config from the environment
func LoadServer() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Host:          envStr("HOST", "127.0.0.1"),
		Port:          envInt("PORT", 8000),
		LogLevel:      envStr("LOG_LEVEL", "info"),
		Generator:     envStr("GENERATOR", GeneratorGemini),
		Temperature:   envFloat("TEMPERATURE", 0.8),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIURL:     os.Getenv("OPENAI_BASE_URL"),
		AdminEmail:    envStr("ADMIN_EMAIL", model.DemoEmail),
		AdminPassword: envStr("ADMIN_PASSWORD", model.DemoPassword),
		AdminUID:      envStr("ADMIN_UID", model.DemoUID),
	}
	cfg.Model = envStr("MODEL", defaultModel(cfg.Generator))

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Addr returns the listen address
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("TEMPERATURE must be between 0 and 2, got %f", c.Temperature)
	}
	switch c.Generator {
	case GeneratorGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY not set")
		}
	case GeneratorOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY not set")
		}
	case GeneratorMock:
	default:
		return fmt.Errorf("GENERATOR must be gemini, openai or mock, got %q", c.Generator)
	}
	if c.AdminEmail == "" || c.AdminPassword == "" || c.AdminUID == "" {
		return fmt.Errorf("ADMIN_EMAIL, ADMIN_PASSWORD and ADMIN_UID must not be empty")
	}
	return nil
}

func defaultModel(generator string) string {
	switch generator {
	case GeneratorOpenAI:
		return "gpt-4o-mini"
	case GeneratorMock:
		return "mock"
	default:
		return "gemini-2.5-flash"
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
