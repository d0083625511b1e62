package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	appLog "github.com/Arch-4ng3l/TimetableGenerator/internal/log"
	"github.com/Arch-4ng3l/TimetableGenerator/internal/timetable"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	DefaultGeminiModel = "gemini-1.5-flash"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// Config holds everything the generator needs at startup. API keys only ever
// come from the environment; the optional YAML file carries the rest.
type Config struct {
	GeminiAPIKey string `yaml:"-"`
	OpenAIAPIKey string `yaml:"-"`

	Provider    string   `yaml:"provider"`
	Model       string   `yaml:"model"`
	HTTPAddr    string   `yaml:"http_addr"`
	OutputDir   string   `yaml:"output_dir"`
	ExtractMode string   `yaml:"extract_mode"`
	CORSOrigins []string `yaml:"cors_origins"`
	LogLevel    string   `yaml:"log_level"`
}

// Error is returned for missing or invalid settings.
type Error struct {
	message string
}

func (e *Error) Error() string {
	return e.message
}

var _ error = (*Error)(nil)

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Provider:    ProviderGemini,
		HTTPAddr:    ":8000",
		OutputDir:   ".",
		ExtractMode: timetable.ModeGreedy,
		CORSOrigins: []string{"*"},
		LogLevel:    "info",
	}
}

// Load reads .env (if present), then the optional YAML file at path, then the
// process environment. Later sources win.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		appLog.Info("no .env file found")
	}

	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return &Error{message: "invalid config file " + path + ": " + err.Error()}
	}
	return nil
}

func (c *Config) applyEnv() {
	c.GeminiAPIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	c.OpenAIAPIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))

	c.Provider = getEnv("LLM_PROVIDER", c.Provider)
	c.Model = getEnv("LLM_MODEL", c.Model)
	c.HTTPAddr = getEnv("HTTP_ADDR", c.HTTPAddr)
	c.OutputDir = getEnv("OUTPUT_DIR", c.OutputDir)
	c.ExtractMode = getEnv("EXTRACT_MODE", c.ExtractMode)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.CORSOrigins = splitList(origins)
	}
}

// Normalize fills zero values with defaults and lower-cases enum settings.
func (c *Config) Normalize() {
	def := Default()

	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = def.Provider
	}
	if c.Model == "" {
		switch c.Provider {
		case ProviderOpenAI:
			c.Model = DefaultOpenAIModel
		default:
			c.Model = DefaultGeminiModel
		}
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = def.HTTPAddr
	}
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	c.ExtractMode = strings.ToLower(strings.TrimSpace(c.ExtractMode))
	if c.ExtractMode == "" {
		c.ExtractMode = def.ExtractMode
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = def.CORSOrigins
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// Validate checks that the selected provider has a key and enum values are known.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return &Error{message: "missing required environment variable: GEMINI_API_KEY"}
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return &Error{message: "missing required environment variable: OPENAI_API_KEY"}
		}
	default:
		return &Error{message: "unknown LLM provider: " + c.Provider}
	}

	switch c.ExtractMode {
	case timetable.ModeGreedy, timetable.ModeBalanced:
	default:
		return &Error{message: "unknown extract mode: " + c.ExtractMode}
	}

	switch c.LogLevel {
	case "debug", "info", "error":
	default:
		return &Error{message: "unknown log level: " + c.LogLevel}
	}
	return nil
}

// APIKey returns the key for the selected provider.
func (c *Config) APIKey() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
