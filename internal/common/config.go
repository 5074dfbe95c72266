package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// LLMProvider identifies a chat completion provider
type LLMProvider string

const (
	LLMProviderGemini LLMProvider = "gemini"
	LLMProviderClaude LLMProvider = "claude"
)

// Config represents the application configuration
type Config struct {
	Environment string         `toml:"environment"` // "development" or "production"
	Server      ServerConfig   `toml:"server"`
	Storage     StorageConfig  `toml:"storage"`
	Logging     LoggingConfig  `toml:"logging"`
	Gemini      GeminiConfig   `toml:"gemini"`
	Claude      ClaudeConfig   `toml:"claude"`
	LLM         LLMConfig      `toml:"llm"`
	Cache       CacheConfig    `toml:"cache"`
	Search      SearchConfig   `toml:"search"`
	External    ExternalConfig `toml:"external"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"min=1,max=65535"`
	Host string `toml:"host" validate:"required"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"` // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"`         // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Format     string   `toml:"format"`      // "json" or "text"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05")
}

// GeminiConfig contains Google Gemini API configuration.
// Gemini is always used for embeddings; it is also the default chat provider.
type GeminiConfig struct {
	APIKey         string  `toml:"api_key"`         // API key (or SCIENTIA_GEMINI_API_KEY / GOOGLE_API_KEY)
	Model          string  `toml:"model"`           // Chat model (default: gemini-2.0-flash)
	EmbedModel     string  `toml:"embed_model"`     // Embedding model (default: gemini-embedding-001)
	EmbedDimension int     `toml:"embed_dimension"` // Embedding output dimensionality (default: 768)
	Timeout        string  `toml:"timeout"`         // Per-call timeout (default: "2m")
	Temperature    float32 `toml:"temperature"`     // Chat temperature
	MaxTokens      int     `toml:"max_tokens"`      // Max output tokens per completion
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`     // API key (or ANTHROPIC_API_KEY / SCIENTIA_CLAUDE_API_KEY)
	Model       string  `toml:"model"`       // Chat model (default: claude-haiku-3-5-20241022)
	Timeout     string  `toml:"timeout"`     // Per-call timeout (default: "2m")
	Temperature float32 `toml:"temperature"` // Chat temperature
	MaxTokens   int     `toml:"max_tokens"`  // Max output tokens per completion
}

// LLMConfig contains unified configuration for chat completion providers
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider" validate:"oneof=gemini claude"` // "gemini" or "claude"
}

// CacheConfig contains semantic cache configuration
type CacheConfig struct {
	SimilarityThreshold float64 `toml:"similarity_threshold" validate:"gte=0,lte=1"` // Minimum similarity for a cache hit
}

// SearchConfig contains knowledge base search configuration
type SearchConfig struct {
	Limit         int     `toml:"limit" validate:"min=1"`                // Max documents returned per search
	MinSimilarity float64 `toml:"min_similarity" validate:"gte=0,lte=1"` // Raw similarity gate before re-ranking
}

// ExternalConfig contains external search provider configuration
type ExternalConfig struct {
	ArxivBaseURL       string `toml:"arxiv_base_url"`        // arXiv API endpoint
	HuggingFaceBaseURL string `toml:"huggingface_base_url"`  // HuggingFace Hub API endpoint
	RequestTimeout     string `toml:"request_timeout"`       // Per-call HTTP timeout (default: "30s")
	MaxResultsPerQuery int    `toml:"max_results_per_query"` // Per-provider result cap
	ArxivRateLimit     string `toml:"arxiv_rate_limit"`      // Min interval between arXiv calls (default: "3s")
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here for production stability;
// only user-facing settings should be exposed in scientia.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout", "file"},
		},
		Gemini: GeminiConfig{
			APIKey:         "", // User must provide API key (no fallback)
			Model:          "gemini-2.0-flash",
			EmbedModel:     "gemini-embedding-001",
			EmbedDimension: 768,
			Timeout:        "2m",
			Temperature:    0.7,
			MaxTokens:      1000,
		},
		Claude: ClaudeConfig{
			APIKey:      "",
			Model:       "claude-haiku-3-5-20241022",
			Timeout:     "2m",
			Temperature: 0.7,
			MaxTokens:   1000,
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderGemini,
		},
		Cache: CacheConfig{
			SimilarityThreshold: 0.95,
		},
		Search: SearchConfig{
			Limit:         10,
			MinSimilarity: 0.5,
		},
		External: ExternalConfig{
			ArxivBaseURL:       "https://export.arxiv.org/api/query",
			HuggingFaceBaseURL: "https://huggingface.co/api",
			RequestTimeout:     "30s",
			MaxResultsPerQuery: 3,
			ArxivRateLimit:     "3s",
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority:
// default -> file1 -> file2 -> ... -> env. Later files override earlier ones.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration against struct-level constraints
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	// Environment configuration (highest priority: SCIENTIA_ENV, fallback: GO_ENV)
	if env := os.Getenv("SCIENTIA_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("SCIENTIA_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("SCIENTIA_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Storage configuration
	if badgerPath := os.Getenv("SCIENTIA_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	// Logging configuration
	if level := os.Getenv("SCIENTIA_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("SCIENTIA_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if output := os.Getenv("SCIENTIA_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// API keys: provider-specific env vars take precedence over config file
	if key := os.Getenv("SCIENTIA_GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	} else if key := os.Getenv("GOOGLE_API_KEY"); key != "" && config.Gemini.APIKey == "" {
		config.Gemini.APIKey = key
	}
	if key := os.Getenv("SCIENTIA_CLAUDE_API_KEY"); key != "" {
		config.Claude.APIKey = key
	} else if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" && config.Claude.APIKey == "" {
		config.Claude.APIKey = key
	}

	// Retrieval tuning
	if threshold := os.Getenv("SCIENTIA_CACHE_SIMILARITY_THRESHOLD"); threshold != "" {
		if t, err := strconv.ParseFloat(threshold, 64); err == nil {
			config.Cache.SimilarityThreshold = t
		}
	}
	if limit := os.Getenv("SCIENTIA_SEARCH_LIMIT"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			config.Search.Limit = l
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
