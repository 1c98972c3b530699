package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Database  DatabaseConfig  `mapstructure:"database"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Logging   LoggingConfig   `mapstructure:"logging"`

	// Active provider: gemini | cloudflare | openrouter
	Provider string `mapstructure:"provider"`

	Gemini     GeminiConfig     `mapstructure:"gemini"`
	Cloudflare CloudflareConfig `mapstructure:"cloudflare"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`

	Generation GenerationConfig `mapstructure:"generation"`
	Prompts    PromptsConfig    `mapstructure:"prompts"`
}

type ServerConfig struct {
	Port    string   `mapstructure:"port"`
	Env     string   `mapstructure:"env"`
	APIKeys []string `mapstructure:"api_keys"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Enabled  bool   `mapstructure:"enabled"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type RateLimitConfig struct {
	// Hourly ceiling for upstream AI calls, shared by the whole
	// installation. Zero disables the limit.
	HourlyCeiling int `mapstructure:"hourly_ceiling"`

	// Transport-level throttle applied per client IP.
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type LoggingConfig struct {
	// Gates the gateway's per-call success/failure log entries.
	Enabled bool `mapstructure:"enabled"`
}

type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type CloudflareConfig struct {
	APIKey    string `mapstructure:"api_key"`
	AccountID string `mapstructure:"account_id"`
	Model     string `mapstructure:"model"`
	BaseURL   string `mapstructure:"base_url"`
}

type OpenRouterConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
	SiteURL string `mapstructure:"site_url"`
	AppName string `mapstructure:"app_name"`
}

type GenerationConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

type PromptsConfig struct {
	Enhancement string `mapstructure:"enhancement"`
	Generation  string `mapstructure:"generation"`
}

// ProviderConfig is the flattened per-provider view handed to adapters.
type ProviderConfig struct {
	ID          string
	Type        string
	APIKey      string
	AccountID   string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	SiteURL     string
	AppName     string
}

// ActiveProvider resolves the selected provider into its adapter config.
func (c *Config) ActiveProvider() ProviderConfig {
	pc := ProviderConfig{
		ID:          c.Provider,
		Type:        c.Provider,
		Temperature: c.Generation.Temperature,
		MaxTokens:   c.Generation.MaxTokens,
	}

	switch c.Provider {
	case "cloudflare":
		pc.APIKey = c.Cloudflare.APIKey
		pc.AccountID = c.Cloudflare.AccountID
		pc.Model = c.Cloudflare.Model
		pc.BaseURL = c.Cloudflare.BaseURL
	case "openrouter":
		pc.APIKey = c.OpenRouter.APIKey
		pc.Model = c.OpenRouter.Model
		pc.BaseURL = c.OpenRouter.BaseURL
		pc.SiteURL = c.OpenRouter.SiteURL
		pc.AppName = c.OpenRouter.AppName
	default:
		pc.APIKey = c.Gemini.APIKey
		pc.Model = c.Gemini.Model
		pc.BaseURL = c.Gemini.BaseURL
	}

	return pc
}

const defaultEnhancementPrompt = `Enhance this content while preserving its structure. Improve the text to be more engaging and clear.

Title: {post_title}
Content: {post_content}
Tags: {tags}

Keep all formatting and structure intact. Respond with a JSON object containing enhanced_title, enhanced_content, suggested_tags, meta_description and focus_keyword.`

const defaultGenerationPrompt = `Generate high-quality content for: {post_title}

Tags: {tags}
Details: {content_details}

Create well-structured, engaging content. Respond with a JSON object containing enhanced_title, enhanced_content, suggested_tags, meta_description and focus_keyword.`

// LoadConfig reads configuration from file or environment variables.
func LoadConfig() (*Config, error) {
	// Load .env file if present
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
	}

	// Default Values
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("database.path", "contentcraft.db")
	v.SetDefault("rate_limit.hourly_ceiling", 10)
	v.SetDefault("rate_limit.requests_per_second", 10.0)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("logging.enabled", true)
	v.SetDefault("provider", "gemini")
	// Credentials default to empty so viper knows the keys exist. Without a
	// default (or a config file entry) AutomaticEnv never surfaces them
	// during Unmarshal and env-only keys would be dropped.
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.base_url", "")
	v.SetDefault("gemini.model", "gemini-2.5-pro")
	v.SetDefault("cloudflare.api_key", "")
	v.SetDefault("cloudflare.account_id", "")
	v.SetDefault("cloudflare.base_url", "")
	v.SetDefault("cloudflare.model", "@cf/meta/llama-2-7b-chat-int8")
	v.SetDefault("openrouter.api_key", "")
	v.SetDefault("openrouter.base_url", "")
	v.SetDefault("openrouter.site_url", "")
	v.SetDefault("openrouter.model", "meta-llama/llama-3.2-3b-instruct:free")
	v.SetDefault("openrouter.app_name", "ContentCraft AI")
	v.SetDefault("generation.temperature", 0.7)
	v.SetDefault("generation.max_tokens", 2000)
	v.SetDefault("prompts.enhancement", defaultEnhancementPrompt)
	v.SetDefault("prompts.generation", defaultGenerationPrompt)

	// Environment Variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	// Resolve API keys referencing environment variables
	resolve := func(key string) string {
		if strings.HasPrefix(key, "ENV:") {
			return os.Getenv(strings.TrimPrefix(key, "ENV:"))
		}
		return key
	}
	cfg.Gemini.APIKey = resolve(cfg.Gemini.APIKey)
	cfg.Cloudflare.APIKey = resolve(cfg.Cloudflare.APIKey)
	cfg.OpenRouter.APIKey = resolve(cfg.OpenRouter.APIKey)

	return &cfg, nil
}
