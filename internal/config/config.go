package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Search API (NewsAPI) settings
	NewsAPIKey      string
	ApprovedSources []string // allow-list of NewsAPI source identifiers
	Query           string
	UseSearchAPI    bool

	// Feed settings
	FeedsConfigPath string

	// Gemini settings
	GeminiAPIKey   string
	GeminiModel    string
	MaxLLMRequests int // maximum summarization requests per run (0 = unlimited)

	// Email settings
	SendGridKey string
	EmailTo     string
	EmailFrom   string

	// Pipeline settings
	MaxArticles         int
	MinChars            int
	SimilarityThreshold float64

	// App settings
	Debug              bool
	RequestTimeout     time.Duration
	ExtractTimeout     time.Duration
	ExtractConcurrency int
	RetryAttempts      int
	RetryDelay         time.Duration
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		// Default values
		Query:               "politics OR world OR technology OR science OR business OR economy",
		UseSearchAPI:        true,
		FeedsConfigPath:     "configs/feeds.yaml",
		GeminiModel:         "gemini-1.5-flash",
		MaxLLMRequests:      0,
		MaxArticles:         5,
		MinChars:            500,
		SimilarityThreshold: 0.6,
		RequestTimeout:      30 * time.Second,
		ExtractTimeout:      15 * time.Second,
		ExtractConcurrency:  5,
		RetryAttempts:       3,
		RetryDelay:          2 * time.Second,
	}

	// Load from environment
	cfg.NewsAPIKey = os.Getenv("NEWSAPI_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.SendGridKey = os.Getenv("SENDGRID_API_KEY")
	cfg.EmailTo = os.Getenv("EMAIL_TO")
	cfg.EmailFrom = os.Getenv("EMAIL_FROM")

	if sources := os.Getenv("APPROVED_SOURCES"); sources != "" {
		for _, s := range strings.Split(sources, ",") {
			if s = strings.TrimSpace(s); s != "" {
				cfg.ApprovedSources = append(cfg.ApprovedSources, s)
			}
		}
	}

	if q := os.Getenv("NEWS_QUERY"); q != "" {
		cfg.Query = q
	}
	if v := os.Getenv("USE_SEARCH_API"); v != "" {
		cfg.UseSearchAPI = v != "false"
	}

	cfg.FeedsConfigPath = getEnvOrDefault("FEEDS_CONFIG_PATH", cfg.FeedsConfigPath)
	cfg.GeminiModel = getEnvOrDefault("GEMINI_MODEL", cfg.GeminiModel)

	cfg.MaxLLMRequests = getEnvIntOrDefault("MAX_LLM_REQUESTS", cfg.MaxLLMRequests)
	cfg.MaxArticles = getEnvIntOrDefault("MAX_ARTICLES", cfg.MaxArticles)
	cfg.MinChars = getEnvIntOrDefault("MIN_CHARS_PER_ARTICLE", cfg.MinChars)
	cfg.ExtractConcurrency = getEnvIntOrDefault("EXTRACT_CONCURRENCY", cfg.ExtractConcurrency)
	cfg.RetryAttempts = getEnvIntOrDefault("RETRY_ATTEMPTS", cfg.RetryAttempts)

	if v := os.Getenv("SIMILARITY_THRESHOLD"); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil && val > 0 && val <= 1 {
			cfg.SimilarityThreshold = val
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("EXTRACT_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.ExtractTimeout = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("RETRY_DELAY_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RetryDelay = time.Duration(val) * time.Second
		}
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue >= 0 {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.UseSearchAPI && c.NewsAPIKey == "" {
		return fmt.Errorf("NEWSAPI_KEY is required when the search API is enabled")
	}
	if c.MaxArticles <= 0 {
		return fmt.Errorf("MAX_ARTICLES must be positive")
	}
	if c.MinChars < 0 {
		return fmt.Errorf("MIN_CHARS_PER_ARTICLE must not be negative")
	}
	return nil
}

// ValidateDelivery checks the fields only needed when the digest is actually
// emailed; preview runs skip it.
func (c *Config) ValidateDelivery() error {
	if c.SendGridKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY is required")
	}
	if c.EmailTo == "" || c.EmailFrom == "" {
		return fmt.Errorf("EMAIL_TO and EMAIL_FROM are required")
	}
	return nil
}
