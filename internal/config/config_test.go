package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("NEWSAPI_KEY", "news-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.MaxArticles != 5 {
		t.Errorf("MaxArticles = %d, want 5", cfg.MaxArticles)
	}
	if cfg.MinChars != 500 {
		t.Errorf("MinChars = %d, want 500", cfg.MinChars)
	}
	if cfg.SimilarityThreshold != 0.6 {
		t.Errorf("SimilarityThreshold = %v, want 0.6", cfg.SimilarityThreshold)
	}
	if !cfg.UseSearchAPI {
		t.Error("search API should be enabled by default")
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("RetryDelay = %v", cfg.RetryDelay)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("MAX_ARTICLES", "8")
	t.Setenv("MIN_CHARS_PER_ARTICLE", "200")
	t.Setenv("SIMILARITY_THRESHOLD", "0.8")
	t.Setenv("USE_SEARCH_API", "false")
	t.Setenv("APPROVED_SOURCES", "npr, bbc-news , ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.MaxArticles != 8 || cfg.MinChars != 200 {
		t.Errorf("overrides ignored: max=%d min=%d", cfg.MaxArticles, cfg.MinChars)
	}
	if cfg.SimilarityThreshold != 0.8 {
		t.Errorf("SimilarityThreshold = %v, want 0.8", cfg.SimilarityThreshold)
	}
	if cfg.UseSearchAPI {
		t.Error("USE_SEARCH_API=false ignored")
	}
	if len(cfg.ApprovedSources) != 2 || cfg.ApprovedSources[1] != "bbc-news" {
		t.Errorf("ApprovedSources = %v", cfg.ApprovedSources)
	}
}

func TestLoad_MissingGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("NEWSAPI_KEY", "news-key")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without GEMINI_API_KEY")
	}
}

func TestLoad_NewsKeyOnlyNeededForSearch(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("NEWSAPI_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error: search enabled without NEWSAPI_KEY")
	}

	t.Setenv("USE_SEARCH_API", "false")
	if _, err := Load(); err != nil {
		t.Fatalf("feed-only mode must not require NEWSAPI_KEY: %v", err)
	}
}

func TestValidateDelivery(t *testing.T) {
	cfg := &Config{SendGridKey: "sg", EmailTo: "to@example.com", EmailFrom: "from@example.com"}
	if err := cfg.ValidateDelivery(); err != nil {
		t.Fatalf("ValidateDelivery: %v", err)
	}

	cfg.EmailTo = ""
	if err := cfg.ValidateDelivery(); err == nil {
		t.Error("expected error without EMAIL_TO")
	}

	cfg = &Config{EmailTo: "to@example.com", EmailFrom: "from@example.com"}
	if err := cfg.ValidateDelivery(); err == nil {
		t.Error("expected error without SENDGRID_API_KEY")
	}
}
