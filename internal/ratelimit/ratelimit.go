package ratelimit

import (
	"log/slog"
	"sync"
	"time"
)

// Limiter tracks how many metered external requests a run has made per call
// type. A zero limit means unlimited.
type Limiter struct {
	mu          sync.Mutex
	searchCount int
	fetchCount  int
	llmCount    int
	maxSearch   int
	maxFetch    int
	maxLLM      int
	resetTime   time.Time
}

func New(maxSearch, maxFetch, maxLLM int) *Limiter {
	return &Limiter{
		maxSearch: maxSearch,
		maxFetch:  maxFetch,
		maxLLM:    maxLLM,
		resetTime: time.Now().Add(24 * time.Hour), // reset daily
	}
}

// AllowSearch reports whether another search API request fits the budget and
// records it if so.
func (rl *Limiter) AllowSearch() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()
	if rl.maxSearch > 0 && rl.searchCount >= rl.maxSearch {
		slog.Warn("search API request budget reached", "used", rl.searchCount, "max", rl.maxSearch)
		return false
	}
	rl.searchCount++
	return true
}

// AllowFetch reports whether another page fetch fits the budget and records
// it if so.
func (rl *Limiter) AllowFetch() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()
	if rl.maxFetch > 0 && rl.fetchCount >= rl.maxFetch {
		slog.Warn("page fetch budget reached", "used", rl.fetchCount, "max", rl.maxFetch)
		return false
	}
	rl.fetchCount++
	return true
}

// AllowLLM reports whether another summarization call fits the budget and
// records it if so. This is the only paid call type.
func (rl *Limiter) AllowLLM() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()
	if rl.maxLLM > 0 && rl.llmCount >= rl.maxLLM {
		slog.Warn("LLM request budget reached", "used", rl.llmCount, "max", rl.maxLLM)
		return false
	}
	rl.llmCount++
	return true
}

// Stats returns current usage for logging.
func (rl *Limiter) Stats() (search, fetch, llm int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.searchCount, rl.fetchCount, rl.llmCount
}

func (rl *Limiter) checkReset() {
	if time.Now().After(rl.resetTime) {
		rl.searchCount = 0
		rl.fetchCount = 0
		rl.llmCount = 0
		rl.resetTime = time.Now().Add(24 * time.Hour)
	}
}
