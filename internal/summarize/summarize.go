// Package summarize wraps the LLM boundary with the retry policy, the
// request budget and the per-run summary cache.
package summarize

import (
	"context"
	"time"

	"dailybrief/internal/cache"
	"dailybrief/internal/digest"
	"dailybrief/internal/logger"
	"dailybrief/internal/metrics"
	"dailybrief/internal/ratelimit"
	"dailybrief/internal/retry"
)

// LLMClient generates one faithful summary per article.
type LLMClient interface {
	SummarizeArticle(ctx context.Context, article digest.Article) (string, error)
}

type Summarizer struct {
	client  LLMClient
	policy  retry.Policy
	limiter *ratelimit.Limiter
	cache   *cache.Cache
	timeout time.Duration
}

type Options struct {
	Policy  retry.Policy
	Limiter *ratelimit.Limiter // optional LLM request budget
	Cache   *cache.Cache       // optional; skips duplicate paid calls in a run
	Timeout time.Duration      // per-attempt call timeout
}

func New(client LLMClient, opts Options) *Summarizer {
	policy := opts.Policy
	if policy.MaxAttempts < 1 {
		policy = retry.Policy{MaxAttempts: 3, Delay: 2 * time.Second, Multiplier: 2.0}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Summarizer{
		client:  client,
		policy:  policy,
		limiter: opts.Limiter,
		cache:   opts.Cache,
		timeout: timeout,
	}
}

// cacheTTL only needs to outlive one run.
const cacheTTL = time.Hour

// Summarize produces a short factual summary of the article's extracted
// text. ok is false when retries are exhausted, the budget is spent, or the
// model returned nothing usable; the caller drops such articles.
func (s *Summarizer) Summarize(ctx context.Context, article digest.Article) (summary string, ok bool) {
	log := logger.With("summarize")

	var key string
	if s.cache != nil {
		key = s.cache.GenerateKey(article.Title, article.FullText)
		if cached, hit := s.cache.Get(key); hit {
			log.Debug("summary cache hit", "url", article.URL)
			return cached, true
		}
	}

	if s.limiter != nil && !s.limiter.AllowLLM() {
		metrics.Global.IncrementSummariesFailed()
		return "", false
	}

	err := retry.Do(ctx, s.policy, func() error {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		result, callErr := s.client.SummarizeArticle(callCtx, article)
		if callErr != nil {
			return callErr
		}
		summary = result
		return nil
	})
	if err != nil {
		log.Warn("summarization failed, dropping article", "url", article.URL, "error", err)
		metrics.Global.IncrementSummariesFailed()
		return "", false
	}
	if summary == "" {
		metrics.Global.IncrementSummariesFailed()
		return "", false
	}

	if s.cache != nil {
		s.cache.Set(key, summary, cacheTTL)
	}
	metrics.Global.IncrementSummariesGenerated()
	return summary, true
}
