// Package source gathers candidate article references from the search API
// and from RSS feeds, normalized into a single reference shape.
package source

import (
	"context"
	"errors"
	"net/http"
	"time"

	"dailybrief/internal/digest"
	"dailybrief/internal/logger"
	"dailybrief/internal/metrics"
	"dailybrief/internal/ratelimit"
)

// ErrNoSources is returned only when every source failed and zero references
// were obtained. Any partial success is a valid result.
var ErrNoSources = errors.New("all news sources failed")

type Fetcher struct {
	apiKey          string
	approvedSources []string
	timeout         time.Duration
	httpClient      *http.Client
	endpoint        string
	limiter         *ratelimit.Limiter
}

type Options struct {
	NewsAPIKey      string
	ApprovedSources []string
	Timeout         time.Duration
	Limiter         *ratelimit.Limiter // optional request budget
}

func NewFetcher(opts Options) *Fetcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		apiKey:          opts.NewsAPIKey,
		approvedSources: opts.ApprovedSources,
		timeout:         timeout,
		httpClient:      &http.Client{Timeout: timeout},
		endpoint:        newsAPIEndpoint,
		limiter:         opts.Limiter,
	}
}

// Fetch returns the union of the search API path and the feed path. A failure
// on either path is isolated; ErrNoSources is returned only when every source
// errored and none answered. A source that answers with zero items counts as
// reachable, so an empty result stays valid.
func (f *Fetcher) Fetch(ctx context.Context, query string, useSearchAPI bool, feedURLs []string) ([]digest.Reference, error) {
	log := logger.With("fetch")
	var refs []digest.Reference
	anyFailed := false
	anySucceeded := false

	if useSearchAPI {
		if f.limiter == nil || f.limiter.AllowSearch() {
			searchCtx, cancel := context.WithTimeout(ctx, f.timeout)
			found, err := f.searchNews(searchCtx, query)
			cancel()
			if err != nil {
				log.Warn("search API failed, continuing with feeds", "error", err)
				metrics.Global.IncrementSourcesFailed()
				anyFailed = true
			} else {
				log.Info("fetched from search API", "count", len(found))
				refs = append(refs, found...)
				anySucceeded = true
			}
		}
	}

	feedRefs, feedsParsed, feedsErrored := f.fetchFeeds(ctx, feedURLs)
	if feedsErrored {
		metrics.Global.IncrementSourcesFailed()
		anyFailed = true
	}
	if feedsParsed {
		anySucceeded = true
	}
	refs = append(refs, feedRefs...)

	if anyFailed && !anySucceeded {
		return nil, ErrNoSources
	}

	metrics.Global.AddReferencesFetched(len(refs))
	return refs, nil
}
