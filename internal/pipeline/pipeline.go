// Package pipeline sequences one digest run: fetch, extract, filter, dedupe,
// cap, categorize, summarize, order.
package pipeline

import (
	"context"
	"sort"
	"time"

	"dailybrief/internal/digest"
	"dailybrief/internal/logger"
	"dailybrief/internal/metrics"
)

type Fetcher interface {
	Fetch(ctx context.Context, query string, useSearchAPI bool, feedURLs []string) ([]digest.Reference, error)
}

type Extractor interface {
	ExtractAll(ctx context.Context, refs []digest.Reference) []digest.Article
}

type Deduplicator interface {
	Deduplicate(items []digest.Article) []digest.Article
}

type Categorizer interface {
	Categorize(article digest.Article) string
	Categories() []string
}

type Summarizer interface {
	Summarize(ctx context.Context, article digest.Article) (string, bool)
}

type Pipeline struct {
	fetcher     Fetcher
	extractor   Extractor
	dedup       Deduplicator
	categorizer Categorizer
	summarizer  Summarizer

	maxArticles int
	minChars    int
}

type Options struct {
	Fetcher      Fetcher
	Extractor    Extractor
	Deduplicator Deduplicator
	Categorizer  Categorizer
	Summarizer   Summarizer
	MaxArticles  int
	MinChars     int
}

func New(opts Options) *Pipeline {
	maxArticles := opts.MaxArticles
	if maxArticles <= 0 {
		maxArticles = 5
	}
	return &Pipeline{
		fetcher:     opts.Fetcher,
		extractor:   opts.Extractor,
		dedup:       opts.Deduplicator,
		categorizer: opts.Categorizer,
		summarizer:  opts.Summarizer,
		maxArticles: maxArticles,
		minChars:    opts.MinChars,
	}
}

// Run executes one digest run. An empty digest is a valid terminal state;
// only a total fetch failure surfaces as an error.
func (p *Pipeline) Run(ctx context.Context, query string, useSearchAPI bool, feedURLs []string) (digest.Digest, error) {
	startTime := time.Now()
	defer func() {
		metrics.Global.RecordProcessingTime(time.Since(startTime))
		metrics.Global.SetLastRun()
	}()

	log := logger.With("pipeline")

	refs, err := p.fetcher.Fetch(ctx, query, useSearchAPI, feedURLs)
	if err != nil {
		return digest.Digest{}, err
	}
	log.Info("fetched references", "count", len(refs))

	articles := p.extractor.ExtractAll(ctx, refs)

	// Extraction failures are visible here, then dropped with the short ones.
	filtered := articles[:0:0]
	for _, a := range articles {
		if a.CharCount >= p.minChars {
			filtered = append(filtered, a)
		}
	}
	log.Info("extracted articles", "usable", len(filtered), "total", len(articles))

	deduped := p.dedup.Deduplicate(filtered)
	log.Info("deduplicated", "kept", len(deduped), "dropped", len(filtered)-len(deduped))

	// Newest first, then cap. The cap sits before summarization so the number
	// of paid LLM calls is bounded by maxArticles.
	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].PublishedAt.After(deduped[j].PublishedAt)
	})
	if len(deduped) > p.maxArticles {
		log.Info("capping articles", "max", p.maxArticles, "from", len(deduped))
		deduped = deduped[:p.maxArticles]
	}

	for i := range deduped {
		deduped[i].Category = p.categorizer.Categorize(deduped[i])
	}

	var summarized []digest.Article
	for _, a := range deduped {
		if ctx.Err() != nil {
			return digest.Digest{}, ctx.Err()
		}
		summary, ok := p.summarizer.Summarize(ctx, a)
		if !ok {
			continue // dropped, never emitted with a missing summary
		}
		a.Summary = summary
		a.SummaryOK = true
		summarized = append(summarized, a)
	}
	log.Info("summarized articles", "count", len(summarized))

	ordered := orderByCategory(summarized, p.categorizer.Categories())

	metrics.Global.SetDigestArticles(len(ordered))
	return digest.Digest{GeneratedAt: time.Now(), Articles: ordered}, nil
}

// orderByCategory groups articles into the category order and keeps each
// group newest first.
func orderByCategory(articles []digest.Article, categoryOrder []string) []digest.Article {
	rank := make(map[string]int, len(categoryOrder))
	for i, c := range categoryOrder {
		rank[c] = i
	}

	out := make([]digest.Article, len(articles))
	copy(out, articles)
	sort.SliceStable(out, func(i, j int) bool {
		ri, iOK := rank[out[i].Category]
		rj, jOK := rank[out[j].Category]
		if iOK != jOK {
			return iOK
		}
		if ri != rj {
			return ri < rj
		}
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out
}
