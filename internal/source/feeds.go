package source

import (
	"context"
	"net/http"
	"os"
	"time"

	"dailybrief/internal/digest"
	"dailybrief/internal/logger"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"
)

// FeedsConfig is YAML config structure
// feeds:
//   - https://...
type FeedsConfig struct {
	Feeds []string `yaml:"feeds"`
}

// LoadFeeds reads the RSS feeds list from a YAML file
func LoadFeeds(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg.Feeds, nil
}

// fetchFeeds downloads and parses all feeds, returning normalized references.
// A single feed's parse failure or timeout is skipped, not propagated.
// parsedAny reports whether at least one feed answered, even with zero items;
// errored reports whether at least one feed failed.
func (f *Fetcher) fetchFeeds(ctx context.Context, urls []string) (refs []digest.Reference, parsedAny, errored bool) {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: f.timeout}
	log := logger.With("fetch")

	successCount := 0
	for _, url := range urls {
		feedCtx, cancel := context.WithTimeout(ctx, f.timeout)
		feed, err := parser.ParseURLWithContext(url, feedCtx)
		cancel()
		if err != nil {
			log.Warn("skipping feed", "url", url, "error", err)
			errored = true
			continue // log the error, but don't stop
		}

		sourceName := feed.Title
		if sourceName == "" {
			sourceName = url
		}

		for _, item := range feed.Items {
			if item.Link == "" || item.Title == "" {
				continue
			}
			refs = append(refs, digest.Reference{
				URL:         item.Link,
				Title:       item.Title,
				SourceName:  sourceName,
				PublishedAt: itemPublished(item),
				Origin:      digest.OriginFeed,
			})
		}
		successCount++
		log.Debug("loaded feed", "url", url, "items", len(feed.Items))
	}

	log.Info("processed feeds", "ok", successCount, "total", len(urls))
	return refs, successCount > 0, errored
}

func itemPublished(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return time.Time{}
}
