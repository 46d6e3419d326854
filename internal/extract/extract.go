// Package extract fetches article pages and isolates the main readable text,
// discarding navigation and boilerplate.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
	"unicode/utf8"

	"dailybrief/internal/digest"
	"dailybrief/internal/logger"
	"dailybrief/internal/metrics"
	"dailybrief/internal/ratelimit"

	readability "github.com/go-shiori/go-readability"
)

const maxBodyBytes = 4 << 20 // refuse to buffer pages larger than 4 MiB

type Extractor struct {
	httpClient  *http.Client
	timeout     time.Duration
	concurrency int
	limiter     *ratelimit.Limiter
}

type Options struct {
	Timeout     time.Duration
	Concurrency int
	Limiter     *ratelimit.Limiter // optional page fetch budget
}

func NewExtractor(opts Options) *Extractor {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	return &Extractor{
		httpClient:  &http.Client{Timeout: timeout},
		timeout:     timeout,
		concurrency: concurrency,
		limiter:     opts.Limiter,
	}
}

// Extract fetches the page behind ref and extracts its main text. Extraction
// is strictly best-effort: any failure yields an article with empty text and
// a zero char count, never an error.
func (e *Extractor) Extract(ctx context.Context, ref digest.Reference) digest.Article {
	article := digest.Article{Reference: ref}

	text, err := e.extractText(ctx, ref.URL)
	if err != nil {
		logger.With("extract").Debug("extraction failed", "url", ref.URL, "error", err)
		metrics.Global.IncrementExtractionsFailed()
		return article
	}

	article.FullText = text
	article.CharCount = utf8.RuneCountInString(text)
	return article
}

// ExtractAll runs extraction over a bounded worker pool. The returned slice
// matches the input order regardless of completion order.
func (e *Extractor) ExtractAll(ctx context.Context, refs []digest.Reference) []digest.Article {
	articles := make([]digest.Article, len(refs))

	type job struct {
		idx int
		ref digest.Reference
	}
	jobs := make(chan job)

	var wg sync.WaitGroup
	for w := 0; w < e.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				articles[j.idx] = e.Extract(ctx, j.ref)
			}
		}()
	}

	for i, ref := range refs {
		select {
		case <-ctx.Done():
			// abandon remaining work; already-filled slots stay as-is
			close(jobs)
			wg.Wait()
			return articles
		case jobs <- job{idx: i, ref: ref}:
		}
	}
	close(jobs)
	wg.Wait()

	return articles
}

func (e *Extractor) extractText(ctx context.Context, pageURL string) (string, error) {
	if e.limiter != nil && !e.limiter.AllowFetch() {
		return "", fmt.Errorf("page fetch budget exhausted")
	}

	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", "dailybrief/1.0 (+news digest)")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	html, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read page: %w", err)
	}

	if text := readableText(html, parsedURL); text != "" {
		return text, nil
	}

	// Readability gave nothing useful; fall back to a selector walk.
	text := fallbackText(html)
	if text == "" {
		return "", fmt.Errorf("no article text found")
	}
	return text, nil
}

// readableText runs go-readability over the fetched page.
func readableText(html []byte, pageURL *url.URL) string {
	parsed, err := readability.FromReader(bytes.NewReader(html), pageURL)
	if err != nil {
		return ""
	}
	return cleanText(parsed.TextContent)
}
