package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dailybrief/internal/digest"
)

const newsAPIEndpoint = "https://newsapi.org/v2/everything"

// recencyWindow limits search results to recent articles; the digest is daily.
const recencyWindow = 24 * time.Hour

// defaultApprovedSources is used when no allow-list is configured.
var defaultApprovedSources = []string{"npr", "bbc-news", "fox-news"}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title  string `json:"title"`
		URL    string `json:"url"`
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// searchNews issues one request against the NewsAPI /v2/everything endpoint.
func (f *Fetcher) searchNews(ctx context.Context, query string) ([]digest.Reference, error) {
	if f.apiKey == "" {
		return nil, fmt.Errorf("search API key not configured")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", "50")
	params.Set("from", time.Now().Add(-recencyWindow).UTC().Format(time.RFC3339))

	sources := f.approvedSources
	if len(sources) == 0 {
		sources = defaultApprovedSources
	}
	params.Set("sources", strings.Join(sources, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("X-Api-Key", f.apiKey)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("search API error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var data newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if data.Status != "ok" {
		return nil, fmt.Errorf("search API status %q: %s", data.Status, data.Message)
	}

	refs := make([]digest.Reference, 0, len(data.Articles))
	for _, a := range data.Articles {
		if a.URL == "" || a.Title == "" {
			continue
		}

		var published time.Time
		if a.PublishedAt != "" {
			if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
				published = t
			}
		}

		sourceName := a.Source.Name
		if sourceName == "" {
			sourceName = "Unknown"
		}

		refs = append(refs, digest.Reference{
			URL:         a.URL,
			Title:       strings.TrimSpace(a.Title),
			SourceName:  sourceName,
			PublishedAt: published,
			Origin:      digest.OriginSearchAPI,
		})
	}

	return refs, nil
}
