// Package app wires the configuration, the pipeline stages and the email
// collaborator into one digest run.
package app

import (
	"context"
	"fmt"

	"dailybrief/internal/cache"
	"dailybrief/internal/classify"
	"dailybrief/internal/config"
	"dailybrief/internal/dedup"
	"dailybrief/internal/email"
	"dailybrief/internal/extract"
	"dailybrief/internal/gemini"
	"dailybrief/internal/logger"
	"dailybrief/internal/metrics"
	"dailybrief/internal/pipeline"
	"dailybrief/internal/ratelimit"
	"dailybrief/internal/retry"
	"dailybrief/internal/source"
	"dailybrief/internal/summarize"
)

// RunOptions carries the CLI overrides into one run. Zero values defer to
// configuration.
type RunOptions struct {
	Query       string
	RSSOnly     bool
	Preview     bool
	MaxArticles int
	MinChars    int
}

// Run executes one full digest run: gather, process, render, deliver.
func Run(ctx context.Context, opts RunOptions) error {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("load config: %w", err)
	}

	if opts.Query != "" {
		cfg.Query = opts.Query
	}
	if opts.RSSOnly {
		cfg.UseSearchAPI = false
	}
	if opts.MaxArticles > 0 {
		cfg.MaxArticles = opts.MaxArticles
	}
	if opts.MinChars > 0 {
		cfg.MinChars = opts.MinChars
	}

	if !opts.Preview {
		if err := cfg.ValidateDelivery(); err != nil {
			metrics.Global.SetError(err.Error())
			return fmt.Errorf("delivery config: %w", err)
		}
	}

	feedURLs, err := source.LoadFeeds(cfg.FeedsConfigPath)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("load feeds config: %w", err)
	}

	llmClient, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}
	defer llmClient.Close()

	limiter := ratelimit.New(0, 0, cfg.MaxLLMRequests)
	categorizer := classify.New(classify.DefaultRules)

	p := pipeline.New(pipeline.Options{
		Fetcher: source.NewFetcher(source.Options{
			NewsAPIKey:      cfg.NewsAPIKey,
			ApprovedSources: cfg.ApprovedSources,
			Timeout:         cfg.RequestTimeout,
			Limiter:         limiter,
		}),
		Extractor: extract.NewExtractor(extract.Options{
			Timeout:     cfg.ExtractTimeout,
			Concurrency: cfg.ExtractConcurrency,
			Limiter:     limiter,
		}),
		Deduplicator: dedup.New(dedup.Config{SimilarityThreshold: cfg.SimilarityThreshold}),
		Categorizer:  categorizer,
		Summarizer: summarize.New(llmClient, summarize.Options{
			Policy: retry.Policy{
				MaxAttempts: cfg.RetryAttempts,
				Delay:       cfg.RetryDelay,
				Multiplier:  2.0,
			},
			Limiter: limiter,
			Cache:   cache.New(),
			Timeout: cfg.RequestTimeout,
		}),
		MaxArticles: cfg.MaxArticles,
		MinChars:    cfg.MinChars,
	})

	result, err := p.Run(ctx, cfg.Query, cfg.UseSearchAPI, feedURLs)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("pipeline run: %w", err)
	}

	if len(result.Articles) == 0 {
		logger.Info("empty digest, nothing to send")
		return nil
	}

	html, err := email.Render(result, categorizer.Categories())
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}

	if opts.Preview {
		fmt.Println(html)
		return nil
	}

	sender := email.NewSender(cfg.SendGridKey, cfg.EmailFrom, cfg.EmailTo)
	if err := sender.Send(email.Subject(result), html); err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}

	logger.Info("digest delivered", "articles", len(result.Articles))
	return nil
}
