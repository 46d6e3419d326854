package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"dailybrief/internal/app"
	"dailybrief/internal/metrics"
)

func main() {
	query := flag.String("query", "", "search query for the news API (defaults to config)")
	rssOnly := flag.Bool("rss-only", false, "only fetch from RSS feeds, skip the search API")
	preview := flag.Bool("preview", false, "print the rendered HTML instead of sending email")
	maxArticles := flag.Int("max-articles", 0, "maximum articles in the digest (defaults to config)")
	minChars := flag.Int("min-chars", 0, "minimum characters per article (defaults to config)")
	flag.Parse()

	// Optional: expose run stats over HTTP while the digest runs
	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		go serveMonitoring()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := app.Run(ctx, app.RunOptions{
		Query:       *query,
		RSSOnly:     *rssOnly,
		Preview:     *preview,
		MaxArticles: *maxArticles,
		MinChars:    *minChars,
	})
	if err != nil {
		log.Printf("run failed: %v", err)
		os.Exit(1)
	}
}

func serveMonitoring() {
	port := os.Getenv("MONITORING_PORT")
	if port == "" {
		port = "8080"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		stats := metrics.Global.GetStats()
		w.Header().Set("Content-Type", "application/json")

		status := "ok"
		if healthy, _ := stats["is_healthy"].(bool); !healthy {
			status = "error"
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":     status,
			"last_run":   stats["last_run_time"],
			"last_error": stats["last_error"],
		})
	})
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(metrics.Global.GetStats())
	})

	log.Printf("monitoring endpoints listening on :%s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Printf("monitoring server stopped: %v", err)
	}
}
