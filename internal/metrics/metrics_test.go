package metrics

import (
	"testing"
	"time"
)

func TestCountersAndStats(t *testing.T) {
	m := &Metrics{IsHealthy: true}

	m.AddReferencesFetched(12)
	m.IncrementSourcesFailed()
	m.IncrementDuplicatesFiltered()
	m.IncrementDuplicatesFiltered()
	m.IncrementSummariesGenerated()
	m.SetDigestArticles(5)
	m.RecordProcessingTime(2 * time.Second)
	m.RecordProcessingTime(4 * time.Second)

	stats := m.GetStats()
	if stats["references_fetched"].(int64) != 12 {
		t.Errorf("references_fetched = %v", stats["references_fetched"])
	}
	if stats["duplicates_filtered"].(int64) != 2 {
		t.Errorf("duplicates_filtered = %v", stats["duplicates_filtered"])
	}
	if stats["digest_articles"].(int64) != 5 {
		t.Errorf("digest_articles = %v", stats["digest_articles"])
	}
	if stats["average_processing_time_ms"].(int64) != 3000 {
		t.Errorf("average_processing_time_ms = %v", stats["average_processing_time_ms"])
	}
}

func TestHealthTransitions(t *testing.T) {
	m := &Metrics{IsHealthy: true}

	m.SetError("upstream unavailable")
	if m.GetStats()["is_healthy"].(bool) {
		t.Error("expected unhealthy after SetError")
	}
	if m.GetStats()["last_error"].(string) != "upstream unavailable" {
		t.Error("last error not recorded")
	}

	m.SetLastRun()
	if !m.GetStats()["is_healthy"].(bool) {
		t.Error("a completed run must restore health")
	}
}
