// Package dedup removes articles that report the same underlying story.
package dedup

import (
	"net/url"
	"strings"
	"unicode"

	"dailybrief/internal/digest"
	"dailybrief/internal/logger"
	"dailybrief/internal/metrics"
)

// DefaultSimilarityThreshold is the token-set Jaccard score above which two
// normalized titles are treated as the same story. Tunable via Config.
const DefaultSimilarityThreshold = 0.6

// stopWords are ignored when comparing titles.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"in": true, "on": true, "of": true, "for": true, "to": true,
	"at": true, "as": true, "is": true, "by": true, "with": true,
	"from": true, "after": true, "over": true, "amid": true,
}

// titleSuffixes are publisher tags appended to syndicated headlines.
var titleSuffixes = []string{
	" - The Verge",
	" | TechCrunch",
	" | Ars Technica",
	" | Wired",
	" | Engadget",
	" - BBC News",
	" | Reuters",
}

type Config struct {
	// SimilarityThreshold overrides DefaultSimilarityThreshold when > 0.
	SimilarityThreshold float64
}

type Deduplicator struct {
	threshold float64
}

func New(cfg Config) *Deduplicator {
	threshold := cfg.SimilarityThreshold
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &Deduplicator{threshold: threshold}
}

type kept struct {
	article digest.Article
	urlKey  string
	tokens  map[string]bool
}

// Deduplicate drops exact URL duplicates and near-duplicate titles,
// order-preserving and stable on first occurrence. When two items collide the
// one with the longer text survives (then the earlier published, then the
// first seen), occupying the first-seen position. The operation is
// idempotent: survivors are pairwise distinct under the same keys.
func (d *Deduplicator) Deduplicate(items []digest.Article) []digest.Article {
	log := logger.With("dedup")
	var keptItems []kept

	for _, item := range items {
		entry := kept{
			article: item,
			urlKey:  normalizeURL(item.URL),
			tokens:  titleTokens(item.Title),
		}

		// Similarity is not transitive: one incoming item can bridge kept
		// entries that were pairwise distinct. Collect every collision and
		// merge them into a single slot, or the bridged entries survive
		// together and a second pass would shrink the result.
		var collided []int
		for i := range keptItems {
			if keptItems[i].urlKey == entry.urlKey || jaccard(keptItems[i].tokens, entry.tokens) >= d.threshold {
				collided = append(collided, i)
			}
		}
		if len(collided) == 0 {
			keptItems = append(keptItems, entry)
			continue
		}

		winner := keptItems[collided[0]]
		for _, i := range collided[1:] {
			metrics.Global.IncrementDuplicatesFiltered()
			if prefer(keptItems[i].article, winner.article) {
				winner = keptItems[i]
			}
		}
		metrics.Global.IncrementDuplicatesFiltered()
		if prefer(item, winner.article) {
			log.Debug("duplicate replaces earlier entry", "kept", item.URL, "dropped", winner.article.URL)
			winner = entry
		} else {
			log.Debug("duplicate dropped", "kept", winner.article.URL, "dropped", item.URL)
		}

		// The winner takes the first-seen slot; the bridged slots go away.
		keptItems[collided[0]] = winner
		for n, i := range collided[1:] {
			keptItems = append(keptItems[:i-n], keptItems[i-n+1:]...)
		}
	}

	out := make([]digest.Article, len(keptItems))
	for i, k := range keptItems {
		out[i] = k.article
	}
	return out
}

// prefer reports whether challenger should survive over incumbent.
func prefer(challenger, incumbent digest.Article) bool {
	if len(challenger.FullText) != len(incumbent.FullText) {
		return len(challenger.FullText) > len(incumbent.FullText)
	}
	ct, it := challenger.PublishedAt, incumbent.PublishedAt
	if !ct.IsZero() && !it.IsZero() && !ct.Equal(it) {
		return ct.Before(it)
	}
	if ct.IsZero() != it.IsZero() {
		return !ct.IsZero() // a known timestamp beats an unknown one
	}
	return false // first seen wins
}

// normalizeURL strips query, fragment and case from a URL so syndicated links
// with tracking parameters collapse to one key.
func normalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)
	path := strings.TrimSuffix(u.Path, "/")
	return scheme + "://" + host + path
}

// titleTokens normalizes a title into its significant token set: publisher
// suffix stripped, lower-cased, punctuation removed, stop-words and tokens of
// two runes or fewer dropped.
func titleTokens(title string) map[string]bool {
	for _, suffix := range titleSuffixes {
		if strings.HasSuffix(title, suffix) {
			title = strings.TrimSuffix(title, suffix)
			break
		}
	}

	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	tokens := make(map[string]bool)
	for _, w := range strings.Fields(b.String()) {
		if stopWords[w] || len([]rune(w)) <= 2 {
			continue
		}
		tokens[w] = true
	}
	return tokens
}

// jaccard is |A∩B| / |A∪B|; empty sets never match.
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for w := range a {
		if b[w] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}
