// Package digest holds the entities passed between pipeline stages.
package digest

import (
	"sort"
	"time"
)

// Origin marks which ingestion path produced a reference.
type Origin int

const (
	OriginSearchAPI Origin = iota
	OriginFeed
)

func (o Origin) String() string {
	switch o {
	case OriginSearchAPI:
		return "search_api"
	case OriginFeed:
		return "feed"
	}
	return "unknown"
}

// Reference is a pointer to a candidate article before its text is fetched.
// Immutable once created by the source fetcher.
type Reference struct {
	URL         string
	Title       string
	SourceName  string
	PublishedAt time.Time
	Origin      Origin
}

// Article is a reference enriched stage by stage: extraction fills FullText
// and CharCount, classification fills Category, summarization fills Summary
// and SummaryOK.
type Article struct {
	Reference

	FullText  string
	CharCount int

	Category string

	Summary   string
	SummaryOK bool
}

// DefaultCategory is assigned when no classifier rule matches.
const DefaultCategory = "General"

// Digest is the final capped, categorized, summarized article list for one run.
type Digest struct {
	GeneratedAt time.Time
	Articles    []Article
}

// Section is one category block of a rendered digest.
type Section struct {
	Category string
	Articles []Article
}

// ByCategory groups articles into sections following categoryOrder, with any
// categories not listed appended in first-seen order. Within a section
// articles keep their digest order.
func (d Digest) ByCategory(categoryOrder []string) []Section {
	grouped := make(map[string][]Article)
	var seen []string
	for _, a := range d.Articles {
		if _, ok := grouped[a.Category]; !ok {
			seen = append(seen, a.Category)
		}
		grouped[a.Category] = append(grouped[a.Category], a)
	}

	rank := make(map[string]int, len(categoryOrder))
	for i, c := range categoryOrder {
		rank[c] = i
	}
	sort.SliceStable(seen, func(i, j int) bool {
		ri, iOK := rank[seen[i]]
		rj, jOK := rank[seen[j]]
		if iOK && jOK {
			return ri < rj
		}
		if iOK != jOK {
			return iOK
		}
		return false // keep first-seen order for unranked categories
	})

	sections := make([]Section, 0, len(seen))
	for _, c := range seen {
		sections = append(sections, Section{Category: c, Articles: grouped[c]})
	}
	return sections
}
