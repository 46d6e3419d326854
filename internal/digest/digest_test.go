package digest

import (
	"testing"
	"time"
)

func article(url, title, category string) Article {
	return Article{
		Reference: Reference{URL: url, Title: title},
		Category:  category,
	}
}

func TestByCategory(t *testing.T) {
	d := Digest{
		GeneratedAt: time.Now(),
		Articles: []Article{
			article("https://a.example/1", "Chip fab breaks ground", "Hardware"),
			article("https://a.example/2", "New privacy rules proposed", "Policy"),
			article("https://a.example/3", "Second fab announced", "Hardware"),
			article("https://a.example/4", "Local festival returns", "General"),
		},
	}

	sections := d.ByCategory([]string{"Hardware", "Policy", "General"})

	wantOrder := []string{"Hardware", "Policy", "General"}
	if len(sections) != len(wantOrder) {
		t.Fatalf("got %d sections, want %d", len(sections), len(wantOrder))
	}
	for i, want := range wantOrder {
		if sections[i].Category != want {
			t.Errorf("section %d = %q, want %q", i, sections[i].Category, want)
		}
	}

	hw := sections[0].Articles
	if len(hw) != 2 || hw[0].Title != "Chip fab breaks ground" || hw[1].Title != "Second fab announced" {
		t.Errorf("Hardware section lost digest order: %+v", hw)
	}
}

func TestByCategory_UnrankedAppended(t *testing.T) {
	d := Digest{
		Articles: []Article{
			article("https://a.example/1", "One", "Sports"),
			article("https://a.example/2", "Two", "Policy"),
			article("https://a.example/3", "Three", "Weather"),
		},
	}

	sections := d.ByCategory([]string{"Policy"})

	if sections[0].Category != "Policy" {
		t.Errorf("ranked category must come first, got %q", sections[0].Category)
	}
	// unranked categories keep first-seen order
	if sections[1].Category != "Sports" || sections[2].Category != "Weather" {
		t.Errorf("unranked order wrong: %q, %q", sections[1].Category, sections[2].Category)
	}
}

func TestByCategory_Empty(t *testing.T) {
	var d Digest
	if sections := d.ByCategory([]string{"Policy"}); len(sections) != 0 {
		t.Errorf("empty digest must yield no sections, got %d", len(sections))
	}
}

func TestOriginString(t *testing.T) {
	if OriginSearchAPI.String() != "search_api" || OriginFeed.String() != "feed" {
		t.Error("origin labels changed")
	}
	if Origin(99).String() != "unknown" {
		t.Error("unexpected label for out-of-range origin")
	}
}
