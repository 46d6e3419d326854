package classify

import (
	"testing"

	"dailybrief/internal/digest"
)

func textArticle(title, text string) digest.Article {
	return digest.Article{
		Reference: digest.Reference{Title: title},
		FullText:  text,
	}
}

func TestCategorize(t *testing.T) {
	c := New(DefaultRules)

	cases := []struct {
		name  string
		title string
		text  string
		want  string
	}{
		{"hardware keyword in title", "Nvidia unveils next GPU generation", "", "Chips & Hardware"},
		{"policy keyword in body", "Lawmakers respond", "Congress is drafting new legislation on data brokers.", "Policy & Regulation"},
		{"platform keyword", "OpenAI ships new developer tools", "", "Big Models & Platforms"},
		{"no match falls back", "Local bakery wins regional award", "The loaves were excellent.", digest.DefaultCategory},
		{"first rule wins over later rules", "Intel lobbies congress over chip subsidies", "", "Chips & Hardware"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Categorize(textArticle(tc.title, tc.text))
			if got != tc.want {
				t.Errorf("Categorize() = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestCategorize_Deterministic(t *testing.T) {
	c := New(DefaultRules)
	a := textArticle("Senate weighs chip export regulation", "Long debate expected.")

	first := c.Categorize(a)
	for i := 0; i < 10; i++ {
		if got := c.Categorize(a); got != first {
			t.Fatalf("call %d returned %q, first call returned %q", i, got, first)
		}
	}
}

func TestKeywordMatching_ShortTokenBoundaries(t *testing.T) {
	cases := []struct {
		text     string
		keywords []string
		want     bool
	}{
		{"the spokesman said nothing", []string{"ai"}, false}, // "ai" must not match inside "said"
		{"breakthrough in ai research", []string{"ai"}, true},
		{"gpt-5 rumors swirl", []string{"gpt"}, true},
		{"large language model startup funded", []string{"large language model"}, true},
		{"model railways are popular", []string{"large language model"}, false},
	}

	for _, c := range cases {
		if got := matchAny(c.text, compileKeywords(c.keywords)); got != c.want {
			t.Errorf("matchAny(%q, %v) = %v; want %v", c.text, c.keywords, got, c.want)
		}
	}
}

func TestCategories_OrderEndsWithDefault(t *testing.T) {
	c := New(DefaultRules)
	cats := c.Categories()

	if len(cats) != len(DefaultRules)+1 {
		t.Fatalf("expected %d categories, got %d", len(DefaultRules)+1, len(cats))
	}
	if cats[len(cats)-1] != digest.DefaultCategory {
		t.Errorf("last category = %q; want %q", cats[len(cats)-1], digest.DefaultCategory)
	}
	for i, r := range DefaultRules {
		if cats[i] != r.Category {
			t.Errorf("category %d = %q; want %q", i, cats[i], r.Category)
		}
	}
}
