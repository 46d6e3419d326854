// Package classify assigns each article to one topical category using
// deterministic keyword rules.
package classify

import (
	"regexp"
	"strings"

	"dailybrief/internal/digest"
)

// Rule maps one category to its trigger keywords. Rules are scanned in order;
// the first match wins.
type Rule struct {
	Category string
	Keywords []string
}

// DefaultRules covers the digest's standard sections.
var DefaultRules = []Rule{
	{
		Category: "Chips & Hardware",
		Keywords: []string{"chip", "gpu", "cpu", "processor", "hardware", "nvidia", "amd", "intel", "semiconductor"},
	},
	{
		Category: "Policy & Regulation",
		Keywords: []string{"regulation", "policy", "law", "government", "fcc", "ftc", "congress", "senate", "legislation"},
	},
	{
		Category: "Big Models & Platforms",
		Keywords: []string{"gpt", "llm", "openai", "anthropic", "google", "meta", "microsoft", "large language model", "foundation model"},
	},
}

// leadingTextRunes bounds how much of the body participates in matching; the
// lede carries the topical signal.
const leadingTextRunes = 600

type Categorizer struct {
	rules    []Rule
	matchers [][]matcher
}

// matcher is one precompiled keyword test: short tokens carry a word-boundary
// pattern, everything else matches as a lower-cased substring.
type matcher struct {
	substr string
	re     *regexp.Regexp
}

// New builds a categorizer from an explicit rule set, so tests and per-run
// overrides need no global state. Keyword patterns compile once here, not per
// article.
func New(rules []Rule) *Categorizer {
	c := &Categorizer{rules: rules}
	for _, r := range rules {
		c.matchers = append(c.matchers, compileKeywords(r.Keywords))
	}
	return c
}

// Categories returns the section order implied by the rules, ending with the
// catch-all.
func (c *Categorizer) Categories() []string {
	out := make([]string, 0, len(c.rules)+1)
	for _, r := range c.rules {
		out = append(out, r.Category)
	}
	return append(out, digest.DefaultCategory)
}

// Categorize is pure and deterministic: same title and text always yield the
// same category.
func (c *Categorizer) Categorize(article digest.Article) string {
	text := strings.ToLower(article.Title + " " + leadingText(article.FullText))

	for i, rule := range c.rules {
		if matchAny(text, c.matchers[i]) {
			return rule.Category
		}
	}
	return digest.DefaultCategory
}

func leadingText(s string) string {
	runes := []rune(s)
	if len(runes) <= leadingTextRunes {
		return s
	}
	return string(runes[:leadingTextRunes])
}

// compileKeywords distinguishes phrases and short words: phrases and longer
// words match as substrings, short tokens (<=3 runes) get a word-boundary
// pattern so "ai" does not match "said".
func compileKeywords(keywords []string) []matcher {
	var compiled []matcher
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}

		if !strings.Contains(k, " ") && len([]rune(k)) <= 3 {
			compiled = append(compiled, matcher{re: regexp.MustCompile(`\b` + regexp.QuoteMeta(k) + `\b`)})
			continue
		}
		compiled = append(compiled, matcher{substr: k})
	}
	return compiled
}

func matchAny(text string, compiled []matcher) bool {
	for _, m := range compiled {
		if m.re != nil {
			if m.re.MatchString(text) {
				return true
			}
			continue
		}
		if strings.Contains(text, m.substr) {
			return true
		}
	}
	return false
}
