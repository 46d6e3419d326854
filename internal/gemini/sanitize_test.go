package gemini

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"dailybrief/internal/digest"
)

func TestSanitizeAIText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   "The port reopened on Tuesday after a three-day strike.",
			want: "The port reopened on Tuesday after a three-day strike.",
		},
		{
			name: "parenthesized note removed",
			in:   "The bill passed. (Note: the article does not state the final vote count.)",
			want: "The bill passed.",
		},
		{
			name: "bracketed note removed",
			in:   "Prices rose sharply. [Note: figures are from the article only]",
			want: "Prices rose sharply.",
		},
		{
			name: "note line removed",
			in:   "The merger was approved.\nNote: this summary omits analyst commentary.",
			want: "The merger was approved.",
		},
		{
			name: "disclaimer line removed",
			in:   "Disclaimer: generated from the provided text.\nShipments resumed Friday.",
			want: "Shipments resumed Friday.",
		},
		{
			name: "lead-in stripped",
			in:   "Here is a summary of the article: The talks collapsed overnight.",
			want: "The talks collapsed overnight.",
		},
		{
			name: "whitespace normalized",
			in:   "  The   vote   passed.  \n\n  Counting ended at midnight.  ",
			want: "The vote passed.\nCounting ended at midnight.",
		},
		{
			name: "everything stripped yields empty",
			in:   "Note: nothing to summarize here.",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeAIText(tt.in); got != tt.want {
				t.Errorf("SanitizeAIText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	article := digest.Article{
		Reference: digest.Reference{
			Title:       "Reservoir levels hit a ten-year low",
			SourceName:  "Example Wire",
			PublishedAt: time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC),
		},
		FullText: "Water managers warned residents to expect restrictions this summer.",
	}

	prompt := buildPrompt(article)
	for _, want := range []string{
		"TITLE: Reservoir levels hit a ten-year low",
		"SOURCE: Example Wire",
		"DATE: March 2, 2026",
		"Water managers warned",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	article.PublishedAt = time.Time{}
	if !strings.Contains(buildPrompt(article), "DATE: Unknown date") {
		t.Error("prompt should fall back to an unknown date")
	}
}

func TestTruncateText(t *testing.T) {
	short := "A short piece of text."
	if got := truncateText(short, 100); got != short {
		t.Errorf("text under the limit must pass through, got %q", got)
	}

	long := strings.Repeat("A reasonably long sentence goes here. ", 100)
	got := truncateText(long, 500)
	if !strings.HasSuffix(got, "[TRUNCATED]") {
		t.Errorf("truncated text must carry a marker, got suffix %q", got[len(got)-20:])
	}
	body := strings.TrimSuffix(got, "\n[TRUNCATED]")
	if utf8.RuneCountInString(body) > 500 {
		t.Errorf("body exceeds limit: %d runes", utf8.RuneCountInString(body))
	}
	if !strings.HasSuffix(body, ".") {
		t.Errorf("truncation should prefer a sentence boundary, got %q", body[len(body)-20:])
	}
}
