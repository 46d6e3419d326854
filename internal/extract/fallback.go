package extract

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// candidateSelectors are tried in order; most news sites keep body copy in
// one of these containers.
var candidateSelectors = []string{
	"article p",
	".article-body p",
	".article-content p",
	".post-content p",
	".entry-content p",
	".content p",
	"main p",
	"p",
}

// fallbackText is the selector-walk extractor used when readability cannot
// find an article body.
func fallbackText(html []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return ""
	}

	var paragraphs []string
	for _, selector := range candidateSelectors {
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= 3 { // three paragraphs is enough to trust the selector
			break
		}
		paragraphs = paragraphs[:0]
	}
	if len(paragraphs) == 0 {
		return ""
	}

	return cleanText(strings.Join(paragraphs, "\n\n"))
}

// junkIndicators mark navigation and chrome lines that survive extraction.
var junkIndicators = []string{
	"cookie",
	"subscribe",
	"newsletter",
	"advertisement",
	"sign up",
	"sign in",
	"log in",
	"read more",
	"click here",
	"follow us",
	"share this",
	"all rights reserved",
}

// cleanText normalizes whitespace and drops boilerplate lines.
func cleanText(content string) string {
	content = strings.ReplaceAll(content, "\r", "")
	lines := strings.Split(content, "\n")

	var cleaned []string
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if len(line) < 8 {
			continue
		}

		lower := strings.ToLower(line)
		junk := false
		for _, indicator := range junkIndicators {
			if strings.Contains(lower, indicator) {
				junk = true
				break
			}
		}
		if junk {
			continue
		}

		cleaned = append(cleaned, line)
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n\n"))
}
