package gemini

import (
	"regexp"
	"strings"
)

// Models occasionally wrap output in disclaimers or meta commentary. These
// patterns remove the common shapes without touching the summary itself.
var (
	parenNoteRe   = regexp.MustCompile(`(?i)\(\s*note:[^)]*\)`)
	bracketNoteRe = regexp.MustCompile(`(?i)\[\s*note:[^\]]*\]`)
	lineNoteRe    = regexp.MustCompile(`(?i)^\s*(note|disclaimer|caveat)\s*:`)
	leadInRe      = regexp.MustCompile(`(?i)^\s*(here is|here's)\s+(a|the)\s+summary[^:]*:\s*`)
)

// SanitizeAIText strips model disclaimers (inline parenthesized, bracketed,
// or whole "Note:" lines) and lead-in phrases from generated text.
func SanitizeAIText(s string) string {
	s = parenNoteRe.ReplaceAllString(s, "")
	s = bracketNoteRe.ReplaceAllString(s, "")
	s = leadInRe.ReplaceAllString(s, "")

	lines := strings.Split(s, "\n")
	var kept []string
	for _, line := range lines {
		if lineNoteRe.MatchString(line) {
			continue
		}
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}

	return strings.TrimSpace(strings.Join(kept, "\n"))
}
