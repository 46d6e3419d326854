// Package gemini is the LLM boundary: it turns extracted article text into a
// short, citation-faithful summary.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"dailybrief/internal/digest"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}

	return &Client{client: client, model: model}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// maxPromptRunes bounds the article text placed into the prompt.
const maxPromptRunes = 8000

// SummarizeArticle asks the model for a 2-5 sentence summary restricted to
// facts present in the supplied text. Returns an error on transport failure
// or when the model yields nothing usable.
func (c *Client) SummarizeArticle(ctx context.Context, article digest.Article) (string, error) {
	model := c.client.GenerativeModel(c.model)
	prompt := buildPrompt(article)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	raw := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	summary := SanitizeAIText(raw)
	if summary == "" {
		return "", fmt.Errorf("empty summary from Gemini")
	}
	return summary, nil
}

func buildPrompt(article digest.Article) string {
	text := truncateText(article.FullText, maxPromptRunes)

	dateStr := "Unknown date"
	if !article.PublishedAt.IsZero() {
		dateStr = article.PublishedAt.Format("January 2, 2006")
	}

	return fmt.Sprintf(`You write faithful, concise news summaries.

Summarize the following article in 2-5 sentences. Use only facts present in
the article text below. Do not add outside knowledge, speculation, opinions,
or invented details. Do not include preambles like "This article is about".
Respond with the summary text only.

TITLE: %s
SOURCE: %s
DATE: %s

ARTICLE TEXT:
%s

Summary:`, article.Title, article.SourceName, dateStr, text)
}

// truncateText cuts on a rune boundary, preferring to end at a sentence.
func truncateText(content string, maxRunes int) string {
	content = strings.TrimSpace(strings.ReplaceAll(content, "\r", ""))
	if utf8.RuneCountInString(content) <= maxRunes {
		return content
	}

	runes := []rune(content)
	trimmed := string(runes[:maxRunes])
	if idx := strings.LastIndex(trimmed, ". "); idx > maxRunes/4 {
		trimmed = trimmed[:idx+1]
	}
	return trimmed + "\n[TRUNCATED]"
}
