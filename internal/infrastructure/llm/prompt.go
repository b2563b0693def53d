package llm

import (
	"fmt"
	"strings"
	"time"

	"newsroom/internal/domain"
)

// Prompt bounds keeping the request inside comfortable token limits.
const (
	maxPromptArticles = 50
	maxExcerptRunes   = 200
)

const promptTemplate = `The following are the news articles collected today.
Analyze them and write a summary report in markdown format.

Requirements:
1. Group the main stories by category
2. Summarize the key points of each story concisely
3. Use markdown formatting (headings, lists, emphasis)
4. Organize the report into sections by date
5. Write the report in %s

Articles:
%s

Write the summary report for the articles above:`

// BuildPrompt renders up to maxPromptArticles articles into the instruction
// template. Articles beyond the cap are dropped from the prompt only; the
// caller's slice is untouched.
func BuildPrompt(articles []domain.Article, language string) string {
	var blocks strings.Builder
	for i, article := range articles {
		if i == maxPromptArticles {
			break
		}
		fmt.Fprintf(&blocks, "\n%d. **%s**\n", i+1, article.Title)
		fmt.Fprintf(&blocks, "   - Link: %s\n", article.Link)
		fmt.Fprintf(&blocks, "   - Summary: %s\n", truncate(article.Summary, maxExcerptRunes))
		fmt.Fprintf(&blocks, "   - Source: %s\n", article.Source)
		fmt.Fprintf(&blocks, "   - Published: %s\n", article.Published.Format(time.RFC3339))
	}
	return fmt.Sprintf(promptTemplate, language, blocks.String())
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
