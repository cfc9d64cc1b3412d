// Package textclean strips HTML markup from feed text.
// Journal feeds routinely ship titles and abstracts wrapped in markup,
// which must be removed before the text reaches prompts or rendered pages.
package textclean

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Strip removes HTML tags from the given text and collapses whitespace.
// On parse failure the input is returned trimmed rather than dropped,
// so a malformed fragment never loses an article.
func Strip(htmlText string) string {
	if htmlText == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		slog.Warn("failed to parse html fragment, using raw text",
			slog.String("error", err.Error()))
		return strings.TrimSpace(htmlText)
	}

	return collapseWhitespace(doc.Text())
}

// collapseWhitespace folds runs of whitespace into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
