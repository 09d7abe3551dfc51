package normalizer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/anfieldrd/kopwatch/internal/common"
)

// TextNormalizer reduces raw page markup to a canonical line sequence so
// that formatting churn in the source never produces a false change signal.
type TextNormalizer struct {
	logger zerolog.Logger
}

// NewTextNormalizer creates a new TextNormalizer instance.
func NewTextNormalizer(logger zerolog.Logger) *TextNormalizer {
	return &TextNormalizer{
		logger: logger.With().Str("component", "TextNormalizer").Logger(),
	}
}

// Normalize extracts plain text from rawMarkup and collapses it to trimmed,
// non-empty lines joined by single newlines. When selector is non-empty and
// matches an element, extraction is scoped to that element; a selector that
// matches nothing degrades to whole-document text with a warning rather
// than an error. Truncation is the caller's responsibility.
func (tn *TextNormalizer) Normalize(rawMarkup string, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawMarkup))
	if err != nil {
		return "", common.NewParseError("", "failed to parse HTML content", err)
	}

	// Non-content elements would otherwise leak JS and CSS into the text.
	doc.Find("script, style, noscript").Remove()

	var text string
	if selector != "" {
		scoped := doc.Find(selector)
		if scoped.Length() > 0 {
			text = scoped.Text()
		} else {
			tn.logger.Warn().
				Str("selector", selector).
				Msg("Selector matched nothing, falling back to whole document text")
			text = doc.Text()
		}
	} else {
		text = doc.Text()
	}

	return CollapseLines(text), nil
}

// CollapseLines trims every line, drops empty ones and rejoins the rest
// with single newlines. Applying it to already-collapsed text is a no-op.
func CollapseLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}

	return strings.Join(kept, "\n")
}
