// ABOUTME: This file extracts readable plain text from scraped HTML fragments
// ABOUTME: Sanitizes everything before it is stored in payloads or caches
package htmltext

import (
	"strings"

	"codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// ExtractReadableText converts a scraped HTML page into plain text. It drops
// non-content elements, runs readability extraction on what remains and
// normalizes whitespace. Plain-text input passes through unchanged apart
// from whitespace normalization.
func ExtractReadableText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	if !strings.Contains(trimmed, "<") {
		return normalizeWhitespace(trimmed)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err == nil {
		doc.Find("head, script, style, noscript, title, aside, nav, header, footer").Remove()
		doc.Find("iframe, embed, object, video, audio, canvas").Remove()
		doc.Find("meta, link").Remove()

		if cleaned, err := doc.Html(); err == nil && cleaned != "" {
			trimmed = cleaned
		}
	}

	article, err := readability.FromReader(strings.NewReader(trimmed), nil)
	if err == nil {
		var textBuf strings.Builder
		if rerr := article.RenderText(&textBuf); rerr == nil {
			if text := normalizeWhitespace(textBuf.String()); text != "" {
				return text
			}
		}
	}

	// Readability gave nothing usable; fall back to stripping tags.
	return SanitizeFragment(trimmed)
}

// SanitizeFragment strips every HTML tag from a text fragment and unescapes
// entities, leaving plain text safe to store and render.
func SanitizeFragment(fragment string) string {
	sanitized := stripPolicy.Sanitize(fragment)
	return normalizeWhitespace(sanitized)
}

// Truncate shortens a string to at most limit runes. Multi-byte text is cut
// on rune boundaries, never mid-character.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func normalizeWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
