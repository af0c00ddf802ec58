package services

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var contentPolicy = bluemonday.NewPolicy().AllowElements("b", "strong", "i", "em", "u", "br")

// blockElements end a run of text; their text must not merge with the next block.
const blockElements = "p, div, li, h1, h2, h3, h4, h5, h6, blockquote, pre, tr, td"

// SanitizeContent keeps only inline emphasis and line breaks.
func SanitizeContent(raw string) string {
	return contentPolicy.Sanitize(raw)
}

// Excerpt strips all markup from raw and collapses whitespace runs to single spaces.
func Excerpt(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return strings.Join(strings.Fields(raw), " ")
	}
	doc.Find("script, style").Remove()
	doc.Find("br").ReplaceWithHtml(" ")
	doc.Find(blockElements).AfterHtml(" ")
	return strings.Join(strings.Fields(doc.Text()), " ")
}
