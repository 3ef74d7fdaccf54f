// Package render turns stored markdown bodies into the public read shape:
// sanitized HTML, a heading outline, and an estimated reading time.
package render

import (
	"bytes"
	"strings"

	"github.com/atelier-studio/core/internal/pkg/slug"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Raw HTML inside markdown is escaped, not passed through; bodies come from
// the admin panel but the rendered output is served to anonymous visitors.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

const wordsPerMinute = 200

// Heading is one entry of a document outline.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}

// ToHTML renders a markdown body to HTML.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Headings extracts the h2/h3 outline of a markdown body. IDs use the same
// normalization as content slugs, so anchors stay stable across re-renders.
func Headings(source string) []Heading {
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))

	var out []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Level < 2 || h.Level > 3 {
			return ast.WalkContinue, nil
		}
		title := string(h.Text(src))
		out = append(out, Heading{
			Level: h.Level,
			Text:  title,
			ID:    slug.Normalize(title),
		})
		return ast.WalkSkipChildren, nil
	})
	return out
}

// ReadingMinutes estimates reading time for a markdown body. Never below one
// minute for non-empty bodies.
func ReadingMinutes(source string) int {
	words := len(strings.Fields(source))
	if words == 0 {
		return 0
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
