package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTML(t *testing.T) {
	html, err := ToHTML("# Title\n\nSome **bold** text.")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Title</h1>")
	assert.Contains(t, html, "<strong>bold</strong>")
}

func TestToHTMLEscapesRawHTML(t *testing.T) {
	html, err := ToHTML("before\n\n<script>alert(1)</script>\n\nafter")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestToHTMLTables(t *testing.T) {
	html, err := ToHTML("| a | b |\n|---|---|\n| 1 | 2 |")
	require.NoError(t, err)
	assert.Contains(t, html, "<table>")
}

func TestHeadings(t *testing.T) {
	src := "# Ignored\n\n## The Problem\n\ntext\n\n### Edge Cases\n\n## The Solution\n"
	hs := Headings(src)
	require.Len(t, hs, 3)
	assert.Equal(t, Heading{Level: 2, Text: "The Problem", ID: "the-problem"}, hs[0])
	assert.Equal(t, Heading{Level: 3, Text: "Edge Cases", ID: "edge-cases"}, hs[1])
	assert.Equal(t, Heading{Level: 2, Text: "The Solution", ID: "the-solution"}, hs[2])
}

func TestReadingMinutes(t *testing.T) {
	assert.Equal(t, 0, ReadingMinutes(""))
	assert.Equal(t, 1, ReadingMinutes("a few words only"))
	assert.Equal(t, 2, ReadingMinutes(strings.Repeat("word ", 250)))
}
