package entities

import "path/filepath"

// Markup tags a post's content dialect. Input markup decides whether the
// external converter is needed; output markup decides the file extension
// and header dialect.
const (
	MarkupHTML          = "html"
	MarkupWordPressHTML = "wp-html"
	MarkupMarkdown      = "markdown"
	MarkupRst           = "rst"
	MarkupAsciiDoc      = "asciidoc"
)

// Post kinds. Anything else is a custom post type coming out of a
// WordPress export.
const (
	KindArticle = "article"
	KindPage    = "page"
)

// Publication status. Origins that cannot tell drafts apart report
// everything as published.
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
)

// Post is the canonical representation every origin is parsed into.
// Optional fields are empty/nil when the origin could not provide them.
type Post struct {
	Title    string
	Content  string
	Filename string // bare output base name, no path separators
	Date     string // "YYYY-MM-DD HH:MM", Tumblr appends the offset
	Author   string
	// Categories and Tags keep source order.
	Categories []string
	Tags       []string
	Status     string
	Kind       string
	Markup     string // input markup: html, wp-html or markdown
}

// HasBareFilename reports whether Filename is its own basename. The
// output path policy asserts this before joining paths.
func (p Post) HasBareFilename() bool {
	return p.Filename == "" || filepath.Base(p.Filename) == p.Filename
}
