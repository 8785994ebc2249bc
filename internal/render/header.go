// Package render builds the metadata preamble written ahead of each
// post's content. There is one format per output dialect; fields that
// are absent are omitted entirely, never emitted blank.
package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Header carries the metadata fields a preamble can contain.
type Header struct {
	Title       string
	Date        string
	Author      string
	Categories  []string
	Tags        []string
	Slug        string
	Status      string
	Attachments []string
}

// HeaderFunc renders a Header into a preamble string.
type HeaderFunc func(Header) string

// ForExt returns the renderer matching an output file extension.
func ForExt(ext string) HeaderFunc {
	switch ext {
	case ".md":
		return Markdown
	case ".adoc":
		return AsciiDoc
	default:
		return Rst
	}
}

// Rst renders a reStructuredText preamble: the title with a '#'
// underline sized to its display width (wide runes count double),
// followed by field directives.
func Rst(h Header) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", h.Title, strings.Repeat("#", runewidth.StringWidth(h.Title)))
	writeDirectives(&b, h)
	b.WriteString("\n")
	return b.String()
}

// Markdown renders a "Key: value" preamble.
func Markdown(h Header) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", h.Title)
	if h.Date != "" {
		fmt.Fprintf(&b, "Date: %s\n", h.Date)
	}
	if h.Author != "" {
		fmt.Fprintf(&b, "Author: %s\n", h.Author)
	}
	if len(h.Categories) > 0 {
		fmt.Fprintf(&b, "Category: %s\n", strings.Join(h.Categories, ", "))
	}
	if len(h.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(h.Tags, ", "))
	}
	if h.Slug != "" {
		fmt.Fprintf(&b, "Slug: %s\n", h.Slug)
	}
	if h.Status != "" {
		fmt.Fprintf(&b, "Status: %s\n", h.Status)
	}
	if len(h.Attachments) > 0 {
		fmt.Fprintf(&b, "Attachments: %s\n", strings.Join(h.Attachments, ", "))
	}
	b.WriteString("\n")
	return b.String()
}

// AsciiDoc renders a document title line, bare author and date lines,
// then the remaining fields as attribute-style directives. The date is
// only written when an author precedes it, per the AsciiDoc header
// grammar.
func AsciiDoc(h Header) string {
	var b strings.Builder
	fmt.Fprintf(&b, "= %s\n", h.Title)
	if h.Author != "" {
		fmt.Fprintf(&b, "%s\n", h.Author)
		if h.Date != "" {
			fmt.Fprintf(&b, "%s\n", h.Date)
		}
	}
	writeTail(&b, h)
	b.WriteString("\n")
	return b.String()
}

func writeDirectives(b *strings.Builder, h Header) {
	if h.Date != "" {
		fmt.Fprintf(b, ":date: %s\n", h.Date)
	}
	if h.Author != "" {
		fmt.Fprintf(b, ":author: %s\n", h.Author)
	}
	writeTail(b, h)
}

func writeTail(b *strings.Builder, h Header) {
	if len(h.Categories) > 0 {
		fmt.Fprintf(b, ":category: %s\n", strings.Join(h.Categories, ", "))
	}
	if len(h.Tags) > 0 {
		fmt.Fprintf(b, ":tags: %s\n", strings.Join(h.Tags, ", "))
	}
	if h.Slug != "" {
		fmt.Fprintf(b, ":slug: %s\n", h.Slug)
	}
	if h.Status != "" {
		fmt.Fprintf(b, ":status: %s\n", h.Status)
	}
	if len(h.Attachments) > 0 {
		fmt.Fprintf(b, ":attachments: %s\n", strings.Join(h.Attachments, ", "))
	}
}
