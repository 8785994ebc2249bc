package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRstHeader(t *testing.T) {
	h := Header{
		Title:      "My title",
		Date:       "2020-03-21 03:00",
		Author:     "TEST-GANDI",
		Categories: []string{"Life", "Computers"},
		Tags:       []string{"Capitalized", "Tags"},
		Slug:       "my-title",
	}

	expected := "My title\n" +
		"########\n" +
		":date: 2020-03-21 03:00\n" +
		":author: TEST-GANDI\n" +
		":category: Life, Computers\n" +
		":tags: Capitalized, Tags\n" +
		":slug: my-title\n" +
		"\n"
	assert.Equal(t, expected, Rst(h))
}

func TestRstUnderlineUsesDisplayWidth(t *testing.T) {
	// Each of these runes is two columns wide.
	h := Header{Title: "日本語"}
	lines := strings.Split(Rst(h), "\n")
	assert.Equal(t, strings.Repeat("#", 6), lines[1])
}

func TestMarkdownHeader(t *testing.T) {
	h := Header{
		Title:       "My title",
		Date:        "2020-03-21 03:00",
		Author:      "someone",
		Categories:  []string{"Life"},
		Tags:        []string{"a", "b"},
		Slug:        "my-title",
		Status:      "published",
		Attachments: []string{"up/x.jpg", "up/y.png"},
	}

	expected := "Title: My title\n" +
		"Date: 2020-03-21 03:00\n" +
		"Author: someone\n" +
		"Category: Life\n" +
		"Tags: a, b\n" +
		"Slug: my-title\n" +
		"Status: published\n" +
		"Attachments: up/x.jpg, up/y.png\n" +
		"\n"
	assert.Equal(t, expected, Markdown(h))
}

func TestHeadersOmitAbsentFields(t *testing.T) {
	h := Header{Title: "Bare"}

	assert.Equal(t, "Bare\n####\n\n", Rst(h))
	assert.Equal(t, "Title: Bare\n\n", Markdown(h))
	assert.Equal(t, "= Bare\n\n", AsciiDoc(h))

	for _, out := range []string{Rst(h), Markdown(h), AsciiDoc(h)} {
		assert.NotContains(t, out, "date")
		assert.NotContains(t, out, "Date")
		assert.NotContains(t, out, "tags")
	}
}

func TestAsciiDocHeader(t *testing.T) {
	h := Header{
		Title:  "Notes",
		Author: "someone",
		Date:   "2020-03-21 03:00",
		Tags:   []string{"go"},
		Slug:   "notes",
	}

	expected := "= Notes\n" +
		"someone\n" +
		"2020-03-21 03:00\n" +
		":tags: go\n" +
		":slug: notes\n" +
		"\n"
	assert.Equal(t, expected, AsciiDoc(h))
}

func TestAsciiDocDateRequiresAuthor(t *testing.T) {
	h := Header{Title: "Notes", Date: "2020-03-21 03:00"}
	assert.Equal(t, "= Notes\n\n", AsciiDoc(h))
}

func TestMarkdownHeaderRoundTrip(t *testing.T) {
	h := Header{
		Title:      "Round trip",
		Date:       "2021-01-02 10:20",
		Author:     "writer",
		Categories: []string{"One"},
		Tags:       []string{"x", "y"},
		Slug:       "round-trip",
		Status:     "draft",
	}

	fields := map[string]string{}
	for _, line := range strings.Split(strings.TrimRight(Markdown(h), "\n"), "\n") {
		key, value, ok := strings.Cut(line, ": ")
		if ok {
			fields[key] = value
		}
	}

	assert.Equal(t, h.Title, fields["Title"])
	assert.Equal(t, h.Date, fields["Date"])
	assert.Equal(t, h.Author, fields["Author"])
	assert.Equal(t, "One", fields["Category"])
	assert.Equal(t, "x, y", fields["Tags"])
	assert.Equal(t, h.Slug, fields["Slug"])
	assert.Equal(t, h.Status, fields["Status"])
}

func TestForExt(t *testing.T) {
	h := Header{Title: "t"}
	assert.Equal(t, Markdown(h), ForExt(".md")(h))
	assert.Equal(t, AsciiDoc(h), ForExt(".adoc")(h))
	assert.Equal(t, Rst(h), ForExt(".rst")(h))
}
