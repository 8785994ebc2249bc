package wordpress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeContentEmpty(t *testing.T) {
	assert.Equal(t, "", DecodeContent(""))
	assert.Equal(t, "", DecodeContent("   \n  "))
}

func TestDecodeContentParagraphs(t *testing.T) {
	got := DecodeContent("first para\n\nsecond para")
	assert.Contains(t, got, "<p>first para</p>")
	assert.Contains(t, got, "<p>second para</p>")
}

func TestDecodeContentLineBreaks(t *testing.T) {
	got := DecodeContent("line one\nline two")
	assert.Contains(t, got, "line one<br />\nline two")
}

func TestDecodeContentNoBr(t *testing.T) {
	got := DecodeContentNoBr("line one\nline two")
	assert.NotContains(t, got, "<br />")
}

func TestDecodeContentKeepsBlockTags(t *testing.T) {
	got := DecodeContent("<h2>heading</h2>\n\nbody text")
	// Block-level tags must not be wrapped in paragraphs.
	assert.NotContains(t, got, "<p><h2>")
	assert.Contains(t, got, "<h2>heading</h2>")
	assert.Contains(t, got, "<p>body text</p>")
}

func TestDecodeContentDoubleBrSplitsParagraphs(t *testing.T) {
	got := DecodeContent("first<br />\n<br />second")
	assert.Contains(t, got, "<p>first</p>")
	assert.Contains(t, got, "<p>second</p>")
}

func TestDecodeContentPreservesPre(t *testing.T) {
	src := "before\n\n<pre>raw\n  spaced\ncode</pre>\n\nafter"
	got := DecodeContent(src)
	assert.Contains(t, got, "<pre>raw\n  spaced\ncode</pre>")
	assert.Contains(t, got, "<p>before</p>")
	assert.Contains(t, got, "<p>after</p>")
}

func TestDecodeContentBlockquote(t *testing.T) {
	got := DecodeContent("<blockquote>quoted words</blockquote>")
	assert.NotContains(t, got, "<p><blockquote")
}
