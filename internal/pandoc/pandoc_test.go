package pandoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVersion(t *testing.T) {
	testCases := []struct {
		input    string
		expected []int
	}{
		{input: "1.12.3", expected: []int{1, 12, 3}},
		{input: "2.5", expected: []int{2, 5}},
		{input: "3.1.11.1", expected: []int{3, 1, 11, 1}},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			version, err := parseVersion(tc.input)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, version)
		})
	}

	_, err := parseVersion("2.x")
	assert.Error(t, err)
}

func TestVersionLess(t *testing.T) {
	assert.True(t, versionLess([]int{1, 19}, []int{2}))
	assert.True(t, versionLess([]int{1, 15, 2}, []int{1, 16}))
	assert.False(t, versionLess([]int{2, 0}, []int{2}))
	assert.False(t, versionLess([]int{2, 5}, []int{1, 16}))
	assert.True(t, versionLess([]int{2}, []int{2, 0}))
}

func TestBuildArgsLegacy(t *testing.T) {
	args := buildArgs([]int{1, 12, 3}, "markdown", false, "out.md", "in.html")
	assert.Equal(t, []string{
		"--normalize", "--parse-raw",
		"--from=html", "--to=markdown", "--no-wrap",
		"-o", "out.md", "in.html",
	}, args)

	args = buildArgs([]int{1, 19, 2}, "rst", true, "out.rst", "in.html")
	assert.Equal(t, []string{
		"--normalize",
		"--from=html", "--to=rst", "--wrap=none",
		"-o", "out.rst", "in.html",
	}, args)
}

func TestBuildArgsModern(t *testing.T) {
	args := buildArgs([]int{2, 11}, "markdown", false, "out.md", "in.html")
	assert.Equal(t, []string{
		"-f", "html+raw_html",
		"--to=markdown-smart", "--wrap=none",
		"-o", "out.md", "in.html",
	}, args)

	args = buildArgs([]int{3, 1}, "rst", true, "out.rst", "in.html")
	assert.Equal(t, []string{
		"-f", "html",
		"--to=rst-smart", "--wrap=none",
		"-o", "out.rst", "in.html",
	}, args)
}

func TestWrapParagraphs(t *testing.T) {
	assert.Equal(t, "<p>one</p><p>two</p>", wrapParagraphs("one\ntwo\n"))
	assert.Equal(t, "<p>single</p>", wrapParagraphs("single"))
}

func TestFixMarkdownLineBreaks(t *testing.T) {
	fixed := FixMarkdownLineBreaks("line one\\\n line two\\\nline three")
	assert.Equal(t, "line one  \nline two  \nline three", fixed)

	// Running the fixup again must not change the result.
	assert.Equal(t, fixed, FixMarkdownLineBreaks(fixed))
}

func TestRewriteAttachmentLinks(t *testing.T) {
	links := map[string]string{
		"http://example.com/up/x.jpg": "up/x.jpg",
	}
	content := `<img src="http://example.com/up/x.jpg"> and ` +
		`<a href="https://example.com/up/x.jpg">same</a>`
	rewritten := RewriteAttachmentLinks(content, links)
	assert.Equal(t, `<img src="{static}up/x.jpg"> and <a href="{static}up/x.jpg">same</a>`, rewritten)
	assert.NotContains(t, rewritten, "example.com")
}

func TestSupports(t *testing.T) {
	assert.True(t, Supports("html"))
	assert.True(t, Supports("wp-html"))
	assert.False(t, Supports("markdown"))
}
