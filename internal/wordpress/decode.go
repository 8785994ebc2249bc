// Package wordpress decodes the encoded-block content dialect found in
// WordPress exports. Post bodies are stored with paragraph boundaries
// implied by blank lines rather than marked up, so they must be
// rebuilt into well-formed HTML before conversion.
package wordpress

import (
	"fmt"
	"regexp"
	"strings"
)

const allBlocks = `(?:table|thead|tfoot|caption|col|colgroup|tbody|tr|` +
	`td|th|div|dl|dd|dt|ul|ol|li|pre|select|option|form|` +
	`map|area|blockquote|address|math|style|p|h[1-6]|hr|` +
	`fieldset|noscript|samp|legend|section|article|aside|` +
	`hgroup|header|footer|nav|figure|figcaption|details|` +
	`menu|summary)`

var (
	reDoubleBr          = regexp.MustCompile(`<br />\s*<br />`)
	reBlockOpen         = regexp.MustCompile(`(<` + allBlocks + `[^>]*>)`)
	reBlockClose        = regexp.MustCompile(`(</` + allBlocks + `>)`)
	reParam             = regexp.MustCompile(`\s*<param([^>]*)>\s*`)
	reEmbedClose        = regexp.MustCompile(`\s*</embed>\s*`)
	reParaSplit         = regexp.MustCompile(`\n\s*\n`)
	reEmptyP            = regexp.MustCompile(`<p>\s*</p>`)
	reTextCloser        = regexp.MustCompile(`<p>([^<]+)</(div|address|form)>`)
	reLoneBlockInP      = regexp.MustCompile(`<p>\s*(</?` + allBlocks + `[^>]*>)\s*</p>`)
	reListInP           = regexp.MustCompile(`<p>(<li.*)</p>`)
	reBlockquoteOpen    = regexp.MustCompile(`<p><blockquote([^>]*)>`)
	rePBeforeBlock      = regexp.MustCompile(`<p>\s*(</?` + allBlocks + `[^>]*>)`)
	reBlockBeforePClose = regexp.MustCompile(`(</?` + allBlocks + `[^>]*>)\s*</p>`)
	reExistingBr        = regexp.MustCompile(`<br />\s*\n`)
	reNewlineToBr       = regexp.MustCompile(`\s*\n`)
	reBrAfterBlock      = regexp.MustCompile(`(</?` + allBlocks + `[^>]*>)\s*<br />`)
	reBrBeforeBlock     = regexp.MustCompile(`<br />(\s*</?(?:p|li|div|dl|dd|dt|th|pre|td|ul|ol)[^>]*>)`)
)

// DecodeContent rebuilds paragraph markup, converting single newlines
// to <br /> line breaks.
func DecodeContent(content string) string {
	return decode(content, true)
}

// DecodeContentNoBr rebuilds paragraph markup without turning single
// newlines into line breaks.
func DecodeContentNoBr(content string) string {
	return decode(content, false)
}

func decode(content string, br bool) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	content += "\n"

	// <pre> blocks keep their formatting verbatim: stash them behind
	// placeholders and restore them at the end.
	preTags := map[string]string{}
	if strings.Contains(content, "<pre") {
		preParts := strings.Split(content, "</pre>")
		lastPre := preParts[len(preParts)-1]
		preParts = preParts[:len(preParts)-1]
		content = ""

		for i, prePart := range preParts {
			start := strings.Index(prePart, "<pre")
			if start == -1 {
				content += prePart
				continue
			}
			name := fmt.Sprintf("<pre wp-pre-tag-%d></pre>", i)
			preTags[name] = prePart[start:] + "</pre>"
			content += prePart[:start] + name
		}
		content += lastPre
	}

	content = reDoubleBr.ReplaceAllString(content, "\n\n")
	content = reBlockOpen.ReplaceAllString(content, "\n$1")
	content = reBlockClose.ReplaceAllString(content, "$1\n\n")
	if strings.Contains(content, "<object") {
		// no <p> inside object/embed
		content = reParam.ReplaceAllString(content, "<param$1>")
		content = reEmbedClose.ReplaceAllString(content, "</embed>")
	}

	var paragraphs []string
	for _, p := range reParaSplit.Split(content, -1) {
		if p != "" {
			paragraphs = append(paragraphs, "<p>"+strings.TrimSpace(p)+"</p>\n")
		}
	}
	content = strings.Join(paragraphs, "")

	// Under certain strange conditions the split can create a P of
	// entirely whitespace.
	content = reEmptyP.ReplaceAllString(content, "")
	content = reTextCloser.ReplaceAllString(content, "<p>$1</p></$2>")
	// don't wrap block tags
	content = reLoneBlockInP.ReplaceAllString(content, "$1")
	// problem with nested lists
	content = reListInP.ReplaceAllString(content, "$1")
	content = reBlockquoteOpen.ReplaceAllString(content, "<blockquote$1><p>")
	content = strings.ReplaceAll(content, "</blockquote></p>", "</p></blockquote>")
	content = rePBeforeBlock.ReplaceAllString(content, "$1")
	content = reBlockBeforePClose.ReplaceAllString(content, "$1")

	if br {
		// RE2 has no lookbehind, so protect newlines already carrying a
		// break before inserting the rest.
		content = reExistingBr.ReplaceAllString(content, "<wp-br-keep />")
		content = reNewlineToBr.ReplaceAllString(content, "<br />\n")
		content = strings.ReplaceAll(content, "<wp-br-keep />", "<br />\n")
	}
	content = reBrAfterBlock.ReplaceAllString(content, "$1")
	content = reBrBeforeBlock.ReplaceAllString(content, "$1")
	content = strings.ReplaceAll(content, "\n</p>", "</p>")

	for name, pre := range preTags {
		content = strings.ReplaceAll(content, name, pre)
	}

	return content
}
