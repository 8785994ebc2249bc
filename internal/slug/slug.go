// Package slug derives URL- and filesystem-safe identifiers from titles.
//
// The substitution rules are an explicit value threaded into every call
// instead of process-wide state, so a caller can swap them out; Default
// mirrors the rules blog engines apply to post titles (strip punctuation,
// trim, collapse separator runs).
package slug

import (
	"regexp"
	"strings"
)

// Rule is a single regex substitution applied during slugification.
type Rule struct {
	Pattern *regexp.Regexp
	Replace string
}

// Default is the built-in substitution table. Rules run in order on the
// lowercased input: drop everything that is not a letter, digit,
// whitespace or hyphen, trim the ends, then collapse whitespace/hyphen
// runs into a single hyphen.
var Default = []Rule{
	{regexp.MustCompile(`[^\p{L}\p{N}\s_-]`), ""},
	{regexp.MustCompile(`\A\s+`), ""},
	{regexp.MustCompile(`\s+\z`), ""},
	{regexp.MustCompile(`[-\s]+`), "-"},
}

// Slugify applies rules to value and lowercases the result.
func Slugify(value string, rules []Rule) string {
	return strings.ToLower(SlugifyKeepCase(value, rules))
}

// SlugifyKeepCase applies rules without folding letter case. The
// per-category output directories keep the category's original casing.
func SlugifyKeepCase(value string, rules []Rule) string {
	for _, r := range rules {
		value = r.Pattern.ReplaceAllString(value, r.Replace)
	}
	return value
}
