// Package settings holds the per-run options shared by every import
// command, resolved from flags and environment configuration.
package settings

import (
	"errors"
	"fmt"

	"github.com/liberforce/blog2pelican/internal/entities"
)

// Origin identifies the kind of export being imported.
type Origin string

const (
	OriginDotclear  Origin = "dotclear"
	OriginWordPress Origin = "wordpress"
	OriginMedium    Origin = "medium"
	OriginTumblr    Origin = "tumblr"
	OriginFeed      Origin = "feed"
	OriginBlogger   Origin = "blogger"
)

// Settings describes one import run.
type Settings struct {
	Origin Origin
	Input  string // Export file, directory, feed URL or blog name
	Output string // Destination content directory
	Markup string // Target markup: markdown, rst or asciidoc

	DirCat       bool   // Place articles under per-category directories
	DirPage      bool   // Place pages under a pages/ directory
	FilterAuthor string // Keep only posts by this author
	StripRaw     bool   // Drop raw HTML blocks instead of passing them through
	DisableSlugs bool   // Do not emit slug fields in headers
	Verbose      bool

	// WordPress only
	WPCustPost bool // Put custom post types in their own directories
	WPAttach   bool // Download attachments referenced by the export

	// Tumblr only
	APIKey  string
	APIBase string
}

var validMarkup = map[string]struct{}{
	entities.MarkupMarkdown: {},
	entities.MarkupRst:      {},
	entities.MarkupAsciiDoc: {},
}

// Validate checks that the run is coherent before any work starts.
func (s Settings) Validate() error {
	if s.Input == "" {
		return errors.New("no input given")
	}
	if s.Output == "" {
		return errors.New("no output directory given")
	}
	if _, ok := validMarkup[s.Markup]; !ok {
		return fmt.Errorf("unsupported markup %q", s.Markup)
	}
	if s.WPAttach && s.Origin != OriginWordPress {
		return errors.New("attachment download is only available for wordpress exports")
	}
	if s.WPCustPost && s.Origin != OriginWordPress {
		return errors.New("custom post type handling is only available for wordpress exports")
	}
	if s.Origin == OriginTumblr && s.APIKey == "" {
		return errors.New("a tumblr API key is required")
	}
	return nil
}
