// Package output decides where a converted post lands on disk.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/liberforce/blog2pelican/internal/entities"
	"github.com/liberforce/blog2pelican/internal/slug"
)

// maxBaseLen leaves room for a dot plus a four character extension
// inside the common 255 byte filename limit.
const maxBaseLen = 249

// invalidFilenameChars are rejected by at least one mainstream
// filesystem; a space is included so output names need no quoting.
const invalidFilenameChars = `<>:"/\|?*^% `

// SanitizeFilename makes name safe to use as an output base name. It
// reduces name to its basename, replaces invalid characters with
// hyphens, strips leading dots and truncates the result. Sanitizing an
// already-sanitized name returns it unchanged. Two posts may sanitize
// to the same name; the later one overwrites the earlier file.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidFilenameChars, r) {
			return '-'
		}
		return r
	}, name)
	name = strings.TrimLeft(name, ".")
	if name == "" {
		name = "_"
	}
	if len(name) > maxBaseLen {
		name = name[:maxBaseLen]
	}
	return name
}

// Ext selects the output file extension from the target and source
// markup. AsciiDoc targets get ".adoc", anything touching markdown gets
// ".md", everything else falls back to reStructuredText.
func Ext(outMarkup, inMarkup string) string {
	switch {
	case outMarkup == entities.MarkupAsciiDoc:
		return ".adoc"
	case inMarkup == entities.MarkupMarkdown || outMarkup == entities.MarkupMarkdown:
		return ".md"
	default:
		return ".rst"
	}
}

// PathOptions are the per-run directory layout switches.
type PathOptions struct {
	// DirPage places pages under a pages/ subdirectory.
	DirPage bool
	// DirCat places posts under a subdirectory named after their first
	// category.
	DirCat bool
	// CustPost places WordPress custom post types under a subdirectory
	// named after the post type.
	CustPost bool
	// SlugRules are threaded into the directory-name slugs.
	SlugRules []slug.Rule
}

// Path computes the output file location for a post and creates any
// subdirectories it needs. Creation is idempotent.
func Path(outputDir string, post entities.Post, ext string, opts PathOptions) (string, error) {
	if !post.HasBareFilename() {
		return "", fmt.Errorf("post %q: filename %q contains path separators", post.Title, post.Filename)
	}
	filename := SanitizeFilename(post.Filename) + ext

	kind := post.Kind
	if kind != entities.KindArticle && kind != entities.KindPage && !opts.CustPost {
		// Without the custom-post-type option, custom types are placed
		// like ordinary articles.
		kind = entities.KindArticle
	}

	var dir string
	switch {
	case kind == entities.KindPage:
		if opts.DirPage {
			dir = filepath.Join(outputDir, "pages")
		} else {
			dir = outputDir
		}
	case kind != entities.KindArticle:
		typename := slug.Slugify(kind, opts.SlugRules)
		catname := ""
		if opts.DirCat && len(post.Categories) > 0 {
			catname = slug.Slugify(post.Categories[0], opts.SlugRules)
		}
		dir = filepath.Join(outputDir, typename, catname)
	case opts.DirCat && len(post.Categories) > 0:
		// Category directories keep the category's original casing.
		catname := slug.SlugifyKeepCase(post.Categories[0], opts.SlugRules)
		dir = filepath.Join(outputDir, catname)
	default:
		dir = outputDir
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return filepath.Join(dir, filename), nil
}
