// Package convert drives a whole import run: it streams posts out of a
// parser, converts their content to the target markup and writes
// header plus content files into the output tree.
package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/liberforce/blog2pelican/internal/attachments"
	"github.com/liberforce/blog2pelican/internal/entities"
	"github.com/liberforce/blog2pelican/internal/output"
	"github.com/liberforce/blog2pelican/internal/pandoc"
	"github.com/liberforce/blog2pelican/internal/parsers"
	"github.com/liberforce/blog2pelican/internal/render"
	"github.com/liberforce/blog2pelican/internal/settings"
	"github.com/liberforce/blog2pelican/internal/slug"
)

// Converter turns HTML-family post content into the target markup.
type Converter interface {
	Available() bool
	Convert(ctx context.Context, post entities.Post, outMarkup string, stripRaw bool, links map[string]string, outPath, scratchDir string) (string, error)
}

// Fetcher mirrors remote attachments into the output tree.
type Fetcher interface {
	Fetch(ctx context.Context, dir string, urls []string) map[string]string
}

// Runner executes one import run.
type Runner struct {
	settings  settings.Settings
	parser    parsers.Parser
	converter Converter
	fetcher   Fetcher
	lg        *slog.Logger
}

func NewRunner(s settings.Settings, parser parsers.Parser, converter Converter, fetcher Fetcher, lg *slog.Logger) *Runner {
	if lg == nil {
		lg = slog.Default()
	}
	return &Runner{
		settings:  s,
		parser:    parser,
		converter: converter,
		fetcher:   fetcher,
		lg:        lg,
	}
}

// Run imports every post from the configured source. Posts that need
// pandoc when it is missing are collected and reported at the end; a
// pandoc invocation that starts and then fails aborts the run.
func (r *Runner) Run(ctx context.Context) error {
	if err := os.MkdirAll(r.settings.Output, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", r.settings.Output, err)
	}

	var index attachments.Index
	if r.settings.WPAttach {
		var err error
		index, err = attachments.BuildIndex(r.settings.Input)
		if err != nil {
			return err
		}
	}

	posts, err := r.parser.Parse(ctx, r.settings.Input)
	if err != nil {
		return err
	}

	scratchDir, err := os.MkdirTemp("", "blog2pelican-")
	if err != nil {
		return fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratchDir)

	var converted int
	var needPandoc []string
	for post, err := range posts {
		if err != nil {
			return err
		}
		if r.settings.FilterAuthor != "" && post.Author != r.settings.FilterAuthor {
			continue
		}
		err := r.convertPost(ctx, post, index, scratchDir)
		switch {
		case errors.Is(err, pandoc.ErrUnavailable):
			needPandoc = append(needPandoc, post.Filename)
		case err != nil:
			return err
		default:
			converted++
		}
	}

	if r.settings.WPAttach {
		if urls := index.URLs(attachments.Orphan); len(urls) > 0 {
			r.lg.Info("downloading attachments without a parent post", "count", len(urls))
			r.fetcher.Fetch(ctx, r.settings.Output, urls)
		}
	}

	if len(needPandoc) > 0 {
		r.lg.Error("pandoc must be installed to import the following posts:\n  " +
			strings.Join(needPandoc, "\n  "))
	}
	r.lg.Info("import finished", "posts", converted, "skipped", len(needPandoc))
	return nil
}

func (r *Runner) convertPost(ctx context.Context, post entities.Post, index attachments.Index, scratchDir string) error {
	if !post.HasBareFilename() {
		r.lg.Warn("skipping post with an unsafe filename", "filename", post.Filename)
		return nil
	}
	if pandoc.Supports(post.Markup) && !r.converter.Available() {
		return pandoc.ErrUnavailable
	}

	var links map[string]string
	if r.settings.WPAttach {
		if urls := index.URLs(post.Filename); len(urls) > 0 {
			links = r.fetcher.Fetch(ctx, r.settings.Output, urls)
		}
	}

	headerSlug := post.Filename
	if r.settings.DisableSlugs {
		headerSlug = ""
	}

	ext := output.Ext(r.settings.Markup, post.Markup)
	outPath, err := output.Path(r.settings.Output, post, ext, output.PathOptions{
		DirPage:   r.settings.DirPage,
		DirCat:    r.settings.DirCat,
		CustPost:  r.settings.WPCustPost,
		SlugRules: slug.Default,
	})
	if err != nil {
		return err
	}
	r.lg.Info("writing post", "path", outPath)

	content := post.Content
	if pandoc.Supports(post.Markup) {
		content, err = r.converter.Convert(ctx, post, r.settings.Markup, r.settings.StripRaw, links, outPath, scratchDir)
		if err != nil {
			return err
		}
	}

	header := render.ForExt(ext)(render.Header{
		Title:       post.Title,
		Date:        post.Date,
		Author:      post.Author,
		Categories:  post.Categories,
		Tags:        post.Tags,
		Slug:        headerSlug,
		Status:      post.Status,
		Attachments: sortedValues(links),
	})

	if err := os.WriteFile(outPath, []byte(header+content), 0o644); err != nil {
		return fmt.Errorf("failed to write post: %w", err)
	}
	return nil
}

func sortedValues(links map[string]string) []string {
	if len(links) == 0 {
		return nil
	}
	values := make([]string, 0, len(links))
	for _, v := range links {
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}
