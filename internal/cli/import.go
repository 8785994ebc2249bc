// Package cli wires command line flags into import runs, one
// subcommand per supported blog origin.
package cli

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/liberforce/blog2pelican/internal/attachments"
	"github.com/liberforce/blog2pelican/internal/config"
	"github.com/liberforce/blog2pelican/internal/convert"
	"github.com/liberforce/blog2pelican/internal/pandoc"
	"github.com/liberforce/blog2pelican/internal/parsers"
	"github.com/liberforce/blog2pelican/internal/settings"
)

// ImportCommand handles one import subcommand. The origin decides
// which extra flags are registered.
type ImportCommand struct {
	Settings settings.Settings

	cfg *config.Config
}

func newImportCommand(origin settings.Origin) *ImportCommand {
	return &ImportCommand{
		Settings: settings.Settings{Origin: origin},
		cfg:      config.NewConfig(),
	}
}

func NewDotclearCommand() *ImportCommand  { return newImportCommand(settings.OriginDotclear) }
func NewWordPressCommand() *ImportCommand { return newImportCommand(settings.OriginWordPress) }
func NewMediumCommand() *ImportCommand    { return newImportCommand(settings.OriginMedium) }
func NewTumblrCommand() *ImportCommand    { return newImportCommand(settings.OriginTumblr) }
func NewFeedCommand() *ImportCommand      { return newImportCommand(settings.OriginFeed) }
func NewBloggerCommand() *ImportCommand   { return newImportCommand(settings.OriginBlogger) }

func (cmd *ImportCommand) inputUsage() string {
	switch cmd.Settings.Origin {
	case settings.OriginDotclear:
		return "Path to the Dotclear export file (required)"
	case settings.OriginWordPress:
		return "Path to the WordPress XML export (required)"
	case settings.OriginMedium:
		return "Path to the Medium export directory (required)"
	case settings.OriginFeed:
		return "Feed URL or path to a feed file (required)"
	case settings.OriginBlogger:
		return "Path to the Blogger XML export (required)"
	}
	return "Input to import (required)"
}

func (cmd *ImportCommand) ParseFlags(args []string) error {
	s := &cmd.Settings
	fs := flag.NewFlagSet(string(s.Origin), flag.ExitOnError)

	if s.Origin == settings.OriginTumblr {
		fs.StringVar(&s.Input, "blogname", "", "Name of the Tumblr blog to import (required)")
		fs.StringVar(&s.APIKey, "api-key", cmd.cfg.Tumblr.APIKey, "Tumblr API key")
	} else {
		fs.StringVar(&s.Input, "input", "", cmd.inputUsage())
	}
	fs.StringVar(&s.Output, "output", "content", "Output directory for the generated files")
	fs.StringVar(&s.Markup, "markup", "rst", "Output markup: markdown, rst or asciidoc")
	fs.BoolVar(&s.DirCat, "dir-cat", false, "Put files in directories named after their first category")
	fs.BoolVar(&s.DirPage, "dir-page", false, "Put pages in a pages/ directory")
	fs.StringVar(&s.FilterAuthor, "filter-author", "", "Import only posts by this author")
	fs.BoolVar(&s.StripRaw, "strip-raw", false, "Strip raw HTML instead of passing it through")
	fs.BoolVar(&s.DisableSlugs, "disable-slugs", false, "Do not write slug fields, letting Pelican compute them")
	fs.BoolVar(&s.Verbose, "verbose", false, "Enable verbose logging")

	if s.Origin == settings.OriginWordPress {
		fs.BoolVar(&s.WPCustPost, "wp-custpost", false, "Put custom post types in their own directories")
		fs.BoolVar(&s.WPAttach, "wp-attach", false, "Download files uploaded to WordPress as attachments")
	}

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s %s [options]\n\n", os.Args[0], s.Origin)
		fmt.Fprintf(os.Stderr, "Import a %s blog into Pelican content files.\n\n", s.Origin)
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	s.APIBase = cmd.cfg.Tumblr.APIBase
	return s.Validate()
}

func (cmd *ImportCommand) Run() error {
	s := cmd.Settings

	level := slog.LevelInfo
	if s.Verbose {
		level = slog.LevelDebug
	}
	lg := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	parser, err := parsers.ForOrigin(s.Origin, parsers.Options{
		Logger:     lg,
		WPCustPost: s.WPCustPost,
		APIBase:    s.APIBase,
		APIKey:     s.APIKey,
		Client:     http.DefaultClient,
	})
	if err != nil {
		return err
	}

	runner := convert.NewRunner(
		s,
		parser,
		pandoc.New(cmd.cfg.Pandoc.Binary, lg),
		attachments.NewDownloader(http.DefaultClient, lg),
		lg,
	)
	return runner.Run(context.Background())
}
