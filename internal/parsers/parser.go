// Package parsers turns blog exports of various origins into a lazy
// stream of canonical posts. Each parser validates its source eagerly,
// then yields posts one at a time; records it cannot make sense of are
// logged and skipped rather than aborting the whole run.
package parsers

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"net/http"

	"github.com/liberforce/blog2pelican/internal/entities"
	"github.com/liberforce/blog2pelican/internal/settings"
)

// Posts is a lazy sequence of parsed posts. A non-nil error element
// reports a failure that ends the sequence.
type Posts = iter.Seq2[entities.Post, error]

// Parser reads one export format into canonical posts. Errors opening
// or recognising the source are returned eagerly; errors tied to a
// single record are handled inside the sequence.
type Parser interface {
	Parse(ctx context.Context, src string) (Posts, error)
}

// Options carries the origin-specific knobs needed to build a parser.
type Options struct {
	Logger     *slog.Logger
	WPCustPost bool
	APIBase    string
	APIKey     string
	Client     *http.Client
}

// ForOrigin returns the parser handling the given origin.
func ForOrigin(origin settings.Origin, opts Options) (Parser, error) {
	switch origin {
	case settings.OriginDotclear:
		return NewDotclear(opts.Logger), nil
	case settings.OriginWordPress:
		return NewWordPress(opts.Logger, opts.WPCustPost), nil
	case settings.OriginMedium:
		return NewMedium(opts.Logger), nil
	case settings.OriginTumblr:
		return NewTumblr(opts.APIBase, opts.APIKey, opts.Client, opts.Logger), nil
	case settings.OriginFeed:
		return NewFeed(opts.Logger), nil
	case settings.OriginBlogger:
		return NewBlogger(opts.Logger), nil
	}
	return nil, fmt.Errorf("unknown origin %q", origin)
}

// yieldErr ends a sequence with a fatal mid-stream error.
func yieldErr(yield func(entities.Post, error) bool, err error) {
	yield(entities.Post{}, err)
}
