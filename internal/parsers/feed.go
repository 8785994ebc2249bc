package parsers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/liberforce/blog2pelican/internal/entities"
	"github.com/liberforce/blog2pelican/internal/slug"
)

// Feed reads any RSS or Atom feed, given as a local file or a URL.
type Feed struct {
	lg *slog.Logger
}

func NewFeed(lg *slog.Logger) *Feed {
	if lg == nil {
		lg = slog.Default()
	}
	return &Feed{lg: lg}
}

var _ Parser = (*Feed)(nil)

func (p *Feed) Parse(ctx context.Context, src string) (Posts, error) {
	feed, err := p.load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}

	return func(yield func(entities.Post, error) bool) {
		for _, item := range feed.Items {
			if err := ctx.Err(); err != nil {
				yieldErr(yield, err)
				return
			}
			if item.Title == "" {
				p.lg.Warn("skipping entry without a title", "link", item.Link)
				continue
			}
			if !yield(p.post(item), nil) {
				return
			}
		}
	}, nil
}

func (p *Feed) load(ctx context.Context, src string) (*gofeed.Feed, error) {
	fp := gofeed.NewParser()
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return fp.ParseURLWithContext(src, ctx)
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return fp.Parse(f)
}

func (p *Feed) post(item *gofeed.Item) entities.Post {
	var date string
	switch {
	case item.UpdatedParsed != nil:
		date = item.UpdatedParsed.Format("2006-01-02 15:04")
	case item.PublishedParsed != nil:
		date = item.PublishedParsed.Format("2006-01-02 15:04")
	}

	var author string
	if len(item.Authors) > 0 {
		author = item.Authors[0].Name
	}

	return entities.Post{
		Title:    item.Title,
		Content:  item.Description,
		Filename: slug.Slugify(item.Title, slug.Default),
		Date:     date,
		Author:   author,
		Tags:     item.Categories,
		Status:   entities.StatusPublished,
		Kind:     entities.KindArticle,
		Markup:   entities.MarkupHTML,
	}
}
