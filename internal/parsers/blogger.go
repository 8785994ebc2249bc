package parsers

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/liberforce/blog2pelican/internal/entities"
)

// Blogger reads the Atom export produced by Blogger's backup feature.
// Posts, pages and comments share one feed; each entry declares its
// kind through a schema category.
type Blogger struct {
	lg *slog.Logger
}

func NewBlogger(lg *slog.Logger) *Blogger {
	if lg == nil {
		lg = slog.Default()
	}
	return &Blogger{lg: lg}
}

var _ Parser = (*Blogger)(nil)

const (
	bloggerKindScheme = "http://schemas.google.com/g/2005#kind"
	bloggerTagScheme  = "http://www.blogger.com/atom/ns#"
	bloggerKindPost   = "http://schemas.google.com/blogger/2008/kind#post"
	bloggerKindPage   = "http://schemas.google.com/blogger/2008/kind#page"
)

type bloggerLink struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
}

type bloggerCategory struct {
	Scheme string `xml:"scheme,attr"`
	Term   string `xml:"term,attr"`
}

type bloggerEntry struct {
	ID         string            `xml:"id"`
	Title      string            `xml:"title"`
	Content    string            `xml:"content"`
	Published  string            `xml:"published"`
	AuthorName string            `xml:"author>name"`
	Links      []bloggerLink     `xml:"link"`
	Categories []bloggerCategory `xml:"category"`
	Draft      string            `xml:"control>draft"`
}

type bloggerFeed struct {
	Entries []bloggerEntry `xml:"entry"`
}

func (p *Blogger) Parse(ctx context.Context, src string) (Posts, error) {
	raw, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open export: %w", err)
	}
	var feed bloggerFeed
	if err := xml.Unmarshal(raw, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse export: %w", err)
	}

	return func(yield func(entities.Post, error) bool) {
		for _, entry := range feed.Entries {
			if err := ctx.Err(); err != nil {
				yieldErr(yield, err)
				return
			}
			post, ok, err := p.post(entry)
			if err != nil {
				p.lg.Warn("skipping unreadable entry", "title", entry.Title, "error", err)
				continue
			}
			if !ok {
				continue
			}
			if !yield(post, nil) {
				return
			}
		}
	}, nil
}

func (p *Blogger) post(entry bloggerEntry) (entities.Post, bool, error) {
	var kind string
	for _, cat := range entry.Categories {
		if cat.Scheme == bloggerKindScheme {
			switch cat.Term {
			case bloggerKindPost:
				kind = entities.KindArticle
			case bloggerKindPage:
				kind = entities.KindPage
			}
		}
	}
	if kind == "" {
		// Comments and settings entries are not content.
		return entities.Post{}, false, nil
	}

	filename := ""
	for _, link := range entry.Links {
		if link.Rel == "alternate" && link.Href != "" {
			base := path.Base(link.Href)
			filename = strings.TrimSuffix(base, path.Ext(base))
			break
		}
	}
	if filename == "" {
		parts := strings.Split(entry.ID, ".")
		filename = parts[len(parts)-1]
	}

	published, err := time.Parse(time.RFC3339, entry.Published)
	if err != nil {
		return entities.Post{}, false, fmt.Errorf("unreadable publication date %q: %w", entry.Published, err)
	}

	var tags []string
	for _, cat := range entry.Categories {
		if cat.Scheme == bloggerTagScheme {
			tags = append(tags, cat.Term)
		}
	}

	status := entities.StatusPublished
	if entry.Draft == "yes" {
		status = entities.StatusDraft
	}

	return entities.Post{
		Title:    entry.Title,
		Content:  entry.Content,
		Filename: filename,
		Date:     published.Format("2006-01-02 15:04"),
		Author:   entry.AuthorName,
		Tags:     tags,
		Status:   status,
		Kind:     kind,
		Markup:   entities.MarkupHTML,
	}, true, nil
}
