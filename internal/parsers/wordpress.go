package parsers

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/liberforce/blog2pelican/internal/entities"
)

// WordPress reads a WordPress eXtended RSS (WXR) export. Tags are
// matched by local name so exports of any WXR revision parse the same
// way; content:encoded is the one exception, qualified by namespace to
// keep it apart from excerpt:encoded.
type WordPress struct {
	lg       *slog.Logger
	custPost bool
}

func NewWordPress(lg *slog.Logger, custPost bool) *WordPress {
	if lg == nil {
		lg = slog.Default()
	}
	return &WordPress{lg: lg, custPost: custPost}
}

var _ Parser = (*WordPress)(nil)

type wxrCategory struct {
	Domain string `xml:"domain,attr"`
	Name   string `xml:",chardata"`
}

type wxrItem struct {
	Title      string        `xml:"title"`
	Content    string        `xml:"http://purl.org/rss/1.0/modules/content/ encoded"`
	Creator    string        `xml:"creator"`
	PostID     string        `xml:"post_id"`
	PostName   string        `xml:"post_name"`
	PostDate   string        `xml:"post_date"`
	PostType   string        `xml:"post_type"`
	Status     string        `xml:"status"`
	Categories []wxrCategory `xml:"category"`
}

type wxrFeed struct {
	Channel struct {
		Items []wxrItem `xml:"item"`
	} `xml:"channel"`
}

const wxrDateLayout = "2006-01-02 15:04:05"

func (p *WordPress) Parse(ctx context.Context, src string) (Posts, error) {
	raw, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open export: %w", err)
	}
	var feed wxrFeed
	if err := xml.Unmarshal(raw, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse export: %w", err)
	}

	return func(yield func(entities.Post, error) bool) {
		for _, item := range feed.Channel.Items {
			if err := ctx.Err(); err != nil {
				yieldErr(yield, err)
				return
			}
			if item.Status != "publish" && item.Status != "draft" {
				continue
			}
			if !yield(p.post(item), nil) {
				return
			}
		}
	}, nil
}

func (p *WordPress) post(item wxrItem) entities.Post {
	title := item.Title
	if title == "" {
		title = fmt.Sprintf("No title [%s]", item.PostName)
		p.lg.Warn("post is lacking a proper title", "title", title)
	}

	filename := item.PostName
	if strings.TrimSpace(filename) == "" {
		filename = item.PostID
	}

	var date string
	if item.PostDate != "0000-00-00 00:00:00" {
		parsed, err := time.Parse(wxrDateLayout, item.PostDate)
		if err != nil {
			p.lg.Warn("unreadable post date", "title", title, "date", item.PostDate)
		} else {
			date = parsed.Format("2006-01-02 15:04")
		}
	}

	var categories, tags []string
	for _, cat := range item.Categories {
		switch cat.Domain {
		case "category":
			categories = append(categories, cat.Name)
		case "post_tag":
			tags = append(tags, cat.Name)
		}
	}

	status := item.Status
	if status == "publish" {
		status = entities.StatusPublished
	}

	kind := entities.KindArticle
	switch {
	case item.PostType == "page":
		kind = entities.KindPage
	case p.custPost && item.PostType != "post" && item.PostType != "attachment":
		kind = item.PostType
	}

	return entities.Post{
		Title:      title,
		Content:    item.Content,
		Filename:   filename,
		Date:       date,
		Author:     item.Creator,
		Categories: categories,
		Tags:       tags,
		Status:     status,
		Kind:       kind,
		Markup:     entities.MarkupWordPressHTML,
	}
}
