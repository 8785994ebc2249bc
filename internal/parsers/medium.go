package parsers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/liberforce/blog2pelican/internal/entities"
)

// Medium reads the HTML files of a Medium export directory, one post
// per file.
type Medium struct {
	lg *slog.Logger
}

func NewMedium(lg *slog.Logger) *Medium {
	if lg == nil {
		lg = slog.Default()
	}
	return &Medium{lg: lg}
}

var _ Parser = (*Medium)(nil)

func (p *Medium) Parse(ctx context.Context, src string) (Posts, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open export: %w", err)
	}

	var files []string
	if info.IsDir() {
		entries, err := os.ReadDir(src)
		if err != nil {
			return nil, fmt.Errorf("failed to list export: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			files = append(files, filepath.Join(src, entry.Name()))
		}
	} else {
		files = []string{src}
	}

	return func(yield func(entities.Post, error) bool) {
		for _, file := range files {
			if err := ctx.Err(); err != nil {
				yieldErr(yield, err)
				return
			}
			post, err := p.parseFile(file)
			if err != nil {
				p.lg.Warn("skipping unreadable post", "file", file, "error", err)
				continue
			}
			if !yield(post, nil) {
				return
			}
		}
	}, nil
}

func (p *Medium) parseFile(path string) (entities.Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return entities.Post{}, fmt.Errorf("failed to open post: %w", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return entities.Post{}, fmt.Errorf("failed to parse post: %w", err)
	}

	body := doc.Find("section.e-content").First()
	if body.Length() == 0 {
		return entities.Post{}, fmt.Errorf("post has no content")
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	var date string
	status := entities.StatusDraft
	if published, ok := doc.Find("time.dt-published").First().Attr("datetime"); ok {
		parsed, err := time.Parse(time.RFC3339, published)
		if err != nil {
			return entities.Post{}, fmt.Errorf("unreadable publication date %q: %w", published, err)
		}
		date = parsed.Format("2006-01-02 15:04")
		status = entities.StatusPublished
	}

	author := strings.TrimSpace(doc.Find("a.p-author.h-card").First().Text())

	content, err := cleanMediumContent(body)
	if err != nil {
		return entities.Post{}, err
	}

	// The HTML export carries no tags or categories; the RSS feed has
	// tags but not all the posts.
	return entities.Post{
		Title:    title,
		Content:  content,
		Filename: MediumSlug(path),
		Date:     date,
		Author:   author,
		Status:   status,
		Kind:     entities.KindArticle,
		Markup:   entities.MarkupHTML,
	}, nil
}

// cleanMediumContent strips the markup that trips up downstream
// rendering: section, div and footer wrappers produce stray transitions
// in reStructuredText output, and name/id/class attributes show up as
// junk around them.
func cleanMediumContent(body *goquery.Selection) (string, error) {
	for {
		wrappers := body.Find("section, div, footer")
		if wrappers.Length() == 0 {
			break
		}
		wrappers.Each(func(_ int, s *goquery.Selection) {
			if s.Contents().Length() == 0 {
				s.Remove()
				return
			}
			s.Contents().Unwrap()
		})
	}

	body.Find("*").RemoveAttr("name").RemoveAttr("id").RemoveAttr("class")

	content, err := body.Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialise post content: %w", err)
	}
	return content, nil
}

var mediumSlugSuffix = regexp.MustCompile(`((-)+([0-9a-f]+|DRAFT))+$`)

// MediumSlug derives a slug from a Medium export filename, which looks
// like <date>_-<title>-<hex id>.html. The "_-" pair is collapsed because
// Sphinx chokes on it, and the trailing hex id (or DRAFT marker) is
// dropped.
func MediumSlug(path string) string {
	slug := filepath.Base(path)
	slug = strings.TrimSuffix(slug, filepath.Ext(slug))
	slug = strings.ReplaceAll(slug, "_-", "-")
	return mediumSlugSuffix.ReplaceAllString(slug, "")
}
