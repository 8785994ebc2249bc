package parsers

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/elliotchance/phpserialize"

	"github.com/liberforce/blog2pelican/internal/entities"
	"github.com/liberforce/blog2pelican/internal/slug"
)

// Dotclear reads the flat backup format produced by Dotclear 2. The
// file is a sequence of sections, each opened by a bracketed header
// line and closed by a blank line; records are CSV-like lines with
// quoted fields joined by "," sequences.
type Dotclear struct {
	lg *slog.Logger
}

func NewDotclear(lg *slog.Logger) *Dotclear {
	if lg == nil {
		lg = slog.Default()
	}
	return &Dotclear{lg: lg}
}

var _ Parser = (*Dotclear)(nil)

// Field positions within a [post] record.
const (
	dcUserID       = 2
	dcCatIDs       = 3
	dcPostDate     = 4
	dcFormat       = 10
	dcTitle        = 13
	dcExcerpt      = 14
	dcExcerptXHTML = 15
	dcContent      = 16
	dcContentXHTML = 17
	dcMeta         = 20
	dcFieldCount   = 21
)

func (p *Dotclear) Parse(ctx context.Context, src string) (Posts, error) {
	categories, records, err := p.readSections(src)
	if err != nil {
		return nil, err
	}
	p.lg.Info("export read", "posts", len(records))

	return func(yield func(entities.Post, error) bool) {
		for _, record := range records {
			if err := ctx.Err(); err != nil {
				yieldErr(yield, err)
				return
			}
			post, err := p.parseRecord(record, categories)
			if err != nil {
				p.lg.Warn("skipping unreadable post", "error", err)
				continue
			}
			if !yield(post, nil) {
				return
			}
		}
	}, nil
}

// readSections collects the category id-to-title table and the raw
// [post] record lines. Each section ends at the first blank line.
func (p *Dotclear) readSections(src string) (map[string]string, []string, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open export: %w", err)
	}
	defer f.Close()

	categories := make(map[string]string)
	var records []string
	inCat, inPost := false, false

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "[category"):
			inCat = true
		case strings.HasPrefix(line, "[post"):
			inPost = true
		case inCat:
			if line == "" {
				inCat = false
				continue
			}
			fields := splitRecord(line)
			if len(fields) >= 3 {
				categories[fields[0]] = fields[2]
			}
		case inPost:
			if line == "" {
				inPost = false
				continue
			}
			records = append(records, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read export: %w", err)
	}
	return categories, records, nil
}

// splitRecord undoes the CSV-like quoting of a backup line.
func splitRecord(line string) []string {
	line = strings.TrimPrefix(line, `"`)
	line = strings.TrimSuffix(line, `"`)
	return strings.Split(line, `","`)
}

func (p *Dotclear) parseRecord(record string, categoryTitles map[string]string) (entities.Post, error) {
	fields := splitRecord(record)
	if len(fields) < dcFieldCount {
		return entities.Post{}, fmt.Errorf("post record has %d fields, want at least %d", len(fields), dcFieldCount)
	}

	title := fields[dcTitle]
	markup := fields[dcFormat]
	var content string
	if markup == entities.MarkupMarkdown {
		content = fields[dcExcerpt] + fields[dcContent]
	} else {
		// Dotclear stores anything that is not markdown as XHTML.
		content = fields[dcExcerptXHTML] + fields[dcContentXHTML]
		content = strings.ReplaceAll(content, `\n`, "")
		content = strings.ReplaceAll(content, `\`, "")
		markup = entities.MarkupHTML
	}

	var categories []string
	if fields[dcCatIDs] != "" {
		for _, id := range strings.Split(fields[dcCatIDs], ",") {
			name, ok := categoryTitles[id]
			if !ok {
				p.lg.Warn("unknown category id", "id", id)
				continue
			}
			categories = append(categories, strings.TrimSpace(name))
		}
	}

	return entities.Post{
		Title:      title,
		Content:    content,
		Filename:   slug.Slugify(title, slug.Default),
		Date:       dropSeconds(fields[dcPostDate]),
		Author:     fields[dcUserID],
		Categories: categories,
		Tags:       p.tags(fields[dcMeta], title),
		Status:     entities.StatusPublished,
		Kind:       entities.KindArticle,
		Markup:     markup,
	}, nil
}

// dropSeconds trims a "YYYY-MM-DD HH:MM:SS" stamp to minute precision.
func dropSeconds(date string) string {
	parts := strings.Split(date, ":")
	if len(parts) < 2 {
		return date
	}
	return strings.Join(parts[:2], ":")
}

// tags decodes the PHP-serialized post metadata. Posts without usable
// tags get a sentinel tag so they stay easy to find afterwards.
func (p *Dotclear) tags(meta, title string) []string {
	unclassified := []string{"Unclassified"}

	meta = strings.ReplaceAll(meta, `\`, "")
	if meta == "" {
		p.lg.Debug("post has no metadata", "title", title)
		return unclassified
	}

	decoded, err := phpserialize.UnmarshalAssociativeArray([]byte(meta))
	if err != nil {
		p.lg.Warn("unreadable post metadata", "title", title, "error", err)
		return unclassified
	}
	rawTags, ok := decoded["tag"]
	if !ok {
		p.lg.Debug("post has no tags", "title", title)
		return unclassified
	}
	tagMap, ok := rawTags.(map[interface{}]interface{})
	if !ok || len(tagMap) == 0 {
		p.lg.Debug("post has no tags", "title", title)
		return unclassified
	}

	// PHP array keys are not guaranteed to be 0..n-1, only ordered.
	keys := make([]int64, 0, len(tagMap))
	for key := range tagMap {
		if k, ok := key.(int64); ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	tags := make([]string, 0, len(keys))
	for _, k := range keys {
		if tag, ok := tagMap[k].(string); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}
