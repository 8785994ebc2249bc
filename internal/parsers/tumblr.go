package parsers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/liberforce/blog2pelican/internal/entities"
	"github.com/liberforce/blog2pelican/internal/slug"
)

// Tumblr imports posts through the Tumblr v2 API, page by page. The
// source passed to Parse is the blog name.
type Tumblr struct {
	base   string
	apiKey string
	client *http.Client
	lg     *slog.Logger
}

func NewTumblr(base, apiKey string, client *http.Client, lg *slog.Logger) *Tumblr {
	if client == nil {
		client = http.DefaultClient
	}
	if lg == nil {
		lg = slog.Default()
	}
	return &Tumblr{base: base, apiKey: apiKey, client: client, lg: lg}
}

var _ Parser = (*Tumblr)(nil)

type tumblrPost struct {
	Type        string          `json:"type"`
	BlogName    string          `json:"blog_name"`
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	SourceTitle string          `json:"source_title"`
	SourceURL   string          `json:"source_url"`
	Timestamp   int64           `json:"timestamp"`
	Format      string          `json:"format"`
	Tags        []string        `json:"tags"`
	Body        string          `json:"body"`
	Caption     string          `json:"caption"`
	Text        string          `json:"text"`
	Source      string          `json:"source"`
	URL         string          `json:"url"`
	Description string          `json:"description"`
	Photos      []tumblrPhoto   `json:"photos"`
	Player      json.RawMessage `json:"player"`
	Question    string          `json:"question"`
	Answer      string          `json:"answer"`
	AskingName  string          `json:"asking_name"`
	AskingURL   string          `json:"asking_url"`
}

type tumblrPhoto struct {
	Caption      string `json:"caption"`
	OriginalSize struct {
		URL string `json:"url"`
	} `json:"original_size"`
}

type tumblrResponse struct {
	Response struct {
		Posts []tumblrPost `json:"posts"`
	} `json:"response"`
}

func (p *Tumblr) Parse(ctx context.Context, blogname string) (Posts, error) {
	if blogname == "" {
		return nil, fmt.Errorf("no blog name given")
	}

	// Fetch the first page eagerly so bad credentials fail before any
	// output is produced.
	first, err := p.fetchPage(ctx, blogname, 0)
	if err != nil {
		return nil, err
	}

	return func(yield func(entities.Post, error) bool) {
		offset := 0
		page := first
		for len(page) > 0 {
			for _, raw := range page {
				post, err := p.post(raw)
				if err != nil {
					p.lg.Warn("skipping unreadable post", "slug", raw.Slug, "error", err)
					continue
				}
				if !yield(post, nil) {
					return
				}
			}
			offset += len(page)
			page, err = p.fetchPage(ctx, blogname, offset)
			if err != nil {
				yieldErr(yield, err)
				return
			}
		}
	}, nil
}

func (p *Tumblr) fetchPage(ctx context.Context, blogname string, offset int) ([]tumblrPost, error) {
	query := url.Values{}
	query.Set("api_key", p.apiKey)
	query.Set("offset", fmt.Sprint(offset))
	query.Set("filter", "raw")
	u := fmt.Sprintf("%s/blog/%s.tumblr.com/posts?%s", p.base, blogname, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach the tumblr API: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tumblr API answered %s", resp.Status)
	}

	var decoded tumblrResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode tumblr API answer: %w", err)
	}
	return decoded.Response.Posts, nil
}

func (p *Tumblr) post(raw tumblrPost) (entities.Post, error) {
	title := raw.Title
	if title == "" {
		title = raw.SourceTitle
	}
	if title == "" {
		title = capitalize(raw.Type)
	}

	markdown := raw.Format == entities.MarkupMarkdown

	var content string
	switch raw.Type {
	case "photo":
		lines := make([]string, 0, len(raw.Photos))
		for _, photo := range raw.Photos {
			if markdown {
				lines = append(lines, fmt.Sprintf("![%s](%s)", photo.Caption, photo.OriginalSize.URL))
			} else {
				lines = append(lines, fmt.Sprintf(`<img alt=%q src=%q />`, photo.Caption, photo.OriginalSize.URL))
			}
		}
		content = strings.Join(lines, "\n")
	case "quote":
		if markdown {
			content = raw.Text + fmt.Sprintf("\n\n&mdash; %s", raw.Source)
		} else {
			content = raw.Text + fmt.Sprintf("<p>&mdash; %s</p>", raw.Source)
		}
	case "link":
		content = viaLink(raw.URL, markdown) + raw.Description
	case "audio":
		player, err := audioPlayer(raw.Player)
		if err != nil {
			return entities.Post{}, err
		}
		content = viaLink(raw.SourceURL, markdown) + raw.Caption + player
	case "video":
		players, err := videoPlayers(raw.Player)
		if err != nil {
			return entities.Post{}, err
		}
		content = viaLink(raw.SourceURL, markdown) + raw.Caption + players
	case "answer":
		title = raw.Question
		content = fmt.Sprintf(
			"<p><a href=%q rel=\"external nofollow\">%s</a>: %s</p>\n %s",
			raw.AskingURL, raw.AskingName, raw.Question, raw.Answer,
		)
	default:
		content = raw.Body
	}
	content = strings.TrimRight(content, " \t\r\n") + "\n"

	stamp := time.Unix(raw.Timestamp, 0).UTC()

	return entities.Post{
		Title:      title,
		Content:    content,
		Filename:   stamp.Format("2006-01-02-") + p.slug(raw, title),
		Date:       stamp.Format("2006-01-02 15:04:05-0700"),
		Author:     raw.BlogName,
		Categories: []string{raw.Type},
		Tags:       raw.Tags,
		Status:     entities.StatusPublished,
		Kind:       entities.KindArticle,
		Markup:     raw.Format,
	}, nil
}

func (p *Tumblr) slug(raw tumblrPost, title string) string {
	if raw.Slug != "" {
		return raw.Slug
	}
	return slug.Slugify(title, slug.Default)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func viaLink(u string, markdown bool) string {
	if markdown {
		return fmt.Sprintf("[via](%s)\n\n", u)
	}
	return fmt.Sprintf("<p><a href=%q>via</a></p>\n", u)
}

// audioPlayer decodes the player field of an audio post, a plain embed
// string.
func audioPlayer(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var player string
	if err := json.Unmarshal(raw, &player); err != nil {
		return "", fmt.Errorf("unreadable audio player: %w", err)
	}
	return player, nil
}

// videoPlayers decodes the player field of a video post, a list of
// embeds at various widths. The embed code is false when the video is
// gone.
func videoPlayers(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var players []struct {
		EmbedCode json.RawMessage `json:"embed_code"`
	}
	if err := json.Unmarshal(raw, &players); err != nil {
		return "", fmt.Errorf("unreadable video players: %w", err)
	}

	var embeds []string
	for _, player := range players {
		var code string
		if err := json.Unmarshal(player.EmbedCode, &code); err != nil {
			// embed_code is false for videos that no longer exist.
			continue
		}
		embeds = append(embeds, code)
	}
	if len(players) > 0 && len(embeds) == 0 {
		return "<p>(This video isn't available anymore.)</p>\n", nil
	}
	return strings.Join(embeds, "\n"), nil
}
