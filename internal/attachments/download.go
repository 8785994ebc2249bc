package attachments

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
)

// Downloader fetches remote attachments into a local directory tree
// mirroring the remote path layout.
type Downloader struct {
	client *http.Client
	lg     *slog.Logger
}

func NewDownloader(client *http.Client, lg *slog.Logger) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	if lg == nil {
		lg = slog.Default()
	}
	return &Downloader{client: client, lg: lg}
}

// localPath mirrors the URL path under dir, with the leading slash and
// any parent traversal removed.
func localPath(dir, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("bad attachment url %q: %w", rawURL, err)
	}
	rel := strings.TrimPrefix(u.Path, "/")
	rel = filepath.FromSlash(rel)
	clean := filepath.Clean(rel)
	if clean == "." || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("bad attachment path %q", u.Path)
	}
	return filepath.Join(dir, clean), nil
}

// Fetch downloads every URL into dir and returns a map from original
// URL to the path of the downloaded copy, relative to dir. Failures are
// logged and left out of the map so the caller keeps the remote link.
func (d *Downloader) Fetch(ctx context.Context, dir string, urls []string) map[string]string {
	links := make(map[string]string, len(urls))
	var bar *progressbar.ProgressBar
	if len(urls) > 1 {
		bar = progressbar.Default(int64(len(urls)), "downloading attachments")
	}
	for _, rawURL := range urls {
		if bar != nil {
			bar.Add(1)
		}
		dest, err := d.fetchOne(ctx, dir, rawURL)
		if err != nil {
			d.lg.Warn("skipping attachment", "url", rawURL, "error", err)
			continue
		}
		rel, err := filepath.Rel(dir, dest)
		if err != nil {
			d.lg.Warn("skipping attachment", "url", rawURL, "error", err)
			continue
		}
		links[rawURL] = filepath.ToSlash(rel)
	}
	return links
}

func (d *Downloader) fetchOne(ctx context.Context, dir, rawURL string) (string, error) {
	dest, err := localPath(dir, rawURL)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("bad attachment url %q: %w", rawURL, err)
	}
	if u.Scheme == "file" {
		if err := copyLocal(u.Path, dest); err != nil {
			return "", err
		}
		return dest, nil
	}
	// Re-serialising through net/url percent-encodes spaces and other
	// characters WordPress leaves raw in attachment_url. file URLs are
	// exempt, their paths are used verbatim.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed: status %s", resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("failed to create attachment directory: %w", err)
	}
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create attachment file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("failed to save attachment: %w", err)
	}
	return dest, nil
}

func copyLocal(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open attachment: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create attachment directory: %w", err)
	}
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create attachment file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to save attachment: %w", err)
	}
	return nil
}
