// Package pandoc wraps the external pandoc binary used to turn
// HTML-family content into the target markup. The invocation shape
// depends on the installed major version, so the binary is probed once
// and the argument list is chosen from the detected version tuple.
package pandoc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/liberforce/blog2pelican/internal/entities"
	"github.com/liberforce/blog2pelican/internal/output"
	"github.com/liberforce/blog2pelican/internal/wordpress"
)

// ErrUnavailable reports that the pandoc binary could not be located or
// version-probed. Posts that need conversion are skipped (not fatal)
// when this is the failure.
var ErrUnavailable = errors.New("pandoc is not available")

// Pandoc is the markup converter adapter.
type Pandoc struct {
	bin     string
	lg      *slog.Logger
	version []int
	probed  bool
}

// New returns an adapter invoking the given binary name or path.
func New(bin string, lg *slog.Logger) *Pandoc {
	if bin == "" {
		bin = "pandoc"
	}
	if lg == nil {
		lg = slog.Default()
	}
	return &Pandoc{bin: bin, lg: lg}
}

// Supports reports whether content in the given input markup needs this
// converter. Only the HTML family does; markdown content is written out
// untouched.
func Supports(markup string) bool {
	return markup == entities.MarkupHTML || markup == entities.MarkupWordPressHTML
}

// Version returns the probed version tuple, probing on first use. An
// empty tuple means the tool is unavailable.
func (p *Pandoc) Version() []int {
	if !p.probed {
		p.version = p.probe()
		p.probed = true
	}
	return p.version
}

// Available reports whether the binary was found and version-probed.
func (p *Pandoc) Available() bool {
	return len(p.Version()) > 0
}

func (p *Pandoc) probe() []int {
	out, err := exec.Command(p.bin, "--version").Output()
	if err != nil {
		p.lg.Warn("pandoc version unknown", "error", err)
		return nil
	}
	fields := strings.Fields(string(out))
	if len(fields) < 2 {
		p.lg.Warn("pandoc version unknown", "output", string(out))
		return nil
	}
	version, err := parseVersion(fields[1])
	if err != nil {
		p.lg.Warn("pandoc version unknown", "error", err)
		return nil
	}
	return version
}

func parseVersion(s string) ([]int, error) {
	parts := strings.Split(s, ".")
	version := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("bad version component %q: %w", part, err)
		}
		version = append(version, n)
	}
	return version, nil
}

// versionLess compares version tuples lexicographically, the missing
// components of the shorter tuple counting as smaller.
func versionLess(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// buildArgs assembles the pandoc argument list for the detected
// version. Pre-2.x releases use --normalize/--parse-raw and switched
// wrap flags at 1.16; 2.x+ moved raw passthrough into the reader name
// and smart punctuation into the writer name.
func buildArgs(version []int, outMarkup string, stripRaw bool, outPath, htmlPath string) []string {
	var args []string
	if versionLess(version, []int{2}) {
		args = append(args, "--normalize")
		if !stripRaw {
			args = append(args, "--parse-raw")
		}
		args = append(args, "--from=html", "--to="+outMarkup)
		if versionLess(version, []int{1, 16}) {
			args = append(args, "--no-wrap")
		} else {
			args = append(args, "--wrap=none")
		}
		args = append(args, "-o", outPath, htmlPath)
		return args
	}
	if stripRaw {
		args = append(args, "-f", "html")
	} else {
		args = append(args, "-f", "html+raw_html")
	}
	args = append(args, "--to="+outMarkup+"-smart", "--wrap=none", "-o", outPath, htmlPath)
	return args
}

// wrapParagraphs turns line-oriented raw content into minimally valid
// HTML, one <p> per line.
func wrapParagraphs(content string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(content, "\n"), "\n") {
		b.WriteString("<p>")
		b.WriteString(line)
		b.WriteString("</p>")
	}
	return b.String()
}

// FixMarkdownLineBreaks rewrites pandoc's backslash hard line breaks to
// the two-trailing-spaces convention. Applying it twice is a no-op.
func FixMarkdownLineBreaks(content string) string {
	content = strings.ReplaceAll(content, "\\\n ", "  \n")
	content = strings.ReplaceAll(content, "\\\n", "  \n")
	return content
}

// RewriteAttachmentLinks replaces every occurrence of a downloaded
// attachment's remote URL, under both the http and https schemes, with
// a static reference to its local relative path.
func RewriteAttachmentLinks(content string, links map[string]string) string {
	for oldURL, newPath := range links {
		httpURL := strings.Replace(oldURL, "https://", "http://", 1)
		httpsURL := strings.Replace(oldURL, "http://", "https://", 1)
		for _, u := range []string{httpURL, httpsURL} {
			content = strings.ReplaceAll(content, u, "{static}"+newPath)
		}
	}
	return content
}

// Convert runs post content through pandoc into outPath and returns the
// converted text with markdown line breaks fixed and attachment links
// rewritten. The HTML intermediate is written next to the output and
// removed again no matter how conversion ends. A missing binary yields
// ErrUnavailable; a binary that starts and then fails is an ordinary
// error, fatal to the run.
func (p *Pandoc) Convert(ctx context.Context, post entities.Post, outMarkup string, stripRaw bool, links map[string]string, outPath, scratchDir string) (string, error) {
	if !p.Available() {
		return "", ErrUnavailable
	}

	var html string
	if post.Markup == entities.MarkupWordPressHTML {
		html = wordpress.DecodeContent(post.Content)
	} else {
		html = wrapParagraphs(post.Content)
	}

	htmlPath := filepath.Join(scratchDir, output.SanitizeFilename(post.Filename)+".html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("failed to write conversion scratch file: %w", err)
	}
	defer os.Remove(htmlPath)

	args := buildArgs(p.Version(), outMarkup, stripRaw, outPath, htmlPath)
	cmd := exec.CommandContext(ctx, p.bin, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("pandoc failed for %q: %w: %s", post.Title, err, strings.TrimSpace(string(out)))
	}

	converted, err := os.ReadFile(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to read converted output: %w", err)
	}
	content := string(converted)
	if outMarkup == entities.MarkupMarkdown {
		content = FixMarkdownLineBreaks(content)
	}
	if len(links) > 0 {
		content = RewriteAttachmentLinks(content, links)
	}
	return content, nil
}
