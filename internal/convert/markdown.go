package convert

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/docpress/go-html2pdf/internal/yamlutil"
)

// htmlTemplate wraps goldmark's fragment output in a complete HTML5 document.
const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Document</title>
</head>
<body>
%s
</body>
</html>`

// FrontMatter carries document settings embedded at the top of a markdown
// payload between --- fences. All fields are optional; request fields win
// over front matter when both are set.
type FrontMatter struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	CSS    string `yaml:"css"`
}

// SplitFrontMatter separates an optional YAML front matter block from the
// markdown body. Content without a leading --- fence is returned unchanged.
func SplitFrontMatter(content string) (FrontMatter, string, error) {
	var fm FrontMatter

	// A bare "---" is a thematic break, not a front matter fence.
	const fence = "---"
	if !strings.HasPrefix(content, fence+"\n") {
		return fm, content, nil
	}

	rest := content[len(fence)+1:]
	end := strings.Index(rest, "\n"+fence)
	if end == -1 {
		return fm, content, nil
	}

	block := rest[:end]
	body := strings.TrimPrefix(rest[end+len(fence)+1:], "\n")

	if err := yamlutil.UnmarshalStrict([]byte(block), &fm); err != nil {
		return fm, "", fmt.Errorf("parsing front matter: %w", err)
	}
	return fm, body, nil
}

// MarkdownConverter converts Markdown to a standalone HTML document.
type MarkdownConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// Compile-time interface check.
var _ MarkdownConverter = (*goldmarkConverter)(nil)

// goldmarkConverter converts Markdown to HTML using goldmark (pure Go).
type goldmarkConverter struct {
	md goldmark.Markdown
}

// NewMarkdownConverter creates a converter with GFM extensions and syntax
// highlighting.
func NewMarkdownConverter() MarkdownConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	return &goldmarkConverter{md: md}
}

// ToHTML converts Markdown content to a standalone HTML5 document. Goldmark
// has no native context support, so conversion runs in a goroutine and the
// select observes cancellation.
func (c *goldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("converting markdown: %w", err)}
			return
		}
		done <- result{html: fmt.Sprintf(htmlTemplate, buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
