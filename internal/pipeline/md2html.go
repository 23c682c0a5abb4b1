package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ErrHTMLConversion indicates Goldmark failed to render a section.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// maxHeadingLevel is the deepest heading HTML defines.
const maxHeadingLevel = 6

// GoldmarkRenderer renders section bodies as CommonMark with GFM extensions.
// Headings follow the same layout as the regex renderer: "##" becomes <h3>,
// and single-level headings are dropped because they mark section boundaries.
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

// NewGoldmarkRenderer creates a GoldmarkRenderer with GFM extensions and
// class-based syntax highlighting for fenced code.
func NewGoldmarkRenderer() *GoldmarkRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(
				util.Prioritized(&headingShifter{}, 100),
			),
		),
		goldmark.WithRendererOptions(
			// Reports embed raw HTML (figures, line breaks) like the regex engine passes through.
			html.WithUnsafe(),
		),
	)
	return &GoldmarkRenderer{md: md}
}

// RenderFragment converts a section body to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (g *GoldmarkRenderer) RenderFragment(ctx context.Context, content string) (string, error) {
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
		if err := g.md.Convert([]byte(StripFrontmatter(content)), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: string(bytes.TrimSpace(buf.Bytes()))}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// headingShifter removes level-1 headings and demotes the rest by one level.
type headingShifter struct{}

func (h *headingShifter) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	var drop []ast.Node

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if heading.Level == 1 {
			drop = append(drop, heading)
			return ast.WalkSkipChildren, nil
		}
		if heading.Level < maxHeadingLevel {
			heading.Level++
		}
		return ast.WalkSkipChildren, nil
	})

	for _, n := range drop {
		n.Parent().RemoveChild(n.Parent(), n)
	}
}
