package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
)

// ErrPageRender indicates the page template failed to execute.
var ErrPageRender = errors.New("page template rendering failed")

// PageData holds the values interpolated into the page template.
type PageData struct {
	Title   string        // Escaped
	Byline  template.HTML // Inserted verbatim
	Content template.HTML // Rendered fragment, inserted verbatim
	Panel   template.HTML // Side panel, inserted verbatim
}

// PageAssembler wraps rendered fragments in the outer page template.
type PageAssembler interface {
	AssemblePage(ctx context.Context, data *PageData) (string, error)
}

// PageTemplate renders pages from a parsed html/template.
type PageTemplate struct {
	tmpl *template.Template
}

// NewPageTemplate creates a PageTemplate from template content.
// Returns error if the template cannot be parsed.
func NewPageTemplate(tmplContent string) (*PageTemplate, error) {
	tmpl, err := template.New("page").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &PageTemplate{tmpl: tmpl}, nil
}

// AssemblePage renders one page. A nil data renders nothing.
func (p *PageTemplate) AssemblePage(ctx context.Context, data *PageData) (string, error) {
	if data == nil {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}
