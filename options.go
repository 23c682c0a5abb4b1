package md2site

import (
	"context"
)

// Renderer converts one section body to an HTML fragment.
// Implementations must be safe for concurrent use.
type Renderer interface {
	RenderFragment(ctx context.Context, content string) (string, error)
}

// Option configures a Builder.
type Option func(*Builder)

// builderConfig holds settings resolved by NewBuilder.
type builderConfig struct {
	engine       string
	workers      int
	assetPath    string
	assetPrefix  string
	byline       string
	pageTemplate string
	normalize    bool
}

// WithEngine selects a built-in renderer by name.
// NewBuilder returns ErrUnknownEngine for names not listed by Engines().
func WithEngine(name string) Option {
	return func(b *Builder) {
		b.cfg.engine = name
	}
}

// WithRenderer sets a custom renderer. It takes precedence over WithEngine.
func WithRenderer(r Renderer) Option {
	return func(b *Builder) {
		b.renderer = r
	}
}

// WithWorkers bounds how many sections render concurrently.
// Values below 1 select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		b.cfg.workers = n
	}
}

// WithAssetPath loads panels and templates from a directory, falling back to
// the embedded assets.
func WithAssetPath(path string) Option {
	return func(b *Builder) {
		b.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader. It takes precedence over WithAssetPath.
func WithAssetLoader(l AssetLoader) Option {
	return func(b *Builder) {
		b.loader = l
	}
}

// WithAssetPrefix prepends prefix to relative image and link targets.
func WithAssetPrefix(prefix string) Option {
	return func(b *Builder) {
		b.cfg.assetPrefix = prefix
	}
}

// WithByline sets the HTML shown under every page title.
func WithByline(html string) Option {
	return func(b *Builder) {
		b.cfg.byline = html
	}
}

// WithPageTemplate sets the page template content directly instead of
// loading DefaultPageTemplate from the asset loader.
func WithPageTemplate(content string) Option {
	return func(b *Builder) {
		b.cfg.pageTemplate = content
	}
}

// WithUnicodeNormalization NFC-normalizes the document before splitting.
func WithUnicodeNormalization(enabled bool) Option {
	return func(b *Builder) {
		b.cfg.normalize = enabled
	}
}
