package md2site

import (
	"context"
	"fmt"
	"html/template"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ Renderer               = (*pipeline.RegexRenderer)(nil)
	_ Renderer               = (*pipeline.GoldmarkRenderer)(nil)
	_ pipeline.PageAssembler = (*pipeline.PageTemplate)(nil)
)

// Builder turns a markdown report into page fragments.
// Create with NewBuilder; a Builder is safe for concurrent use.
type Builder struct {
	cfg       builderConfig
	renderer  Renderer
	loader    AssetLoader
	assembler pipeline.PageAssembler
}

// NewBuilder creates a Builder with the regex engine, embedded assets and the
// default byline. Returns error if the engine is unknown or the page template
// cannot be loaded or parsed.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		cfg: builderConfig{
			engine: EngineRegex,
			byline: config.DefaultByline,
		},
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.cfg.workers < 1 {
		b.cfg.workers = runtime.GOMAXPROCS(0)
	}

	if b.renderer == nil {
		r, err := newRenderer(b.cfg.engine)
		if err != nil {
			return nil, err
		}
		b.renderer = r
	}

	if b.loader == nil {
		loader, err := NewAssetLoader(b.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		b.loader = loader
	}

	tmplContent := b.cfg.pageTemplate
	if tmplContent == "" {
		var err error
		tmplContent, err = b.loader.LoadTemplate(DefaultPageTemplate)
		if err != nil {
			return nil, fmt.Errorf("loading page template: %w", err)
		}
	}

	assembler, err := pipeline.NewPageTemplate(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageAssembly, err)
	}
	b.assembler = assembler

	return b, nil
}

// newRenderer returns the built-in renderer for an engine name.
func newRenderer(engine string) (Renderer, error) {
	switch strings.ToLower(engine) {
	case "", EngineRegex:
		return pipeline.NewRegexRenderer(), nil
	case EngineGoldmark:
		return pipeline.NewGoldmarkRenderer(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}

// Workers returns the resolved concurrency limit.
func (b *Builder) Workers() int {
	return b.cfg.workers
}

// pageJob is one mapped section waiting to be rendered.
type pageJob struct {
	section pipeline.Section
	entry   SectionConfig
	panel   template.HTML
}

// Build splits the document, renders every section listed in the table and
// assembles one page per section. Pages come back in document order.
// Sections absent from the table are reported in Skipped, table entries absent
// from the document in Missing. An empty document yields an empty result.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (b *Builder) Build(ctx context.Context, input Input) (result *BuildResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	table := input.Sections
	if table == nil {
		table = DefaultSections()
	}
	index, err := indexTable(table)
	if err != nil {
		return nil, err
	}

	doc := pipeline.NormalizeDocument(input.Document, b.cfg.normalize)
	sections := pipeline.SplitSections(doc)

	result = &BuildResult{}
	found := make(map[string]bool, len(sections))
	panels := make(map[string]template.HTML)
	var jobs []pageJob

	for _, s := range sections {
		result.Sections = append(result.Sections, s.Key)
		found[s.Key] = true

		entry, ok := index[s.Key]
		if !ok {
			result.Skipped = append(result.Skipped, s.Key)
			continue
		}

		panel, err := b.resolvePanel(entry, panels)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", s.Key, err)
		}
		jobs = append(jobs, pageJob{section: s, entry: entry, panel: panel})
	}

	for _, entry := range table {
		if !found[entry.Key] {
			result.Missing = append(result.Missing, entry.Key)
		}
	}

	pages, err := b.renderPages(ctx, jobs)
	if err != nil {
		return nil, err
	}
	result.Pages = pages

	return result, nil
}

// renderPages renders jobs with at most cfg.workers in flight. Results are
// stored by index so order never depends on scheduling.
func (b *Builder) renderPages(ctx context.Context, jobs []pageJob) ([]Page, error) {
	pages := make([]Page, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.workers)

	for i, job := range jobs {
		g.Go(func() error {
			page, err := b.buildPage(gctx, job)
			if err != nil {
				return fmt.Errorf("section %q: %w", job.section.Key, err)
			}
			pages[i] = page
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

// buildPage runs render, path rewrite and assembly for one section.
func (b *Builder) buildPage(ctx context.Context, job pageJob) (page Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	fragment, err := b.renderer.RenderFragment(ctx, job.section.Body)
	if err != nil {
		if ctx.Err() != nil {
			return Page{}, ctx.Err()
		}
		return Page{}, fmt.Errorf("%w: %v", ErrRender, err)
	}

	fragment, err = pipeline.PrefixRelativePaths(fragment, b.cfg.assetPrefix)
	if err != nil {
		return Page{}, fmt.Errorf("rewriting relative paths: %w", err)
	}

	// #nosec G203 -- byline is trusted configuration, fragment is rendered report markup
	html, err := b.assembler.AssemblePage(ctx, &pipeline.PageData{
		Title:   job.entry.Title,
		Byline:  template.HTML(b.cfg.byline),
		Content: template.HTML(fragment),
		Panel:   job.panel,
	})
	if err != nil {
		if ctx.Err() != nil {
			return Page{}, ctx.Err()
		}
		return Page{}, fmt.Errorf("%w: %v", ErrPageAssembly, err)
	}

	return Page{
		Key:   job.section.Key,
		File:  job.entry.File,
		Title: job.entry.Title,
		HTML:  html,
	}, nil
}

// resolvePanel returns the inline panel when set, else loads the named panel
// once per build.
func (b *Builder) resolvePanel(entry SectionConfig, cache map[string]template.HTML) (template.HTML, error) {
	if entry.PanelHTML != "" {
		return template.HTML(entry.PanelHTML), nil // #nosec G203 -- trusted configuration
	}
	if entry.Panel == "" {
		return "", nil
	}
	if panel, ok := cache[entry.Panel]; ok {
		return panel, nil
	}

	content, err := b.loader.LoadPanel(entry.Panel)
	if err != nil {
		return "", fmt.Errorf("loading panel %q: %w", entry.Panel, err)
	}
	panel := template.HTML(content) // #nosec G203 -- panels are trusted assets
	cache[entry.Panel] = panel
	return panel, nil
}

// indexTable maps keys to entries, rejecting incomplete or duplicate rows.
func indexTable(table []SectionConfig) (map[string]SectionConfig, error) {
	if len(table) == 0 {
		return nil, ErrNoSectionTable
	}
	index := make(map[string]SectionConfig, len(table))
	files := make(map[string]bool, len(table))
	for i, entry := range table {
		switch {
		case entry.Key == "":
			return nil, fmt.Errorf("%w: entry %d has no key", ErrInvalidSection, i)
		case entry.File == "":
			return nil, fmt.Errorf("%w: %q has no file", ErrInvalidSection, entry.Key)
		case strings.ContainsAny(entry.File, `/\`):
			return nil, fmt.Errorf("%w: %q file %q contains a path separator", ErrInvalidSection, entry.Key, entry.File)
		}
		if _, dup := index[entry.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrInvalidSection, entry.Key)
		}
		if files[entry.File] {
			return nil, fmt.Errorf("%w: duplicate file %q", ErrInvalidSection, entry.File)
		}
		index[entry.Key] = entry
		files[entry.File] = true
	}
	return index, nil
}

// Inspect reports every section found in document and whether the table maps
// it to a page. A nil table uses DefaultSections().
func Inspect(document string, table []SectionConfig, normalize bool) []SectionStatus {
	if table == nil {
		table = DefaultSections()
	}
	files := make(map[string]string, len(table))
	for _, entry := range table {
		files[entry.Key] = entry.File
	}

	sections := pipeline.SplitSections(pipeline.NormalizeDocument(document, normalize))
	out := make([]SectionStatus, 0, len(sections))
	for _, s := range sections {
		file, ok := files[s.Key]
		out = append(out, SectionStatus{Key: s.Key, File: file, Mapped: ok})
	}
	return out
}
