// Package md2site converts a structured markdown report into static HTML page
// fragments for a website.
//
// # Quick Start
//
// Create a builder and build the pages of a report:
//
//	b, err := md2site.NewBuilder()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := b.Build(ctx, md2site.Input{Document: report})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, page := range result.Pages {
//	    os.WriteFile(filepath.Join("docs/pages", page.File), []byte(page.HTML), 0o644)
//	}
//
// # Build Pipeline
//
// A build follows these stages:
//
//  1. Line endings normalized to LF (optionally Unicode NFC)
//  2. Document split at "# <n>. <LABEL>" headings, preamble dropped
//  3. Each section listed in the table rendered to an HTML fragment
//  4. Relative image and link targets prefixed (WithAssetPrefix)
//  5. Fragment wrapped in the page template with title, byline and side panel
//
// Sections the table does not list are reported in BuildResult.Skipped and
// produce no page.
//
// # Render Engines
//
// The default "regex" engine applies a fixed, ordered list of rewrite rules:
// headings, emphasis, code spans, images, links, one-level lists and
// paragraphs. It never fails on malformed markup. The "goldmark" engine
// renders CommonMark with GFM tables and highlighted code and shifts headings
// the same way.
//
//	b, err := md2site.NewBuilder(
//	    md2site.WithEngine(md2site.EngineGoldmark),
//	    md2site.WithWorkers(4),
//	    md2site.WithAssetPrefix("../"),
//	)
//
// # Section Table
//
// Input.Sections maps heading keys to output files, titles and side panels.
// A nil table uses DefaultSections(). Panels are loaded by name from the asset
// loader, or given inline with SectionConfig.PanelHTML.
//
// # Custom Assets
//
// WithAssetPath reads panels/{name}.html and templates/page.html from a
// directory and falls back to the embedded copies. Implement AssetLoader for
// other backends.
package md2site
