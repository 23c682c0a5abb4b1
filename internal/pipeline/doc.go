// Package pipeline implements the report-to-pages conversion pipeline.
//
// The package handles every stage between raw report text and a finished
// page fragment:
//   - Document normalization (line endings, optional Unicode NFC)
//   - Section splitting on numbered top-level headings
//   - Markdown to HTML fragment rendering (regex rule pipeline or Goldmark)
//   - Relative asset path rewriting
//   - Page assembly from the page template and a side panel
//
// File discovery, configuration and writing live in the root md2site package
// and the md2site command. This package only transforms text.
package pipeline
