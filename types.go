package md2site

import (
	"github.com/alnah/go-md2site/internal/config"
)

// Render engine names accepted by WithEngine.
const (
	EngineRegex    = config.EngineRegex
	EngineGoldmark = config.EngineGoldmark
)

// Engines returns the accepted render engine names, default first.
func Engines() []string {
	return []string{EngineRegex, EngineGoldmark}
}

// SectionConfig maps one document section to one output page.
type SectionConfig struct {
	Key       string // Heading text after "# ", e.g. "1. INTRODUCTION"
	File      string // Output file name, e.g. "01_introduction.html"
	Title     string // Page <h1>, HTML-escaped
	Panel     string // Side panel asset name
	PanelHTML string // Inline side panel; overrides Panel when set
}

// DefaultSections returns the built-in five-section table of the heat report.
func DefaultSections() []SectionConfig {
	return FromConfig(config.DefaultSections())
}

// FromConfig converts configuration file entries to a section table.
func FromConfig(entries []config.SectionConfig) []SectionConfig {
	out := make([]SectionConfig, len(entries))
	for i, e := range entries {
		out[i] = SectionConfig{
			Key:       e.Key,
			File:      e.File,
			Title:     e.Title,
			Panel:     e.Panel,
			PanelHTML: e.PanelHTML,
		}
	}
	return out
}

// Input contains the data for one site build.
type Input struct {
	Document string          // Required: full markdown report
	Sections []SectionConfig // Section table; nil uses DefaultSections()
}

// Page is one assembled output file.
type Page struct {
	Key   string // Section heading the page was built from
	File  string // Output file name
	Title string
	HTML  string // Complete page fragment
}

// BuildResult holds the pages of a build and what was left out.
type BuildResult struct {
	Sections []string // Every section key found, in document order
	Pages    []Page   // In document order
	Skipped  []string // Document sections with no table entry
	Missing  []string // Table entries with no document section, in table order
}

// SectionStatus describes one section found in a document.
type SectionStatus struct {
	Key    string
	File   string // Empty when unmapped
	Mapped bool
}
