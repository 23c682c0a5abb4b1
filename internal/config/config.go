package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2site/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound   = errors.New("config file not found")
	ErrEmptyConfigName  = errors.New("config name cannot be empty")
	ErrConfigParse      = errors.New("failed to parse config")
	ErrFieldTooLong     = errors.New("field exceeds maximum length")
	ErrNoSections       = errors.New("at least one section is required")
	ErrDuplicateSection = errors.New("duplicate section")
	ErrInvalidFileName  = errors.New("invalid page file name")
	ErrUnknownEngine    = errors.New("unknown render engine")
	ErrInvalidWorkers   = errors.New("render.workers must not be negative")
)

// Render engines.
const (
	EngineRegex    = "regex"
	EngineGoldmark = "goldmark"
)

// Defaults taken from the report layout the tool was built for.
const (
	DefaultReportName = "Project_Report.md"
	DefaultByline     = "Hot City, Heated Calls:<br>Understanding Extreme Heat and Quality of Life<br>Using New York City's 311 and SHAP"
)

// Field length limits.
const (
	MaxKeyLength        = 200
	MaxFileNameLength   = 255
	MaxTitleLength      = 200
	MaxBylineLength     = 1000
	MaxPathLength       = 4096
	MaxPanelNameLength  = 100
	MaxPanelHTMLLength  = 64 << 10
	MaxAssetPrefixChars = 2048
)

// Config holds all configuration for a site build.
type Config struct {
	Input    InputConfig     `yaml:"input"`
	Output   OutputConfig    `yaml:"output"`
	Site     SiteConfig      `yaml:"site"`
	Render   RenderConfig    `yaml:"render"`
	Assets   AssetsConfig    `yaml:"assets"`
	Sections []SectionConfig `yaml:"sections"`
}

// InputConfig defines where the report is found.
type InputConfig struct {
	Report string `yaml:"report"` // File name searched in cwd, then parent
}

// OutputConfig defines where pages are written.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Empty = discovery
}

// SiteConfig holds values shared by every page.
type SiteConfig struct {
	Byline      string `yaml:"byline"`      // HTML, inserted verbatim
	AssetPrefix string `yaml:"assetPrefix"` // Prepended to relative img/a targets
}

// RenderConfig selects and tunes the markdown renderer.
type RenderConfig struct {
	Engine           string `yaml:"engine"`           // "regex" (default) or "goldmark"
	Workers          int    `yaml:"workers"`          // 0 = GOMAXPROCS
	NormalizeUnicode bool   `yaml:"normalizeUnicode"` // NFC before splitting
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// SectionConfig maps one document section to one output page.
type SectionConfig struct {
	Key       string `yaml:"key"`                 // Heading text, e.g. "1. INTRODUCTION"
	File      string `yaml:"file"`                // Output file name
	Title     string `yaml:"title"`               // Page <h1>
	Panel     string `yaml:"panel,omitempty"`     // Side panel asset name
	PanelHTML string `yaml:"panelHTML,omitempty"` // Inline side panel, overrides Panel
}

// Validate checks the section table, the engine and field lengths.
// Called automatically by LoadConfig.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.report", c.Input.Report, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.byline", c.Site.Byline, MaxBylineLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.assetPrefix", c.Site.AssetPrefix, MaxAssetPrefixChars); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	switch strings.ToLower(c.Render.Engine) {
	case "", EngineRegex, EngineGoldmark:
	default:
		return fmt.Errorf("%w: %q (must be %s or %s)", ErrUnknownEngine, c.Render.Engine, EngineRegex, EngineGoldmark)
	}
	if c.Render.Workers < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, c.Render.Workers)
	}

	return validateSections(c.Sections)
}

func validateSections(sections []SectionConfig) error {
	if len(sections) == 0 {
		return ErrNoSections
	}

	keys := make(map[string]struct{}, len(sections))
	files := make(map[string]struct{}, len(sections))

	for i, s := range sections {
		field := fmt.Sprintf("sections[%d]", i)

		if s.Key == "" {
			return fmt.Errorf("%s.key: required", field)
		}
		if err := validateFieldLength(field+".key", s.Key, MaxKeyLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".title", s.Title, MaxTitleLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".panel", s.Panel, MaxPanelNameLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".panelHTML", s.PanelHTML, MaxPanelHTMLLength); err != nil {
			return err
		}
		if err := validatePageFileName(field+".file", s.File); err != nil {
			return err
		}

		if _, dup := keys[s.Key]; dup {
			return fmt.Errorf("%w: key %q", ErrDuplicateSection, s.Key)
		}
		keys[s.Key] = struct{}{}

		if _, dup := files[s.File]; dup {
			return fmt.Errorf("%w: file %q", ErrDuplicateSection, s.File)
		}
		files[s.File] = struct{}{}
	}
	return nil
}

// validatePageFileName requires a bare ".html" name that stays inside the
// output directory.
func validatePageFileName(field, name string) error {
	if err := validateFieldLength(field, name, MaxFileNameLength); err != nil {
		return err
	}
	switch {
	case name == "":
		return fmt.Errorf("%w: %s is required", ErrInvalidFileName, field)
	case strings.ContainsAny(name, `/\`) || name == "." || name == "..":
		return fmt.Errorf("%w: %s %q must not contain path separators", ErrInvalidFileName, field, name)
	case !strings.EqualFold(filepath.Ext(name), ".html") || len(name) == len(".html"):
		return fmt.Errorf("%w: %s %q must be a .html file name", ErrInvalidFileName, field, name)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultSections returns the section table of the heat report: five sections,
// each with its embedded side panel. The returned slice is a fresh copy.
func DefaultSections() []SectionConfig {
	return []SectionConfig{
		{Key: "1. INTRODUCTION", File: "01_introduction.html", Title: "INTRODUCTION", Panel: "introduction"},
		{Key: "2. DATA and METHODS", File: "02_data_and_methods.html", Title: "DATA & METHODS", Panel: "data-and-methods"},
		{Key: "3. RESULTS", File: "03_results.html", Title: "RESULTS", Panel: "results"},
		{Key: "4. DISCUSSION", File: "05_discussion.html", Title: "DISCUSSION", Panel: "discussion"},
		{Key: "5. REFERENCES", File: "06_references.html", Title: "REFERENCES", Panel: "references"},
	}
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Input:    InputConfig{Report: DefaultReportName},
		Output:   OutputConfig{Dir: ""},
		Site:     SiteConfig{Byline: DefaultByline},
		Render:   RenderConfig{Engine: EngineRegex},
		Assets:   AssetsConfig{BasePath: ""},
		Sections: DefaultSections(),
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig value; a file that lists
// sections replaces the default table entirely.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath, err := ResolvePath(nameOrPath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	cfg.Sections = nil
	if err := yamlutil.DecodeReader(f, cfg, yamlutil.Strict); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if cfg.Sections == nil {
		cfg.Sections = DefaultSections()
	}
	cfg.Render.Engine = strings.ToLower(cfg.Render.Engine)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Marshal renders cfg as YAML, the format LoadConfig reads back.
func Marshal(cfg *Config) ([]byte, error) {
	return yamlutil.Encode(cfg)
}

// ResolvePath returns the file a config name or path refers to.
// Paths are returned as-is; names are searched in standard locations.
func ResolvePath(nameOrPath string) (string, error) {
	if isFilePath(nameOrPath) {
		return nameOrPath, nil
	}
	return resolveConfigPath(nameOrPath)
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-md2site/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-md2site", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
