package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
	ErrTooManyArgs    = errors.New("too many arguments")
	ErrReportNotFound = errors.New("report not found")
	ErrReadReport     = errors.New("failed to read report")
	ErrWritePage      = errors.New("failed to write page")
	ErrOutputDir      = errors.New("failed to prepare output directory")
	ErrConfigExists   = errors.New("config file already exists")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// defaultConfigName is looked up in the working directory when no config is given.
const defaultConfigName = "md2site"

// bannerWidth matches the rule printed around the build banner.
const bannerWidth = 60

// buildPlan is everything resolved before a build starts.
type buildPlan struct {
	cfg        *config.Config
	configPath string // Empty when running on defaults
	reportPath string
	outputDir  string
}

// buildSummary reports what one build produced.
type buildSummary struct {
	result   *md2site.BuildResult
	sizes    map[string]int64 // page file -> bytes written
	duration time.Duration
}

// runBuild builds the site once and, with --watch, keeps rebuilding on change.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: build takes at most one report path, got %d", ErrTooManyArgs, len(positional))
	}

	warnUnknownEnvVars(env.Stderr, env.Environ())

	plan, err := planBuild(env, flags, positional)
	if err != nil {
		return err
	}

	if _, err := buildSite(ctx, env, plan, flags.common); err != nil {
		return err
	}

	if !flags.watch.enabled {
		return nil
	}
	return watchSite(ctx, env, flags, positional, plan)
}

// planBuild loads configuration and resolves the report and output paths.
func planBuild(env *Environment, flags *buildFlags, positional []string) (*buildPlan, error) {
	cwd, cfg, configPath, err := resolveConfig(env, flags.common.config)
	if err != nil {
		return nil, err
	}
	mergeFlags(flags, cfg)
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	reportPath, err := resolveReportPath(cwd, firstArg(positional), cfg.Input.Report)
	if err != nil {
		return nil, err
	}

	outputDir, err := resolveOutputDir(cwd, cfg.Output.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v%s", ErrOutputDir, err, hints.ForOutputDirectory())
	}

	return &buildPlan{
		cfg:        cfg,
		configPath: configPath,
		reportPath: reportPath,
		outputDir:  outputDir,
	}, nil
}

// resolveConfig returns the working directory and the configuration with
// environment overrides applied. Flags are merged by the caller.
func resolveConfig(env *Environment, configFlag string) (cwd string, cfg *config.Config, configPath string, err error) {
	cwd, err = env.Getwd()
	if err != nil {
		return "", nil, "", fmt.Errorf("resolving working directory: %w", err)
	}

	envCfg := loadEnvConfig(env.LookupEnv)

	cfg, configPath, err = loadSiteConfig(cwd, configFlag, envCfg.ConfigPath)
	if err != nil {
		return "", nil, "", err
	}

	applyEnvConfig(envCfg, cfg)
	return cwd, cfg, configPath, nil
}

// validateConfig validates cfg after all overrides, adding engine hints.
func validateConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrUnknownEngine) {
			return fmt.Errorf("%w%s", err, hints.ForUnknownEngine(md2site.Engines()))
		}
		return err
	}
	return nil
}

// firstArg returns args[0], or "" when args is empty.
func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// loadSiteConfig loads the config named by flag or env, else md2site.yaml or
// md2site.yml from the working directory, else the defaults.
// Returns the loaded path, empty for defaults.
func loadSiteConfig(cwd, flagName, envName string) (*config.Config, string, error) {
	name := flagName
	if name == "" {
		name = envName
	}

	if name == "" {
		candidates := []string{
			filepath.Join(cwd, defaultConfigName+".yaml"),
			filepath.Join(cwd, defaultConfigName+".yml"),
		}
		path, ok := fileutil.FindFirst(candidates, fileutil.FileExists)
		if !ok {
			return config.DefaultConfig(), "", nil
		}
		name = path
	}

	path, err := config.ResolvePath(name)
	if err != nil {
		return nil, "", withConfigHint(err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, "", fmt.Errorf("loading config: %w", withConfigHint(err))
	}
	return cfg, path, nil
}

// withConfigHint appends search hints to config-not-found errors.
func withConfigHint(err error) error {
	if !errors.Is(err, config.ErrConfigNotFound) {
		return err
	}
	var tried []string
	if _, list, ok := strings.Cut(err.Error(), "tried "); ok {
		tried = strings.Split(list, ", ")
	}
	return fmt.Errorf("%w%s", err, hints.ForConfigNotFound(tried))
}

// mergeFlags applies CLI flags over config values. CLI wins.
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if flags.render.engine != "" {
		cfg.Render.Engine = strings.ToLower(flags.render.engine)
	}
	if flags.render.workersSet {
		cfg.Render.Workers = flags.render.workers
	}
	if flags.render.normalizeSet {
		cfg.Render.NormalizeUnicode = flags.render.normalize
	}
	if flags.render.assetPrefix != "" {
		cfg.Site.AssetPrefix = flags.render.assetPrefix
	}
	if flags.render.assetPath != "" {
		cfg.Assets.BasePath = flags.render.assetPath
	}
}

// resolveReportPath returns the report to build.
// An explicit path must exist. Otherwise name is looked up in the working
// directory, then its parent; names containing a separator are used as-is.
func resolveReportPath(cwd, explicit, name string) (string, error) {
	var candidates []string
	switch {
	case explicit != "":
		candidates = []string{absFrom(cwd, explicit)}
	case filepath.IsAbs(name) || fileutil.IsFilePath(name):
		candidates = []string{absFrom(cwd, name)}
	default:
		candidates = []string{
			filepath.Join(cwd, name),
			filepath.Join(filepath.Dir(cwd), name),
		}
	}

	if path, ok := fileutil.FindFirst(candidates, fileutil.FileExists); ok {
		return path, nil
	}

	base := filepath.Base(candidates[0])
	return "", fmt.Errorf("%w: cannot find %s\n  looked in: %s%s",
		ErrReportNotFound, base, strings.Join(candidates, "\n         and: "), hints.ForReportNotFound(base))
}

// resolveOutputDir returns the pages directory, creating it if needed.
// A configured dir is used as-is. Otherwise docs/pages in the working
// directory, then in its parent, else ./pages.
func resolveOutputDir(cwd, configured string) (string, error) {
	var dir string
	if configured != "" {
		dir = absFrom(cwd, configured)
	} else {
		candidates := []string{
			filepath.Join(cwd, "docs", "pages"),
			filepath.Join(filepath.Dir(cwd), "docs", "pages"),
		}
		found, ok := fileutil.FindFirst(candidates, fileutil.DirExists)
		if !ok {
			found = filepath.Join(cwd, "pages")
		}
		dir = found
	}

	if err := fileutil.EnsureDir(dir, dirPermissions); err != nil {
		return "", err
	}
	return dir, nil
}

// absFrom resolves p against cwd unless it is already absolute.
func absFrom(cwd, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(cwd, p)
}

// newBuilder creates a Builder from configuration.
func newBuilder(cfg *config.Config) (*md2site.Builder, error) {
	return md2site.NewBuilder(
		md2site.WithEngine(cfg.Render.Engine),
		md2site.WithWorkers(cfg.Render.Workers),
		md2site.WithAssetPath(cfg.Assets.BasePath),
		md2site.WithAssetPrefix(cfg.Site.AssetPrefix),
		md2site.WithByline(cfg.Site.Byline),
		md2site.WithUnicodeNormalization(cfg.Render.NormalizeUnicode),
	)
}

// buildSite reads the report, builds every page and writes it atomically.
func buildSite(ctx context.Context, env *Environment, plan *buildPlan, common commonFlags) (*buildSummary, error) {
	start := env.Now()

	data, err := os.ReadFile(plan.reportPath) // #nosec G304 -- report path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadReport, plan.reportPath, err)
	}

	builder, err := newBuilder(plan.cfg)
	if err != nil {
		if errors.Is(err, md2site.ErrInvalidAssetPath) {
			return nil, fmt.Errorf("assets.basePath: %w", err)
		}
		return nil, err
	}

	result, err := builder.Build(ctx, md2site.Input{
		Document: string(data),
		Sections: md2site.FromConfig(plan.cfg.Sections),
	})
	if err != nil {
		if errors.Is(err, md2site.ErrPanelNotFound) {
			return nil, fmt.Errorf("%w%s", err, panelHint(err, plan.cfg.Sections))
		}
		return nil, err
	}

	summary := &buildSummary{
		result: result,
		sizes:  make(map[string]int64, len(result.Pages)),
	}
	for _, page := range result.Pages {
		path := filepath.Join(plan.outputDir, page.File)
		if err := fileutil.WriteFileAtomic(path, []byte(page.HTML), filePermissions); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrWritePage, path, err)
		}
		summary.sizes[page.File] = int64(len(page.HTML))
	}
	summary.duration = env.Now().Sub(start)

	if !common.quiet {
		printBuildSummary(env.Stdout, plan, summary, common.verbose, builder.Workers())
	}
	return summary, nil
}

// panelHint names the first panel in the table that appears in err.
func panelHint(err error, sections []config.SectionConfig) string {
	for _, s := range sections {
		if s.Panel != "" && strings.Contains(err.Error(), fmt.Sprintf("%q", s.Panel)) {
			return hints.ForPanelNotFound(s.Panel)
		}
	}
	return ""
}

// printBuildSummary writes the build report in document order: one line per
// page with its size, one notice per unmapped section.
func printBuildSummary(w io.Writer, plan *buildPlan, s *buildSummary, verbose bool, workers int) {
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Building report pages from %s\n", filepath.Base(plan.reportPath))
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Source: %s\n", plan.reportPath)
	fmt.Fprintf(w, "Output: %s\n", plan.outputDir)
	if verbose {
		if plan.configPath != "" {
			fmt.Fprintf(w, "Config: %s\n", plan.configPath)
		}
		fmt.Fprintf(w, "Engine: %s (%d workers)\n", plan.cfg.Render.Engine, workers)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Found %d sections:\n", len(s.result.Sections))
	for _, key := range s.result.Sections {
		fmt.Fprintf(w, "  - %s\n", key)
	}
	fmt.Fprintln(w)

	pages := make(map[string]md2site.Page, len(s.result.Pages))
	for _, p := range s.result.Pages {
		pages[p.Key] = p
	}
	for _, key := range s.result.Sections {
		page, ok := pages[key]
		if !ok {
			fmt.Fprintf(w, "Skipping unmapped section: %s.\n", key)
			continue
		}
		fmt.Fprintf(w, "%s (%s).\n", page.File, fileutil.FormatSize(s.sizes[page.File]))
	}

	if verbose {
		for _, key := range s.result.Missing {
			fmt.Fprintf(w, "Not in report: %s.\n", key)
		}
		if hint := hints.ForUnmappedSections(len(s.result.Skipped)); hint != "" {
			fmt.Fprintln(w, strings.TrimPrefix(hint, "\n"))
		}
		fmt.Fprintf(w, "Built %d pages in %v.\n", len(s.result.Pages), s.duration.Round(time.Millisecond))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pages updated.")
}
