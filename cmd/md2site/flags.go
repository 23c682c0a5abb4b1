package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2site/internal/watch"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags holds renderer and asset flags.
type renderFlags struct {
	engine      string
	workers     int
	normalize   bool
	assetPrefix string
	assetPath   string

	// Set from FlagSet.Changed so zero values can be told apart from unset.
	workersSet   bool
	normalizeSet bool
}

// watchFlags holds watch mode flags.
type watchFlags struct {
	enabled  bool
	debounce time.Duration
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common commonFlags
	output string
	render renderFlags
	watch  watchFlags
}

// sectionsFlags holds flags for the sections command.
type sectionsFlags struct {
	common commonFlags
}

// initFlags holds flags for the init command.
type initFlags struct {
	force bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show engine, timing and missing sections")
}

// addRenderFlags adds renderer and asset flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.engine, "engine", "e", "", "render engine: regex, goldmark")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel section renders (0 = auto)")
	fs.BoolVar(&f.normalize, "normalize-unicode", false, "NFC-normalize the report before splitting")
	fs.StringVar(&f.assetPrefix, "asset-prefix", "", "prefix for relative image and link targets")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom panels/templates directory")
}

// addWatchFlags adds watch mode flags to a FlagSet.
func addWatchFlags(fs *flag.FlagSet, f *watchFlags) {
	fs.BoolVar(&f.enabled, "watch", false, "rebuild when the report or config changes")
	fs.DurationVar(&f.debounce, "debounce", watch.DefaultDebounce, "quiet period before a rebuild")
}

// parseFlagSet parses args and maps flag errors to ErrUsage.
// flag.ErrHelp is returned unchanged so callers can exit successfully.
func parseFlagSet(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, stderr io.Writer) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &buildFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory for pages")
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addWatchFlags(fs, &f.watch)

	fs.Usage = func() { printBuildUsage(stderr) }

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	if f.common.quiet && f.common.verbose {
		return nil, nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}

	f.render.workersSet = fs.Changed("workers")
	f.render.normalizeSet = fs.Changed("normalize-unicode")

	return f, fs.Args(), nil
}

// parseSectionsFlags parses sections command flags and returns positional args.
func parseSectionsFlags(args []string, stderr io.Writer) (*sectionsFlags, []string, error) {
	fs := flag.NewFlagSet("sections", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &sectionsFlags{}

	addCommonFlags(fs, &f.common)
	fs.Usage = func() { printSectionsUsage(stderr) }

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseInitFlags parses init command flags and returns positional args.
func parseInitFlags(args []string, stderr io.Writer) (*initFlags, []string, error) {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &initFlags{}

	fs.BoolVarP(&f.force, "force", "f", false, "overwrite an existing config file")
	fs.Usage = func() { printInitUsage(stderr) }

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
