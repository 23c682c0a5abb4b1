package main

import (
	"fmt"
	"path/filepath"

	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/fileutil"
)

// defaultInitPath is where init writes when no path is given.
const defaultInitPath = defaultConfigName + ".yaml"

// initHeader is prepended to the generated config.
const initHeader = "# md2site configuration. Run 'md2site help build' for the flags\n" +
	"# and MD2SITE_* variables that override these values.\n"

// runInit writes the default configuration, section table included.
func runInit(args []string, env *Environment) error {
	flags, positional, err := parseInitFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: init takes at most one path, got %d", ErrTooManyArgs, len(positional))
	}

	cwd, err := env.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	path := defaultInitPath
	if len(positional) == 1 {
		path = positional[0]
	}
	path = absFrom(cwd, path)

	if ext := filepath.Ext(path); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("%w: config path %q must end in .yaml or .yml", ErrUsage, path)
	}
	if fileutil.FileExists(path) && !flags.force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
	}

	data, err := config.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, append([]byte(initHeader), data...), filePermissions); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintf(env.Stdout, "Wrote %s.\n", path)
	return nil
}
