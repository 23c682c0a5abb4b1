package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-md2site/internal/config"
)

func TestRunInit(t *testing.T) {
	t.Parallel()

	t.Run("writes loadable default config", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)

		if err := runInit(nil, te.Environment); err != nil {
			t.Fatalf("runInit() error: %v", err)
		}

		path := filepath.Join(te.dir, defaultInitPath)
		if !strings.Contains(te.stdout.String(), path) {
			t.Errorf("stdout should name the written file: %q", te.stdout.String())
		}
		if !strings.HasPrefix(te.readFile(t, defaultInitPath), "# md2site configuration") {
			t.Error("config should start with the header comment")
		}

		cfg, err := config.LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() on generated file: %v", err)
		}
		if len(cfg.Sections) != len(config.DefaultSections()) {
			t.Errorf("got %d sections, want %d", len(cfg.Sections), len(config.DefaultSections()))
		}
		if cfg.Site.Byline != config.DefaultByline {
			t.Errorf("Byline = %q", cfg.Site.Byline)
		}
	})

	t.Run("custom path", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)

		if err := runInit([]string{"site.yml"}, te.Environment); err != nil {
			t.Fatalf("runInit() error: %v", err)
		}
		te.readFile(t, "site.yml")
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)
		te.writeFile(t, defaultInitPath, "keep: me\n")

		err := runInit(nil, te.Environment)
		if !errors.Is(err, ErrConfigExists) {
			t.Fatalf("error = %v, want ErrConfigExists", err)
		}
		if got := te.readFile(t, defaultInitPath); got != "keep: me\n" {
			t.Errorf("existing file modified: %q", got)
		}
	})

	t.Run("force overwrites", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)
		te.writeFile(t, defaultInitPath, "keep: me\n")

		if err := runInit([]string{"--force"}, te.Environment); err != nil {
			t.Fatalf("runInit() error: %v", err)
		}
		if strings.Contains(te.readFile(t, defaultInitPath), "keep: me") {
			t.Error("file not overwritten")
		}
	})

	t.Run("rejects non-yaml path", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)

		if err := runInit([]string{"site.json"}, te.Environment); !errors.Is(err, ErrUsage) {
			t.Errorf("error = %v, want ErrUsage", err)
		}
	})

	t.Run("too many args", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)

		if err := runInit([]string{"a.yaml", "b.yaml"}, te.Environment); !errors.Is(err, ErrTooManyArgs) {
			t.Errorf("error = %v, want ErrTooManyArgs", err)
		}
	})
}
