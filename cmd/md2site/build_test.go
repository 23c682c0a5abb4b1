package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-md2site/internal/config"
)

// ---------------------------------------------------------------------------
// TestResolveReportPath - Report discovery
// ---------------------------------------------------------------------------

func TestResolveReportPath(t *testing.T) {
	t.Parallel()

	t.Run("explicit path", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)
		want := te.writeFile(t, "in/r.md", testReport)

		got, err := resolveReportPath(te.dir, "in/r.md", config.DefaultReportName)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("explicit path missing", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)
		te.writeFile(t, config.DefaultReportName, testReport)

		_, err := resolveReportPath(te.dir, "missing.md", config.DefaultReportName)
		if !errors.Is(err, ErrReportNotFound) {
			t.Fatalf("error = %v, want ErrReportNotFound", err)
		}
		if !strings.Contains(err.Error(), "hint:") {
			t.Errorf("error should carry a hint: %v", err)
		}
	})

	t.Run("name in working directory", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)
		want := te.writeFile(t, config.DefaultReportName, testReport)

		got, err := resolveReportPath(te.dir, "", config.DefaultReportName)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("name in parent directory", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)
		want := te.writeFile(t, config.DefaultReportName, testReport)
		cwd := filepath.Join(te.dir, "scripts")
		if err := os.Mkdir(cwd, 0o755); err != nil {
			t.Fatal(err)
		}

		got, err := resolveReportPath(cwd, "", config.DefaultReportName)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("working directory wins over parent", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)
		te.writeFile(t, config.DefaultReportName, "parent")
		want := te.writeFile(t, "scripts/"+config.DefaultReportName, "child")

		got, err := resolveReportPath(filepath.Join(te.dir, "scripts"), "", config.DefaultReportName)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("name with separator is not searched in parent", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)
		te.writeFile(t, "docs/r.md", testReport)
		cwd := filepath.Join(te.dir, "scripts")
		if err := os.Mkdir(cwd, 0o755); err != nil {
			t.Fatal(err)
		}

		_, err := resolveReportPath(cwd, "", "docs/r.md")
		if !errors.Is(err, ErrReportNotFound) {
			t.Errorf("error = %v, want ErrReportNotFound", err)
		}
	})

	t.Run("not found lists both locations", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)

		_, err := resolveReportPath(te.dir, "", config.DefaultReportName)
		if !errors.Is(err, ErrReportNotFound) {
			t.Fatalf("error = %v, want ErrReportNotFound", err)
		}
		if !strings.Contains(err.Error(), filepath.Join(filepath.Dir(te.dir), config.DefaultReportName)) {
			t.Errorf("error should list the parent candidate: %v", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveOutputDir - Pages directory discovery
// ---------------------------------------------------------------------------

func TestResolveOutputDir(t *testing.T) {
	t.Parallel()

	t.Run("configured relative dir is created", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)

		got, err := resolveOutputDir(te.dir, "out/pages")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != filepath.Join(te.dir, "out", "pages") {
			t.Errorf("got %q", got)
		}
		if info, err := os.Stat(got); err != nil || !info.IsDir() {
			t.Errorf("output dir not created: %v", err)
		}
	})

	t.Run("docs/pages in working directory", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)
		want := filepath.Join(te.dir, "docs", "pages")
		if err := os.MkdirAll(want, 0o755); err != nil {
			t.Fatal(err)
		}

		got, err := resolveOutputDir(te.dir, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("docs/pages in parent directory", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)
		want := filepath.Join(te.dir, "docs", "pages")
		cwd := filepath.Join(te.dir, "scripts")
		for _, d := range []string{want, cwd} {
			if err := os.MkdirAll(d, 0o755); err != nil {
				t.Fatal(err)
			}
		}

		got, err := resolveOutputDir(cwd, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("falls back to pages", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)

		got, err := resolveOutputDir(te.dir, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != filepath.Join(te.dir, "pages") {
			t.Errorf("got %q", got)
		}
		if info, err := os.Stat(got); err != nil || !info.IsDir() {
			t.Errorf("fallback dir not created: %v", err)
		}
	})

	t.Run("file in the way", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)
		te.writeFile(t, "out", "not a dir")

		if _, err := resolveOutputDir(te.dir, "out"); err == nil {
			t.Error("expected error when output path is a file")
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadSiteConfig - Config lookup order
// ---------------------------------------------------------------------------

func TestLoadSiteConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults without a file", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)

		cfg, path, err := loadSiteConfig(te.dir, "", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != "" {
			t.Errorf("path = %q, want empty", path)
		}
		if len(cfg.Sections) != len(config.DefaultSections()) {
			t.Errorf("got %d sections, want defaults", len(cfg.Sections))
		}
	})

	t.Run("md2site.yml discovered", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)
		want := te.writeFile(t, "md2site.yml", "render:\n  engine: goldmark\n")

		cfg, path, err := loadSiteConfig(te.dir, "", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != want {
			t.Errorf("path = %q, want %q", path, want)
		}
		if cfg.Render.Engine != config.EngineGoldmark {
			t.Errorf("engine = %q", cfg.Render.Engine)
		}
	})

	t.Run("flag wins over env", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)
		flagPath := te.writeFile(t, "a.yaml", "output:\n  dir: from-flag\n")
		envPath := te.writeFile(t, "b.yaml", "output:\n  dir: from-env\n")

		cfg, _, err := loadSiteConfig(te.dir, flagPath, envPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Output.Dir != "from-flag" {
			t.Errorf("Output.Dir = %q, want from-flag", cfg.Output.Dir)
		}
	})

	t.Run("missing explicit file", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)

		_, _, err := loadSiteConfig(te.dir, filepath.Join(te.dir, "nope.yaml"), "")
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "md2site init") {
			t.Errorf("error should suggest md2site init: %v", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI overrides
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Render.Workers = 4
	cfg.Render.NormalizeUnicode = true

	mergeFlags(&buildFlags{
		output: "out",
		render: renderFlags{
			engine:       "Goldmark",
			workers:      0,
			workersSet:   true,
			normalize:    false,
			normalizeSet: true,
			assetPrefix:  "../",
		},
	}, cfg)

	if cfg.Output.Dir != "out" {
		t.Errorf("Output.Dir = %q", cfg.Output.Dir)
	}
	if cfg.Render.Engine != config.EngineGoldmark {
		t.Errorf("Render.Engine = %q", cfg.Render.Engine)
	}
	if cfg.Render.Workers != 0 {
		t.Errorf("explicit workers=0 not applied: %d", cfg.Render.Workers)
	}
	if cfg.Render.NormalizeUnicode {
		t.Error("explicit --normalize-unicode=false not applied")
	}
	if cfg.Site.AssetPrefix != "../" {
		t.Errorf("Site.AssetPrefix = %q", cfg.Site.AssetPrefix)
	}
	if cfg.Assets.BasePath != "" {
		t.Errorf("unset asset path changed: %q", cfg.Assets.BasePath)
	}
}

// ---------------------------------------------------------------------------
// TestRunBuild - End-to-end builds in a temp directory
// ---------------------------------------------------------------------------

func TestRunBuild_WritesPages(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.writeFile(t, config.DefaultReportName, testReport)
	if err := os.MkdirAll(filepath.Join(te.dir, "docs", "pages"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := runBuild(context.Background(), nil, te.Environment); err != nil {
		t.Fatalf("runBuild() error: %v\nstderr: %s", err, te.stderr)
	}

	intro := te.readFile(t, "docs/pages/01_introduction.html")
	for _, want := range []string{"<h1>INTRODUCTION</h1>", "<strong>matters</strong>", `class="content-right"`, "Hot City, Heated Calls:<br>"} {
		if !strings.Contains(intro, want) {
			t.Errorf("introduction page missing %q", want)
		}
	}
	data := te.readFile(t, "docs/pages/02_data_and_methods.html")
	if !strings.Contains(data, "<h1>DATA &amp; METHODS</h1>") {
		t.Errorf("title should be escaped: %s", data)
	}
	if !strings.Contains(data, `src="figures/map.png"`) {
		t.Errorf("image path should be untouched without a prefix: %s", data)
	}

	if _, err := os.Stat(filepath.Join(te.dir, "docs", "pages", "03_results.html")); !os.IsNotExist(err) {
		t.Errorf("page for a section missing from the report should not be written")
	}

	out := te.stdout.String()
	for _, want := range []string{
		"Building report pages from " + config.DefaultReportName,
		"Found 3 sections:",
		"  - 9. APPENDIX",
		"01_introduction.html (",
		"Skipping unmapped section: 9. APPENDIX.",
		"Pages updated.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "02_data_and_methods.html") > strings.Index(out, "Skipping unmapped") {
		t.Errorf("summary should follow document order:\n%s", out)
	}
}

func TestRunBuild_FlagsAndEnv(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.writeFile(t, "report/heat.md", testReport)
	te.vars["MD2SITE_OUTPUT_DIR"] = "env-out"
	te.vars["MD2SITE_ENGINE"] = "goldmark"

	args := []string{"report/heat.md", "-o", "flag-out", "--asset-prefix", "../", "-q"}
	if err := runBuild(context.Background(), args, te.Environment); err != nil {
		t.Fatalf("runBuild() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(te.dir, "env-out")); !os.IsNotExist(err) {
		t.Error("--output should win over MD2SITE_OUTPUT_DIR")
	}
	page := te.readFile(t, "flag-out/02_data_and_methods.html")
	if !strings.Contains(page, `src="../figures/map.png"`) {
		t.Errorf("asset prefix not applied: %s", page)
	}
	if !strings.Contains(page, "<h3>Data</h3>") {
		t.Errorf("goldmark from env should shift headings: %s", page)
	}
	if te.stdout.Len() != 0 {
		t.Errorf("--quiet should print nothing, got %q", te.stdout.String())
	}
}

func TestRunBuild_ConfigSections(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.writeFile(t, config.DefaultReportName, testReport)
	te.writeFile(t, "md2site.yaml", `output:
  dir: site
sections:
  - key: "9. APPENDIX"
    file: appendix.html
    title: APPENDIX
    panelHTML: "<p>extra</p>"
`)

	if err := runBuild(context.Background(), []string{"-v"}, te.Environment); err != nil {
		t.Fatalf("runBuild() error: %v", err)
	}

	page := te.readFile(t, "site/appendix.html")
	if !strings.Contains(page, "<p>extra</p>") || !strings.Contains(page, "<p>Unlisted.</p>") {
		t.Errorf("appendix page = %s", page)
	}
	out := te.stdout.String()
	for _, want := range []string{"Skipping unmapped section: 1. INTRODUCTION.", "Config: ", "Engine: regex", "hint:"} {
		if !strings.Contains(out, want) {
			t.Errorf("verbose stdout missing %q:\n%s", want, out)
		}
	}
}

func TestRunBuild_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		files   map[string]string
		vars    map[string]string
		args    []string
		wantErr error
		wantMsg string
	}{
		{
			name:    "report not found",
			wantErr: ErrReportNotFound,
		},
		{
			name:    "too many args",
			args:    []string{"a.md", "b.md"},
			wantErr: ErrTooManyArgs,
		},
		{
			name:    "unknown engine flag",
			files:   map[string]string{config.DefaultReportName: testReport},
			args:    []string{"--engine", "pandoc"},
			wantErr: config.ErrUnknownEngine,
			wantMsg: "available engines: regex, goldmark",
		},
		{
			name:    "unknown engine from env",
			files:   map[string]string{config.DefaultReportName: testReport},
			vars:    map[string]string{"MD2SITE_ENGINE": "blackfriday"},
			wantErr: config.ErrUnknownEngine,
		},
		{
			name: "duplicate section in config",
			files: map[string]string{
				config.DefaultReportName: testReport,
				"md2site.yaml":           "sections:\n  - {key: A, file: a.html, title: A}\n  - {key: A, file: b.html, title: B}\n",
			},
			wantErr: config.ErrDuplicateSection,
		},
		{
			name: "unknown config key",
			files: map[string]string{
				config.DefaultReportName: testReport,
				"md2site.yaml":           "outputs:\n  dir: x\n",
			},
			wantErr: config.ErrConfigParse,
		},
		{
			name: "missing panel",
			files: map[string]string{
				config.DefaultReportName: testReport,
				"md2site.yaml":           "sections:\n  - {key: \"1. INTRODUCTION\", file: a.html, title: A, panel: nowhere}\n",
			},
			wantMsg: "panels/nowhere.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(t)
			for name, content := range tt.files {
				te.writeFile(t, name, content)
			}
			for k, v := range tt.vars {
				te.vars[k] = v
			}

			err := runBuild(context.Background(), tt.args, te.Environment)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestRunBuild_Idempotent(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.writeFile(t, config.DefaultReportName, testReport)

	for i := range 2 {
		if err := runBuild(context.Background(), []string{"-q"}, te.Environment); err != nil {
			t.Fatalf("build %d: %v", i, err)
		}
	}
	first := te.readFile(t, "pages/01_introduction.html")

	if err := runBuild(context.Background(), []string{"-q"}, te.Environment); err != nil {
		t.Fatal(err)
	}
	if got := te.readFile(t, "pages/01_introduction.html"); got != first {
		t.Error("rebuilding the same report changed the page")
	}

	entries, err := os.ReadDir(filepath.Join(te.dir, "pages"))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}
