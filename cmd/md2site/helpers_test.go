package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testReport = `# 1. INTRODUCTION

Extreme heat **matters**.

# 2. DATA and METHODS

## Data

![map](figures/map.png)

# 9. APPENDIX

Unlisted.
`

// testEnv is an Environment rooted at a temp directory with an empty
// process environment.
type testEnv struct {
	*Environment
	dir    string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	vars   map[string]string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	te := &testEnv{
		dir:    t.TempDir(),
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		vars:   map[string]string{},
	}
	fixed := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	te.Environment = &Environment{
		Now:    func() time.Time { return fixed },
		Stdout: te.stdout,
		Stderr: te.stderr,
		Getwd:  func() (string, error) { return te.dir, nil },
		LookupEnv: func(k string) (string, bool) {
			v, ok := te.vars[k]
			return v, ok
		},
		Environ: func() []string {
			out := make([]string, 0, len(te.vars))
			for k, v := range te.vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
	return te
}

// writeFile creates path under the env directory, with parents.
func (te *testEnv) writeFile(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(te.dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

// readFile returns the content of path under the env directory.
func (te *testEnv) readFile(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(te.dir, rel))
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", rel, err)
	}
	return string(data)
}
