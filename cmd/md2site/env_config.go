package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-md2site/internal/config"
)

// envPrefix marks md2site environment variables.
const envPrefix = "MD2SITE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string // MD2SITE_CONFIG: config file name or path
	Input       string // MD2SITE_INPUT: report path
	OutputDir   string // MD2SITE_OUTPUT_DIR: pages directory
	Engine      string // MD2SITE_ENGINE: regex or goldmark
	Workers     int    // MD2SITE_WORKERS: parallel section renders
	AssetPrefix string // MD2SITE_ASSET_PREFIX: prefix for relative img/a targets
	AssetDir    string // MD2SITE_ASSET_DIR: custom panels/templates directory
}

// knownEnvVars lists valid MD2SITE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2SITE_CONFIG":       true,
	"MD2SITE_INPUT":        true,
	"MD2SITE_OUTPUT_DIR":   true,
	"MD2SITE_ENGINE":       true,
	"MD2SITE_WORKERS":      true,
	"MD2SITE_ASSET_PREFIX": true,
	"MD2SITE_ASSET_DIR":    true,
}

// loadEnvConfig reads configuration through lookup.
// Invalid MD2SITE_WORKERS values are ignored.
func loadEnvConfig(lookup func(string) (string, bool)) *envConfig {
	get := func(name string) string {
		v, _ := lookup(name)
		return v
	}

	cfg := &envConfig{
		ConfigPath:  get("MD2SITE_CONFIG"),
		Input:       get("MD2SITE_INPUT"),
		OutputDir:   get("MD2SITE_OUTPUT_DIR"),
		Engine:      get("MD2SITE_ENGINE"),
		AssetPrefix: get("MD2SITE_ASSET_PREFIX"),
		AssetDir:    get("MD2SITE_ASSET_DIR"),
	}

	if workers := get("MD2SITE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized MD2SITE_* variable.
// Helps catch typos like MD2SITE_OUTPUT instead of MD2SITE_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name := strings.SplitN(env, "=", 2)[0]
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig copies every set environment value over the config.
// CLI flags are merged afterwards, giving: flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Input != "" {
		cfg.Input.Report = env.Input
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Engine != "" {
		cfg.Render.Engine = strings.ToLower(env.Engine)
	}
	if env.Workers > 0 {
		cfg.Render.Workers = env.Workers
	}
	if env.AssetPrefix != "" {
		cfg.Site.AssetPrefix = env.AssetPrefix
	}
	if env.AssetDir != "" {
		cfg.Assets.BasePath = env.AssetDir
	}
}
