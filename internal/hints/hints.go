// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"
)

// LookupEnv is swapped in tests.
var LookupEnv = os.LookupEnv

// ForReportNotFound returns hints for a missing input report.
// Suggests passing the path explicitly, and MD2SITE_INPUT when it is unset.
func ForReportNotFound(name string) string {
	hints := []string{"pass the report path: md2site build path/to/" + name}
	if _, ok := LookupEnv("MD2SITE_INPUT"); !ok {
		hints = append(hints, "or set MD2SITE_INPUT")
	}
	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and creating a config under the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml or run md2site init"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-md2site/") {
			hint += "; or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable, or pass --output")
}

// ForUnknownEngine returns hints listing the accepted render engines.
func ForUnknownEngine(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available engines: " + strings.Join(available, ", "))
}

// ForPanelNotFound returns hints for a side panel asset that cannot be loaded.
func ForPanelNotFound(name string) string {
	if name == "" {
		return ""
	}
	return format("add panels/" + name + ".html under assets.basePath or set panelHTML in the section")
}

// ForUnmappedSections returns a hint when some document sections have no page.
func ForUnmappedSections(count int) string {
	if count == 0 {
		return ""
	}
	return format("run md2site sections to compare document headings with the section table")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
