package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	md2site "github.com/alnah/go-md2site"
)

// runSections prints how the report's sections map onto the section table
// without writing any page.
func runSections(args []string, env *Environment) error {
	flags, positional, err := parseSectionsFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: sections takes at most one report path, got %d", ErrTooManyArgs, len(positional))
	}

	cwd, cfg, _, err := resolveConfig(env, flags.common.config)
	if err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	reportPath, err := resolveReportPath(cwd, firstArg(positional), cfg.Input.Report)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(reportPath) // #nosec G304 -- report path is user-provided
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrReadReport, reportPath, err)
	}

	table := md2site.FromConfig(cfg.Sections)
	statuses := md2site.Inspect(string(data), table, cfg.Render.NormalizeUnicode)

	printSections(env.Stdout, filepath.Base(reportPath), statuses, table, flags.common)
	return nil
}

// printSections writes one line per document section, then the table
// entries that never appear in the document.
func printSections(w io.Writer, report string, statuses []md2site.SectionStatus, table []md2site.SectionConfig, common commonFlags) {
	width := 0
	found := make(map[string]bool, len(statuses))
	for _, st := range statuses {
		width = max(width, len(st.Key))
		found[st.Key] = true
	}

	titles := make(map[string]string, len(table))
	for _, s := range table {
		titles[s.Key] = s.Title
	}

	if !common.quiet {
		fmt.Fprintf(w, "Sections in %s:\n", report)
	}
	for _, st := range statuses {
		if !st.Mapped {
			fmt.Fprintf(w, "  %-*s    (unmapped)\n", width, st.Key)
			continue
		}
		if common.quiet {
			continue
		}
		line := fmt.Sprintf("  %-*s -> %s", width, st.Key, st.File)
		if common.verbose {
			line += fmt.Sprintf(" (%s)", titles[st.Key])
		}
		fmt.Fprintln(w, line)
	}

	if common.quiet {
		return
	}
	var missing []string
	for _, s := range table {
		if !found[s.Key] {
			missing = append(missing, s.Key)
		}
	}
	if len(missing) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Missing from report:")
		for _, key := range missing {
			fmt.Fprintf(w, "  %s\n", key)
		}
	}
}
