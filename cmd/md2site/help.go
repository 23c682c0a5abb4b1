package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Split the report and write one HTML page per section")
	fmt.Fprintln(w, "  sections   List report sections and how they map to pages")
	fmt.Fprintln(w, "  init       Write a starter md2site.yaml")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Running md2site with no command builds Project_Report.md from the")
	fmt.Fprintln(w, "current or parent directory into docs/pages.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2site help <command>' for details on a specific command.")
}

// printBuildUsage prints the build command usage.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site build [report] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Split a markdown report on its '# N. TITLE' headings and write one")
	fmt.Fprintln(w, "HTML page fragment per mapped section.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  report    Markdown report (default: input.report, searched in . then ..)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Pages directory (default: docs/pages discovery)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -e, --engine <s>          Render engine: regex, goldmark")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel section renders (0 = auto)")
	fmt.Fprintln(w, "      --normalize-unicode   NFC-normalize the report before splitting")
	fmt.Fprintln(w, "      --asset-prefix <s>    Prefix for relative image and link targets")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom panels/templates directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watch:")
	fmt.Fprintln(w, "      --watch               Rebuild when the report or config changes")
	fmt.Fprintln(w, "      --debounce <d>        Quiet period before a rebuild (default 300ms)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show engine, timing and missing sections")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2SITE_CONFIG, MD2SITE_INPUT, MD2SITE_OUTPUT_DIR, MD2SITE_ENGINE,")
	fmt.Fprintln(w, "  MD2SITE_WORKERS, MD2SITE_ASSET_PREFIX, MD2SITE_ASSET_DIR")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  md2site build")
	fmt.Fprintln(w, "  md2site build Project_Report.md -o docs/pages")
	fmt.Fprintln(w, "  md2site build -c site.yaml --engine goldmark --watch")
}

// printSectionsUsage prints the sections command usage.
func printSectionsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site sections [report] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List the sections found in the report, the page each maps to, and")
	fmt.Fprintln(w, "section table entries missing from the report. Writes nothing.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only list unmapped sections")
	fmt.Fprintln(w, "  -v, --verbose             Also print page titles")
}

// printInitUsage prints the init command usage.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site init [path] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write the default configuration, section table included, to path")
	fmt.Fprintln(w, "(default: md2site.yaml).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -f, --force               Overwrite an existing file")
}

// runHelp prints help for a command, or the main usage without one.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case cmdBuild:
		printBuildUsage(env.Stdout)
	case cmdSections:
		printSectionsUsage(env.Stdout)
	case cmdInit:
		printInitUsage(env.Stdout)
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: md2site version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: md2site help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
