package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names.
const (
	cmdBuild    = "build"
	cmdSections = "sections"
	cmdInit     = "init"
	cmdVersion  = "version"
	cmdHelp     = "help"
)

func main() {
	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches args[1:] to a command and returns the exit code.
// With no command, or when the first argument is a flag or a markdown file,
// it runs build.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}

	err := dispatch(ctx, rest, env)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if errors.Is(err, context.Canceled) {
		// Interrupted watch or build: not a failure worth reporting.
		return ExitSuccess
	}

	fmt.Fprintf(env.Stderr, "error: %v\n", err)
	if errors.Is(err, ErrUnknownCommand) {
		printUsage(env.Stderr)
	}
	return exitCodeFor(err)
}

// dispatch routes to the command named by args[0].
func dispatch(ctx context.Context, args []string, env *Environment) error {
	if len(args) == 0 || impliesBuild(args[0]) {
		return runBuild(ctx, args, env)
	}

	cmd, rest := args[0], args[1:]
	switch {
	case cmd == cmdBuild:
		return runBuild(ctx, rest, env)
	case cmd == cmdSections:
		return runSections(rest, env)
	case cmd == cmdInit:
		return runInit(rest, env)
	case cmd == cmdVersion || cmd == "--version":
		fmt.Fprintf(env.Stdout, "md2site %s\n", Version)
		return nil
	case cmd == cmdHelp:
		runHelp(rest, env)
		return nil
	case isHelpFlag(cmd):
		printUsage(env.Stdout)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}

// impliesBuild reports whether a first argument that is not a command
// should be handed to build: a build flag or a markdown file.
func impliesBuild(arg string) bool {
	if looksLikeMarkdown(arg) {
		return true
	}
	return strings.HasPrefix(arg, "-") && !isHelpFlag(arg) && arg != "--version"
}

// isHelpFlag reports whether arg asks for help.
func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help"
}

// looksLikeMarkdown reports whether arg names a markdown file.
func looksLikeMarkdown(arg string) bool {
	lower := strings.ToLower(arg)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}

// hasVerboseFlag reports whether -v or --verbose appears before "--".
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}
