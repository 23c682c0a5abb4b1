package main

import (
	"errors"
	"os"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/config"
)

// Exit codes for md2site CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Pages built
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or section table
	ExitIO      = 3 // Report not found, output not writable
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReportNotFound) ||
		errors.Is(err, ErrReadReport) ||
		errors.Is(err, ErrWritePage) ||
		errors.Is(err, ErrOutputDir) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrConfigExists) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrNoSections) ||
		errors.Is(err, config.ErrDuplicateSection) ||
		errors.Is(err, config.ErrInvalidFileName) ||
		errors.Is(err, config.ErrUnknownEngine) ||
		errors.Is(err, config.ErrInvalidWorkers) ||
		errors.Is(err, md2site.ErrUnknownEngine) ||
		errors.Is(err, md2site.ErrNoSectionTable) ||
		errors.Is(err, md2site.ErrInvalidSection) ||
		errors.Is(err, md2site.ErrPanelNotFound) ||
		errors.Is(err, md2site.ErrTemplateNotFound) ||
		errors.Is(err, md2site.ErrInvalidAssetPath) ||
		errors.Is(err, md2site.ErrPageAssembly) {
		return ExitUsage
	}

	return ExitGeneral
}
