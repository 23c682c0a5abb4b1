package md2site

import "errors"

// Sentinel errors for library operations.
var (
	ErrNoSectionTable = errors.New("section table cannot be empty")
	ErrInvalidSection = errors.New("invalid section configuration")
	ErrUnknownEngine  = errors.New("unknown render engine")
	ErrRender         = errors.New("section rendering failed")
	ErrPageAssembly   = errors.New("page assembly failed")

	// Asset loading errors.
	ErrPanelNotFound    = errors.New("side panel not found")
	ErrTemplateNotFound = errors.New("page template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
