package assets

// AssetLoader defines the contract for loading side panels and page templates.
type AssetLoader interface {
	// LoadPanel loads side panel HTML by name (without .html extension).
	// Returns ErrPanelNotFound if the panel doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadPanel(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}
