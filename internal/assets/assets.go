package assets

// DefaultPageTemplateName is the name of the built-in page template.
const DefaultPageTemplateName = "page"

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadPanel loads a side panel by name using the default embedded loader.
// Returns ErrPanelNotFound if the panel does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadPanel(name string) (string, error) {
	return defaultLoader.LoadPanel(name)
}

// LoadTemplate loads a page template by name using the default embedded loader.
// Returns ErrTemplateNotFound if the template does not exist.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}
