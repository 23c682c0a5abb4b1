// Package assets serves the page template and the side panels shown next to
// each report section.
//
// Built-in assets are embedded: templates/page.html and one panel per
// default section under panels/. A site can override any of them from a
// directory on disk laid out the same way:
//
//	{basePath}/
//	├── panels/introduction.html
//	└── templates/page.html
//
// AssetResolver checks the directory first and falls back to the embedded
// copy, so replacing one panel leaves the others in place.
//
// Names may not contain separators or "..". FilesystemLoader also resolves
// symlinks and rejects anything that ends up outside basePath.
package assets
