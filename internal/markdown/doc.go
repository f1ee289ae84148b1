// Package markdown holds the pure transformations of the export: page
// title to filename slug, fetched page to frontmatter record, and HTML
// body plus frontmatter to the final Markdown document. Nothing in this
// package does I/O.
//
// # Slugs
//
// Slugify turns a page title into the filename stem used on disk:
//
//	markdown.Slugify("Getting Started")  // "getting-started"
//	markdown.Slugify("Café & Crème") // "cafe-creme"
//	markdown.Slugify("   ")              // "untitled"
//
// Titles are lowercased, accents are stripped via Unicode decomposition,
// and anything outside [a-z0-9] collapses into single hyphens. An empty
// result falls back to "untitled" so every page gets a usable filename.
//
// # Metadata
//
// ExtractMetadata pulls the frontmatter fields out of a fetched page:
// title, page id, space key, version number, last-modified timestamp,
// and the page's web URL resolved against the instance base URL. Fields
// the API response lacks are omitted from the frontmatter rather than
// written empty.
//
// # Documents
//
// Convert renders the storage-format HTML body and prepends the
// metadata as YAML frontmatter:
//
//	---
//	title: Getting Started
//	id: "12345"
//	space: DOC
//	version: 4
//	---
//
//	# Getting Started
//
//	Body converted from storage format...
//
// YAML serialization quotes values as needed, so no title or date can
// break the frontmatter delimiters.
package markdown
