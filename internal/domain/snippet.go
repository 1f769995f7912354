// Package domain provides domain models used across the application.
package domain

import "github.com/jonesrussell/snipfeed/internal/tags"

// SnippetRecord is the canonical normalized content item produced by the
// ingestion pipeline. It is the only shape that reaches the output sink,
// regardless of which source adapter produced it.
type SnippetRecord struct {
	// Composite stable identifier, prefixed with the source slug
	// (e.g. "devto-101", "hashnode-g1"). Unique across all sources
	// after deduplication.
	ObjectID string `json:"objectID" mapstructure:"objectID"`
	// Title of the content item
	Title string `json:"title" mapstructure:"title"`
	// Description or body excerpt; empty string when the source has none
	Snippet string `json:"snippet" mapstructure:"snippet"`
	// Duplicate of Snippet, kept for backward-compatible output shape
	Preview string `json:"preview" mapstructure:"preview"`
	// Canonical link to the original content
	URL string `json:"url" mapstructure:"url"`
	// Canonical tag list; always an array of trimmed non-empty strings
	Tags []string `json:"tags" mapstructure:"tags"`
	// Short slug identifying the origin (e.g. "dev.to", "css-tricks")
	Source string `json:"source" mapstructure:"source"`
	// Publication timestamp as reported by the source; not re-validated
	PublishedAt string `json:"publishedAt,omitempty" mapstructure:"publishedAt"`
	// Estimated reading time in minutes, when the source provides it
	ReadingTime int `json:"readingTime,omitempty" mapstructure:"readingTime"`
	// Author name, when the source provides it
	Author string `json:"author,omitempty" mapstructure:"author"`

	// RawTags holds the source's unresolved tag representation. It is
	// consumed exactly once by the final normalization pass, which
	// populates Tags; nothing downstream branches on it.
	RawTags tags.Value `json:"-" mapstructure:"-"`
}
