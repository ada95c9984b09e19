// Package search implements the offline site search index: the document model,
// the site analyzer, an immutable index over an in-memory bleve index, and its
// JSON snapshot format.
package search

import "time"

// Document types, one per content provenance category.
const (
	TypeIdentity   = "Identity"
	TypeMotto      = "Motto"
	TypeAbout      = "About"
	TypeField      = "Field"
	TypeLanguage   = "Language"
	TypeEducation  = "Education"
	TypeAward      = "Award"
	TypeRepository = "Repository"
	TypeMedia      = "Media"
	TypePresence   = "Presence"
)

// Document is the unit indexed and retrieved.
type Document struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Route       string   `json:"route"`
	Badges      []string `json:"badges"`
	Keywords    []string `json:"keywords"`
}

// Hit is a matched document projected for display. Keywords never leave the
// index; they only aid matching.
type Hit struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Route       string   `json:"route"`
	Badges      []string `json:"badges"`
	Score       float64  `json:"score"`
}

// Artifact file names, relative to the public directory.
const (
	IndexFile    = "search-index.json"
	ManifestFile = "search-manifest.json"
)

// Manifest accompanies the serialized index.
type Manifest struct {
	GeneratedAt string `json:"generatedAt"`
	Documents   int    `json:"documents"`
}

// NewManifest stamps a manifest for count documents at t (UTC, ISO-8601).
func NewManifest(count int, t time.Time) Manifest {
	return Manifest{
		GeneratedAt: t.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Documents:   count,
	}
}

// Field names a full-text searchable field.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldKeywords    Field = "keywords"
)

// DefaultFields is the restricted field set queries search by default.
var DefaultFields = []Field{FieldTitle, FieldDescription, FieldKeywords}

// Valid reports whether f is a searchable field.
func (f Field) Valid() bool {
	switch f {
	case FieldTitle, FieldDescription, FieldKeywords:
		return true
	}
	return false
}
