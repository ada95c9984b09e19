package search

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// SnapshotFormat identifies a serialized Index.
	SnapshotFormat = "wiki-search"

	// SnapshotVersion is bumped whenever the layout or the analyzer changes.
	SnapshotVersion = 2
)

// ErrCorruptSnapshot is returned by Load for payloads it cannot reconstruct.
var ErrCorruptSnapshot = errors.New("corrupt search index snapshot")

// snapshot carries the stored projection of every document plus its keywords,
// in insertion order. Load re-indexes them.
type snapshot struct {
	Format   string           `json:"format"`
	Version  int              `json:"version"`
	Analyzer string           `json:"analyzer"`
	Docs     []storedDocument `json:"docs"`
	Keywords [][]string       `json:"keywords"`
}

// MarshalJSON serializes the index. Identical documents always produce
// identical bytes.
func (ix *Index) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshot{
		Format:   SnapshotFormat,
		Version:  SnapshotVersion,
		Analyzer: SiteAnalyzerName,
		Docs:     ix.docs,
		Keywords: ix.keywords,
	})
}

// Load reconstructs an Index from bytes produced by MarshalJSON. The original
// document list is not needed.
func Load(data []byte) (*Index, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if snap.Format != SnapshotFormat {
		return nil, fmt.Errorf("%w: unexpected format %q", ErrCorruptSnapshot, snap.Format)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptSnapshot, snap.Version)
	}
	if snap.Analyzer != SiteAnalyzerName {
		return nil, fmt.Errorf("%w: unknown analyzer %q", ErrCorruptSnapshot, snap.Analyzer)
	}
	if len(snap.Keywords) != len(snap.Docs) {
		return nil, fmt.Errorf("%w: %d keyword lists for %d documents",
			ErrCorruptSnapshot, len(snap.Keywords), len(snap.Docs))
	}

	docs := snap.Docs
	if docs == nil {
		docs = []storedDocument{}
	}
	keywords := snap.Keywords
	if keywords == nil {
		keywords = [][]string{}
	}

	seen := make(map[string]struct{}, len(docs))
	for i := range docs {
		d := &docs[i]
		if d.ID == "" || d.Title == "" || d.Route == "" {
			return nil, fmt.Errorf("%w: document %d is incomplete", ErrCorruptSnapshot, i)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrCorruptSnapshot, d.ID)
		}
		seen[d.ID] = struct{}{}
		d.Badges = nonNil(d.Badges)
		keywords[i] = nonNil(keywords[i])
	}

	return newIndex(docs, keywords)
}
