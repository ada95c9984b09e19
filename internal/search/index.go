package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// DefaultLimit is the number of hits returned when Options.Limit is unset.
const DefaultLimit = 8

var (
	// ErrDuplicateID is returned by Build when two documents share an id.
	ErrDuplicateID = errors.New("duplicate document id")

	// ErrInvalidDocument is returned by Build for a document missing id, title or route.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrUnknownField is returned by Search for a field outside DefaultFields.
	ErrUnknownField = errors.New("unknown search field")
)

// Options configures a single lookup.
type Options struct {
	// Limit caps the number of hits. Zero or negative means DefaultLimit.
	Limit int

	// Fields restricts matching to these fields. Empty means DefaultFields.
	Fields []Field
}

func (o Options) withDefaults() Options {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if len(o.Fields) == 0 {
		o.Fields = DefaultFields
	}
	return o
}

// storedDocument is the retrievable part of a Document.
type storedDocument struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Route       string   `json:"route"`
	Badges      []string `json:"badges"`
}

// bleveDocument is what the bleve index sees of a document.
type bleveDocument struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Position    float64  `json:"position"`
}

// Index is an immutable full-text index over a fixed document set, backed by
// an in-memory bleve index. It is safe for concurrent use; nothing writes to
// it after Build or Load.
type Index struct {
	analyzer *Analyzer
	docs     []storedDocument
	keywords [][]string
	ids      map[string]int
	index    bleve.Index
}

// Build constructs an Index from docs. Insertion order is kept as the tie-break
// order for equal scores.
func Build(docs []Document) (*Index, error) {
	stored := make([]storedDocument, 0, len(docs))
	keywords := make([][]string, 0, len(docs))
	seen := make(map[string]struct{}, len(docs))

	for i := range docs {
		doc := &docs[i]
		if err := checkDocument(doc); err != nil {
			return nil, err
		}
		if _, dup := seen[doc.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, doc.ID)
		}
		seen[doc.ID] = struct{}{}

		stored = append(stored, storedDocument{
			ID:          doc.ID,
			Type:        doc.Type,
			Title:       doc.Title,
			Description: doc.Description,
			Route:       doc.Route,
			Badges:      nonNil(doc.Badges),
		})
		keywords = append(keywords, nonNil(doc.Keywords))
	}

	return newIndex(stored, keywords)
}

// newIndex indexes docs into a fresh in-memory bleve index. docs and keywords
// run in parallel and must already be validated.
func newIndex(docs []storedDocument, keywords [][]string) (*Index, error) {
	analyzer, err := DefaultAnalyzer()
	if err != nil {
		return nil, err
	}

	indexMapping, err := createIndexMapping()
	if err != nil {
		return nil, err
	}

	index, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}

	ix := &Index{
		analyzer: analyzer,
		docs:     docs,
		keywords: keywords,
		ids:      make(map[string]int, len(docs)),
		index:    index,
	}

	batch := index.NewBatch()
	for i, d := range docs {
		ix.ids[d.ID] = i
		err := batch.Index(d.ID, bleveDocument{
			Title:       d.Title,
			Description: d.Description,
			Keywords:    keywords[i],
			Position:    float64(i),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to index %q: %w", d.ID, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		return nil, fmt.Errorf("failed to execute batch: %w", err)
	}

	return ix, nil
}

func checkDocument(doc *Document) error {
	switch {
	case doc.ID == "":
		return fmt.Errorf("%w: empty id (title %q)", ErrInvalidDocument, doc.Title)
	case doc.Title == "":
		return fmt.Errorf("%w: %q has an empty title", ErrInvalidDocument, doc.ID)
	case doc.Route == "":
		return fmt.Errorf("%w: %q has an empty route", ErrInvalidDocument, doc.ID)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int {
	return len(ix.docs)
}

// Document returns the stored projection of the document with id.
func (ix *Index) Document(id string) (Hit, bool) {
	n, ok := ix.ids[id]
	if !ok {
		return Hit{}, false
	}
	return ix.hit(n, 0), true
}

func (ix *Index) hit(n int, score float64) Hit {
	d := ix.docs[n]
	badges := make([]string, len(d.Badges))
	copy(badges, d.Badges)
	return Hit{
		ID:          d.ID,
		Type:        d.Type,
		Title:       d.Title,
		Description: d.Description,
		Route:       d.Route,
		Badges:      badges,
		Score:       score,
	}
}

// Search returns hits for query ranked by bleve's lexical scoring over the
// requested fields. Every query token matches the indexed terms it prefixes.
// Equal scores keep insertion order.
func (ix *Index) Search(ctx context.Context, q string, opts Options) ([]Hit, error) {
	opts = opts.withDefaults()
	for _, f := range opts.Fields {
		if !f.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, f)
		}
	}

	if strings.TrimSpace(q) == "" {
		return []Hit{}, nil
	}

	tokens := ix.analyzer.UniqueTokens(q)
	if len(tokens) == 0 {
		return []Hit{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clauses := make([]query.Query, 0, len(tokens)*len(opts.Fields))
	for _, tok := range tokens {
		for _, f := range opts.Fields {
			pq := bleve.NewPrefixQuery(tok)
			pq.SetField(string(f))
			clauses = append(clauses, pq)
		}
	}

	req := bleve.NewSearchRequest(bleve.NewDisjunctionQuery(clauses...))
	req.Size = opts.Limit
	req.SortBy([]string{"-_score", positionField})

	result, err := ix.index.SearchInContext(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]Hit, 0, len(result.Hits))
	for _, h := range result.Hits {
		n, ok := ix.ids[h.ID]
		if !ok {
			continue
		}
		hits = append(hits, ix.hit(n, h.Score))
	}
	return hits, nil
}
