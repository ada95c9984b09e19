package search

import (
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
)

// SiteAnalyzerName is the name of the analyzer registered on the index mapping.
const SiteAnalyzerName = "site_analyzer"

// positionField holds a document's insertion position. It is sortable but
// never matched, and breaks score ties.
const positionField = "position"

// Analyzer turns free text into index terms. Index construction and queries
// must go through the same Analyzer so that terms line up.
type Analyzer struct {
	analyzer analysis.Analyzer
}

var (
	defaultAnalyzerOnce sync.Once
	defaultAnalyzer     *Analyzer
	defaultAnalyzerErr  error
)

// DefaultAnalyzer returns the shared site analyzer: unicode word segmentation
// followed by lowercasing.
func DefaultAnalyzer() (*Analyzer, error) {
	defaultAnalyzerOnce.Do(func() {
		defaultAnalyzer, defaultAnalyzerErr = NewAnalyzer()
	})
	return defaultAnalyzer, defaultAnalyzerErr
}

// NewAnalyzer builds the site analyzer from the index mapping.
func NewAnalyzer() (*Analyzer, error) {
	indexMapping, err := createIndexMapping()
	if err != nil {
		return nil, err
	}

	a := indexMapping.AnalyzerNamed(SiteAnalyzerName)
	if a == nil {
		return nil, fmt.Errorf("analyzer %s not registered", SiteAnalyzerName)
	}
	return &Analyzer{analyzer: a}, nil
}

// createIndexMapping maps the searchable fields to the site analyzer. Stored
// fields (id, type, route, badges) stay out of the bleve index entirely.
func createIndexMapping() (*mapping.IndexMappingImpl, error) {
	indexMapping := bleve.NewIndexMapping()

	err := indexMapping.AddCustomAnalyzer(SiteAnalyzerName, map[string]interface{}{
		"type":      custom.Name,
		"tokenizer": unicode.Name,
		"token_filters": []string{
			lowercase.Name,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add custom analyzer: %w", err)
	}
	indexMapping.DefaultAnalyzer = SiteAnalyzerName

	docMapping := bleve.NewDocumentStaticMapping()
	for _, f := range DefaultFields {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = SiteAnalyzerName
		fm.Store = false
		fm.IncludeInAll = false
		fm.IncludeTermVectors = false
		docMapping.AddFieldMappingsAt(string(f), fm)
	}
	pos := bleve.NewNumericFieldMapping()
	pos.Store = false
	pos.IncludeInAll = false
	docMapping.AddFieldMappingsAt(positionField, pos)

	indexMapping.DefaultMapping = docMapping
	indexMapping.StoreDynamic = false
	indexMapping.IndexDynamic = false
	return indexMapping, nil
}

// Tokens returns the analyzed terms of text in order, duplicates included.
func (a *Analyzer) Tokens(text string) []string {
	if text == "" {
		return nil
	}
	stream := a.analyzer.Analyze([]byte(text))
	tokens := make([]string, 0, len(stream))
	for _, tok := range stream {
		if len(tok.Term) == 0 {
			continue
		}
		tokens = append(tokens, string(tok.Term))
	}
	return tokens
}

// UniqueTokens returns the analyzed terms of text with duplicates removed,
// keeping first occurrence order.
func (a *Analyzer) UniqueTokens(text string) []string {
	tokens := a.Tokens(text)
	seen := make(map[string]struct{}, len(tokens))
	out := tokens[:0]
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
