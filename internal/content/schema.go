package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// ValidationError reports a collection that does not match its schema.
type ValidationError struct {
	Collection string
	File       string
	Err        error
}

func (e *ValidationError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s (%s): %v", e.Collection, e.File, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Collection, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

var (
	schemasOnce sync.Once
	schemas     map[string]*jsonschema.Resolved
	schemasErr  error
)

func resolvedSchemas() (map[string]*jsonschema.Resolved, error) {
	schemasOnce.Do(func() {
		schemas = make(map[string]*jsonschema.Resolved, len(Collections))
		for _, c := range Collections {
			raw, err := schemaFS.ReadFile("schemas/" + c.File)
			if err != nil {
				schemasErr = fmt.Errorf("read schema %s: %w", c.Name, err)
				return
			}
			var s jsonschema.Schema
			if err := json.Unmarshal(raw, &s); err != nil {
				schemasErr = fmt.Errorf("parse schema %s: %w", c.Name, err)
				return
			}
			resolved, err := s.Resolve(nil)
			if err != nil {
				schemasErr = fmt.Errorf("resolve schema %s: %w", c.Name, err)
				return
			}
			schemas[c.Name] = resolved
		}
	})
	return schemas, schemasErr
}

// Validate checks raw against the schema of the named collection.
// Failures are returned as *ValidationError.
func Validate(name string, raw []byte) error {
	c, ok := collectionByName(name)
	if !ok {
		return fmt.Errorf("unknown collection %q", name)
	}

	all, err := resolvedSchemas()
	if err != nil {
		return err
	}

	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return &ValidationError{Collection: c.Name, File: c.File, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := all[c.Name].Validate(instance); err != nil {
		return &ValidationError{Collection: c.Name, File: c.File, Err: err}
	}
	return nil
}
