// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

// Package schema compiles the declarative JSON Schema documents that guard
// every dispatcher, and flattens validation failures into per-field
// violation strings suitable for invalid-params errors.
//
// The same documents double as the inputSchema declarations served in
// tools/list, so what the catalog advertises is exactly what is enforced.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema is a compiled validation schema plus its source document.
type Schema struct {
	name     string
	doc      map[string]any
	compiled *jsonschema.Schema
}

// MustCompile compiles a schema document, panicking on malformed documents.
// Documents are package-level declarations; a compile failure is a
// programming error caught by any test that imports the package.
func MustCompile(name string, doc map[string]any) *Schema {
	data, err := json.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("schema %s: marshal: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name+".json", strings.NewReader(string(data))); err != nil {
		panic(fmt.Sprintf("schema %s: add resource: %v", name, err))
	}
	compiled, err := compiler.Compile(name + ".json")
	if err != nil {
		panic(fmt.Sprintf("schema %s: compile: %v", name, err))
	}

	return &Schema{name: name, doc: doc, compiled: compiled}
}

// Document returns the source JSON Schema document.
func (s *Schema) Document() map[string]any {
	return s.doc
}

// Validate checks a decoded JSON value against the schema. It returns nil
// when the value conforms, otherwise one violation string per failing leaf
// constraint.
func (s *Schema) Validate(v any) []string {
	err := s.compiled.Validate(v)
	if err == nil {
		return nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}
	}

	var violations []string
	collectLeaves(ve, &violations)
	if len(violations) == 0 {
		violations = []string{ve.Message}
	}
	return violations
}

// collectLeaves walks the cause tree and keeps only the leaf messages; the
// intermediate nodes just restate that a child failed.
func collectLeaves(ve *jsonschema.ValidationError, out *[]string) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "(root)"
		}
		*out = append(*out, fmt.Sprintf("%s: %s", loc, ve.Message))
		return
	}
	for _, cause := range ve.Causes {
		collectLeaves(cause, out)
	}
}

// Prefix re-roots violation locations under a parent field, used when a
// nested payload is validated against its own document.
func Prefix(field string, violations []string) []string {
	out := make([]string, len(violations))
	for i, v := range violations {
		if rest, ok := strings.CutPrefix(v, "(root)"); ok {
			out[i] = "/" + field + rest
		} else {
			out[i] = "/" + field + v
		}
	}
	return out
}

// Decode narrows a validated argument bag into a typed call struct via a
// JSON round trip. Validation has already rejected non-conforming values, so
// a decode failure here is a schema/struct mismatch.
func Decode(args map[string]any, out any) error {
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("schema: marshal args: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("schema: decode args: %w", err)
	}
	return nil
}
