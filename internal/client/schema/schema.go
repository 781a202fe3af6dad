// Package schema validates documents read back from local storage against
// the embedded JSON Schemas in documents/.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed documents/*.json
var documents embed.FS

// Kind names a stored document type.
type Kind string

const (
	Users   Kind = "users"
	Tasks   Kind = "tasks"
	Session Kind = "session"
)

var (
	compileOnce sync.Once
	compiled    map[Kind]*jsonschema.Schema
	compileErr  error
)

func compileAll() {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	kinds := []Kind{Users, Tasks, Session}
	for _, k := range kinds {
		raw, err := documents.ReadFile("documents/" + string(k) + ".json")
		if err != nil {
			compileErr = fmt.Errorf("read schema %s: %w", k, err)
			return
		}
		if err := compiler.AddResource(resourceURL(k), bytes.NewReader(raw)); err != nil {
			compileErr = fmt.Errorf("add schema %s: %w", k, err)
			return
		}
	}

	compiled = make(map[Kind]*jsonschema.Schema, len(kinds))
	for _, k := range kinds {
		s, err := compiler.Compile(resourceURL(k))
		if err != nil {
			compileErr = fmt.Errorf("compile schema %s: %w", k, err)
			return
		}
		compiled[k] = s
	}
}

func resourceURL(k Kind) string {
	return "mem://gophtodo/" + string(k) + ".json"
}

// Validate checks data against the schema for kind. A document that is not
// JSON or does not match the schema yields an error wrapping
// common.ErrCorruptDocument.
func Validate(kind Kind, data []byte) error {
	compileOnce.Do(compileAll)
	if compileErr != nil {
		return compileErr
	}

	s, ok := compiled[kind]
	if !ok {
		return fmt.Errorf("unknown document kind %q", kind)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrCorruptDocument, kind, err)
	}

	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s: %s", common.ErrCorruptDocument, kind, describe(err))
	}
	return nil
}

// describe flattens a jsonschema error tree into "location: message" leaves.
func describe(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	var leaves []string
	collect(ve, &leaves)
	return strings.Join(leaves, "; ")
}

func collect(ve *jsonschema.ValidationError, out *[]string) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*out = append(*out, loc+": "+ve.Message)
		return
	}
	for _, c := range ve.Causes {
		collect(c, out)
	}
}
