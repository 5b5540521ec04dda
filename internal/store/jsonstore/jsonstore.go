// Package jsonstore reads and writes book files: a JSON array with one
// object per book, checked against an embedded JSON Schema on the way in.
package jsonstore

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/tada/internal/book"
	"github.com/idilsaglam/tada/internal/model"
)

const schemaURL = "books.schema.json"

//go:embed books.schema.json
var schemaSource []byte

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaSource)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
})

// record is the file form of a book. Prices are written as number literals
// and read from either numbers or numeric strings.
type record struct {
	ID       string      `json:"id,omitempty"`
	BookName string      `json:"bookName"`
	Price    json.Number `json:"price"`
	Category string      `json:"category"`
	Author   string      `json:"author"`
}

// LoadBooks reads the book file at path. Ids in the file are ignored.
func LoadBooks(path string) ([]book.Input, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if err := validate(b); err != nil {
		return nil, err
	}
	var recs []record
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	inputs := make([]book.Input, len(recs))
	for i, r := range recs {
		inputs[i] = book.Input{
			BookName: r.BookName,
			Price:    r.Price.String(),
			Category: r.Category,
			Author:   r.Author,
		}
	}
	return inputs, nil
}

// SaveBooks writes books to path, replacing the file.
func SaveBooks(path string, books []model.Book) error {
	recs := make([]record, len(books))
	for i, bk := range books {
		recs[i] = record{
			ID:       bk.ID.Hex(),
			BookName: bk.BookName,
			Price:    json.Number(bk.Price.String()),
			Category: bk.Category,
			Author:   bk.Author,
		}
	}
	b, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func validate(b []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return fmt.Errorf("validate file: %w", err)
		}
		leaf := firstLeaf(ve)
		loc := leaf.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return &book.ValidationError{Field: loc, Err: fmt.Errorf("%s: %s", loc, leaf.Message)}
	}
	return nil
}

// firstLeaf walks down to the first error without causes; that is the one
// pointing at the offending value.
func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}
