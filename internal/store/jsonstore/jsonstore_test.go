package jsonstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/idilsaglam/tada/internal/book"
	"github.com/idilsaglam/tada/internal/model"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "books.json")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadBooks(t *testing.T) {
	p := writeFile(t, `[
  {"bookName": "Design Patterns", "price": 54.93, "category": "Computers", "author": "Ralph Johnson"},
  {"id": "5bfd996f7b8e48dc15ff215d", "bookName": "Clean Code", "price": "43.15", "author": "Robert C. Martin"}
]`)

	got, err := LoadBooks(p)

	require.NoError(t, err)
	assert.Equal(t, []book.Input{
		{BookName: "Design Patterns", Price: "54.93", Category: "Computers", Author: "Ralph Johnson"},
		{BookName: "Clean Code", Price: "43.15", Author: "Robert C. Martin"},
	}, got)
}

func TestLoadBooks_SchemaErrors(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantField string
	}{
		{name: "not an array", content: `{"bookName": "x"}`, wantField: "/"},
		{name: "missing author", content: `[{"bookName": "x", "price": 1}]`, wantField: "/0"},
		{name: "negative price", content: `[{"bookName": "x", "price": -1, "author": "y"}]`, wantField: "/0/price"},
		{name: "price text", content: `[{"bookName": "x", "price": "free", "author": "y"}]`, wantField: "/0/price"},
		{name: "padded price string", content: `[{"bookName": "x", "price": " 12.5 ", "author": "y"}]`, wantField: "/0/price"},
		{name: "unknown field", content: `[{"bookName": "x", "price": 1, "author": "y", "isbn": "1"}]`, wantField: "/0"},
		{name: "second entry", content: `[{"bookName": "x", "price": 1, "author": "y"}, {"bookName": "", "price": 1, "author": "y"}]`, wantField: "/1/bookName"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBooks(writeFile(t, tt.content))

			var verr *book.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestLoadBooks_FileErrors(t *testing.T) {
	_, err := LoadBooks(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadBooks(writeFile(t, `[{`))
	assert.ErrorContains(t, err, "json unmarshal")
}

func TestSaveBooks_RoundTrip(t *testing.T) {
	price, err := primitive.ParseDecimal128("54.93")
	require.NoError(t, err)
	books := []model.Book{{
		ID:       primitive.NewObjectID(),
		BookName: "Design Patterns",
		Price:    price,
		Category: "Computers",
		Author:   "Ralph Johnson",
	}}
	p := filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, SaveBooks(p, books))

	raw, err := os.ReadFile(p)
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, books[0].ID.Hex(), decoded[0]["id"])
	assert.Equal(t, 54.93, decoded[0]["price"], "price is a number literal")

	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	got, err := LoadBooks(p)
	require.NoError(t, err)
	assert.Equal(t, []book.Input{book.FromModel(books[0])}, got)
}

func TestSaveBooks_Empty(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, SaveBooks(p, nil))

	raw, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(raw))

	got, err := LoadBooks(p)
	require.NoError(t, err)
	assert.Empty(t, got)
}
