package book

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() Input {
	return Input{BookName: "Design Patterns", Price: "54.93", Category: "Computers", Author: "Ralph Johnson"}
}

func TestInput_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(in *Input)
		wantField string
		wantMsg   string
	}{
		{name: "valid", mutate: func(in *Input) {}},
		{name: "empty category is fine", mutate: func(in *Input) { in.Category = "" }},
		{name: "zero price", mutate: func(in *Input) { in.Price = "0" }},
		{
			name:      "missing name",
			mutate:    func(in *Input) { in.BookName = "" },
			wantField: "bookName",
			wantMsg:   "bookName is required",
		},
		{
			name:      "name too long",
			mutate:    func(in *Input) { in.BookName = strings.Repeat("a", 256) },
			wantField: "bookName",
			wantMsg:   "bookName must be at most 255 characters",
		},
		{
			name:      "missing price",
			mutate:    func(in *Input) { in.Price = "" },
			wantField: "price",
			wantMsg:   "price is required",
		},
		{
			name:      "negative price",
			mutate:    func(in *Input) { in.Price = "-1.5" },
			wantField: "price",
			wantMsg:   "price must be a non-negative decimal",
		},
		{
			name:      "not a number",
			mutate:    func(in *Input) { in.Price = "cheap" },
			wantField: "price",
		},
		{
			name:      "infinite price",
			mutate:    func(in *Input) { in.Price = "Infinity" },
			wantField: "price",
		},
		{
			name:      "category too long",
			mutate:    func(in *Input) { in.Category = strings.Repeat("c", 101) },
			wantField: "category",
		},
		{
			name:      "missing author",
			mutate:    func(in *Input) { in.Author = "" },
			wantField: "author",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			err := in.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.wantField, verr.Field)
			if tt.wantMsg != "" {
				assert.EqualError(t, err, tt.wantMsg)
			}
		})
	}
}

func TestInput_ToModel(t *testing.T) {
	b, err := validInput().ToModel()
	require.NoError(t, err)

	assert.True(t, b.ID.IsZero())
	assert.Equal(t, "Design Patterns", b.BookName)
	assert.Equal(t, "54.93", b.Price.String())
	assert.Equal(t, "Computers", b.Category)
	assert.Equal(t, "Ralph Johnson", b.Author)

	assert.Equal(t, validInput(), FromModel(b))
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "43.15", want: "43.15"},
		{in: " 7 ", want: "7"},
		{in: "0.00", want: "0.00"},
		{in: "-0.01", wantErr: true},
		{in: "NaN", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParsePrice(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestParseID(t *testing.T) {
	oid, err := ParseID("5bfd996f7b8e48dc15ff215d")
	require.NoError(t, err)
	assert.Equal(t, "5bfd996f7b8e48dc15ff215d", oid.Hex())

	for _, bad := range []string{"", "42", "5bfd996f7b8e48dc15ff215z", "5bfd996f7b8e48dc15ff215d00"} {
		_, err := ParseID(bad)
		assert.ErrorIs(t, err, ErrInvalidID, bad)
	}
}
