package book

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/idilsaglam/tada/internal/model"
)

var validate = newValidator()

var messages = map[string]string{
	"required": "{field} is required",
	"max":      "{field} must be at most {param} characters",
	"price":    "{field} must be a non-negative decimal",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		_, err := ParsePrice(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// Input holds the user-editable fields of a book.
type Input struct {
	BookName string `json:"bookName" validate:"required,max=255"`
	Price    string `json:"price" validate:"required,price"`
	Category string `json:"category" validate:"max=100"`
	Author   string `json:"author" validate:"required,max=255"`
}

// Validate returns a *ValidationError for the first failing field.
func (in Input) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return fmt.Errorf("validate book: %w", err)
	}
	fe := fields[0]
	return &ValidationError{Field: fe.Field(), Err: errors.New(message(fe))}
}

func message(fe validator.FieldError) string {
	msg, ok := messages[fe.Tag()]
	if !ok {
		return fe.Error()
	}
	msg = strings.ReplaceAll(msg, "{field}", fe.Field())
	return strings.ReplaceAll(msg, "{param}", fe.Param())
}

// ToModel converts a validated input. The id is left zero.
func (in Input) ToModel() (model.Book, error) {
	price, err := ParsePrice(in.Price)
	if err != nil {
		return model.Book{}, &ValidationError{Field: "price", Err: err}
	}
	return model.Book{
		BookName: in.BookName,
		Price:    price,
		Category: in.Category,
		Author:   in.Author,
	}, nil
}

// FromModel is the inverse of ToModel.
func FromModel(b model.Book) Input {
	return Input{
		BookName: b.BookName,
		Price:    b.Price.String(),
		Category: b.Category,
		Author:   b.Author,
	}
}

// ParsePrice parses a finite, non-negative decimal such as "12.50".
func ParsePrice(s string) (primitive.Decimal128, error) {
	d, err := primitive.ParseDecimal128(strings.TrimSpace(s))
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("parse price %q: %w", s, err)
	}
	// BigInt fails for NaN and infinities.
	coef, _, err := d.BigInt()
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("parse price %q: %w", s, err)
	}
	if coef.Sign() < 0 {
		return primitive.Decimal128{}, fmt.Errorf("parse price %q: negative", s)
	}
	return d, nil
}

// ParseID parses a 24 character hex object id.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}
