package book

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=./mocks/repository_mock.go -package=mocks

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/idilsaglam/tada/internal/model"
)

// Repository persists books. Missing documents are reported as ErrNotFound.
type Repository interface {
	Insert(ctx context.Context, b model.Book) (primitive.ObjectID, error)
	Get(ctx context.Context, id primitive.ObjectID) (model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	Replace(ctx context.Context, b model.Book) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
