package mongostore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/idilsaglam/tada/internal/book"
	"github.com/idilsaglam/tada/internal/model"
)

func ns(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func bookDoc(id primitive.ObjectID, name, price string) bson.D {
	d, err := primitive.ParseDecimal128(price)
	if err != nil {
		panic(err)
	}
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "Name", Value: name},
		{Key: "Price", Value: d},
		{Key: "Category", Value: "Computers"},
		{Key: "Author", Value: "Robert C. Martin"},
	}
}

func TestBooks(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert assigns an id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewBooks(mt.Coll)

		id, err := repo.Insert(context.Background(), model.Book{BookName: "Clean Code"})

		require.NoError(mt, err)
		assert.False(mt, id.IsZero())
	})

	mt.Run("insert error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))
		repo := NewBooks(mt.Coll)

		_, err := repo.Insert(context.Background(), model.Book{BookName: "Clean Code"})
		assert.ErrorContains(mt, err, "insert book")
	})

	mt.Run("get decodes the Name element", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bookDoc(id, "Clean Code", "43.15")))
		repo := NewBooks(mt.Coll)

		got, err := repo.Get(context.Background(), id)

		require.NoError(mt, err)
		assert.Equal(mt, id, got.ID)
		assert.Equal(mt, "Clean Code", got.BookName)
		assert.Equal(mt, "43.15", got.Price.String())
		assert.Equal(mt, "Computers", got.Category)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))
		repo := NewBooks(mt.Coll)

		_, err := repo.Get(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, book.ErrNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		first := mtest.CreateCursorResponse(1, ns(mt), mtest.FirstBatch, bookDoc(primitive.NewObjectID(), "Clean Code", "43.15"))
		second := mtest.CreateCursorResponse(1, ns(mt), mtest.NextBatch, bookDoc(primitive.NewObjectID(), "Design Patterns", "54.93"))
		done := mtest.CreateCursorResponse(0, ns(mt), mtest.NextBatch)
		mt.AddMockResponses(first, second, done)
		repo := NewBooks(mt.Coll)

		got, err := repo.List(context.Background())

		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, "Clean Code", got[0].BookName)
		assert.Equal(mt, "Design Patterns", got[1].BookName)
	})

	mt.Run("list empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))
		repo := NewBooks(mt.Coll)

		got, err := repo.List(context.Background())

		require.NoError(mt, err)
		assert.NotNil(mt, got)
		assert.Empty(mt, got)
	})

	mt.Run("replace", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 1}})
		repo := NewBooks(mt.Coll)

		err := repo.Replace(context.Background(), model.Book{ID: primitive.NewObjectID(), BookName: "x"})
		assert.NoError(mt, err)
	})

	mt.Run("replace missing", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}})
		repo := NewBooks(mt.Coll)

		err := repo.Replace(context.Background(), model.Book{ID: primitive.NewObjectID(), BookName: "x"})
		assert.ErrorIs(mt, err, book.ErrNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}})
		repo := NewBooks(mt.Coll)

		assert.NoError(mt, repo.Delete(context.Background(), primitive.NewObjectID()))
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}})
		repo := NewBooks(mt.Coll)

		err := repo.Delete(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, book.ErrNotFound)
	})

	mt.Run("command error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad value",
		}))
		repo := NewBooks(mt.Coll)

		err := repo.Delete(context.Background(), primitive.NewObjectID())
		assert.Error(mt, err)
		assert.NotErrorIs(mt, err, book.ErrNotFound)
	})
}
