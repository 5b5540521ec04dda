// Package mongostore keeps the book catalog in MongoDB.
package mongostore

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/idilsaglam/tada/internal/book"
	"github.com/idilsaglam/tada/internal/model"
)

// Options mirrors the [mongo] config section.
type Options struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// Connect opens a client and pings the primary before returning it.
func Connect(ctx context.Context, opts Options, logger *log.Logger) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	clientOpts := options.Client().ApplyURI(opts.URI).SetTimeout(opts.Timeout)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, errors.Wrap(err, "connect to mongo")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "ping mongo")
	}
	logger.Info("connected to mongo", "hosts", clientOpts.Hosts, "database", opts.Database)
	return client, nil
}

// Books implements book.Repository over one collection.
type Books struct {
	coll *mongo.Collection
}

var _ book.Repository = (*Books)(nil)

func NewBooks(coll *mongo.Collection) *Books {
	return &Books{coll: coll}
}

// Open returns the books repository for the configured database and collection.
func Open(client *mongo.Client, opts Options) *Books {
	name := opts.Collection
	if name == "" {
		name = model.BookCollection
	}
	return NewBooks(client.Database(opts.Database).Collection(name))
}

func (r *Books) Insert(ctx context.Context, b model.Book) (primitive.ObjectID, error) {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return primitive.NilObjectID, errors.Wrap(err, "insert book")
	}
	return b.ID, nil
}

func (r *Books) Get(ctx context.Context, id primitive.ObjectID) (model.Book, error) {
	var b model.Book
	err := r.coll.FindOne(ctx, bson.D{{Key: model.FieldBookID, Value: id}}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Book{}, book.ErrNotFound
	}
	if err != nil {
		return model.Book{}, errors.Wrap(err, "find book")
	}
	return b, nil
}

// List returns every book sorted by name.
func (r *Books) List(ctx context.Context) ([]model.Book, error) {
	opts := options.Find().SetSort(bson.D{{Key: model.FieldBookName, Value: 1}})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find books")
	}
	books := []model.Book{}
	if err := cur.All(ctx, &books); err != nil {
		return nil, errors.Wrap(err, "decode books")
	}
	return books, nil
}

func (r *Books) Replace(ctx context.Context, b model.Book) error {
	res, err := r.coll.ReplaceOne(ctx, bson.D{{Key: model.FieldBookID, Value: b.ID}}, b)
	if err != nil {
		return errors.Wrap(err, "replace book")
	}
	if res.MatchedCount == 0 {
		return book.ErrNotFound
	}
	return nil
}

func (r *Books) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: model.FieldBookID, Value: id}})
	if err != nil {
		return errors.Wrap(err, "delete book")
	}
	if res.DeletedCount == 0 {
		return book.ErrNotFound
	}
	return nil
}
