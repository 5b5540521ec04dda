package model

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	BookCollection = "Books"

	FieldBookID   = "_id"
	FieldBookName = "Name"
)

// Book is one catalog document. The name is stored under the "Name"
// element to stay readable by existing collections.
type Book struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	BookName string               `bson:"Name" json:"bookName"`
	Price    primitive.Decimal128 `bson:"Price" json:"price"`
	Category string               `bson:"Category" json:"category"`
	Author   string               `bson:"Author" json:"author"`
}
