// Package model holds the records shared by the todo app and the book catalog.
package model

// Todo is one entry of the in-memory todo list.
type Todo struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
}
