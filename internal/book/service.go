// Package book manages the book catalog on top of a Repository.
package book

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/idilsaglam/tada/internal/model"
)

type Service struct {
	repo   Repository
	logger *log.Logger
}

func New(repo Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(ctx context.Context, in Input) (model.Book, error) {
	b, err := s.convert(in)
	if err != nil {
		return model.Book{}, fmt.Errorf("create book: %w", err)
	}
	id, err := s.repo.Insert(ctx, b)
	if err != nil {
		s.logger.Error("failed to insert book", "err", err)
		s.logger.Debug("stack", "trace", fmt.Sprintf("%+v", err))
		return model.Book{}, fmt.Errorf("create book: %w", err)
	}
	b.ID = id
	s.logger.Debug("book created", "id", id.Hex())
	return b, nil
}

func (s *Service) Get(ctx context.Context, id string) (model.Book, error) {
	oid, err := s.parseID(id)
	if err != nil {
		return model.Book{}, fmt.Errorf("get book: %w", err)
	}
	b, err := s.repo.Get(ctx, oid)
	if err != nil {
		s.fail("failed to get book", id, err)
		return model.Book{}, fmt.Errorf("get book: %w", err)
	}
	return b, nil
}

// List returns every book ordered by name.
func (s *Service) List(ctx context.Context) ([]model.Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list books", "err", err)
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Update replaces every user field of the book.
func (s *Service) Update(ctx context.Context, id string, in Input) error {
	oid, err := s.parseID(id)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	b, err := s.convert(in)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	b.ID = oid
	if err := s.repo.Replace(ctx, b); err != nil {
		s.fail("failed to replace book", id, err)
		return fmt.Errorf("update book: %w", err)
	}
	s.logger.Debug("book updated", "id", id)
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := s.parseID(id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if err := s.repo.Delete(ctx, oid); err != nil {
		s.fail("failed to delete book", id, err)
		return fmt.Errorf("delete book: %w", err)
	}
	s.logger.Debug("book deleted", "id", id)
	return nil
}

// Import validates all inputs before inserting any of them. It returns the
// number of books inserted, which is short of len(inputs) only on error.
func (s *Service) Import(ctx context.Context, inputs []Input) (int, error) {
	books := make([]model.Book, 0, len(inputs))
	for i, in := range inputs {
		b, err := s.convert(in)
		if err != nil {
			return 0, fmt.Errorf("import book %d: %w", i+1, err)
		}
		books = append(books, b)
	}
	for i, b := range books {
		if _, err := s.repo.Insert(ctx, b); err != nil {
			s.logger.Error("failed to import book", "position", i+1, "err", err)
			return i, fmt.Errorf("import book %d: %w", i+1, err)
		}
	}
	s.logger.Info("books imported", "count", len(books))
	return len(books), nil
}

func (s *Service) convert(in Input) (model.Book, error) {
	if err := in.Validate(); err != nil {
		s.logger.Warn("invalid book", "err", err)
		return model.Book{}, err
	}
	b, err := in.ToModel()
	if err != nil {
		s.logger.Warn("invalid book", "err", err)
		return model.Book{}, err
	}
	return b, nil
}

func (s *Service) parseID(id string) (primitive.ObjectID, error) {
	oid, err := ParseID(id)
	if err != nil {
		s.logger.Warn("invalid book id", "id", id)
	}
	return oid, err
}

func (s *Service) fail(msg, id string, err error) {
	if errors.Is(err, ErrNotFound) {
		s.logger.Warn(msg, "id", id, "err", err)
		return
	}
	s.logger.Error(msg, "id", id, "err", err)
	s.logger.Debug("stack", "trace", fmt.Sprintf("%+v", err))
}
