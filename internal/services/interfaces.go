package services

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Query selects books for a list screen. An empty Filter matches every book;
// otherwise a book matches when its title or author contains Filter,
// ignoring case and diacritics.
type Query struct {
	Filter string
	Sort   entities.SortOrder
}

// BookStore is the persistence contract the screens depend on.
type BookStore interface {
	Fetch(ctx context.Context, q Query) ([]entities.Book, error)
	Insert(ctx context.Context, book *entities.Book) error
	Save(ctx context.Context, book *entities.Book) error
	Delete(ctx context.Context, books ...entities.Book) error
}

// BookReader provides read-only access to single books.
type BookReader interface {
	GetBookByID(ctx context.Context, id uint) (*entities.Book, error)
}
