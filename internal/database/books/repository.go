// Package books provides database operations for the book list, creation and
// edit screens.
//
// This package implements the BookStore and BookReader interfaces defined in
// internal/services/interfaces.go.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	list, err := repo.Fetch(ctx, services.Query{Filter: "dune", Sort: entities.SortByTitle})
package books

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/search"
	"github.com/mrlokans/bookshelf/internal/services"
	"github.com/mrlokans/bookshelf/internal/validation"
)

// Repository handles all book database operations.
type Repository struct {
	db       *gorm.DB
	validate *validation.Validator
}

var _ services.BookStore = (*Repository)(nil)
var _ services.BookReader = (*Repository)(nil)

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, validate: validation.New()}
}

// Fetch returns the books matching q.Filter on title or author, ordered by
// q.Sort. Matching ignores case and diacritics, which SQLite's LIKE cannot do,
// so the filter is applied after loading.
func (r *Repository) Fetch(ctx context.Context, q services.Query) ([]entities.Book, error) {
	var all []entities.Book
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&all).Error; err != nil {
		return nil, fmt.Errorf("fetch books: %w", err)
	}

	matcher := search.NewMatcher(q.Filter)
	result := make([]entities.Book, 0, len(all))
	for _, book := range all {
		if matcher.ContainsAny(book.Title, book.Author) {
			result = append(result, book)
		}
	}

	Sort(result, q.Sort)
	return result, nil
}

// GetBookByID retrieves a single book.
func (r *Repository) GetBookByID(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// Insert validates and creates a new book, filling in its ID.
func (r *Repository) Insert(ctx context.Context, book *entities.Book) error {
	if book.ID != 0 {
		return fmt.Errorf("insert book: already persisted with id %d", book.ID)
	}
	if err := r.validate.Validate(book); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// Save writes every field of an existing book in a single statement.
// Returns gorm.ErrRecordNotFound when the book no longer exists.
func (r *Repository) Save(ctx context.Context, book *entities.Book) error {
	if book.ID == 0 {
		return errors.New("save book: missing id")
	}
	if err := r.validate.Validate(book); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(book).Select("*").Omit("id", "created_at").Updates(book)
	if result.Error != nil {
		return fmt.Errorf("save book %d: %w", book.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the given books by identity. Books that are already gone
// are ignored.
func (r *Repository) Delete(ctx context.Context, books ...entities.Book) error {
	ids := make([]uint, 0, len(books))
	for _, b := range books {
		if b.ID != 0 {
			ids = append(ids, b.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).Delete(&entities.Book{}, ids).Error; err != nil {
		return fmt.Errorf("delete books: %w", err)
	}
	return nil
}

// Count returns the number of stored books.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Book{}).Count(&n).Error
	return n, err
}

// Sort orders books in place. Ties fall back to title and then ID so the
// order is stable across fetches.
func Sort(list []entities.Book, order entities.SortOrder) {
	collator := search.NewCollator()

	byTitle := func(a, b entities.Book) int {
		if c := collator.Compare(a.Title, b.Title); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	}

	slices.SortStableFunc(list, func(a, b entities.Book) int {
		switch order {
		case entities.SortByStatus:
			if c := cmp.Compare(statusRank(a.Status), statusRank(b.Status)); c != 0 {
				return c
			}
		case entities.SortByAuthor:
			if c := collator.Compare(a.Author, b.Author); c != 0 {
				return c
			}
		}
		return byTitle(a, b)
	})
}

func statusRank(s entities.Status) int {
	if i := slices.Index(entities.Statuses, s); i >= 0 {
		return i
	}
	return len(entities.Statuses)
}
