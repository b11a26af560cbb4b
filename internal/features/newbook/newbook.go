// Package newbook implements the modal screen that creates a book from a
// title and an author.
package newbook

import (
	"context"
	"errors"
	"time"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
	"github.com/mrlokans/bookshelf/internal/store"
	"github.com/mrlokans/bookshelf/internal/validation"
)

var ErrIncomplete = errors.New("title and author are required")

type State struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Saving    bool   `json:"saving"`
	SaveError string `json:"save_error,omitempty"`
}

// CanCreate gates the create button.
func (s State) CanCreate() bool {
	return s.Title != "" && s.Author != ""
}

type Action interface{ isNewBookAction() }

type (
	TitleChanged  struct{ Title string }
	AuthorChanged struct{ Author string }
	CreateTapped  struct{}
	CancelTapped  struct{}
	Created       struct{ Book entities.Book }
	CreateFailed  struct{ Err error }

	// DidCreate tells the parent a book was stored.
	DidCreate struct{ Book entities.Book }
	// Dismiss asks the presenter to close this screen.
	Dismiss struct{}
)

func (TitleChanged) isNewBookAction()  {}
func (AuthorChanged) isNewBookAction() {}
func (CreateTapped) isNewBookAction()  {}
func (CancelTapped) isNewBookAction()  {}
func (Created) isNewBookAction()       {}
func (CreateFailed) isNewBookAction()  {}
func (DidCreate) isNewBookAction()     {}
func (Dismiss) isNewBookAction()       {}

type Reducer struct {
	books    services.BookStore
	now      func() time.Time
	validate *validation.Validator
}

var _ store.Reducer[State, Action] = (*Reducer)(nil)

// NewReducer builds the reducer. now stamps DateAdded; nil means time.Now.
func NewReducer(books services.BookStore, now func() time.Time) *Reducer {
	if now == nil {
		now = time.Now
	}
	return &Reducer{books: books, now: now, validate: validation.New()}
}

func (r *Reducer) Reduce(state *State, action Action) store.Effect[Action] {
	switch a := action.(type) {
	case TitleChanged:
		state.Title = a.Title
	case AuthorChanged:
		state.Author = a.Author

	case CreateTapped:
		if state.Saving {
			return store.None[Action]()
		}
		if !state.CanCreate() {
			state.SaveError = ErrIncomplete.Error()
			return store.None[Action]()
		}
		book := entities.NewBook(state.Title, state.Author, r.now())
		if err := r.validate.Validate(&book); err != nil {
			state.SaveError = err.Error()
			return store.None[Action]()
		}
		state.Saving = true
		state.SaveError = ""

		return store.Run(func(ctx context.Context, send store.SendFunc[Action]) {
			if err := r.books.Insert(ctx, &book); err != nil {
				send(CreateFailed{Err: err})
				return
			}
			send(Created{Book: book})
			send(DidCreate{Book: book})
			send(Dismiss{})
		})

	case CancelTapped:
		return store.Send[Action](Dismiss{})

	case Created:
		state.Saving = false
	case CreateFailed:
		state.Saving = false
		state.SaveError = a.Err.Error()

	case DidCreate, Dismiss:
		// Handled by the presenter.
	}
	return store.None[Action]()
}
