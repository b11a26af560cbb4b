// Package editbook implements the detail screen that edits every field of a
// stored book.
package editbook

import (
	"context"
	"time"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
	"github.com/mrlokans/bookshelf/internal/store"
)

// State holds an editable copy of Original.
type State struct {
	Original entities.Book `json:"original"`

	Status        entities.Status `json:"status"`
	Rating        *int            `json:"rating,omitempty"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	Synopsis      string          `json:"synopsis"`
	RecommendedBy string          `json:"recommended_by"`
	DateAdded     time.Time       `json:"date_added"`
	DateStarted   time.Time       `json:"date_started"`
	DateCompleted time.Time       `json:"date_completed"`

	Saving    bool   `json:"saving"`
	SaveError string `json:"save_error,omitempty"`
}

func NewState(book entities.Book) State {
	return State{
		Original:      book,
		Status:        book.Status,
		Rating:        copyRating(book.Rating),
		Title:         book.Title,
		Author:        book.Author,
		Synopsis:      book.Synopsis,
		RecommendedBy: book.RecommendedBy,
		DateAdded:     book.DateAdded,
		DateStarted:   book.DateStarted,
		DateCompleted: book.DateCompleted,
	}
}

// Changed reports whether any editable field differs from Original.
func (s State) Changed() bool {
	b := s.Original
	return s.Status != b.Status ||
		!sameRating(s.Rating, b.Rating) ||
		s.Title != b.Title ||
		s.Author != b.Author ||
		s.Synopsis != b.Synopsis ||
		s.RecommendedBy != b.RecommendedBy ||
		!s.DateAdded.Equal(b.DateAdded) ||
		!s.DateStarted.Equal(b.DateStarted) ||
		!s.DateCompleted.Equal(b.DateCompleted)
}

// Apply returns Original with every editable field copied over it.
func (s State) Apply() entities.Book {
	b := s.Original
	b.Status = s.Status
	b.Rating = copyRating(s.Rating)
	b.Title = s.Title
	b.Author = s.Author
	b.Synopsis = s.Synopsis
	b.RecommendedBy = s.RecommendedBy
	b.DateAdded = s.DateAdded
	b.DateStarted = s.DateStarted
	b.DateCompleted = s.DateCompleted
	return b
}

type Action interface{ isEditAction() }

type (
	TitleChanged         struct{ Title string }
	AuthorChanged        struct{ Author string }
	SynopsisChanged      struct{ Synopsis string }
	RecommendedByChanged struct{ RecommendedBy string }
	RatingChanged        struct{ Rating *int }
	StatusChanged        struct{ Status entities.Status }
	DateAddedChanged     struct{ Date time.Time }
	DateStartedChanged   struct{ Date time.Time }
	DateCompletedChanged struct{ Date time.Time }

	UpdateTapped  struct{}
	Updated       struct{ Book entities.Book }
	UpdateFailed  struct{ Err error }
	DismissTapped struct{}

	// Completed tells the parent the book was saved.
	Completed struct{ Book entities.Book }
	// Dismiss asks the presenter to close this screen.
	Dismiss struct{}
)

func (TitleChanged) isEditAction()         {}
func (AuthorChanged) isEditAction()        {}
func (SynopsisChanged) isEditAction()      {}
func (RecommendedByChanged) isEditAction() {}
func (RatingChanged) isEditAction()        {}
func (StatusChanged) isEditAction()        {}
func (DateAddedChanged) isEditAction()     {}
func (DateStartedChanged) isEditAction()   {}
func (DateCompletedChanged) isEditAction() {}
func (UpdateTapped) isEditAction()         {}
func (Updated) isEditAction()              {}
func (UpdateFailed) isEditAction()         {}
func (DismissTapped) isEditAction()        {}
func (Completed) isEditAction()            {}
func (Dismiss) isEditAction()              {}

type Reducer struct {
	books services.BookStore
	now   func() time.Time
}

var _ store.Reducer[State, Action] = (*Reducer)(nil)

// NewReducer builds the reducer. now stamps status transitions; nil means
// time.Now.
func NewReducer(books services.BookStore, now func() time.Time) *Reducer {
	if now == nil {
		now = time.Now
	}
	return &Reducer{books: books, now: now}
}

func (r *Reducer) Reduce(state *State, action Action) store.Effect[Action] {
	switch a := action.(type) {
	case TitleChanged:
		state.Title = a.Title
	case AuthorChanged:
		state.Author = a.Author
	case SynopsisChanged:
		state.Synopsis = a.Synopsis
	case RecommendedByChanged:
		state.RecommendedBy = a.RecommendedBy
	case RatingChanged:
		state.Rating = copyRating(a.Rating)
	case StatusChanged:
		r.changeStatus(state, a.Status)
	case DateAddedChanged:
		state.DateAdded = a.Date
	case DateStartedChanged:
		state.DateStarted = a.Date
	case DateCompletedChanged:
		state.DateCompleted = a.Date

	case UpdateTapped:
		if state.Saving {
			return store.None[Action]()
		}
		state.Saving = true
		state.SaveError = ""

		book := state.Apply()
		return store.Run(func(ctx context.Context, send store.SendFunc[Action]) {
			if err := r.books.Save(ctx, &book); err != nil {
				send(UpdateFailed{Err: err})
				return
			}
			send(Updated{Book: book})
			send(Completed{Book: book})
		})

	case Updated:
		state.Original = a.Book
		state.Saving = false
	case UpdateFailed:
		state.Saving = false
		state.SaveError = a.Err.Error()

	case DismissTapped:
		return store.Send[Action](Dismiss{})

	case Completed, Dismiss:
		// Handled by the presenter.
	}
	return store.None[Action]()
}

// changeStatus moves the reading dates along with the status.
func (r *Reducer) changeStatus(state *State, next entities.Status) {
	prev := state.Status
	state.Status = next
	if prev == next {
		return
	}

	switch {
	case next == entities.StatusOnShelf:
		state.DateStarted = entities.DistantPast
		state.DateCompleted = entities.DistantPast
	case next == entities.StatusInProgress && prev == entities.StatusCompleted:
		state.DateCompleted = entities.DistantPast
	case next == entities.StatusInProgress && prev == entities.StatusOnShelf:
		state.DateStarted = r.now()
	case next == entities.StatusCompleted && prev == entities.StatusOnShelf:
		// Finished without ever marking it started.
		state.DateCompleted = r.now()
		state.DateStarted = state.DateAdded
	default:
		state.DateCompleted = r.now()
	}
}

func copyRating(r *int) *int {
	if r == nil {
		return nil
	}
	v := *r
	return &v
}

func sameRating(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
