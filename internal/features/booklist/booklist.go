// Package booklist implements the book list screen: fetching with a filter,
// two-step deletion and opening a book.
package booklist

import (
	"context"
	"log"
	"slices"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
	"github.com/mrlokans/bookshelf/internal/store"
)

type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseFailed  Phase = "failed"
)

// fetchID keys the fetch effect; a new fetch cancels the one in flight.
const fetchID = "booklist.fetch"

type State struct {
	Books         []entities.Book    `json:"books"`
	Filter        string             `json:"filter"`
	Sort          entities.SortOrder `json:"sort"`
	Phase         Phase              `json:"phase"`
	FetchError    string             `json:"fetch_error,omitempty"`
	PendingDelete []uint             `json:"pending_delete,omitempty"`
	// Deleting holds confirmed deletes the store has not finished yet.
	// Fetched lists never show these books.
	Deleting []uint `json:"deleting,omitempty"`
}

func NewState(sort entities.SortOrder) State {
	if sort == "" {
		sort = entities.SortByTitle
	}
	return State{Sort: sort, Phase: PhaseIdle}
}

// AwaitingConfirmation reports whether a delete is waiting for the user.
func (s State) AwaitingConfirmation() bool {
	return len(s.PendingDelete) > 0
}

// Action is any intent the list screen handles.
type Action interface{ isListAction() }

type (
	Appear        struct{}
	FilterChanged struct{ Filter string }
	SortChanged   struct{ Sort entities.SortOrder }
	BooksFetched  struct{ Books []entities.Book }
	FetchFailed   struct{ Err error }

	// DeleteRequested asks to delete books by ID.
	DeleteRequested struct{ IDs []uint }
	// DeleteAt asks to delete books by their position in the list.
	DeleteAt        struct{ Offsets []int }
	DeleteConfirmed struct{}
	DeleteCancelled struct{}
	DeleteFinished  struct {
		IDs []uint
		Err error
	}

	BookTapped struct{ ID uint }

	// ConfirmationRequested tells the parent a delete needs confirming.
	ConfirmationRequested struct{ Books []entities.Book }
	// OpenBook tells the parent to show the book's detail screen.
	OpenBook struct{ Book entities.Book }
)

func (Appear) isListAction()                {}
func (FilterChanged) isListAction()         {}
func (SortChanged) isListAction()           {}
func (BooksFetched) isListAction()          {}
func (FetchFailed) isListAction()           {}
func (DeleteRequested) isListAction()       {}
func (DeleteAt) isListAction()              {}
func (DeleteConfirmed) isListAction()       {}
func (DeleteCancelled) isListAction()       {}
func (DeleteFinished) isListAction()        {}
func (BookTapped) isListAction()            {}
func (ConfirmationRequested) isListAction() {}
func (OpenBook) isListAction()              {}

type Reducer struct {
	books services.BookStore
}

var _ store.Reducer[State, Action] = (*Reducer)(nil)

func NewReducer(books services.BookStore) *Reducer {
	return &Reducer{books: books}
}

func (r *Reducer) Reduce(state *State, action Action) store.Effect[Action] {
	switch a := action.(type) {
	case Appear:
		return r.fetch(state)

	case FilterChanged:
		state.Filter = a.Filter
		return r.fetch(state)

	case SortChanged:
		state.Sort = a.Sort
		return r.fetch(state)

	case BooksFetched:
		state.Books = withoutIDs(a.Books, state.Deleting)
		state.Phase = PhaseLoaded
		state.FetchError = ""
		return store.None[Action]()

	case FetchFailed:
		state.Phase = PhaseFailed
		state.FetchError = a.Err.Error()
		return store.None[Action]()

	case DeleteRequested:
		return requestDelete(state, a.IDs)

	case DeleteAt:
		ids := make([]uint, 0, len(a.Offsets))
		for _, i := range a.Offsets {
			if i >= 0 && i < len(state.Books) {
				ids = append(ids, state.Books[i].ID)
			}
		}
		return requestDelete(state, ids)

	case DeleteConfirmed:
		return r.confirmDelete(state)

	case DeleteCancelled:
		state.PendingDelete = nil
		return store.None[Action]()

	case DeleteFinished:
		if a.Err != nil {
			log.Printf("Failed to delete books: %v", a.Err)
		}
		state.Deleting = withoutValues(state.Deleting, a.IDs)
		// A fetch cancelled by the confirmation never delivered; load again
		// now that the store reflects the delete.
		if state.Phase == PhaseLoading {
			return r.fetch(state)
		}
		return store.None[Action]()

	case BookTapped:
		book, ok := findBook(state.Books, a.ID)
		if !ok {
			return store.None[Action]()
		}
		return store.Send[Action](OpenBook{Book: book})

	case ConfirmationRequested, OpenBook:
		// Handled by the parent.
		return store.None[Action]()
	}
	return store.None[Action]()
}

func (r *Reducer) fetch(state *State) store.Effect[Action] {
	state.Phase = PhaseLoading
	q := services.Query{Filter: state.Filter, Sort: state.Sort}

	return store.Run(func(ctx context.Context, send store.SendFunc[Action]) {
		books, err := r.books.Fetch(ctx, q)
		if err != nil {
			send(FetchFailed{Err: err})
			return
		}
		send(BooksFetched{Books: books})
	}).Cancellable(fetchID)
}

func requestDelete(state *State, ids []uint) store.Effect[Action] {
	targets := selectBooks(state.Books, ids)
	if len(targets) == 0 {
		return store.None[Action]()
	}

	pending := make([]uint, len(targets))
	for i, b := range targets {
		pending[i] = b.ID
	}
	state.PendingDelete = pending

	return store.Send[Action](ConfirmationRequested{Books: targets})
}

func (r *Reducer) confirmDelete(state *State) store.Effect[Action] {
	if len(state.PendingDelete) == 0 {
		return store.None[Action]()
	}

	targets := selectBooks(state.Books, state.PendingDelete)
	ids := state.PendingDelete
	state.Books = withoutIDs(state.Books, ids)
	state.PendingDelete = nil

	if len(targets) == 0 {
		return store.None[Action]()
	}
	state.Deleting = append(slices.Clone(state.Deleting), ids...)

	// A fetch started before the confirmation may hold a snapshot that still
	// has the deleted books.
	return store.Batch(
		store.Cancel[Action](fetchID),
		store.Run(func(ctx context.Context, send store.SendFunc[Action]) {
			send(DeleteFinished{IDs: ids, Err: r.books.Delete(ctx, targets...)})
		}),
	)
}

// withoutIDs returns a new slice of the books whose IDs are not in ids.
func withoutIDs(books []entities.Book, ids []uint) []entities.Book {
	out := make([]entities.Book, 0, len(books))
	for _, b := range books {
		if !slices.Contains(ids, b.ID) {
			out = append(out, b)
		}
	}
	return out
}

func withoutValues(values, remove []uint) []uint {
	var out []uint
	for _, v := range values {
		if !slices.Contains(remove, v) {
			out = append(out, v)
		}
	}
	return out
}

// selectBooks returns the books whose IDs are in ids, in list order.
func selectBooks(books []entities.Book, ids []uint) []entities.Book {
	var out []entities.Book
	for _, b := range books {
		if slices.Contains(ids, b.ID) {
			out = append(out, b)
		}
	}
	return out
}

func findBook(books []entities.Book, id uint) (entities.Book, bool) {
	for _, b := range books {
		if b.ID == id {
			return b, true
		}
	}
	return entities.Book{}, false
}
