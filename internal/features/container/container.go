// Package container composes the book list with its creation sheet, its
// stack of edit screens and the delete confirmation alert. It only routes
// actions between the screens.
package container

import (
	"slices"
	"time"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/features/booklist"
	"github.com/mrlokans/bookshelf/internal/features/editbook"
	"github.com/mrlokans/bookshelf/internal/features/newbook"
	"github.com/mrlokans/bookshelf/internal/services"
	"github.com/mrlokans/bookshelf/internal/store"
)

// DeleteAlert asks the user to confirm deleting Books.
type DeleteAlert struct {
	Books []entities.Book `json:"books"`
}

// PathElement is one edit screen on the navigation stack. ID stays stable
// while the element is on the stack so late effects cannot hit another
// screen that reused its position.
type PathElement struct {
	ID    int            `json:"id"`
	State editbook.State `json:"state"`
}

type State struct {
	List    booklist.State `json:"list"`
	NewBook *newbook.State `json:"new_book,omitempty"`
	Path    []PathElement  `json:"path"`
	Alert   *DeleteAlert   `json:"alert,omitempty"`

	NextPathID int `json:"-"`
}

func NewState(sort entities.SortOrder) State {
	return State{List: booklist.NewState(sort)}
}

// PathID returns the ID of the stack element at index.
func (s State) PathID(index int) (int, bool) {
	if index < 0 || index >= len(s.Path) {
		return 0, false
	}
	return s.Path[index].ID, true
}

type Action interface{ isContainerAction() }

type (
	List struct{ Action booklist.Action }
	// NewBook routes to the creation sheet; ignored while it is closed.
	NewBook struct{ Action newbook.Action }
	// Path routes to the edit screen with the given stack ID.
	Path struct {
		ID     int
		Action editbook.Action
	}

	CreateTapped   struct{}
	AlertConfirmed struct{}
	AlertDismissed struct{}
)

func (List) isContainerAction()           {}
func (NewBook) isContainerAction()        {}
func (Path) isContainerAction()           {}
func (CreateTapped) isContainerAction()   {}
func (AlertConfirmed) isContainerAction() {}
func (AlertDismissed) isContainerAction() {}

type Reducer struct {
	list    *booklist.Reducer
	newBook *newbook.Reducer
	edit    *editbook.Reducer
}

var _ store.Reducer[State, Action] = (*Reducer)(nil)

// NewReducer wires the child screens to the same book store.
func NewReducer(books services.BookStore, now func() time.Time) *Reducer {
	return &Reducer{
		list:    booklist.NewReducer(books),
		newBook: newbook.NewReducer(books, now),
		edit:    editbook.NewReducer(books, now),
	}
}

func (r *Reducer) Reduce(state *State, action Action) store.Effect[Action] {
	switch a := action.(type) {
	case List:
		return r.reduceList(state, a.Action)

	case CreateTapped:
		state.NewBook = &newbook.State{}
		return store.None[Action]()

	case NewBook:
		return r.reduceNewBook(state, a.Action)

	case Path:
		return r.reducePath(state, a.ID, a.Action)

	case AlertConfirmed:
		if state.Alert == nil {
			return store.None[Action]()
		}
		state.Alert = nil
		return r.reduceList(state, booklist.DeleteConfirmed{})

	case AlertDismissed:
		if state.Alert == nil {
			return store.None[Action]()
		}
		state.Alert = nil
		return r.reduceList(state, booklist.DeleteCancelled{})
	}
	return store.None[Action]()
}

func (r *Reducer) reduceList(state *State, action booklist.Action) store.Effect[Action] {
	effect := store.Map(r.list.Reduce(&state.List, action), func(a booklist.Action) Action {
		return List{Action: a}
	})

	switch d := action.(type) {
	case booklist.ConfirmationRequested:
		state.Alert = &DeleteAlert{Books: d.Books}
	case booklist.OpenBook:
		state.NextPathID++
		state.Path = append(slices.Clone(state.Path), PathElement{
			ID:    state.NextPathID,
			State: editbook.NewState(d.Book),
		})
	}
	return effect
}

func (r *Reducer) reduceNewBook(state *State, action newbook.Action) store.Effect[Action] {
	if state.NewBook == nil {
		return store.None[Action]()
	}

	sheet := *state.NewBook
	effect := store.Map(r.newBook.Reduce(&sheet, action), func(a newbook.Action) Action {
		return NewBook{Action: a}
	})
	state.NewBook = &sheet

	switch action.(type) {
	case newbook.DidCreate:
		return store.Batch(effect, r.reduceList(state, booklist.Appear{}))
	case newbook.Dismiss:
		state.NewBook = nil
	}
	return effect
}

func (r *Reducer) reducePath(state *State, id int, action editbook.Action) store.Effect[Action] {
	i := slices.IndexFunc(state.Path, func(e PathElement) bool { return e.ID == id })
	if i < 0 {
		return store.None[Action]()
	}

	path := slices.Clone(state.Path)
	effect := store.Map(r.edit.Reduce(&path[i].State, action), func(a editbook.Action) Action {
		return Path{ID: id, Action: a}
	})
	state.Path = path

	switch action.(type) {
	case editbook.Completed:
		// Pop the finished screen and refresh so the list shows the edit.
		state.Path = path[:i:i]
		return store.Batch(effect, r.reduceList(state, booklist.Appear{}))
	case editbook.Dismiss:
		state.Path = path[:i:i]
	}
	return effect
}
