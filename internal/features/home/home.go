// Package home is the application shell: tab selection around the book
// container.
package home

import (
	"fmt"
	"time"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/features/container"
	"github.com/mrlokans/bookshelf/internal/services"
	"github.com/mrlokans/bookshelf/internal/store"
)

type Tab string

const (
	TabBooks Tab = "books"
	TabTwo   Tab = "two"
	TabThree Tab = "three"
)

var Tabs = []Tab{TabBooks, TabTwo, TabThree}

func ParseTab(value string) (Tab, error) {
	for _, t := range Tabs {
		if string(t) == value {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tab %q", value)
}

type State struct {
	SelectedTab Tab             `json:"selected_tab"`
	Books       container.State `json:"books"`
}

func NewState(sort entities.SortOrder) State {
	return State{
		SelectedTab: TabBooks,
		Books:       container.NewState(sort),
	}
}

type Action interface{ isHomeAction() }

type (
	TabSelected struct{ Tab Tab }
	Books       struct{ Action container.Action }
)

func (TabSelected) isHomeAction() {}
func (Books) isHomeAction()       {}

type Reducer struct {
	books *container.Reducer
}

var _ store.Reducer[State, Action] = (*Reducer)(nil)

func NewReducer(books services.BookStore, now func() time.Time) *Reducer {
	return &Reducer{books: container.NewReducer(books, now)}
}

func (r *Reducer) Reduce(state *State, action Action) store.Effect[Action] {
	switch a := action.(type) {
	case TabSelected:
		state.SelectedTab = a.Tab
	case Books:
		return store.Map(r.books.Reduce(&state.Books, a.Action), func(ca container.Action) Action {
			return Books{Action: ca}
		})
	}
	return store.None[Action]()
}

// Store is the process-wide application store.
type Store = store.Store[State, Action]

// NewStore creates the application store.
func NewStore(books services.BookStore, sort entities.SortOrder, opts ...store.Option) *Store {
	return store.New(NewState(sort), store.Reducer[State, Action](NewReducer(books, nil)), opts...)
}
