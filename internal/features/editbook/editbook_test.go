package editbook

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
	"github.com/mrlokans/bookshelf/internal/store"
)

var (
	added    = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	fixedNow = time.Date(2024, 2, 29, 18, 0, 0, 0, time.UTC)
)

func setupTestDB(t *testing.T) (*books.Repository, func()) {
	t.Helper()

	dbPath := "./test_editbook_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabaseWithLogLevel(dbPath, logger.Silent)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db.Books(), cleanup
}

type recorder struct {
	inner   *Reducer
	actions []Action
}

func (r *recorder) Reduce(state *State, action Action) store.Effect[Action] {
	r.actions = append(r.actions, action)
	return r.inner.Reduce(state, action)
}

func newStore(bs services.BookStore, book entities.Book) (*store.Store[State, Action], *recorder) {
	rec := &recorder{inner: NewReducer(bs, func() time.Time { return fixedNow })}
	return store.New(NewState(book), store.Reducer[State, Action](rec)), rec
}

func settle(t *testing.T, s *store.Store[State, Action]) State {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Wait(ctx))
	return s.State()
}

type countingStore struct {
	err   error
	saves int
}

func (c *countingStore) Fetch(context.Context, services.Query) ([]entities.Book, error) {
	return nil, c.err
}
func (c *countingStore) Insert(context.Context, *entities.Book) error { return c.err }
func (c *countingStore) Save(context.Context, *entities.Book) error {
	c.saves++
	return c.err
}
func (c *countingStore) Delete(context.Context, ...entities.Book) error { return c.err }

func sampleBook() entities.Book {
	rating := 4
	b := entities.NewBook("Dune", "Frank Herbert", added)
	b.ID = 1
	b.Rating = &rating
	b.Synopsis = "Spice"
	return b
}

func TestState_Changed(t *testing.T) {
	r := NewReducer(&countingStore{}, func() time.Time { return fixedNow })

	t.Run("fresh state is unchanged", func(t *testing.T) {
		assert.False(t, NewState(sampleBook()).Changed())
	})

	edits := []struct {
		name   string
		action Action
	}{
		{"title", TitleChanged{Title: "Dune Messiah"}},
		{"author", AuthorChanged{Author: "Herbert"}},
		{"synopsis", SynopsisChanged{Synopsis: "Sand"}},
		{"recommended by", RecommendedByChanged{RecommendedBy: "Sam"}},
		{"rating cleared", RatingChanged{Rating: nil}},
		{"status", StatusChanged{Status: entities.StatusInProgress}},
		{"date added", DateAddedChanged{Date: added.AddDate(0, 0, 1)}},
		{"date started", DateStartedChanged{Date: added.AddDate(0, 0, 2)}},
		{"date completed", DateCompletedChanged{Date: added.AddDate(0, 0, 3)}},
	}
	for _, tt := range edits {
		t.Run(tt.name+" marks changed", func(t *testing.T) {
			state := NewState(sampleBook())
			r.Reduce(&state, tt.action)
			assert.True(t, state.Changed())
		})
	}

	t.Run("reverting a field clears changed", func(t *testing.T) {
		state := NewState(sampleBook())
		r.Reduce(&state, TitleChanged{Title: "Other"})
		r.Reduce(&state, TitleChanged{Title: "Dune"})
		assert.False(t, state.Changed())
	})

	t.Run("equal rating value is unchanged", func(t *testing.T) {
		state := NewState(sampleBook())
		four := 4
		r.Reduce(&state, RatingChanged{Rating: &four})
		assert.False(t, state.Changed())
	})

	t.Run("draft rating does not alias the original", func(t *testing.T) {
		state := NewState(sampleBook())
		*state.Rating = 1
		assert.Equal(t, 4, *state.Original.Rating)
	})
}

func TestReducer_StatusChanged(t *testing.T) {
	r := NewReducer(&countingStore{}, func() time.Time { return fixedNow })
	started := added.AddDate(0, 0, 5)
	completed := added.AddDate(0, 0, 9)

	withStatus := func(status entities.Status) State {
		b := sampleBook()
		b.Status = status
		if status != entities.StatusOnShelf {
			b.DateStarted = started
		}
		if status == entities.StatusCompleted {
			b.DateCompleted = completed
		}
		return NewState(b)
	}

	t.Run("starting a book stamps started", func(t *testing.T) {
		state := withStatus(entities.StatusOnShelf)
		r.Reduce(&state, StatusChanged{Status: entities.StatusInProgress})
		assert.Equal(t, fixedNow, state.DateStarted)
		assert.True(t, state.DateCompleted.IsZero())
	})

	t.Run("completing from shelf backfills started", func(t *testing.T) {
		state := withStatus(entities.StatusOnShelf)
		r.Reduce(&state, StatusChanged{Status: entities.StatusCompleted})
		assert.Equal(t, added, state.DateStarted)
		assert.Equal(t, fixedNow, state.DateCompleted)
	})

	t.Run("completing in-progress stamps completed", func(t *testing.T) {
		state := withStatus(entities.StatusInProgress)
		r.Reduce(&state, StatusChanged{Status: entities.StatusCompleted})
		assert.Equal(t, started, state.DateStarted)
		assert.Equal(t, fixedNow, state.DateCompleted)
	})

	t.Run("reopening clears completed", func(t *testing.T) {
		state := withStatus(entities.StatusCompleted)
		r.Reduce(&state, StatusChanged{Status: entities.StatusInProgress})
		assert.Equal(t, started, state.DateStarted)
		assert.True(t, state.DateCompleted.IsZero())
	})

	t.Run("shelving clears both", func(t *testing.T) {
		state := withStatus(entities.StatusCompleted)
		r.Reduce(&state, StatusChanged{Status: entities.StatusOnShelf})
		assert.True(t, state.DateStarted.IsZero())
		assert.True(t, state.DateCompleted.IsZero())
	})

	t.Run("same status keeps dates", func(t *testing.T) {
		state := withStatus(entities.StatusInProgress)
		r.Reduce(&state, StatusChanged{Status: entities.StatusInProgress})
		assert.Equal(t, started, state.DateStarted)
	})
}

func TestReducer_Update(t *testing.T) {
	t.Run("persists every edited field and completes once", func(t *testing.T) {
		repo, cleanup := setupTestDB(t)
		defer cleanup()

		book := entities.NewBook("Dune", "Herbert", added)
		require.NoError(t, repo.Insert(context.Background(), &book))

		s, rec := newStore(repo, book)
		defer s.Close()

		five := 5
		s.Send(TitleChanged{Title: "Dune Messiah"})
		s.Send(SynopsisChanged{Synopsis: "Twelve years later"})
		s.Send(RatingChanged{Rating: &five})
		s.Send(RecommendedByChanged{RecommendedBy: "Alex"})
		s.Send(StatusChanged{Status: entities.StatusInProgress})
		require.True(t, s.State().Changed())

		s.Send(UpdateTapped{})
		state := settle(t, s)

		assert.False(t, state.Changed())
		assert.False(t, state.Saving)
		assert.Empty(t, state.SaveError)

		got, err := repo.GetBookByID(context.Background(), book.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dune Messiah", got.Title)
		assert.Equal(t, "Twelve years later", got.Synopsis)
		require.NotNil(t, got.Rating)
		assert.Equal(t, 5, *got.Rating)
		assert.Equal(t, "Alex", got.RecommendedBy)
		assert.Equal(t, entities.StatusInProgress, got.Status)
		assert.True(t, got.DateStarted.Equal(fixedNow))

		completed := 0
		for _, a := range rec.actions {
			if _, ok := a.(Completed); ok {
				completed++
			}
		}
		assert.Equal(t, 1, completed)
	})

	t.Run("saves in a single call", func(t *testing.T) {
		bs := &countingStore{}
		s, _ := newStore(bs, sampleBook())
		defer s.Close()

		s.Send(TitleChanged{Title: "Children of Dune"})
		s.Send(UpdateTapped{})
		settle(t, s)

		assert.Equal(t, 1, bs.saves)
	})

	t.Run("failure keeps the draft and does not complete", func(t *testing.T) {
		bs := &countingStore{err: errors.New("database is locked")}
		s, rec := newStore(bs, sampleBook())
		defer s.Close()

		s.Send(TitleChanged{Title: "Children of Dune"})
		s.Send(UpdateTapped{})
		state := settle(t, s)

		assert.Equal(t, "database is locked", state.SaveError)
		assert.False(t, state.Saving)
		assert.True(t, state.Changed())
		assert.Equal(t, "Children of Dune", state.Title)
		for _, a := range rec.actions {
			_, done := a.(Completed)
			assert.False(t, done)
		}
	})

	t.Run("invalid rating surfaces a save error", func(t *testing.T) {
		repo, cleanup := setupTestDB(t)
		defer cleanup()

		book := entities.NewBook("Dune", "Herbert", added)
		require.NoError(t, repo.Insert(context.Background(), &book))

		s, _ := newStore(repo, book)
		defer s.Close()

		nine := 9
		s.Send(RatingChanged{Rating: &nine})
		s.Send(UpdateTapped{})
		state := settle(t, s)

		assert.Contains(t, state.SaveError, "rating")
	})
}

func TestReducer_Dismiss(t *testing.T) {
	s, rec := newStore(&countingStore{}, sampleBook())
	defer s.Close()

	s.Send(DismissTapped{})
	settle(t, s)

	assert.Equal(t, Dismiss{}, rec.actions[len(rec.actions)-1])
}
