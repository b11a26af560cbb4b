package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/features/newbook"
	"github.com/mrlokans/bookshelf/internal/store"
)

// AddCommand creates a book through the creation screen reducer.
type AddCommand struct {
	DatabasePath string
	Title        string
	Author       string
	Timeout      time.Duration

	Out io.Writer
}

func NewAddCommand() *AddCommand {
	return &AddCommand{Out: os.Stdout}
}

func (cmd *AddCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.Title, "title", "", "Book title (required)")
	fs.StringVar(&cmd.Author, "author", "", "Book author (required)")
	fs.DurationVar(&cmd.Timeout, "timeout", 10*time.Second, "Maximum time to wait for the database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s add -title <title> -author <author> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Add a book to the shelf.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Title == "" {
		return fmt.Errorf("required flag -title not provided")
	}
	if cmd.Author == "" {
		return fmt.Errorf("required flag -author not provided")
	}
	return nil
}

func (cmd *AddCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	timeout := cmd.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return cmd.create(ctx, db)
}

func (cmd *AddCommand) create(ctx context.Context, db *database.Database) error {
	var created *newbook.DidCreate
	inner := newbook.NewReducer(db.Books(), nil)
	reducer := store.ReducerFunc[newbook.State, newbook.Action](func(state *newbook.State, action newbook.Action) store.Effect[newbook.Action] {
		if d, ok := action.(newbook.DidCreate); ok {
			created = &d
		}
		return inner.Reduce(state, action)
	})

	s := store.New(newbook.State{}, store.Reducer[newbook.State, newbook.Action](reducer))
	defer s.Close()

	s.Send(newbook.TitleChanged{Title: cmd.Title})
	s.Send(newbook.AuthorChanged{Author: cmd.Author})
	s.Send(newbook.CreateTapped{})
	if err := s.Wait(ctx); err != nil {
		return fmt.Errorf("failed to add book: %w", err)
	}

	if msg := s.State().SaveError; msg != "" {
		return fmt.Errorf("failed to add book: %s", msg)
	}
	if created == nil {
		return errors.New("failed to add book: no book was created")
	}

	fmt.Fprintf(cmd.Out, "Added %q by %s (id %d)\n", created.Book.Title, created.Book.Author, created.Book.ID)
	return nil
}
