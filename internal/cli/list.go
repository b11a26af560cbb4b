package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/features/booklist"
	"github.com/mrlokans/bookshelf/internal/store"
)

// ListCommand prints the book list the way the list screen would show it.
type ListCommand struct {
	DatabasePath string
	Filter       string
	Sort         entities.SortOrder
	Timeout      time.Duration

	Out io.Writer
}

func NewListCommand() *ListCommand {
	return &ListCommand{Out: os.Stdout}
}

func (cmd *ListCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)

	var sort string
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.Filter, "filter", "", "Only show books whose title or author contains this text")
	fs.StringVar(&sort, "sort", string(entities.SortByTitle), "Sort order: status, title or author")
	fs.DurationVar(&cmd.Timeout, "timeout", 10*time.Second, "Maximum time to wait for the database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s list [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List books in the database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s list -filter austen -sort author\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	order, err := entities.ParseSortOrder(sort)
	if err != nil {
		return err
	}
	cmd.Sort = order
	return nil
}

func (cmd *ListCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cmd.timeout())
	defer cancel()

	state, err := cmd.load(ctx, db)
	if err != nil {
		return err
	}
	return printBooks(cmd.Out, state.Books)
}

func (cmd *ListCommand) timeout() time.Duration {
	if cmd.Timeout <= 0 {
		return 10 * time.Second
	}
	return cmd.Timeout
}

// load runs the list screen reducer until the fetch settles.
func (cmd *ListCommand) load(ctx context.Context, db *database.Database) (booklist.State, error) {
	s := store.New(booklist.NewState(cmd.Sort), store.Reducer[booklist.State, booklist.Action](booklist.NewReducer(db.Books())))
	defer s.Close()

	s.Send(booklist.FilterChanged{Filter: cmd.Filter})
	if err := s.Wait(ctx); err != nil {
		return booklist.State{}, fmt.Errorf("failed to load books: %w", err)
	}

	state := s.State()
	if state.Phase == booklist.PhaseFailed {
		return state, fmt.Errorf("failed to load books: %s", state.FetchError)
	}
	return state, nil
}

func printBooks(out io.Writer, list []entities.Book) error {
	if len(list) == 0 {
		fmt.Fprintln(out, "No books found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tSTATUS\tRATING")
	for _, b := range list {
		rating := "-"
		if b.Rating != nil {
			rating = fmt.Sprintf("%d/5", *b.Rating)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", b.ID, b.Title, b.Author, b.Status.Description(), rating)
	}
	return w.Flush()
}
