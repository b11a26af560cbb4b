package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
)

// SeedCommand fills the database with sample books.
type SeedCommand struct {
	DatabasePath string
	Force        bool

	Out io.Writer
	Now func() time.Time
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{Out: os.Stdout, Now: time.Now}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.BoolVar(&cmd.Force, "force", false, "Add sample books even if the database already has books")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Add a few sample books to the database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *SeedCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	return Seed(context.Background(), db, cmd.Now(), cmd.Force, cmd.Out)
}

// Seed inserts SampleBooks unless the shelf already has books and force is
// false.
func Seed(ctx context.Context, db *database.Database, now time.Time, force bool, out io.Writer) error {
	repo := db.Books()

	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count books: %w", err)
	}
	if count > 0 && !force {
		fmt.Fprintf(out, "Database already has %d books, skipping (use -force to add anyway)\n", count)
		return nil
	}

	added := 0
	for _, book := range SampleBooks(now) {
		if err := repo.Insert(ctx, &book); err != nil {
			return fmt.Errorf("failed to save %q: %w", book.Title, err)
		}
		added++
		fmt.Fprintf(out, "  [OK] %q by %s\n", book.Title, book.Author)
	}

	fmt.Fprintf(out, "Added %d sample books\n", added)
	return nil
}
