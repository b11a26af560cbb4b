package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookshelf/internal/cli"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

// command is implemented by every CLI subcommand.
type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version, Commit)
		return
	}

	name := os.Args[1]
	args := os.Args[2:]

	var cmd command
	switch name {
	case "list":
		cmd = cli.NewListCommand()
	case "add":
		cmd = cli.NewAddCommand()
	case "seed":
		cmd = cli.NewSeedCommand()
	case "-h", "--help", "help":
		printUsage(os.Stderr)
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Bookshelf %s (commit %s)\n\n", Version, Commit)
	fmt.Fprintf(w, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  serve   Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(w, "  list    List books, optionally filtered and sorted\n")
	fmt.Fprintf(w, "  add     Add a book by title and author\n")
	fmt.Fprintf(w, "  seed    Add sample books to an empty database\n")
	fmt.Fprintf(w, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
