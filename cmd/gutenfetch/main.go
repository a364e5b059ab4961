// Command gutenfetch downloads the book corpus: it crawls the Gutendex
// catalogue into a resumable catalogue file and fetches every eligible book
// missing from the books directory.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/pflag"

	"github.com/jamesainslie/go-wordrank/gutenberg"
)

// Set by the build via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		catalogPath = pflag.StringP("catalog", "c", "gutenberg_books.json", "Catalogue file (resumable)")
		booksDir    = pflag.StringP("books", "b", "books", "Directory to store books in")
		startURL    = pflag.String("url", gutenberg.DefaultCatalogURL, "First catalogue page")
		backoff     = pflag.Duration("backoff", 10*time.Second, "Wait after a rate limit or failed download")
		skipCrawl   = pflag.Bool("skip-crawl", false, "Download from the saved catalogue without crawling")
		verbose     = pflag.BoolP("verbose", "v", false, "Debug logging")
		showVersion = pflag.Bool("version", false, "Print version and exit")
	)
	pflag.Parse()

	if *showVersion {
		fmt.Printf("%s %s (%s)\n", version, commit, date)
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := gutenberg.New(
		gutenberg.WithBackoff(*backoff),
		gutenberg.WithLogger(logger),
	)

	var (
		cat *gutenberg.Catalog
		err error
	)
	if *skipCrawl {
		var ok bool
		cat, ok, err = gutenberg.LoadCatalog(*catalogPath)
		if err == nil && !ok {
			err = fmt.Errorf("no catalogue at %s", *catalogPath)
		}
	} else {
		cat, err = client.Crawl(ctx, *catalogPath, *startURL)
	}
	if err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	st, err := client.Download(ctx, cat, *booksDir)
	if err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Catalogue: %d books\n", len(cat.Results))
	fmt.Printf("Downloaded: %d, already present: %d, not eligible: %d\n", st.Downloaded, st.Present, st.Skipped)
}
