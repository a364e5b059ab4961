// Package corpus enumerates and decodes the book files of a text corpus.
package corpus

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/jamesainslie/go-wordrank/internal/atomicfile"
)

// Book is one corpus file. Its ID is the file name, which stays stable
// across runs and is what the tally records as processed.
type Book struct {
	ID   string
	Path string
}

// List returns the books in dir sorted by ID.
// Directories, dot-files and in-flight temp files are skipped.
func List(dir string) ([]Book, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var books []Book
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || atomicfile.IsTemp(name) {
			continue
		}
		books = append(books, Book{
			ID:   name,
			Path: filepath.Join(dir, name),
		})
	}

	// os.ReadDir already sorts by name; keep the order explicit since the
	// checkpoint sequence depends on it.
	sort.Slice(books, func(i, j int) bool {
		return books[i].ID < books[j].ID
	})

	return books, nil
}

// Read returns the text of a book. Every byte that is not part of valid UTF-8
// becomes its own U+FFFD, so decoding never fails on content and a broken
// sequence keeps one rune per byte. A byte order mark is kept as text.
func Read(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open book: %w", err)
	}
	defer func() { _ = f.Close() }() // Read-only; close error carries no data loss

	return Decode(f)
}

// Decode reads r to the end with the same lossless fallback as Read.
func Decode(r io.Reader) (string, error) {
	data, err := io.ReadAll(transform.NewReader(r, runes.ReplaceIllFormed()))
	if err != nil {
		return "", fmt.Errorf("decode book: %w", err)
	}
	return string(data), nil
}
