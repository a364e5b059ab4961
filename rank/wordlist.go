package rank

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	mapset "github.com/deckarep/golang-set"

	"github.com/jamesainslie/go-wordrank/internal/atomicfile"
)

// ReadList reads a line-delimited word list in file order. Surrounding
// whitespace is trimmed and blank lines are skipped; duplicates are kept.
func ReadList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open list: %w", err)
	}
	defer func() { _ = f.Close() }() // Read-only

	words, err := scanList(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return words, nil
}

func scanList(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// ReadSet reads a line-delimited word list into a set.
func ReadSet(path string) (mapset.Set, error) {
	words, err := ReadList(path)
	if err != nil {
		return nil, err
	}
	return NewSet(words...), nil
}

// NewSet returns a set holding words.
func NewSet(words ...string) mapset.Set {
	s := mapset.NewSet()
	for _, w := range words {
		s.Add(w)
	}
	return s
}

// WriteList writes words one per line with no newline after the last entry.
// The file is replaced atomically.
func WriteList(path string, words []string) error {
	if err := atomicfile.WriteFile(path, []byte(strings.Join(words, "\n")), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
