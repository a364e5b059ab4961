package wordrank

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrCorpusNotFound indicates the corpus directory does not exist.
	ErrCorpusNotFound = errors.New("wordrank: corpus directory not found")

	// ErrListNotFound indicates a word list or exclusion list file does not exist.
	ErrListNotFound = errors.New("wordrank: word list not found")
)
