// Package tally accumulates word frequencies over a corpus of books and
// persists them so interrupted runs resume without double counting.
package tally

import "sort"

// Tally maps normalized words to occurrence counts and remembers which books
// have been folded in. Every processed book contributed each of its tokens
// exactly once, and counts never decrease.
type Tally struct {
	counts    map[string]int
	processed map[string]struct{}
}

// New returns an empty tally.
func New() *Tally {
	return &Tally{
		counts:    make(map[string]int),
		processed: make(map[string]struct{}),
	}
}

// TextStats describes one call to AddText.
type TextStats struct {
	Tokens   int // whitespace-delimited tokens seen
	Words    int // tokens that produced a word
	Rejected int // tokens that produced nothing
}

// AddText tokenizes text and counts every word it yields.
func (t *Tally) AddText(text string) TextStats {
	var st TextStats
	for _, token := range Fields(text) {
		st.Tokens++
		word, ok := Normalize(token)
		if !ok {
			st.Rejected++
			continue
		}
		t.counts[word]++
		st.Words++
	}
	return st
}

// Add increases the count of word by n.
func (t *Tally) Add(word string, n int) {
	if word == "" || n <= 0 {
		return
	}
	t.counts[word] += n
}

// Count returns the number of occurrences of word, 0 if it never appeared.
func (t *Tally) Count(word string) int {
	return t.counts[word]
}

// Len returns the number of distinct words.
func (t *Tally) Len() int {
	return len(t.counts)
}

// Words returns all distinct words in lexicographic order.
func (t *Tally) Words() []string {
	words := make([]string, 0, len(t.counts))
	for w := range t.counts {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// MarkProcessed records that every token of book id has been counted.
func (t *Tally) MarkProcessed(id string) {
	t.processed[id] = struct{}{}
}

// IsProcessed reports whether book id has already been counted.
func (t *Tally) IsProcessed(id string) bool {
	_, ok := t.processed[id]
	return ok
}

// Processed returns the processed book IDs in lexicographic order.
func (t *Tally) Processed() []string {
	ids := make([]string, 0, len(t.processed))
	for id := range t.processed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
