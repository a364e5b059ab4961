// Package rank turns candidate word lists and corpus frequencies into the
// generation list and the full validation dictionary.
package rank

import (
	"math"
	"sort"
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set"
)

// Frequencies looks up how often a word occurs in the corpus.
// Zero means the word was never seen.
type Frequencies interface {
	Count(word string) int
}

// Config holds ranking parameters.
type Config struct {
	TopFraction float64 // share of ranked candidates considered for generation
	MinLength   int     // shorter words never reach the generation list
}

// DefaultConfig returns the default ranking configuration.
func DefaultConfig() Config {
	return Config{
		TopFraction: 0.25,
		MinLength:   4,
	}
}

// Exclusions are the word sets filtered out of the generation list.
// A nil set excludes nothing.
type Exclusions struct {
	Profanity mapset.Set
	Regional  mapset.Set
	Manual    mapset.Set
}

// blocked folds the manual removals into the regional set, so both are
// checked as one regional filter.
func (e Exclusions) blocked() (profanity, regional mapset.Set) {
	profanity = e.Profanity
	if profanity == nil {
		profanity = mapset.NewSet()
	}
	regional = e.Regional
	if regional == nil {
		regional = mapset.NewSet()
	}
	if e.Manual != nil {
		regional = regional.Union(e.Manual)
	}
	return profanity, regional
}

// Entry is a candidate word with its corpus frequency.
type Entry struct {
	Word string
	Freq int
}

// Result holds the ranking outputs.
type Result struct {
	Generation []string // filtered, most frequent first
	Full       []string // base and deletions, sorted, duplicates kept
	Ranked     []Entry  // every base word found in the corpus, most frequent first
	TopCount   int      // size of the top slice before filtering
}

// Build ranks base by frequency and filters the top slice into the
// generation list. Only base words are candidates; deletions only reach the
// full list. Base words the corpus never saw are dropped, and ties keep their
// base list order.
func Build(base, deletions []string, freq Frequencies, ex Exclusions, cfg Config) Result {
	full := make([]string, 0, len(base)+len(deletions))
	full = append(full, base...)
	full = append(full, deletions...)
	sort.Strings(full)

	ranked := make([]Entry, 0, len(base))
	for _, w := range base {
		if n := freq.Count(w); n > 0 {
			ranked = append(ranked, Entry{Word: w, Freq: n})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Freq > ranked[j].Freq
	})

	top := topCount(len(ranked), cfg.TopFraction)
	profanity, regional := ex.blocked()

	generation := make([]string, 0, top)
	for _, e := range ranked[:top] {
		if profanity.Contains(e.Word) || regional.Contains(e.Word) {
			continue
		}
		if utf8.RuneCountInString(e.Word) < cfg.MinLength {
			continue
		}
		generation = append(generation, e.Word)
	}

	return Result{
		Generation: generation,
		Full:       full,
		Ranked:     ranked,
		TopCount:   top,
	}
}

// topCount returns floor(n * fraction) clamped to [0, n].
func topCount(n int, fraction float64) int {
	top := int(math.Floor(float64(n) * fraction))
	if top < 0 {
		return 0
	}
	if top > n {
		return n
	}
	return top
}
