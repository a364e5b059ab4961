// Package variants finds British/American -ize/-ise spelling pairs in a word
// list, for building the regional exclusion list.
package variants

import (
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set"
)

// suffixPairs maps American spellings to their British counterparts.
var suffixPairs = [][2]string{
	{"ize", "ise"},
	{"izat", "isat"},
}

// Detect returns every word of words that has a spelling variant also in
// words, together with that variant, deduplicated and sorted.
// A word is rewritten by replacing every occurrence of the American form.
func Detect(words []string) []string {
	known := mapset.NewSet()
	for _, w := range words {
		known.Add(w)
	}

	found := mapset.NewSet()
	for _, w := range words {
		for _, p := range suffixPairs {
			if !strings.Contains(w, p[0]) {
				continue
			}
			british := strings.ReplaceAll(w, p[0], p[1])
			if known.Contains(british) {
				found.Add(w)
				found.Add(british)
			}
		}
	}

	out := make([]string, 0, found.Cardinality())
	for _, v := range found.ToSlice() {
		out = append(out, v.(string))
	}
	sort.Strings(out)
	return out
}
