package tally

import (
	"reflect"
	"testing"
)

func TestTally_AddText(t *testing.T) {
	tl := New()
	st := tl.AddText("'Hello, hello! Don't say HELLO to 42 cats.")

	if st.Tokens != 8 {
		t.Errorf("Tokens = %d, want 8", st.Tokens)
	}
	if st.Words != 6 {
		t.Errorf("Words = %d, want 6", st.Words)
	}
	if st.Rejected != 2 {
		t.Errorf("Rejected = %d, want 2", st.Rejected)
	}

	counts := map[string]int{"hello": 3, "say": 1, "to": 1, "cats": 1, "dont": 0}
	for word, want := range counts {
		if got := tl.Count(word); got != want {
			t.Errorf("Count(%q) = %d, want %d", word, got, want)
		}
	}
	if tl.Len() != 4 {
		t.Errorf("Len() = %d, want 4", tl.Len())
	}
}

func TestTally_Add(t *testing.T) {
	tl := New()
	tl.Add("word", 3)
	tl.Add("word", 2)
	tl.Add("", 5)
	tl.Add("skip", 0)
	tl.Add("neg", -1)

	if got := tl.Count("word"); got != 5 {
		t.Errorf("Count(word) = %d, want 5", got)
	}
	if got := tl.Words(); !reflect.DeepEqual(got, []string{"word"}) {
		t.Errorf("Words() = %v, want [word]", got)
	}
}

func TestTally_Processed(t *testing.T) {
	tl := New()
	tl.MarkProcessed("84.txt")
	tl.MarkProcessed("1342.txt")
	tl.MarkProcessed("84.txt")

	if !tl.IsProcessed("84.txt") {
		t.Error("expected 84.txt to be processed")
	}
	if tl.IsProcessed("11.txt") {
		t.Error("did not expect 11.txt to be processed")
	}
	want := []string{"1342.txt", "84.txt"}
	if got := tl.Processed(); !reflect.DeepEqual(got, want) {
		t.Errorf("Processed() = %v, want %v", got, want)
	}
}
