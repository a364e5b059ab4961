package rank

import (
	"reflect"
	"testing"
)

type freqMap map[string]int

func (m freqMap) Count(word string) int { return m[word] }

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		base      []string
		deletions []string
		freq      freqMap
		ex        Exclusions
		cfg       Config
		wantGen   []string
		wantFull  []string
		wantTop   int
	}{
		{
			name:     "floor of a quarter of three is zero",
			base:     []string{"cat", "dog", "zap"},
			freq:     freqMap{"cat": 10, "dog": 5, "zap": 1},
			cfg:      DefaultConfig(),
			wantGen:  []string{},
			wantFull: []string{"cat", "dog", "zap"},
			wantTop:  0,
		},
		{
			name:      "full list keeps duplicates",
			base:      []string{"a", "a"},
			deletions: []string{"b"},
			freq:      freqMap{},
			cfg:       DefaultConfig(),
			wantGen:   []string{},
			wantFull:  []string{"a", "a", "b"},
			wantTop:   0,
		},
		{
			name: "short words never generate",
			base: []string{"the", "house", "and", "garden", "tree", "stone", "river", "cloud"},
			freq: freqMap{"the": 1000, "and": 900, "house": 50, "garden": 40,
				"tree": 30, "stone": 20, "river": 10, "cloud": 5},
			cfg:      DefaultConfig(),
			wantGen:  []string{},
			wantFull: []string{"and", "cloud", "garden", "house", "river", "stone", "the", "tree"},
			wantTop:  2,
		},
		{
			name: "frequency order with stable ties",
			base: []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel"},
			freq: freqMap{"alpha": 5, "bravo": 9, "charlie": 9, "delta": 1,
				"echo": 2, "foxtrot": 3, "golf": 4, "hotel": 9},
			cfg:      Config{TopFraction: 0.5, MinLength: 4},
			wantGen:  []string{"bravo", "charlie", "hotel", "alpha"},
			wantFull: []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel"},
			wantTop:  4,
		},
		{
			name: "absent words dropped before slicing",
			base: []string{"zzzz", "yyyy", "word", "more", "less", "none"},
			freq: freqMap{"word": 8, "more": 6, "less": 4, "none": 2},
			cfg:  Config{TopFraction: 0.5, MinLength: 4},
			// 4 ranked candidates -> top 2
			wantGen:  []string{"word", "more"},
			wantFull: []string{"less", "more", "none", "word", "yyyy", "zzzz"},
			wantTop:  2,
		},
		{
			name:      "deletions are not candidates",
			base:      []string{"house"},
			deletions: []string{"mouse"},
			freq:      freqMap{"house": 1, "mouse": 100},
			cfg:       Config{TopFraction: 1, MinLength: 4},
			wantGen:   []string{"house"},
			wantFull:  []string{"house", "mouse"},
			wantTop:   1,
		},
		{
			name: "exclusions",
			base: []string{"damnit", "colour", "color", "oddword", "plain"},
			freq: freqMap{"damnit": 50, "colour": 40, "color": 30, "oddword": 20, "plain": 10},
			ex: Exclusions{
				Profanity: NewSet("damnit"),
				Regional:  NewSet("colour", "color"),
				Manual:    NewSet("oddword"),
			},
			cfg:      Config{TopFraction: 1, MinLength: 4},
			wantGen:  []string{"plain"},
			wantFull: []string{"color", "colour", "damnit", "oddword", "plain"},
			wantTop:  5,
		},
		{
			name:     "nil exclusion sets",
			base:     []string{"plain"},
			freq:     freqMap{"plain": 1},
			ex:       Exclusions{Manual: NewSet("other")},
			cfg:      Config{TopFraction: 1, MinLength: 4},
			wantGen:  []string{"plain"},
			wantFull: []string{"plain"},
			wantTop:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.base, tt.deletions, tt.freq, tt.ex, tt.cfg)

			if !reflect.DeepEqual(got.Generation, tt.wantGen) {
				t.Errorf("Generation = %v, want %v", got.Generation, tt.wantGen)
			}
			if !reflect.DeepEqual(got.Full, tt.wantFull) {
				t.Errorf("Full = %v, want %v", got.Full, tt.wantFull)
			}
			if got.TopCount != tt.wantTop {
				t.Errorf("TopCount = %d, want %d", got.TopCount, tt.wantTop)
			}
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	base := []string{"apple", "berry", "cherry", "date", "elder", "figs", "grape", "honey"}
	freq := freqMap{"apple": 3, "berry": 3, "cherry": 3, "date": 3, "elder": 3, "figs": 3, "grape": 3, "honey": 3}
	cfg := Config{TopFraction: 1, MinLength: 4}

	first := Build(base, nil, freq, Exclusions{}, cfg)
	for i := 0; i < 10; i++ {
		again := Build(base, nil, freq, Exclusions{}, cfg)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %v vs %v", i, first.Generation, again.Generation)
		}
	}
	if !reflect.DeepEqual(first.Generation, base) {
		t.Errorf("equal frequencies should keep input order, got %v", first.Generation)
	}
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	base := []string{"zebra", "apple"}
	deletions := []string{"mango"}
	Build(base, deletions, freqMap{"zebra": 1}, Exclusions{}, DefaultConfig())

	if !reflect.DeepEqual(base, []string{"zebra", "apple"}) {
		t.Errorf("base mutated: %v", base)
	}
}

func TestTopCount(t *testing.T) {
	tests := []struct {
		n        int
		fraction float64
		want     int
	}{
		{0, 0.25, 0},
		{3, 0.25, 0},
		{4, 0.25, 1},
		{7, 0.25, 1},
		{8, 0.25, 2},
		{10, 1.5, 10},
		{10, -1, 0},
	}
	for _, tt := range tests {
		if got := topCount(tt.n, tt.fraction); got != tt.want {
			t.Errorf("topCount(%d, %v) = %d, want %d", tt.n, tt.fraction, got, tt.want)
		}
	}
}
