package wordrank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	mapset "github.com/deckarep/golang-set"

	"github.com/jamesainslie/go-wordrank/rank"
	"github.com/jamesainslie/go-wordrank/tally"
)

// Paths locates the inputs and outputs of a pipeline run.
type Paths struct {
	CorpusDir string // one file per book
	State     string // persisted tally; ".pb" selects the binary format

	Wordlist     string // base word list, generation candidates
	Deletions    string // extra words for the full dictionary only
	Naughty      string // profanity exclusions
	Regional     string // regional spelling exclusions
	ManualRemove string // hand-picked exclusions

	GenerationOut string
	FullOut       string
}

// DefaultPaths returns the conventional layout of a dictionary workspace.
func DefaultPaths() Paths {
	return Paths{
		CorpusDir:     "books",
		State:         "freq_data.json",
		Wordlist:      "wwf_data/enable1-wwf-v4.0-wordlist.txt",
		Deletions:     "wwf_data/enable1-wwf-v4.0-wordlist-deletions.txt",
		Naughty:       "naughty.txt",
		Regional:      "us_uk_diff.txt",
		ManualRemove:  "manual_remove.txt",
		GenerationOut: "dictionary_for_generation.txt",
		FullOut:       "dictionary_full.txt",
	}
}

// Pipeline runs the tally and ranking stages.
type Pipeline struct {
	rank       rank.Config
	language   string
	stateCodec tally.Codec
	logger     *slog.Logger
}

// New creates a Pipeline.
func New(opts ...Option) *Pipeline {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Pipeline{
		rank: rank.Config{
			TopFraction: cfg.topFraction,
			MinLength:   cfg.minLength,
		},
		language:   cfg.language,
		stateCodec: cfg.stateCodec,
		logger:     cfg.logger,
	}
}

// BuildTally loads the tally at statePath (empty if absent), counts every
// book of corpusDir not yet processed and returns the updated tally. The
// state file is rewritten after each book.
func (p *Pipeline) BuildTally(ctx context.Context, corpusDir, statePath string) (*tally.Tally, tally.Stats, error) {
	if _, err := os.Stat(corpusDir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, tally.Stats{}, fmt.Errorf("%w: %s", ErrCorpusNotFound, corpusDir)
		}
		return nil, tally.Stats{}, fmt.Errorf("checking corpus: %w", err)
	}

	store := p.store(statePath)
	t, err := store.Load()
	if err != nil {
		return nil, tally.Stats{}, err
	}
	p.logger.Info("loaded tally",
		"state", store.Path(),
		"words", t.Len(),
		"books", len(t.Processed()),
	)

	st, err := tally.NewBuilder(store, p.language, p.logger).Build(ctx, corpusDir, t)
	if err != nil {
		return nil, st, err
	}

	p.logger.Info("tally complete",
		"books", st.Books,
		"skipped", st.Skipped,
		"processed", st.Processed,
		"words", t.Len(),
	)
	return t, st, nil
}

// BuildDictionary ranks the lists named in paths against freq and writes
// the generation and full dictionaries.
func (p *Pipeline) BuildDictionary(ctx context.Context, paths Paths, freq rank.Frequencies) (rank.Result, error) {
	if err := ctx.Err(); err != nil {
		return rank.Result{}, err
	}

	base, err := readList(paths.Wordlist)
	if err != nil {
		return rank.Result{}, err
	}
	deletions, err := readList(paths.Deletions)
	if err != nil {
		return rank.Result{}, err
	}

	var ex rank.Exclusions
	sets := []struct {
		path string
		dst  *mapset.Set
	}{
		{paths.Naughty, &ex.Profanity},
		{paths.Regional, &ex.Regional},
		{paths.ManualRemove, &ex.Manual},
	}
	for _, s := range sets {
		set, err := rank.ReadSet(s.path)
		if err != nil {
			return rank.Result{}, notFound(err, s.path)
		}
		*s.dst = set
	}

	res := rank.Build(base, deletions, freq, ex, p.rank)
	p.logger.Info("ranked words",
		"candidates", len(base),
		"ranked", len(res.Ranked),
		"top", res.TopCount,
		"generation", len(res.Generation),
		"full", len(res.Full),
	)

	if err := rank.WriteList(paths.GenerationOut, res.Generation); err != nil {
		return res, err
	}
	if err := rank.WriteList(paths.FullOut, res.Full); err != nil {
		return res, err
	}
	return res, nil
}

// Run builds the tally and then the dictionaries.
func (p *Pipeline) Run(ctx context.Context, paths Paths) (rank.Result, error) {
	t, _, err := p.BuildTally(ctx, paths.CorpusDir, paths.State)
	if err != nil {
		return rank.Result{}, err
	}
	return p.BuildDictionary(ctx, paths, t)
}

// LoadTally reads the persisted tally at statePath without touching the corpus.
func (p *Pipeline) LoadTally(statePath string) (*tally.Tally, error) {
	return p.store(statePath).Load()
}

func (p *Pipeline) store(statePath string) *tally.Store {
	if p.stateCodec != nil {
		return tally.NewStoreWithCodec(statePath, p.stateCodec)
	}
	return tally.NewStore(statePath)
}

func readList(path string) ([]string, error) {
	words, err := rank.ReadList(path)
	if err != nil {
		return nil, notFound(err, path)
	}
	return words, nil
}

func notFound(err error, path string) error {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrListNotFound, path)
	}
	return err
}
