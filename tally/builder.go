package tally

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"

	"github.com/jamesainslie/go-wordrank/internal/corpus"
)

// languageSampleSize is how many bytes from the middle of a book go into
// language detection. The middle avoids the English licence boilerplate that
// wraps every Gutenberg text.
const languageSampleSize = 4096

// Stats summarizes one Build call.
type Stats struct {
	Books     int // files found in the corpus directory
	Skipped   int // books already in the tally
	Processed int // books counted and checkpointed by this call
	Tokens    int
	Words     int
	Rejected  int
}

// Builder folds corpus books into a tally one book at a time.
type Builder struct {
	checkpoint Checkpointer
	language   string
	logger     *slog.Logger
}

// NewBuilder returns a Builder that checkpoints through cp after every book.
// language is the expected ISO 639-3 code of the corpus ("eng"); books that
// reliably detect as another language are logged. An empty language disables
// the check.
func NewBuilder(cp Checkpointer, language string, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		checkpoint: cp,
		language:   language,
		logger:     logger,
	}
}

// Build counts every book in corpusDir that t has not processed yet, in
// lexicographic order of book ID. After each book the tally is marked and
// checkpointed, so an interruption loses at most the book in flight.
//
// A checkpoint failure aborts the run. The in-memory tally then holds one
// book more than the durable state and must be discarded.
func (b *Builder) Build(ctx context.Context, corpusDir string, t *Tally) (Stats, error) {
	books, err := corpus.List(corpusDir)
	if err != nil {
		return Stats{}, fmt.Errorf("listing corpus: %w", err)
	}

	st := Stats{Books: len(books)}
	for _, book := range books {
		if t.IsProcessed(book.ID) {
			st.Skipped++
			b.logger.Debug("skipping book", "book", book.ID)
			continue
		}

		if err := ctx.Err(); err != nil {
			return st, err
		}

		ts, err := b.addBook(t, book)
		if err != nil {
			return st, err
		}
		st.Processed++
		st.Tokens += ts.Tokens
		st.Words += ts.Words
		st.Rejected += ts.Rejected
	}

	return st, nil
}

func (b *Builder) addBook(t *Tally, book corpus.Book) (TextStats, error) {
	b.logger.Info("loading book", "book", book.ID)

	text, err := corpus.Read(book.Path)
	if err != nil {
		return TextStats{}, fmt.Errorf("reading %s: %w", book.ID, err)
	}
	b.checkLanguage(book.ID, text)

	ts := t.AddText(text)
	t.MarkProcessed(book.ID)

	if err := b.checkpoint.Save(t); err != nil {
		return ts, fmt.Errorf("checkpoint after %s: %w", book.ID, err)
	}

	b.logger.Debug("book counted",
		"book", book.ID,
		"tokens", ts.Tokens,
		"words", ts.Words,
		"rejected", ts.Rejected,
		"distinct", t.Len(),
	)
	return ts, nil
}

func (b *Builder) checkLanguage(id, text string) {
	if b.language == "" || text == "" {
		return
	}

	info := whatlanggo.Detect(middleSample(text, languageSampleSize))
	if !info.IsReliable() {
		return
	}
	if got := info.Lang.Iso6393(); got != b.language {
		b.logger.Warn("book language mismatch",
			"book", id,
			"want", b.language,
			"detected", got,
			"confidence", info.Confidence,
		)
	}
}

// middleSample returns up to n bytes from the middle of text, cut on rune
// boundaries.
func middleSample(text string, n int) string {
	if len(text) <= n {
		return text
	}
	start := (len(text) - n) / 2
	end := start + n
	for start < end && !utf8.RuneStart(text[start]) {
		start++
	}
	for end > start && end < len(text) && !utf8.RuneStart(text[end]) {
		end--
	}
	return text[start:end]
}
