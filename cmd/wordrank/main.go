// Command wordrank builds the corpus word tally and the game dictionaries.
//
//	wordrank --mode all            # tally new books, then rank
//	wordrank --mode tally          # only fold new books into the tally
//	wordrank --mode rank           # only rank against the saved tally
//	wordrank --mode variants       # print -ize/-ise pairs of the word list
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/pflag"

	wordrank "github.com/jamesainslie/go-wordrank"
	"github.com/jamesainslie/go-wordrank/rank"
	"github.com/jamesainslie/go-wordrank/tally"
	"github.com/jamesainslie/go-wordrank/variants"
)

// Set by the build via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	def := wordrank.DefaultPaths()
	var (
		mode        = pflag.StringP("mode", "m", "all", "Mode: all, tally, rank or variants")
		corpusDir   = pflag.String("corpus", def.CorpusDir, "Directory with one text file per book")
		state       = pflag.String("state", def.State, "Tally state file (.json or .pb)")
		stateFormat = pflag.String("state-format", "auto", "State format: auto (by extension), json or pb")
		wordlist    = pflag.String("wordlist", def.Wordlist, "Base word list")
		deletions   = pflag.String("deletions", def.Deletions, "Deletions word list (full dictionary only)")
		naughty     = pflag.String("naughty", def.Naughty, "Profanity list")
		regional    = pflag.String("regional", def.Regional, "Regional spelling variant list")
		manual      = pflag.String("manual-remove", def.ManualRemove, "Manual removal list")
		genOut      = pflag.StringP("generation-out", "g", def.GenerationOut, "Generation list output")
		fullOut     = pflag.StringP("full-out", "f", def.FullOut, "Full dictionary output")
		topFraction = pflag.Float64("top-fraction", 0.25, "Share of ranked words considered for generation")
		minLength   = pflag.Int("min-length", 4, "Shortest word allowed in the generation list")
		lang        = pflag.String("lang", "eng", "Expected ISO 639-3 corpus language, empty to disable")
		verbose     = pflag.BoolP("verbose", "v", false, "Debug logging")
		showVersion = pflag.Bool("version", false, "Print version and exit")
	)
	pflag.Parse()

	if *showVersion {
		fmt.Printf("%s %s (%s)\n", version, commit, date)
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	paths := wordrank.Paths{
		CorpusDir:     *corpusDir,
		State:         *state,
		Wordlist:      *wordlist,
		Deletions:     *deletions,
		Naughty:       *naughty,
		Regional:      *regional,
		ManualRemove:  *manual,
		GenerationOut: *genOut,
		FullOut:       *fullOut,
	}

	codec, err := stateCodec(*stateFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	p := wordrank.New(
		wordrank.WithStateCodec(codec),
		wordrank.WithTopFraction(*topFraction),
		wordrank.WithMinLength(*minLength),
		wordrank.WithLanguage(*lang),
		wordrank.WithLogger(logger),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, p, *mode, paths); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, p *wordrank.Pipeline, mode string, paths wordrank.Paths) error {
	switch mode {
	case "all":
		res, err := p.Run(ctx, paths)
		if err != nil {
			return err
		}
		printResult(res, paths)

	case "tally":
		t, st, err := p.BuildTally(ctx, paths.CorpusDir, paths.State)
		if err != nil {
			return err
		}
		fmt.Printf("Books: %d (%d new, %d already counted)\n", st.Books, st.Processed, st.Skipped)
		fmt.Printf("Distinct words: %d\n", t.Len())

	case "rank":
		t, err := p.LoadTally(paths.State)
		if err != nil {
			return err
		}
		res, err := p.BuildDictionary(ctx, paths, t)
		if err != nil {
			return err
		}
		printResult(res, paths)

	case "variants":
		words, err := rank.ReadList(paths.Wordlist)
		if err != nil {
			return err
		}
		if found := variants.Detect(words); len(found) > 0 {
			fmt.Println(strings.Join(found, "\n"))
		}

	default:
		return fmt.Errorf("unknown mode: %s", mode)
	}
	return nil
}

func stateCodec(format string) (tally.Codec, error) {
	switch format {
	case "auto", "":
		return nil, nil
	case "json":
		return tally.JSONCodec{}, nil
	case "pb", "protobuf":
		return tally.ProtoCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown state format: %s", format)
	}
}

func printResult(res rank.Result, paths wordrank.Paths) {
	fmt.Printf("Ranked: %d words, top slice %d\n", len(res.Ranked), res.TopCount)
	fmt.Printf("Generation: %d words -> %s\n", len(res.Generation), paths.GenerationOut)
	fmt.Printf("Full: %d words -> %s\n", len(res.Full), paths.FullOut)
}
